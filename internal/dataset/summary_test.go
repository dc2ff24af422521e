package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	table, err := New(
		&Column{Name: "X", Kind: Numeric, Cells: []Cell{
			NumberCell(1), NumberCell(2), NumberCell(3), MissingCell(Numeric),
		}},
		&Column{Name: "Note", Kind: Text, Cells: []Cell{
			TextCell("a"), TextCell("b"), MissingCell(Text), MissingCell(Text),
		}},
	)
	require.NoError(t, err)

	summaries := Describe(table)
	require.Len(t, summaries, 2)

	x := summaries[0]
	assert.Equal(t, "X", x.Name)
	assert.Equal(t, Numeric, x.Kind)
	assert.Equal(t, 3, x.Count)
	assert.Equal(t, 1, x.Missing)
	assert.InDelta(t, 2.0, x.Mean, 1e-12)
	assert.InDelta(t, 1.0, x.Std, 1e-12) // sample stddev of {1,2,3}
	assert.Equal(t, 1.0, x.Min)
	assert.Equal(t, 3.0, x.Max)

	note := summaries[1]
	assert.Equal(t, Text, note.Kind)
	assert.Equal(t, 2, note.Count)
	assert.Equal(t, 2, note.Missing)
	assert.Zero(t, note.Mean)
}

func TestDescribe_EmptyNumericColumn(t *testing.T) {
	table, err := New(&Column{Name: "X", Kind: Numeric, Cells: []Cell{
		MissingCell(Numeric), MissingCell(Numeric),
	}})
	require.NoError(t, err)

	summaries := Describe(table)
	require.Len(t, summaries, 1)
	assert.Equal(t, 0, summaries[0].Count)
	assert.Equal(t, 2, summaries[0].Missing)
	assert.Zero(t, summaries[0].Mean)
	assert.Zero(t, summaries[0].Std)
}
