package service

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ozonecli/internal/cleaning"
	"ozonecli/internal/config"
	"ozonecli/internal/dataset"
	errs "ozonecli/internal/errors"
)

// memStore is an in-memory blob store for driver tests.
type memStore struct {
	blobs        map[string][]byte
	contentTypes map[string]string
	storeErr     error
}

func newMemStore() *memStore {
	return &memStore{
		blobs:        make(map[string][]byte),
		contentTypes: make(map[string]string),
	}
}

func (m *memStore) Fetch(ctx context.Context, key string) ([]byte, error) {
	data, ok := m.blobs[key]
	if !ok {
		return nil, fmt.Errorf("%s: %w", key, errs.ErrNotFound)
	}
	return data, nil
}

func (m *memStore) Store(ctx context.Context, key string, data []byte, contentType string) error {
	if m.storeErr != nil {
		return m.storeErr
	}
	m.blobs[key] = data
	m.contentTypes[key] = contentType
	return nil
}

func testDatasets() []config.Dataset {
	return []config.Dataset{
		{Name: "eighthr", RawKey: "data/raw/eighthr_data.csv", ProcessedKey: "data/processed/cleaned_eighthr_data.csv"},
		{Name: "onehr", RawKey: "data/raw/onehr_data.csv", ProcessedKey: "data/processed/cleaned_onehr_data.csv"},
	}
}

func TestPreprocessor_Run(t *testing.T) {
	store := newMemStore()
	store.blobs["data/raw/eighthr_data.csv"] = []byte(
		"Date,WSR0,WSR1\n1/1/2020,?,5\n1/2/2020,3,5\n1/3/2020,4,6\n")
	store.blobs["data/raw/onehr_data.csv"] = []byte(
		"Date,T0\n1/1/2020,1\n1/2/2020,2\n1/3/2020,3\n")

	p := NewPreprocessor(store, cleaning.New(slog.Default()), slog.Default())
	require.NoError(t, p.Run(context.Background(), testDatasets()))

	for _, ds := range testDatasets() {
		data, ok := store.blobs[ds.ProcessedKey]
		require.True(t, ok, "processed blob missing for %s", ds.Name)
		assert.Equal(t, "text/csv", store.contentTypes[ds.ProcessedKey])

		cleaned, err := dataset.Decode(data)
		require.NoError(t, err)
		assert.Greater(t, cleaned.RowCount(), 0)
	}
}

func TestPreprocessor_Run_CleanedOutputShrinksOrKeepsRows(t *testing.T) {
	store := newMemStore()
	store.blobs["data/raw/eighthr_data.csv"] = []byte(
		"Date,X\n1/1/2020,1\n1/2/2020,2\n1/3/2020,3\n1/4/2020,4\n1/5/2020,100\n")

	datasets := testDatasets()[:1]
	p := NewPreprocessor(store, cleaning.New(slog.Default()), slog.Default())
	require.NoError(t, p.Run(context.Background(), datasets))

	cleaned, err := dataset.Decode(store.blobs[datasets[0].ProcessedKey])
	require.NoError(t, err)
	assert.Equal(t, 4, cleaned.RowCount(), "outlier row must be trimmed")
}

func TestPreprocessor_Run_FetchMissing(t *testing.T) {
	p := NewPreprocessor(newMemStore(), cleaning.New(slog.Default()), slog.Default())

	err := p.Run(context.Background(), testDatasets())

	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
	assert.Contains(t, err.Error(), "fetch data/raw/eighthr_data.csv")
	assert.Contains(t, err.Error(), "dataset eighthr")
}

func TestPreprocessor_Run_DecodeFailure(t *testing.T) {
	store := newMemStore()
	store.blobs["data/raw/eighthr_data.csv"] = []byte("Date,X\n1/1/2020,1,extra\n")

	p := NewPreprocessor(store, cleaning.New(slog.Default()), slog.Default())
	err := p.Run(context.Background(), testDatasets())

	require.Error(t, err)
	assert.True(t, errs.IsFormat(err))
	assert.Contains(t, err.Error(), "decode")
}

func TestPreprocessor_Run_StoreFailure(t *testing.T) {
	store := newMemStore()
	store.blobs["data/raw/eighthr_data.csv"] = []byte("Date,X\n1/1/2020,1\n")
	store.storeErr = fmt.Errorf("bucket unavailable")

	p := NewPreprocessor(store, cleaning.New(slog.Default()), slog.Default())
	err := p.Run(context.Background(), testDatasets())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "store data/processed/cleaned_eighthr_data.csv")
}

func TestPreprocessor_Run_StopsAtFirstFailure(t *testing.T) {
	store := newMemStore()
	// Only the second dataset's raw blob exists; the run must fail on the
	// first and never touch the second.
	store.blobs["data/raw/onehr_data.csv"] = []byte("Date,X\n1/1/2020,1\n")

	p := NewPreprocessor(store, cleaning.New(slog.Default()), slog.Default())
	err := p.Run(context.Background(), testDatasets())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "dataset eighthr")
	_, processed := store.blobs["data/processed/cleaned_onehr_data.csv"]
	assert.False(t, processed)
}
