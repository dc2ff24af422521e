// Package service wires the blob store, table codec, and cleaning pipeline
// into the preprocessing run: for each configured dataset it fetches raw
// bytes, decodes, cleans, re-encodes, and stores the result. Datasets are
// processed sequentially and independently; the first boundary failure aborts
// the run with an error naming the failing step.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"ozonecli/internal/cleaning"
	"ozonecli/internal/config"
	"ozonecli/internal/dataset"
	"ozonecli/internal/infrastructure"
	"ozonecli/internal/storage"
)

// processedContentType is the content type for stored cleaned datasets.
const processedContentType = "text/csv"

// Preprocessor drives the fetch-clean-store cycle for configured datasets.
type Preprocessor struct {
	store    storage.Store
	pipeline *cleaning.Pipeline
	logger   *slog.Logger
}

// NewPreprocessor creates the driver. A nil logger falls back to slog.Default.
func NewPreprocessor(store storage.Store, pipeline *cleaning.Pipeline, logger *slog.Logger) *Preprocessor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Preprocessor{store: store, pipeline: pipeline, logger: logger}
}

// Run processes every dataset in order under a fresh run id. It stops at the
// first failure; data-quality problems inside the pipeline never fail a run.
func (p *Preprocessor) Run(ctx context.Context, datasets []config.Dataset) error {
	ctx = infrastructure.WithRunID(ctx, infrastructure.NewRunID())

	p.logger.InfoContext(ctx, "starting preprocessing run",
		slog.Int("datasets", len(datasets)))

	for _, ds := range datasets {
		if err := p.processDataset(ctx, ds); err != nil {
			p.logger.ErrorContext(ctx, "dataset run failed",
				slog.String("dataset", ds.Name),
				slog.String("error", err.Error()))
			return fmt.Errorf("dataset %s: %w", ds.Name, err)
		}
	}

	p.logger.InfoContext(ctx, "preprocessing run complete")
	return nil
}

func (p *Preprocessor) processDataset(ctx context.Context, ds config.Dataset) error {
	p.logger.InfoContext(ctx, "processing dataset",
		slog.String("dataset", ds.Name),
		slog.String("raw_key", ds.RawKey))

	raw, err := p.store.Fetch(ctx, ds.RawKey)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", ds.RawKey, err)
	}

	table, err := dataset.Decode(raw)
	if err != nil {
		return fmt.Errorf("decode %s: %w", ds.RawKey, err)
	}
	p.logSummary(ctx, ds.Name, "raw", table)

	cleaned := p.pipeline.Clean(table)
	p.logSummary(ctx, ds.Name, "cleaned", cleaned)

	encoded, err := dataset.Encode(cleaned)
	if err != nil {
		return fmt.Errorf("encode %s: %w", ds.ProcessedKey, err)
	}

	if err := p.store.Store(ctx, ds.ProcessedKey, encoded, processedContentType); err != nil {
		return fmt.Errorf("store %s: %w", ds.ProcessedKey, err)
	}

	p.logger.InfoContext(ctx, "dataset processed",
		slog.String("dataset", ds.Name),
		slog.String("processed_key", ds.ProcessedKey),
		slog.Int("rows", cleaned.RowCount()))
	return nil
}

// logSummary emits the per-column info/describe dump around the pipeline.
// Observability only; not part of the cleaning contract.
func (p *Preprocessor) logSummary(ctx context.Context, name, phase string, t *dataset.Table) {
	p.logger.InfoContext(ctx, "dataset summary",
		slog.String("dataset", name),
		slog.String("phase", phase),
		slog.Int("rows", t.RowCount()),
		slog.Int("columns", t.ColumnCount()))

	for _, s := range dataset.Describe(t) {
		p.logger.DebugContext(ctx, "column summary",
			slog.String("dataset", name),
			slog.String("phase", phase),
			slog.String("column", s.Name),
			slog.String("kind", s.Kind.String()),
			slog.Int("count", s.Count),
			slog.Int("missing", s.Missing),
			slog.Float64("mean", s.Mean),
			slog.Float64("std", s.Std),
			slog.Float64("min", s.Min),
			slog.Float64("max", s.Max))
	}
}
