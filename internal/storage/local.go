package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	errs "ozonecli/internal/errors"
)

// LocalStore maps blob keys onto paths under a root directory. It backs local
// development runs and tests; content type is accepted and ignored.
type LocalStore struct {
	root   string
	logger *slog.Logger
}

// NewLocalStore creates a filesystem-backed store rooted at dir.
func NewLocalStore(dir string, logger *slog.Logger) *LocalStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &LocalStore{root: dir, logger: logger}
}

// Fetch reads the file behind key. A missing file maps to ErrNotFound.
func (s *LocalStore) Fetch(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := s.resolve(key)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", key, errs.ErrNotFound)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	s.logger.Debug("fetched blob",
		slog.String("key", key),
		slog.String("path", path),
		slog.Int("bytes", len(data)))
	return data, nil
}

// Store writes data to the file behind key, creating parent directories as
// needed.
func (s *LocalStore) Store(ctx context.Context, key string, data []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := s.resolve(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create directory for %s: %w", key, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	s.logger.Info("stored blob",
		slog.String("key", key),
		slog.String("path", path),
		slog.Int("bytes", len(data)))
	return nil
}

func (s *LocalStore) resolve(key string) string {
	return filepath.Join(s.root, filepath.FromSlash(key))
}
