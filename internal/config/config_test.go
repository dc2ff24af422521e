package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "gcs", cfg.Store.Backend)
	assert.Equal(t, "ozone_level_detection", cfg.Store.Bucket)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)

	require.Len(t, cfg.Datasets, 2)
	assert.Equal(t, "eighthr", cfg.Datasets[0].Name)
	assert.Equal(t, "data/raw/eighthr_data.csv", cfg.Datasets[0].RawKey)
	assert.Equal(t, "data/processed/cleaned_eighthr_data.csv", cfg.Datasets[0].ProcessedKey)
	assert.Equal(t, "onehr", cfg.Datasets[1].Name)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("OZONE_STORE_BACKEND", "local")
	t.Setenv("OZONE_STORE_BUCKET", "sensors-test")
	t.Setenv("OZONE_LOGGING_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Store.Backend)
	assert.Equal(t, "sensors-test", cfg.Store.Bucket)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_InvalidBackendRejected(t *testing.T) {
	t.Setenv("OZONE_STORE_BACKEND", "s3")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}

func TestLoad_InvalidLogLevelRejected(t *testing.T) {
	t.Setenv("OZONE_LOGGING_LEVEL", "verbose")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ozone.yaml")
	content := `
store:
  backend: local
  bucket: sensors-file
  local_dir: /tmp/sensors
datasets:
  - name: custom
    raw_key: raw/custom.csv
    processed_key: processed/custom.csv
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Store.Backend)
	assert.Equal(t, "sensors-file", cfg.Store.Bucket)
	assert.Equal(t, "/tmp/sensors", cfg.Store.LocalDir)
	require.Len(t, cfg.Datasets, 1)
	assert.Equal(t, "custom", cfg.Datasets[0].Name)
}

func TestLoad_FileDatasetMissingKeyRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ozone.yaml")
	content := `
datasets:
  - name: broken
    raw_key: raw/broken.csv
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "gcs", cfg.Store.Backend)
}

func TestLoad_DuplicateDatasetNamesRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ozone.yaml")
	content := `
datasets:
  - name: same
    raw_key: raw/a.csv
    processed_key: processed/a.csv
  - name: same
    raw_key: raw/b.csv
    processed_key: processed/b.csv
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate dataset")
}
