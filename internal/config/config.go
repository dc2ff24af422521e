// Package config loads the preprocessing run configuration from environment
// variables (prefix OZONE) and an optional YAML file, environment taking
// precedence, and validates the result.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// envPrefix namespaces all environment variables, e.g. OZONE_STORE_BUCKET.
const envPrefix = "OZONE"

// Config is the complete application configuration.
type Config struct {
	Store    StoreConfig   `yaml:"store" envconfig:"STORE"`
	Datasets []Dataset     `yaml:"datasets" ignored:"true" validate:"dive"`
	Logging  LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
}

// StoreConfig selects and parameterizes the blob-store backend.
type StoreConfig struct {
	Backend         string `yaml:"backend" envconfig:"BACKEND" validate:"oneof=gcs local"`
	Bucket          string `yaml:"bucket" envconfig:"BUCKET" validate:"required"`
	CredentialsFile string `yaml:"credentials_file" envconfig:"CREDENTIALS_FILE"`
	LocalDir        string `yaml:"local_dir" envconfig:"LOCAL_DIR"`
}

// Dataset names one logical dataset and its raw and processed blob keys.
type Dataset struct {
	Name         string `yaml:"name" validate:"required"`
	RawKey       string `yaml:"raw_key" validate:"required"`
	ProcessedKey string `yaml:"processed_key" validate:"required"`
}

// LoggingConfig mirrors the logger setup knobs.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// DefaultDatasets returns the two fixed datasets a run processes when no
// override is configured.
func DefaultDatasets() []Dataset {
	return []Dataset{
		{
			Name:         "eighthr",
			RawKey:       "data/raw/eighthr_data.csv",
			ProcessedKey: "data/processed/cleaned_eighthr_data.csv",
		},
		{
			Name:         "onehr",
			RawKey:       "data/raw/onehr_data.csv",
			ProcessedKey: "data/processed/cleaned_onehr_data.csv",
		},
	}
}

// Load builds the configuration. Precedence: environment over file over
// built-in defaults. A missing file at path is not an error.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			fileCfg, err := loadFromFile(path)
			if err != nil {
				return nil, fmt.Errorf("load config file: %w", err)
			}
			cfg = *fileCfg
		}
	}

	// Only fields with a set environment variable are overwritten; defaults
	// are applied afterwards so file values survive.
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills every field still unset after file and environment
// loading.
func (c *Config) applyDefaults() {
	if c.Store.Backend == "" {
		c.Store.Backend = "gcs"
	}
	if c.Store.Bucket == "" {
		c.Store.Bucket = "ozone_level_detection"
	}
	if c.Store.LocalDir == "" {
		c.Store.LocalDir = "data"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "console"
	}
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/preprocess.log"
	}
	if len(c.Datasets) == 0 {
		c.Datasets = DefaultDatasets()
	}
}

func (c *Config) validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return err
	}
	seen := make(map[string]bool, len(c.Datasets))
	for _, ds := range c.Datasets {
		if seen[ds.Name] {
			return fmt.Errorf("duplicate dataset name %q", ds.Name)
		}
		seen[ds.Name] = true
	}
	return nil
}
