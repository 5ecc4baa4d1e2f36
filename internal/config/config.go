// Package config loads fintab command settings from defaults, an optional
// YAML file and FINTAB_* environment variables, in increasing precedence.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"github.com/ukaji3/fintab-go/pkg/fintab"
	"github.com/ukaji3/fintab-go/pkg/fintab/models"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "FINTAB"

// Config represents the complete command configuration
type Config struct {
	Logging    LoggingConfig    `yaml:"logging" envconfig:"LOGGING"`
	Extraction ExtractionConfig `yaml:"extraction" envconfig:"EXTRACTION"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" envconfig:"FORMAT" validate:"oneof=console json"`
}

// ExtractionConfig contains table extraction and output configuration
type ExtractionConfig struct {
	Page           int    `yaml:"page" envconfig:"PAGE" validate:"min=1"`
	Sheet          string `yaml:"sheet" envconfig:"SHEET"`
	RowLabelColumn string `yaml:"row_label_column" envconfig:"ROW_LABEL_COLUMN" validate:"required"`
	HeaderRows     []int  `yaml:"header_rows" envconfig:"HEADER_ROWS" validate:"dive,min=0"`
	ApplyHeaders   bool   `yaml:"apply_headers" envconfig:"APPLY_HEADERS"`
	GroupWidth     int    `yaml:"group_width" envconfig:"GROUP_WIDTH" validate:"min=0"`
	Pretty         bool   `yaml:"pretty" envconfig:"PRETTY"`
	Format         string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json xlsx"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
		Extraction: ExtractionConfig{
			Page:           1,
			RowLabelColumn: models.RowLabelColumn,
			Format:         "json",
		},
	}
}

// Load builds the configuration. path may be empty, in which case no file is
// read.
func Load(path string) (*Config, error) {
	cfg := Default()

	// Overlay the config file
	if path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// Environment variables take precedence
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file at path onto cfg.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// Options converts the extraction settings into library options.
func (c ExtractionConfig) Options() fintab.Options {
	opts := fintab.DefaultOptions()
	opts.Page = c.Page
	opts.Sheet = c.Sheet
	opts.RowLabelColumn = c.RowLabelColumn
	opts.HeaderRows = c.HeaderRows
	opts.ApplyHeaders = c.ApplyHeaders
	opts.GroupWidth = c.GroupWidth
	return opts
}
