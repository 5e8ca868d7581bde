// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	// DefaultMaxFiles is the default batch capacity.
	DefaultMaxFiles = 5

	// DefaultTimestampLayout formats the "Converted at" line of each document.
	DefaultTimestampLayout = "2006-01-02 15:04:05"

	// maxFilesCeiling bounds conversion.max_files.
	maxFilesCeiling = 100
)

// ConversionConfig holds settings for the conversion engine.
type ConversionConfig struct {
	// MaxFiles is the batch capacity (default 5). Files beyond the remaining
	// capacity are dropped.
	MaxFiles int `json:"max_files" yaml:"max_files" mapstructure:"max_files"`

	// TimestampLayout is the Go time layout used in the conversion timestamp line.
	TimestampLayout string `json:"timestamp_layout" yaml:"timestamp_layout" mapstructure:"timestamp_layout"`
}

// HistoryConfig holds settings for the run history store.
type HistoryConfig struct {
	// Enabled records every completed run in the history database.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// Dir is the directory holding history.db and exports.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`
}

// LogConfig holds settings for process diagnostics.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is "text" or "json".
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// AppConfig groups all configuration sections.
type AppConfig struct {
	Conversion ConversionConfig `json:"conversion" yaml:"conversion" mapstructure:"conversion"`
	History    HistoryConfig    `json:"history" yaml:"history" mapstructure:"history"`
	Log        LogConfig        `json:"log" yaml:"log" mapstructure:"log"`
}

// DefaultConfig returns the configuration used when no file, env, or flag
// overrides a key.
func DefaultConfig() AppConfig {
	return AppConfig{
		Conversion: ConversionConfig{
			MaxFiles:        DefaultMaxFiles,
			TimestampLayout: DefaultTimestampLayout,
		},
		History: HistoryConfig{
			Dir: ".markdowngo",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks the conversion settings.
func (c ConversionConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.MaxFiles, validation.Required, validation.Min(1), validation.Max(maxFilesCeiling)),
		validation.Field(&c.TimestampLayout, validation.Required),
	)
}

// Validate checks the history settings. Dir is only required when history
// is enabled.
func (c HistoryConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Dir, validation.When(c.Enabled, validation.Required)),
	)
}

// Validate checks the logging settings.
func (c LogConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Level, validation.In("debug", "info", "warn", "warning", "error")),
		validation.Field(&c.Format, validation.In("text", "json")),
	)
}

// Validate checks every section.
func (c AppConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Conversion),
		validation.Field(&c.History),
		validation.Field(&c.Log),
	)
}
