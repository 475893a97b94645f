// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ExportConfig holds settings for the convert stage.
type ExportConfig struct {
	// OutputDir is the destination directory for exported pages and their
	// assets/ subdirectory.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// NoBreakTags renders empty bullets as blank lines instead of <br>.
	NoBreakTags bool `json:"no_br" yaml:"no_br" mapstructure:"no_br"`

	// DrawioSubdir is where draw.io SVGs live under the graph's assets
	// directory (default "storages/logseq-drawio-plugin").
	DrawioSubdir string `json:"drawio_subdir" yaml:"drawio_subdir" mapstructure:"drawio_subdir"`

	// Manifest writes a <page>.export.yaml sidecar next to each export.
	Manifest bool `json:"manifest" yaml:"manifest" mapstructure:"manifest"`
}

// HistoryConfig holds settings for the export history ledger.
type HistoryConfig struct {
	// Enabled records every successful export in the ledger.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// Dir is the directory holding history.db (default ".logseq-export").
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// MaxResults is the default number of entries listed (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// LogFormat selects the log handler.
type LogFormat string

const (
	LogText LogFormat = "text"
	LogJSON LogFormat = "json"
)

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default info).
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format selects text or json output on stderr.
	Format LogFormat `json:"format" yaml:"format" mapstructure:"format"`
}

// Config groups all settings read from the config file and environment.
type Config struct {
	Export  ExportConfig  `json:"export" yaml:"export" mapstructure:"export"`
	History HistoryConfig `json:"history" yaml:"history" mapstructure:"history"`
	Log     LogConfig     `json:"log" yaml:"log" mapstructure:"log"`
}
