package config

import "time"

// Config is the root configuration for texter.
type Config struct {
	Autosave AutosaveSection `koanf:"autosave"`
	Editor   EditorSection   `koanf:"editor"`
	Log      LogSection      `koanf:"log"`
	Metrics  MetricsSection  `koanf:"metrics"`
}

// AutosaveSection configures the snapshot scheduler.
type AutosaveSection struct {
	// Interval is the pause between autosave cycles.
	Interval time.Duration `koanf:"interval"`

	// SnapshotDir is where snapshot pairs live. Empty means the
	// system temporary directory.
	SnapshotDir string `koanf:"snapshot_dir"`

	// Prefix is the snapshot filename prefix. Scanning only
	// considers files carrying it.
	Prefix string `koanf:"prefix"`
}

// EditorSection configures document handling.
type EditorSection struct {
	// MaxOpenDocuments caps the open-document registry.
	MaxOpenDocuments int `koanf:"max_open_documents"`

	// DefaultEncoding is the encoding recorded for new documents.
	DefaultEncoding string `koanf:"default_encoding"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`

	// File is the log destination. Empty means stderr; the terminal
	// UI owns stdout.
	File string `koanf:"file"`
}

// MetricsSection configures the optional Prometheus endpoint.
type MetricsSection struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
}
