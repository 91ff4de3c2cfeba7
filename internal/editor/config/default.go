package config

import (
	"time"

	"github.com/texterhq/texter-go/internal/storage/snapshot"
)

// Default configuration values.
const (
	DefaultAutosaveInterval = 30 * time.Second
	MinAutosaveInterval     = time.Second

	DefaultMaxOpenDocuments = 64
	DefaultEncoding         = "utf-8"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultMetricsAddr = "127.0.0.1:9199"
)

// Default returns the default editor configuration.
func Default() *Config {
	return &Config{
		Autosave: AutosaveSection{
			Interval: DefaultAutosaveInterval,
			Prefix:   snapshot.DefaultPrefix,
		},
		Editor: EditorSection{
			MaxOpenDocuments: DefaultMaxOpenDocuments,
			DefaultEncoding:  DefaultEncoding,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Metrics: MetricsSection{
			Enabled: false,
			Addr:    DefaultMetricsAddr,
		},
	}
}
