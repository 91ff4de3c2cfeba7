package config

import "os"

// Sanitize returns a copy of the config with nonsensical values
// replaced by safe ones. Loading never fails on a sloppy config; it
// gets clamped here and rejected in Verify only when genuinely unusable.
func Sanitize(cfg *Config) *Config {
	sanitized := *cfg

	if sanitized.Autosave.Interval < MinAutosaveInterval {
		sanitized.Autosave.Interval = MinAutosaveInterval
	}
	if sanitized.Autosave.SnapshotDir == "" {
		sanitized.Autosave.SnapshotDir = os.TempDir()
	}

	if sanitized.Editor.MaxOpenDocuments < 1 {
		sanitized.Editor.MaxOpenDocuments = DefaultMaxOpenDocuments
	}
	if sanitized.Editor.DefaultEncoding == "" {
		sanitized.Editor.DefaultEncoding = DefaultEncoding
	}

	if sanitized.Log.Level == "" {
		sanitized.Log.Level = DefaultLogLevel
	}
	if sanitized.Log.Format == "" {
		sanitized.Log.Format = DefaultLogFormat
	}

	return &sanitized
}
