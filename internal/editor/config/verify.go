package config

import (
	"errors"
	"os"
	"strings"
)

// Verify validates the configuration. Call after Sanitize.
func Verify(cfg *Config) error {
	if err := verifyAutosave(&cfg.Autosave); err != nil {
		return err
	}
	if err := verifyMetrics(&cfg.Metrics); err != nil {
		return err
	}
	return nil
}

func verifyAutosave(cfg *AutosaveSection) error {
	if cfg.Prefix == "" {
		return errors.New("autosave.prefix is required")
	}
	if strings.ContainsAny(cfg.Prefix, "/\\") {
		return errors.New("autosave.prefix must not contain path separators")
	}

	// Check the snapshot directory exists or can be created
	if err := os.MkdirAll(cfg.SnapshotDir, 0750); err != nil {
		return errors.New("cannot create snapshot directory: " + err.Error())
	}

	return nil
}

func verifyMetrics(cfg *MetricsSection) error {
	if cfg.Enabled && cfg.Addr == "" {
		return errors.New("metrics.addr is required when metrics are enabled")
	}
	return nil
}
