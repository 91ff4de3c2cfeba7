package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		cfg    Config
		format string
	}{
		{
			name:   "default config",
			cfg:    DefaultConfig(),
			format: "json",
		},
		{
			name: "text format",
			cfg: Config{
				Level:  "debug",
				Format: "text",
			},
			format: "text",
		},
		{
			name: "console format",
			cfg: Config{
				Level:  "info",
				Format: "console",
			},
			format: "text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.cfg)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if l == nil {
				t.Fatal("New() returned nil logger")
			}
		})
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: "warn", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	l.Debug("dropped")
	l.Info("dropped too")
	l.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Fatalf("sub-level entries were emitted:\n%s", out)
	}
	if !strings.Contains(out, "kept") {
		t.Fatalf("warn entry missing:\n%s", out)
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: "info", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	l.With("document_id", "txd-1").Info("saved")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("parse log JSON: %v", err)
	}
	if entry["document_id"] != "txd-1" {
		t.Fatalf("document_id = %v", entry["document_id"])
	}
}

func TestSetLevel(t *testing.T) {
	SetLevel("debug")
	if GetLevel() != "debug" {
		t.Fatalf("GetLevel = %q, want debug", GetLevel())
	}
	SetLevel("info")
	if GetLevel() != "info" {
		t.Fatalf("GetLevel = %q, want info", GetLevel())
	}
}

func TestParseLevel_Unknown(t *testing.T) {
	if parseLevel("bogus") != parseLevel("info") {
		t.Fatal("unknown level must fall back to info")
	}
}
