// Package textfile is the persistence gateway for real user files.
//
// It reads and writes plain UTF-8 text with no format wrapping. Pure
// IO, no policy: callers decide what a failure means.
package textfile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/texterhq/texter-go/internal/core/domain"
)

// Gateway performs user document file IO.
type Gateway struct {
	perm os.FileMode
}

// Option configures the Gateway.
type Option func(*Gateway)

// WithFileMode sets the permission bits for created files.
func WithFileMode(perm os.FileMode) Option {
	return func(g *Gateway) {
		g.perm = perm
	}
}

// New creates a new file gateway.
func New(opts ...Option) *Gateway {
	g := &Gateway{perm: 0644}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Read reads the file at path as UTF-8 text.
// Returns ErrReadFailed for a missing or unreadable file.
func (g *Gateway) Read(path string) (string, error) {
	if path == "" {
		return "", domain.ErrMissingArgument.WithDetails("path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", domain.ErrReadFailed.WithDetails(path).WithCause(err)
	}
	return string(data), nil
}

// Write writes text to path, creating parent directories as needed.
// The write goes through a sibling temp file and a rename, so a crash
// mid-write never leaves a half-written file at path.
// Returns ErrWriteFailed on any IO failure.
func (g *Gateway) Write(path, text string) error {
	if path == "" {
		return domain.ErrMissingArgument.WithDetails("path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return domain.ErrWriteFailed.WithDetails(path).WithCause(err)
		}
	}

	if err := atomicWrite(path, []byte(text), g.perm); err != nil {
		return domain.ErrWriteFailed.WithDetails(path).WithCause(err)
	}
	return nil
}

// DeleteIfExists removes path if present. Absence is not an error,
// and removal failures are reported but safe to ignore.
func (g *Gateway) DeleteIfExists(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("textfile: remove %s: %w", path, err)
	}
	return nil
}

// atomicWrite writes data to a temp file next to path and renames it
// into place.
func atomicWrite(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}
