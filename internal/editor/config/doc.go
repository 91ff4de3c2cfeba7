// Package config provides editor configuration for Texter.
//
// This package defines the configuration structure and validation:
//
//   - spec.go: Config struct definition
//   - default.go: Default configuration values
//   - sanitize.go: Normalization (clamp intervals, fill empty fields)
//   - verify.go: Business validation (prefix safety, path existence)
//
// Configuration is loaded via internal/infra/confloader and supports
// multiple sources: files, environment variables, and flags.
package config
