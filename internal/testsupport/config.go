// Package testsupport provides per-test configuration and fixture builders.
package testsupport

import (
	"path/filepath"
	"testing"

	"photovault/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.LibraryPath = filepath.Join(base, "library.json")
	cfg.Paths.DefaultStorageRoot = filepath.Join(base, "storage")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithStorageRoot overrides the default storage root on the test config.
func WithStorageRoot(root string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Paths.DefaultStorageRoot = root
	}
}

// WithExtensions overrides the accepted image extensions on the test config.
func WithExtensions(exts ...string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Import.Extensions = exts
	}
}
