package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/AbdulAahad2/DeadasDiscoBPM/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with a unique temp log directory and
// throwaway Spotify credentials. Options run after the defaults are applied.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Spotify.ClientID = "test-client-id"
	cfg.Spotify.ClientSecret = "test-client-secret"
	cfg.Logging.Dir = filepath.Join(t.TempDir(), "logs")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithoutCredentials clears the Spotify credentials so the remote branch is
// unavailable.
func WithoutCredentials() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Spotify.ClientID = ""
		cfg.Spotify.ClientSecret = ""
	}
}

// WithTempoRange overrides the beat tracking search range.
func WithTempoRange(minTempo, maxTempo float64) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Analysis.MinTempo = minTempo
		cfg.Analysis.MaxTempo = maxTempo
	}
}

// StubBinaries places no-op executables for the provided names on PATH for
// the duration of the test.
func StubBinaries(t testing.TB, names ...string) {
	t.Helper()

	binDir := t.TempDir()
	script := []byte("#!/bin/sh\nexit 0\n")
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(binDir, name), script, 0o755); err != nil {
			t.Fatalf("write stub %s: %v", name, err)
		}
	}
	t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
}
