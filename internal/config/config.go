package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Spotify contains credentials and limits for the remote lookup.
type Spotify struct {
	ClientID       string `toml:"client_id"`
	ClientSecret   string `toml:"client_secret"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Analysis contains configuration for local decode and beat tracking.
type Analysis struct {
	FFmpegBinary  string  `toml:"ffmpeg_binary"`
	FFprobeBinary string  `toml:"ffprobe_binary"`
	Timeout       int     `toml:"timeout"`
	MinTempo      float64 `toml:"min_tempo"`
	MaxTempo      float64 `toml:"max_tempo"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	Dir    string `toml:"dir"`
}

// Config encapsulates all configuration values for the resolver.
//
// Configuration sections by subsystem:
//   - Spotify: Web API credentials and per-call timeout for the remote branch
//   - Analysis: decoder binaries, analysis budget, and tempo search range
//   - Logging: log format, level, and optional log file directory
type Config struct {
	Spotify  Spotify  `toml:"spotify"`
	Analysis Analysis `toml:"analysis"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the default configuration file location under the
// XDG config home.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "deaddisco", "config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has environment overlays applied and all path fields expanded.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath := DefaultConfigPath()

	projectPath, err := filepath.Abs("deaddisco.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// SpotifyCredentials reports the configured client credentials. ok is false
// when either value is absent; there are no embedded fallbacks.
func (c *Config) SpotifyCredentials() (id, secret string, ok bool) {
	id = strings.TrimSpace(c.Spotify.ClientID)
	secret = strings.TrimSpace(c.Spotify.ClientSecret)
	return id, secret, id != "" && secret != ""
}

// LookupTimeout returns the per-call budget for the remote lookup.
func (c *Config) LookupTimeout() time.Duration {
	return time.Duration(c.Spotify.RequestTimeout) * time.Second
}

// AnalysisTimeout returns the budget for one local analysis, decode included.
func (c *Config) AnalysisTimeout() time.Duration {
	return time.Duration(c.Analysis.Timeout) * time.Second
}

// FFmpeg returns the ffmpeg executable used for mp3 decoding.
func (c *Config) FFmpeg() string {
	if bin := strings.TrimSpace(c.Analysis.FFmpegBinary); bin != "" {
		return bin
	}
	return defaultFFmpegBinary
}

// FFprobe returns the ffprobe executable used for stream inspection.
func (c *Config) FFprobe() string {
	if bin := strings.TrimSpace(c.Analysis.FFprobeBinary); bin != "" {
		return bin
	}
	return defaultFFprobeBinary
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	sample := sampleConfig

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
