package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeSpotify()
	c.normalizeAnalysis()
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) normalizeSpotify() {
	c.Spotify.ClientID = strings.TrimSpace(c.Spotify.ClientID)
	c.Spotify.ClientSecret = strings.TrimSpace(c.Spotify.ClientSecret)
	// Environment variables are the primary credential source and win over
	// file values.
	if value, ok := os.LookupEnv("SPOTIFY_CLIENT_ID"); ok && strings.TrimSpace(value) != "" {
		c.Spotify.ClientID = strings.TrimSpace(value)
	}
	if value, ok := os.LookupEnv("SPOTIFY_CLIENT_SECRET"); ok && strings.TrimSpace(value) != "" {
		c.Spotify.ClientSecret = strings.TrimSpace(value)
	}
	if c.Spotify.RequestTimeout <= 0 {
		c.Spotify.RequestTimeout = defaultRequestTimeout
	}
}

func (c *Config) normalizeAnalysis() {
	c.Analysis.FFmpegBinary = strings.TrimSpace(c.Analysis.FFmpegBinary)
	if c.Analysis.FFmpegBinary == "" {
		c.Analysis.FFmpegBinary = defaultFFmpegBinary
	}
	c.Analysis.FFprobeBinary = strings.TrimSpace(c.Analysis.FFprobeBinary)
	if c.Analysis.FFprobeBinary == "" {
		c.Analysis.FFprobeBinary = defaultFFprobeBinary
	}
	if c.Analysis.Timeout <= 0 {
		c.Analysis.Timeout = defaultAnalysisTimeout
	}
	if c.Analysis.MinTempo <= 0 {
		c.Analysis.MinTempo = defaultMinTempo
	}
	if c.Analysis.MaxTempo <= 0 {
		c.Analysis.MaxTempo = defaultMaxTempo
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if value, ok := os.LookupEnv("DEADDISCO_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = strings.ToLower(strings.TrimSpace(value))
	}
	if c.Logging.Dir != "" {
		expanded, err := expandPath(c.Logging.Dir)
		if err != nil {
			return fmt.Errorf("logging.dir: %w", err)
		}
		c.Logging.Dir = expanded
	}
	return nil
}
