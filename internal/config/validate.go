package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable. Missing Spotify credentials
// are deliberately not an error here: they only disable the remote branch,
// which is reported per resolution.
func (c *Config) Validate() error {
	if err := c.validateSpotify(); err != nil {
		return err
	}
	if err := c.validateAnalysis(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateSpotify() error {
	if c.Spotify.RequestTimeout <= 0 {
		return errors.New("spotify.request_timeout must be positive (seconds)")
	}
	return nil
}

func (c *Config) validateAnalysis() error {
	if c.Analysis.Timeout <= 0 {
		return errors.New("analysis.timeout must be positive (seconds)")
	}
	if c.Analysis.MinTempo <= 0 {
		return errors.New("analysis.min_tempo must be positive")
	}
	if c.Analysis.MaxTempo <= c.Analysis.MinTempo {
		return fmt.Errorf("analysis.max_tempo must be greater than analysis.min_tempo (%g)", c.Analysis.MinTempo)
	}
	return nil
}
