package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/AbdulAahad2/DeadasDiscoBPM/internal/analysis"
	"github.com/AbdulAahad2/DeadasDiscoBPM/internal/config"
	"github.com/AbdulAahad2/DeadasDiscoBPM/internal/logging"
	"github.com/AbdulAahad2/DeadasDiscoBPM/internal/resolve"
	"github.com/AbdulAahad2/DeadasDiscoBPM/internal/scan"
	"github.com/AbdulAahad2/DeadasDiscoBPM/internal/services/spotify"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) requestedConfigPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(c.requestedConfigPath())
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	return cfg
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

// buildPipeline assembles the resolver from the loaded configuration. A
// Spotify client that cannot be built, typically for missing credentials,
// disables only the remote lookup step; the scan and analysis steps keep
// working.
func (c *commandContext) buildPipeline(logger *slog.Logger, sink resolve.Sink) (*resolve.Pipeline, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	deps := resolve.Deps{
		Matcher:         scan.NewMatcher(logger),
		Analyzer:        analysis.NewAnalyzer(cfg, logger),
		Sink:            sink,
		Logger:          logger,
		LookupTimeout:   cfg.LookupTimeout(),
		AnalysisTimeout: cfg.AnalysisTimeout(),
	}
	searcher, err := spotify.NewClient(cfg, logger)
	if err != nil {
		deps.SearcherErr = err
	} else {
		deps.Searcher = searcher
	}
	return resolve.New(deps)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
