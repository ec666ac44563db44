package analysis

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/AbdulAahad2/DeadasDiscoBPM/internal/audio"
	"github.com/AbdulAahad2/DeadasDiscoBPM/internal/beattrack"
	"github.com/AbdulAahad2/DeadasDiscoBPM/internal/config"
	"github.com/AbdulAahad2/DeadasDiscoBPM/internal/logging"
	"github.com/AbdulAahad2/DeadasDiscoBPM/internal/services"
)

const stepName = "local_analysis"

// Analyzer runs decode plus beat tracking against local audio files.
type Analyzer struct {
	decoder audio.Decoder
	opts    beattrack.Options
	logger  *slog.Logger
}

// NewAnalyzer builds an Analyzer from the configured decoder binaries and
// tempo search range.
func NewAnalyzer(cfg *config.Config, logger *slog.Logger) *Analyzer {
	return &Analyzer{
		decoder: audio.Decoder{FFmpegBinary: cfg.FFmpeg(), FFprobeBinary: cfg.FFprobe()},
		opts:    beattrack.Options{MinTempo: cfg.Analysis.MinTempo, MaxTempo: cfg.Analysis.MaxTempo},
		logger:  logging.NewComponentLogger(logger, "analysis"),
	}
}

// Analyze decodes the file at path and returns the strongest tempo candidate
// in beats per minute. The value is unrounded.
func (a *Analyzer) Analyze(ctx context.Context, path string) (float64, error) {
	log := logging.WithContext(ctx, a.logger)

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			wrapped := services.Wrap(services.ErrFileNotFound, stepName, "stat", "audio file missing", err)
			return 0, services.WithUserMessage(wrapped, fmt.Sprintf("Audio file %s not found.", path))
		}
		return 0, a.failure("stat", err)
	}

	buf, err := a.decoder.Decode(ctx, path)
	if err != nil {
		return 0, a.failure("decode", err)
	}
	log.Debug("decoded audio",
		logging.String("path", path),
		logging.Int("sample_rate", buf.SampleRate),
		logging.Duration("length", buf.Duration()))

	candidates, err := beattrack.Estimate(buf.Samples, buf.SampleRate, a.opts)
	if err != nil {
		return 0, a.failure("beattrack", err)
	}

	// The first candidate is authoritative; alternates are only logged.
	bpm := candidates[0]
	log.Debug("tempo estimated",
		logging.String("path", path),
		logging.Float64("bpm", bpm),
		logging.Int("alternates", len(candidates)-1))
	return bpm, nil
}

func (a *Analyzer) failure(operation string, err error) error {
	marker := services.ErrAnalysis
	if errors.Is(err, context.DeadlineExceeded) {
		marker = services.ErrTimeout
	}
	wrapped := services.Wrap(marker, stepName, operation, "", err)
	return services.WithUserMessage(wrapped, fmt.Sprintf("Error processing audio file: %v", err))
}
