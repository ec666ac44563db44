package resolve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/AbdulAahad2/DeadasDiscoBPM/internal/logging"
	"github.com/AbdulAahad2/DeadasDiscoBPM/internal/services"
)

// Searcher looks a song up on a remote catalog and reports its tempo.
type Searcher interface {
	Lookup(ctx context.Context, songName string) (TrackMatch, error)
}

// Matcher locates an audio file for a song name under a directory root.
type Matcher interface {
	FindMatch(ctx context.Context, directory, songName string) (string, error)
}

// Analyzer derives a tempo from an audio file on disk.
type Analyzer interface {
	Analyze(ctx context.Context, path string) (float64, error)
}

// Deps carries the pipeline collaborators. Searcher may be nil when the
// remote branch is unavailable; SearcherErr then explains why every remote
// attempt fails.
type Deps struct {
	Searcher    Searcher
	SearcherErr error
	Matcher     Matcher
	Analyzer    Analyzer
	Sink        Sink
	Logger      *slog.Logger

	LookupTimeout   time.Duration
	AnalysisTimeout time.Duration
}

// Pipeline owns the resolution decision logic.
type Pipeline struct {
	deps   Deps
	logger *slog.Logger
}

// New builds a Pipeline. Matcher and Analyzer are required; Sink and Logger
// fall back to no-ops.
func New(deps Deps) (*Pipeline, error) {
	if deps.Matcher == nil {
		return nil, errors.New("resolve: matcher is required")
	}
	if deps.Analyzer == nil {
		return nil, errors.New("resolve: analyzer is required")
	}
	if deps.Sink == nil {
		deps.Sink = NopSink{}
	}
	return &Pipeline{
		deps:   deps,
		logger: logging.NewComponentLogger(deps.Logger, "pipeline"),
	}, nil
}

// Resolve runs one request to completion. It never returns an error: invalid
// requests and exhausted fallbacks both come back as an unresolved Result.
func (p *Pipeline) Resolve(ctx context.Context, req Request) Result {
	ctx = services.WithRequestID(ctx, uuid.NewString())
	log := logging.WithContext(ctx, p.logger)
	started := time.Now()

	req = req.normalized()
	var result Result
	if err := req.validate(); err != nil {
		log.Info("request rejected",
			logging.String(logging.FieldEventType, "request_rejected"),
			logging.Error(err))
		result = Result{
			Source:  SourceUnresolved,
			Message: services.UserMessage(err),
			Reason:  services.Kind(err),
		}
	} else if req.FilePath != "" {
		log.Info("resolution started",
			logging.String(logging.FieldEventType, "resolve_start"),
			logging.String("branch", "direct_file"),
			logging.String("file", req.FilePath))
		result = p.analyzeFile(ctx, req.FilePath, nil)
	} else {
		log.Info("resolution started",
			logging.String(logging.FieldEventType, "resolve_start"),
			logging.String("branch", "remote_then_scan"),
			logging.String("song", req.SongName),
			logging.String("directory", req.Directory))
		result = p.resolveBySong(ctx, req)
	}

	log.Info("resolution complete",
		logging.String(logging.FieldEventType, "resolve_complete"),
		logging.String("source", string(result.Source)),
		logging.Bool("resolved", result.Resolved()),
		logging.Duration("duration", time.Since(started)))
	p.deps.Sink.Resolved(result)
	return result
}

// resolveBySong walks the remote-then-scan branch: remote lookup first, then
// a directory scan feeding local analysis when a directory was supplied.
func (p *Pipeline) resolveBySong(ctx context.Context, req Request) Result {
	log := logging.WithContext(ctx, p.logger)
	attempts := make([]Attempt, 0, 3)

	match, err := p.remoteLookup(ctx, req.SongName)
	if err == nil {
		rounded := RoundBPM(match.BPM)
		attempts = append(attempts, Attempt{
			Step:      StepRemoteLookup,
			Succeeded: true,
			Detail:    fmt.Sprintf("%s by %s", match.Title, match.Artist),
		})
		return Result{
			BPM:      &rounded,
			Source:   SourceRemote,
			Message:  fmt.Sprintf("Spotify BPM for '%s by %s': %s", match.Title, match.Artist, FormatBPM(match.BPM)),
			Attempts: attempts,
		}
	}
	lastErr := err
	attempts = append(attempts, failedAttempt(StepRemoteLookup, err))
	p.deps.Sink.StepFailed(StepRemoteLookup, services.UserMessage(err))
	log.Warn("remote lookup failed",
		logging.String(logging.FieldErrorKind, services.Kind(err)),
		logging.Error(err))

	if req.Directory != "" {
		path, scanErr := p.scanDirectory(ctx, req.Directory, req.SongName)
		if scanErr == nil {
			attempts = append(attempts, Attempt{Step: StepFileScan, Succeeded: true, Detail: path})
			return p.analyzeFile(ctx, path, attempts)
		}
		lastErr = scanErr
		attempts = append(attempts, failedAttempt(StepFileScan, scanErr))
		p.deps.Sink.StepFailed(StepFileScan, services.UserMessage(scanErr))
		log.Warn("directory scan failed",
			logging.String(logging.FieldErrorKind, services.Kind(scanErr)),
			logging.Error(scanErr))
	}

	return unresolvedResult(lastErr, attempts)
}

// analyzeFile runs local analysis on path, extending the attempt trail from
// any earlier steps.
func (p *Pipeline) analyzeFile(ctx context.Context, path string, attempts []Attempt) Result {
	bpm, err := p.analyze(ctx, path)
	if err != nil {
		attempts = append(attempts, failedAttempt(StepLocalAnalysis, err))
		p.deps.Sink.StepFailed(StepLocalAnalysis, services.UserMessage(err))
		logging.WithContext(ctx, p.logger).Warn("local analysis failed",
			logging.String(logging.FieldErrorKind, services.Kind(err)),
			logging.Error(err))
		return unresolvedResult(err, attempts)
	}

	rounded := RoundBPM(bpm)
	attempts = append(attempts, Attempt{Step: StepLocalAnalysis, Succeeded: true, Detail: path})
	return Result{
		BPM:        &rounded,
		Source:     SourceLocalFile,
		SourcePath: path,
		Message:    fmt.Sprintf("Local analysis BPM for '%s': %s", path, FormatBPM(bpm)),
		Attempts:   attempts,
	}
}

func (p *Pipeline) remoteLookup(ctx context.Context, songName string) (TrackMatch, error) {
	p.deps.Sink.StepStarted(StepRemoteLookup, "")
	if p.deps.Searcher == nil {
		err := p.deps.SearcherErr
		if err == nil {
			err = services.Wrap(services.ErrConfiguration, StepRemoteLookup, "credentials", "remote lookup unavailable", nil)
		}
		return TrackMatch{}, err
	}
	ctx = services.WithStep(ctx, StepRemoteLookup)
	if p.deps.LookupTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.deps.LookupTimeout)
		defer cancel()
	}
	return p.deps.Searcher.Lookup(ctx, songName)
}

func (p *Pipeline) scanDirectory(ctx context.Context, directory, songName string) (string, error) {
	p.deps.Sink.StepStarted(StepFileScan, fmt.Sprintf("Spotify lookup failed, scanning directory: %s", directory))
	ctx = services.WithStep(ctx, StepFileScan)
	return p.deps.Matcher.FindMatch(ctx, directory, songName)
}

func (p *Pipeline) analyze(ctx context.Context, path string) (float64, error) {
	p.deps.Sink.StepStarted(StepLocalAnalysis, "")
	ctx = services.WithStep(ctx, StepLocalAnalysis)
	if p.deps.AnalysisTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.deps.AnalysisTimeout)
		defer cancel()
	}
	return p.deps.Analyzer.Analyze(ctx, path)
}

func failedAttempt(step string, err error) Attempt {
	return Attempt{Step: step, Succeeded: false, Detail: err.Error()}
}

func unresolvedResult(lastErr error, attempts []Attempt) Result {
	return Result{
		Source:   SourceUnresolved,
		Message:  services.UserMessage(lastErr),
		Reason:   services.Kind(lastErr),
		Attempts: attempts,
	}
}
