// Package scan implements the filesystem fallback: it walks a directory tree
// and picks the first audio file whose normalized stem contains the
// normalized song name.
package scan

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/AbdulAahad2/DeadasDiscoBPM/internal/audio"
	"github.com/AbdulAahad2/DeadasDiscoBPM/internal/logging"
	"github.com/AbdulAahad2/DeadasDiscoBPM/internal/normalize"
	"github.com/AbdulAahad2/DeadasDiscoBPM/internal/services"
)

const stepName = "file_scan"

// Matcher locates audio files by fuzzy name match.
type Matcher struct {
	logger *slog.Logger
}

// NewMatcher constructs a Matcher. logger may be nil.
func NewMatcher(logger *slog.Logger) *Matcher {
	return &Matcher{logger: logging.NewComponentLogger(logger, "scan")}
}

// FindMatch walks directory and returns the first file with a supported
// extension whose normalized stem contains the normalized songName.
// Directories are visited in lexicographic order, so the selection is
// deterministic for a given tree. An unreadable directory and a tree without
// a match are the same null outcome: services.ErrNoMatch.
func (m *Matcher) FindMatch(ctx context.Context, directory, songName string) (string, error) {
	want := normalize.Normalize(songName)
	root := filepath.Clean(directory)
	log := logging.WithContext(ctx, m.logger)
	log.Debug("scanning directory", logging.String("directory", root), logging.String("song", songName))

	var (
		match    string
		closest  string
		bestDist = -1
	)
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries and a missing root collapse into the
			// same null outcome as no match.
			return nil
		}
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if d.IsDir() {
			return nil
		}
		if !audio.SupportedFormat(path) {
			return nil
		}
		stem := strings.TrimSuffix(d.Name(), filepath.Ext(d.Name()))
		got := normalize.Normalize(stem)
		if strings.Contains(got, want) {
			match = path
			return fs.SkipAll
		}
		if dist := levenshtein.ComputeDistance(want, got); bestDist < 0 || dist < bestDist {
			bestDist = dist
			closest = d.Name()
		}
		return nil
	})
	if walkErr != nil {
		marker := services.ErrScan
		if errors.Is(walkErr, context.DeadlineExceeded) {
			marker = services.ErrTimeout
		}
		return "", services.Wrap(marker, stepName, "walk", "directory walk aborted", walkErr)
	}

	if match != "" {
		log.Debug("found matching file", logging.String("path", match))
		return match, nil
	}

	detail := fmt.Sprintf("no qualifying file under %s", root)
	if closest != "" {
		detail = fmt.Sprintf("%s (closest candidate %s)", detail, closest)
		log.Debug("no match", logging.String("closest_candidate", closest), logging.Int("distance", bestDist))
	}
	err := services.Wrap(services.ErrNoMatch, stepName, "", detail, nil)
	msg := fmt.Sprintf("No matching audio file found for '%s' in directory: %s", songName, directory)
	return "", services.WithUserMessage(err, msg)
}
