package resolve

import (
	"math"
	"strconv"
	"strings"

	"github.com/AbdulAahad2/DeadasDiscoBPM/internal/audio"
	"github.com/AbdulAahad2/DeadasDiscoBPM/internal/services"
)

// Step names in the order the pipeline attempts them.
const (
	StepRemoteLookup  = "remote_lookup"
	StepFileScan      = "file_scan"
	StepLocalAnalysis = "local_analysis"
)

// SourceKind identifies where a resolved tempo came from.
type SourceKind string

const (
	SourceRemote     SourceKind = "remote"
	SourceLocalFile  SourceKind = "local_file"
	SourceUnresolved SourceKind = "unresolved"
)

// Request identifies a song by name, explicit file path, or directory to
// search. Exactly one branch applies: a file path alone, or a song name with
// an optional directory.
type Request struct {
	SongName  string
	FilePath  string
	Directory string
}

// TrackMatch is a remote catalog hit with its reported tempo.
type TrackMatch struct {
	Title  string
	Artist string
	BPM    float64
}

// Attempt records one resolution step's outcome for the diagnostic trail.
type Attempt struct {
	Step      string
	Succeeded bool
	Detail    string
}

// Result is the single best-effort answer for one request. BPM is non-nil
// exactly when Source is not SourceUnresolved.
type Result struct {
	BPM        *float64
	Source     SourceKind
	Message    string
	SourcePath string
	Reason     string
	Attempts   []Attempt
}

// Resolved reports whether the request produced a tempo.
func (r Result) Resolved() bool {
	return r.BPM != nil
}

// RoundBPM rounds to two decimal places, the precision stored on results.
func RoundBPM(bpm float64) float64 {
	return math.Round(bpm*100) / 100
}

// FormatBPM renders a tempo with two decimals for presentation.
func FormatBPM(bpm float64) string {
	return strconv.FormatFloat(RoundBPM(bpm), 'f', 2, 64)
}

func (r Request) normalized() Request {
	return Request{
		SongName:  strings.TrimSpace(r.SongName),
		FilePath:  strings.TrimSpace(r.FilePath),
		Directory: strings.TrimSpace(r.Directory),
	}
}

// validate applies the request rules in their fixed order: conflicting
// inputs, unsupported file format, directory without a song name, then the
// fully empty request.
func (r Request) validate() error {
	hasFile := r.FilePath != ""
	hasSong := r.SongName != ""
	hasDir := r.Directory != ""

	switch {
	case hasFile && (hasSong || hasDir):
		return services.WithUserMessage(services.ErrConflictingInputs,
			"Provide either a file path or a song name/directory, not both.")
	case hasFile && !audio.SupportedFormat(r.FilePath):
		return services.WithUserMessage(services.ErrUnsupportedFormat,
			"Only .mp3 and .wav files are supported.")
	case hasDir && !hasSong:
		return services.WithUserMessage(services.ErrMissingSongName,
			"Provide a song name when searching a directory.")
	case !hasFile && !hasSong:
		return services.WithUserMessage(services.ErrEmptyRequest,
			"Enter a song name or select a file.")
	}
	return nil
}
