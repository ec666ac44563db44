package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrLookup        = errors.New("lookup error")
	ErrScan          = errors.New("scan error")
	ErrAnalysis      = errors.New("analysis error")
	ErrTimeout       = errors.New("timeout")
	ErrInternal      = errors.New("internal error")
)

// Request validation failures. Each wraps ErrValidation so callers can match
// either the broad category or the specific rule with errors.Is.
var (
	ErrConflictingInputs = fmt.Errorf("%w: conflicting inputs", ErrValidation)
	ErrUnsupportedFormat = fmt.Errorf("%w: unsupported format", ErrValidation)
	ErrMissingSongName   = fmt.Errorf("%w: missing song name", ErrValidation)
	ErrEmptyRequest      = fmt.Errorf("%w: empty request", ErrValidation)
)

// Step failures with dedicated fallback or rendering behaviour.
var (
	ErrNoTrackFound = fmt.Errorf("%w: no track found", ErrLookup)
	ErrNoTempoData  = fmt.Errorf("%w: no tempo data", ErrLookup)
	ErrForbidden    = fmt.Errorf("%w: forbidden", ErrLookup)
	ErrNoMatch      = fmt.Errorf("%w: no matching file", ErrScan)
	ErrFileNotFound = fmt.Errorf("%w: file not found", ErrAnalysis)
)

// Wrap builds an error message that includes step context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, step, operation, message string, err error) error {
	detail := buildDetail(step, operation, message)
	if marker == nil {
		marker = ErrInternal
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Kind labels err with the broad failure category used in log attributes and
// structured output.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, ErrLookup):
		return "lookup"
	case errors.Is(err, ErrScan):
		return "scan"
	case errors.Is(err, ErrAnalysis):
		return "analysis"
	default:
		return "internal"
	}
}

func buildDetail(step, operation, message string) string {
	parts := make([]string, 0, 3)
	if step = strings.TrimSpace(step); step != "" {
		parts = append(parts, step)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "resolution failure"
	}
	return strings.Join(parts, ": ")
}

type userMessageError struct {
	msg string
	err error
}

func (e *userMessageError) Error() string { return e.err.Error() }

func (e *userMessageError) Unwrap() error { return e.err }

// WithUserMessage attaches a presentation-ready message to err. The message
// survives additional wrapping and is recovered with UserMessage.
func WithUserMessage(err error, msg string) error {
	msg = strings.TrimSpace(msg)
	if err == nil || msg == "" {
		return err
	}
	return &userMessageError{msg: msg, err: err}
}

// UserMessage returns the presentation-ready message attached to err, falling
// back to the error text when none was attached.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var ume *userMessageError
	if errors.As(err, &ume) {
		return ume.msg
	}
	return err.Error()
}
