package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/AbdulAahad2/DeadasDiscoBPM/internal/id3"
	"github.com/AbdulAahad2/DeadasDiscoBPM/internal/resolve"
)

// consoleSink narrates pipeline progress on stdout. Only steps that carry a
// presentation-ready detail print anything, which keeps the happy path quiet.
type consoleSink struct {
	out io.Writer
}

func (s consoleSink) StepStarted(step, detail string) {
	if detail == "" {
		return
	}
	fmt.Fprintln(s.out, detail)
}

func (s consoleSink) StepFailed(step, message string) {}

func (s consoleSink) Resolved(result resolve.Result) {}

func runResolve(cmd *cobra.Command, ctx *commandContext, req resolve.Request, jsonOut, writeTag bool) error {
	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}

	var sink resolve.Sink = resolve.NopSink{}
	if !jsonOut {
		sink = consoleSink{out: cmd.OutOrStdout()}
	}

	pipeline, err := ctx.buildPipeline(logger, sink)
	if err != nil {
		return err
	}
	result := pipeline.Resolve(cmd.Context(), req)

	var tagLine string
	var tagErr error
	if writeTag {
		tagLine, tagErr = applyTag(result)
	}

	if jsonOut {
		if err := writeJSON(cmd, newResolutionPayload(result)); err != nil {
			return err
		}
		if tagLine != "" {
			fmt.Fprintln(cmd.ErrOrStderr(), tagLine)
		}
		return tagErr
	}

	out := cmd.OutOrStdout()
	if result.Resolved() {
		fmt.Fprintf(out, "Use this BPM value in Dead as Disco: %s\n", resolve.FormatBPM(*result.BPM))
		fmt.Fprintln(out, result.Message)
	} else {
		fmt.Fprintln(out, "Failed to find BPM. Try a different song name, directory, or local file.")
		fmt.Fprintln(out, result.Message)
		if len(result.Attempts) > 0 {
			fmt.Fprintln(out, renderAttemptsTable(result.Attempts))
		}
	}
	if tagLine != "" {
		fmt.Fprintln(out, tagLine)
	}
	return tagErr
}

// applyTag persists the resolved tempo into the analyzed file's TBPM frame.
// It only applies when the tempo came from a local file; remote results have
// no file to tag.
func applyTag(result resolve.Result) (string, error) {
	if !result.Resolved() {
		return "", errors.New("write tag: resolution did not produce a tempo")
	}
	if result.SourcePath == "" {
		return "", errors.New("write tag: tempo did not come from a local file")
	}
	if err := id3.WriteBPM(result.SourcePath, *result.BPM); err != nil {
		return "", fmt.Errorf("write tag: %w", err)
	}
	return fmt.Sprintf("Wrote TBPM tag to %s", result.SourcePath), nil
}

func renderAttemptsTable(attempts []resolve.Attempt) string {
	rows := make([][]string, 0, len(attempts))
	for _, attempt := range attempts {
		outcome := "failed"
		if attempt.Succeeded {
			outcome = "ok"
		}
		rows = append(rows, []string{stepDisplayName(attempt.Step), outcome, attempt.Detail})
	}
	return renderTable([]string{"Step", "Outcome", "Detail"}, rows)
}

func stepDisplayName(step string) string {
	switch step {
	case resolve.StepRemoteLookup:
		return "Spotify lookup"
	case resolve.StepFileScan:
		return "Directory scan"
	case resolve.StepLocalAnalysis:
		return "Local analysis"
	default:
		return step
	}
}

type resolutionPayload struct {
	BPM        *float64         `json:"bpm"`
	Source     string           `json:"source"`
	Resolved   bool             `json:"resolved"`
	Message    string           `json:"message"`
	SourcePath string           `json:"source_path,omitempty"`
	Reason     string           `json:"reason,omitempty"`
	Attempts   []attemptPayload `json:"attempts,omitempty"`
}

type attemptPayload struct {
	Step      string `json:"step"`
	Succeeded bool   `json:"succeeded"`
	Detail    string `json:"detail,omitempty"`
}

func newResolutionPayload(result resolve.Result) resolutionPayload {
	payload := resolutionPayload{
		BPM:        result.BPM,
		Source:     string(result.Source),
		Resolved:   result.Resolved(),
		Message:    result.Message,
		SourcePath: result.SourcePath,
		Reason:     result.Reason,
	}
	for _, attempt := range result.Attempts {
		payload.Attempts = append(payload.Attempts, attemptPayload{
			Step:      attempt.Step,
			Succeeded: attempt.Succeeded,
			Detail:    attempt.Detail,
		})
	}
	return payload
}
