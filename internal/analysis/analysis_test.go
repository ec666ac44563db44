package analysis

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AbdulAahad2/DeadasDiscoBPM/internal/services"
	"github.com/AbdulAahad2/DeadasDiscoBPM/internal/testsupport"
)

func TestAnalyzeClickTrack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "click.wav")
	testsupport.WriteClickWAV(t, path, 120, 8, 22050)

	analyzer := NewAnalyzer(testsupport.NewConfig(t), nil)
	bpm, err := analyzer.Analyze(context.Background(), path)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if math.Abs(bpm-120) > 3 {
		t.Fatalf("expected ~120 BPM, got %.2f", bpm)
	}
}

func TestAnalyzeMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.wav")

	analyzer := NewAnalyzer(testsupport.NewConfig(t), nil)
	_, err := analyzer.Analyze(context.Background(), missing)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, services.ErrFileNotFound) {
		t.Fatalf("expected file-not-found error, got %v", err)
	}
	want := "Audio file " + missing + " not found."
	if got := services.UserMessage(err); got != want {
		t.Fatalf("user message = %q, want %q", got, want)
	}
}

func TestAnalyzeUndecodableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noise.wav")
	if err := os.WriteFile(path, []byte("not riff data"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	analyzer := NewAnalyzer(testsupport.NewConfig(t), nil)
	_, err := analyzer.Analyze(context.Background(), path)
	if err == nil {
		t.Fatal("expected error for undecodable file")
	}
	if !errors.Is(err, services.ErrAnalysis) {
		t.Fatalf("expected analysis error, got %v", err)
	}
	if errors.Is(err, services.ErrFileNotFound) {
		t.Fatalf("decode failure misclassified as missing file: %v", err)
	}
	if got := services.UserMessage(err); !strings.HasPrefix(got, "Error processing audio file: ") {
		t.Fatalf("unexpected user message: %q", got)
	}
}

func TestAnalyzeSilenceFailsBeatTracking(t *testing.T) {
	path := filepath.Join(t.TempDir(), "silence.wav")
	testsupport.WriteSilenceWAV(t, path, 5, 22050)

	analyzer := NewAnalyzer(testsupport.NewConfig(t), nil)
	_, err := analyzer.Analyze(context.Background(), path)
	if err == nil {
		t.Fatal("expected error for silent input")
	}
	if !errors.Is(err, services.ErrAnalysis) {
		t.Fatalf("expected analysis error, got %v", err)
	}
	got := services.UserMessage(err)
	if !strings.HasPrefix(got, "Error processing audio file: ") || !strings.Contains(got, "no beat candidates") {
		t.Fatalf("unexpected user message: %q", got)
	}
}
