package id3

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// mp3 frame sync followed by filler; enough for the tag writer, which never
// inspects the audio itself.
var audioPayload = append([]byte{0xFF, 0xFB, 0x90, 0x00}, bytes.Repeat([]byte{0x55}, 64)...)

func writeFixture(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, audioPayload, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestWriteBPMRoundTrip(t *testing.T) {
	path := writeFixture(t, "track.mp3")

	if err := WriteBPM(path, 117.456); err != nil {
		t.Fatalf("WriteBPM() error: %v", err)
	}

	got, err := ReadBPM(path)
	if err != nil {
		t.Fatalf("ReadBPM() error: %v", err)
	}
	if got != "117" {
		t.Errorf("ReadBPM() = %q, want %q", got, "117")
	}
}

func TestWriteBPMPreservesAudio(t *testing.T) {
	path := writeFixture(t, "track.mp3")

	if err := WriteBPM(path, 120); err != nil {
		t.Fatalf("WriteBPM() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read tagged file: %v", err)
	}
	if !bytes.HasSuffix(data, audioPayload) {
		t.Error("audio payload missing after tag write")
	}
	if len(data) <= len(audioPayload) {
		t.Error("no tag prepended to file")
	}
}

func TestWriteBPMReplacesExistingFrame(t *testing.T) {
	path := writeFixture(t, "track.mp3")

	if err := WriteBPM(path, 90); err != nil {
		t.Fatalf("WriteBPM() error: %v", err)
	}
	if err := WriteBPM(path, 128.4); err != nil {
		t.Fatalf("WriteBPM() rewrite error: %v", err)
	}

	got, err := ReadBPM(path)
	if err != nil {
		t.Fatalf("ReadBPM() error: %v", err)
	}
	if got != "128" {
		t.Errorf("ReadBPM() = %q, want %q", got, "128")
	}
}

func TestWriteBPMRejectsNonMP3(t *testing.T) {
	err := WriteBPM(filepath.Join(t.TempDir(), "track.wav"), 120)
	if err == nil {
		t.Fatal("WriteBPM() accepted wav input")
	}
	if !strings.Contains(err.Error(), "not an mp3") {
		t.Errorf("error = %v, want mp3 rejection", err)
	}
}

func TestWriteBPMMissingFile(t *testing.T) {
	if err := WriteBPM(filepath.Join(t.TempDir(), "absent.mp3"), 120); err == nil {
		t.Fatal("WriteBPM() accepted a missing file")
	}
}

func TestReadBPMAbsentFrame(t *testing.T) {
	path := writeFixture(t, "untagged.mp3")

	got, err := ReadBPM(path)
	if err != nil {
		t.Fatalf("ReadBPM() error: %v", err)
	}
	if got != "" {
		t.Errorf("ReadBPM() = %q, want empty", got)
	}
}
