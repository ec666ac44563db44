package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AbdulAahad2/DeadasDiscoBPM/internal/testsupport"
)

// writeCLIConfig drops a config file with an isolated log directory and no
// Spotify credentials, so tests never reach the network.
func writeCLIConfig(t *testing.T) string {
	t.Helper()

	base := t.TempDir()
	content := fmt.Sprintf("[logging]\ndir = %q\n", filepath.Join(base, "logs"))
	path := filepath.Join(base, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	// Empty values make the credential overlay skip any real environment.
	t.Setenv("SPOTIFY_CLIENT_ID", "")
	t.Setenv("SPOTIFY_CLIENT_SECRET", "")
	return path
}

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()

	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	flags := []string{}
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCLIResolveLocalFile(t *testing.T) {
	configPath := writeCLIConfig(t)
	wavPath := filepath.Join(t.TempDir(), "click.wav")
	testsupport.WriteClickWAV(t, wavPath, 120, 8, 22050)

	out, _, err := runCLI(t, configPath, "--filename", wavPath)
	if err != nil {
		t.Fatalf("resolve local file: %v", err)
	}
	if !strings.Contains(out, "Use this BPM value in Dead as Disco: ") {
		t.Fatalf("missing headline in output: %q", out)
	}
	if !strings.Contains(out, "Local analysis BPM for '"+wavPath+"': ") {
		t.Fatalf("missing analysis message in output: %q", out)
	}
}

func TestCLIResolveLocalFileJSON(t *testing.T) {
	configPath := writeCLIConfig(t)
	wavPath := filepath.Join(t.TempDir(), "click.wav")
	testsupport.WriteClickWAV(t, wavPath, 120, 8, 22050)

	out, _, err := runCLI(t, configPath, "--filename", wavPath, "--json")
	if err != nil {
		t.Fatalf("resolve local file json: %v", err)
	}

	var payload resolutionPayload
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode payload: %v\noutput: %q", err, out)
	}
	if !payload.Resolved || payload.Source != "local_file" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	if payload.BPM == nil || math.Abs(*payload.BPM-120) > 3 {
		t.Fatalf("expected ~120 BPM, got %+v", payload.BPM)
	}
	if payload.SourcePath != wavPath {
		t.Fatalf("source path = %q, want %q", payload.SourcePath, wavPath)
	}
	if len(payload.Attempts) != 1 || payload.Attempts[0].Step != "local_analysis" {
		t.Fatalf("unexpected attempts: %+v", payload.Attempts)
	}
}

func TestCLIResolveConflictingInputs(t *testing.T) {
	configPath := writeCLIConfig(t)

	out, _, err := runCLI(t, configPath, "--song", "Firefly", "--filename", "/music/firefly.mp3")
	if err != nil {
		t.Fatalf("conflicting inputs should not fail the command: %v", err)
	}
	if !strings.Contains(out, "Failed to find BPM. Try a different song name, directory, or local file.") {
		t.Fatalf("missing failure headline: %q", out)
	}
	if !strings.Contains(out, "Provide either a file path or a song name/directory, not both.") {
		t.Fatalf("missing validation message: %q", out)
	}
}

func TestCLIResolveEmptyRequestJSON(t *testing.T) {
	configPath := writeCLIConfig(t)

	out, _, err := runCLI(t, configPath, "--json")
	if err != nil {
		t.Fatalf("empty request json: %v", err)
	}

	var payload resolutionPayload
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode payload: %v\noutput: %q", err, out)
	}
	if payload.Resolved || payload.Source != "unresolved" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	if payload.Reason != "validation" {
		t.Fatalf("reason = %q, want validation", payload.Reason)
	}
	if payload.Message != "Enter a song name or select a file." {
		t.Fatalf("message = %q", payload.Message)
	}
}

func TestCLIResolveMissingCredentialsFallsBackToScan(t *testing.T) {
	configPath := writeCLIConfig(t)
	musicDir := t.TempDir()
	wavPath := filepath.Join(musicDir, "firefly.wav")
	testsupport.WriteClickWAV(t, wavPath, 120, 8, 22050)

	out, _, err := runCLI(t, configPath, "--song", "firefly", "--directory", musicDir)
	if err != nil {
		t.Fatalf("scan fallback: %v", err)
	}
	if !strings.Contains(out, "Spotify lookup failed, scanning directory: "+musicDir) {
		t.Fatalf("missing scan narration: %q", out)
	}
	if !strings.Contains(out, "Use this BPM value in Dead as Disco: ") {
		t.Fatalf("missing headline: %q", out)
	}
}

func TestCLIResolveExhaustedPrintsAttemptTrail(t *testing.T) {
	configPath := writeCLIConfig(t)
	musicDir := t.TempDir()

	out, _, err := runCLI(t, configPath, "--song", "Nothing Here", "--directory", musicDir)
	if err != nil {
		t.Fatalf("exhausted fallback should not fail the command: %v", err)
	}
	if !strings.Contains(out, "Failed to find BPM. Try a different song name, directory, or local file.") {
		t.Fatalf("missing failure headline: %q", out)
	}
	if !strings.Contains(out, "No matching audio file found for 'Nothing Here' in directory: "+musicDir) {
		t.Fatalf("missing scan message: %q", out)
	}
	for _, fragment := range []string{"Step", "Spotify lookup", "Directory scan", "failed"} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("attempt trail missing %q: %q", fragment, out)
		}
	}
}

func TestCLIWriteTagRejectsWav(t *testing.T) {
	configPath := writeCLIConfig(t)
	wavPath := filepath.Join(t.TempDir(), "click.wav")
	testsupport.WriteClickWAV(t, wavPath, 120, 8, 22050)

	out, _, err := runCLI(t, configPath, "--filename", wavPath, "--write-tag")
	if err == nil {
		t.Fatal("expected write-tag failure for wav input")
	}
	if !strings.Contains(err.Error(), "write tag:") {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Use this BPM value in Dead as Disco: ") {
		t.Fatalf("resolution output should still print: %q", out)
	}
}

func TestCLIConfigInitAndValidate(t *testing.T) {
	base := t.TempDir()
	target := filepath.Join(base, "config.toml")

	out, _, err := runCLI(t, "", "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, "Wrote sample configuration to "+target) {
		t.Fatalf("unexpected init output: %q", out)
	}

	if _, _, err := runCLI(t, "", "config", "init", "--path", target); err == nil {
		t.Fatal("expected error when config already exists")
	} else if !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("unexpected error: %v", err)
	}

	out, _, err = runCLI(t, target, "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	if !strings.Contains(out, "Config path: "+target) || !strings.Contains(out, "Configuration valid") {
		t.Fatalf("unexpected validate output: %q", out)
	}
}

func TestCLIConfigShowRedactsSecret(t *testing.T) {
	base := t.TempDir()
	content := "[spotify]\nclient_id = \"abc\"\nclient_secret = \"super-secret\"\n"
	path := filepath.Join(base, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("SPOTIFY_CLIENT_ID", "")
	t.Setenv("SPOTIFY_CLIENT_SECRET", "")

	out, _, err := runCLI(t, path, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if strings.Contains(out, "super-secret") {
		t.Fatalf("secret leaked into output: %q", out)
	}
	if !strings.Contains(out, `client_secret = "(redacted)"`) {
		t.Fatalf("missing redaction marker: %q", out)
	}
	if !strings.Contains(out, `client_id = "abc"`) {
		t.Fatalf("missing client id: %q", out)
	}
}

func TestCLIDoctor(t *testing.T) {
	configPath := writeCLIConfig(t)
	testsupport.StubBinaries(t, "ffmpeg", "ffprobe")

	out, _, err := runCLI(t, configPath, "doctor")
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if !strings.Contains(out, "FFmpeg") || !strings.Contains(out, "[OK]") {
		t.Fatalf("unexpected doctor output: %q", out)
	}
	if !strings.Contains(out, "Remote lookup stays disabled") {
		t.Fatalf("expected credentials warning: %q", out)
	}
}

func TestCLIDoctorMissingBinary(t *testing.T) {
	base := t.TempDir()
	content := fmt.Sprintf(
		"[analysis]\nffmpeg_binary = %q\n\n[logging]\ndir = %q\n",
		filepath.Join(base, "missing-ffmpeg"),
		filepath.Join(base, "logs"),
	)
	configPath := filepath.Join(base, "config.toml")
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("SPOTIFY_CLIENT_ID", "")
	t.Setenv("SPOTIFY_CLIENT_SECRET", "")

	_, _, err := runCLI(t, configPath, "doctor")
	if err == nil {
		t.Fatal("expected doctor to fail with missing ffmpeg")
	}
	if !strings.Contains(err.Error(), "missing required dependencies") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCLIDoctorJSON(t *testing.T) {
	configPath := writeCLIConfig(t)
	testsupport.StubBinaries(t, "ffmpeg", "ffprobe")

	out, _, err := runCLI(t, configPath, "doctor", "--json")
	if err != nil {
		t.Fatalf("doctor --json: %v", err)
	}

	var payload doctorPayload
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode payload: %v\noutput: %q", err, out)
	}
	if !payload.Healthy {
		t.Fatalf("expected healthy report: %+v", payload)
	}
	if len(payload.Binaries) != 2 {
		t.Fatalf("expected two binary checks, got %+v", payload.Binaries)
	}
	if payload.Credentials.Available {
		t.Fatalf("credentials should be unavailable: %+v", payload.Credentials)
	}
}
