package audio

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// supportedExtensions is the fixed set of formats the resolver accepts.
var supportedExtensions = []string{".mp3", ".wav"}

// SupportedExtensions returns the accepted audio file extensions, lowercase
// and dot-prefixed.
func SupportedExtensions() []string {
	return append([]string(nil), supportedExtensions...)
}

// SupportedFormat reports whether the path carries an accepted audio
// extension. The check is case-insensitive, so Track.MP3 and track.mp3 are
// equally acceptable.
func SupportedFormat(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, candidate := range supportedExtensions {
		if ext == candidate {
			return true
		}
	}
	return false
}

// Buffer holds decoded mono PCM with samples normalized to [-1, 1].
type Buffer struct {
	Samples    []float64
	SampleRate int
}

// Duration returns the buffer length as wall-clock time.
func (b Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}
	seconds := float64(len(b.Samples)) / float64(b.SampleRate)
	return time.Duration(seconds * float64(time.Second))
}

// Decoder decodes supported audio files into Buffers. WAV files decode in
// process; MP3 files shell out to the configured ffmpeg and ffprobe
// binaries, falling back to the bare command names when unset.
type Decoder struct {
	FFmpegBinary  string
	FFprobeBinary string
}

// Decode reads the file at path and returns its mono PCM representation.
func (d Decoder) Decode(ctx context.Context, path string) (Buffer, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return decodeWAV(path)
	case ".mp3":
		return d.decodeMP3(ctx, path)
	default:
		return Buffer{}, fmt.Errorf("unsupported audio format %q", filepath.Ext(path))
	}
}
