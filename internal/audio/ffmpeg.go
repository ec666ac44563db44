package audio

import (
	"context"
	"encoding/binary"
	"fmt"
	"os/exec"
	"strings"
)

// decodeMP3 pipes the file through ffmpeg as mono little-endian s16 PCM at
// the stream's native sample rate. The rate comes from a preceding ffprobe
// call so the samples line up with real time.
func (d Decoder) decodeMP3(ctx context.Context, path string) (Buffer, error) {
	info, err := d.Probe(ctx, path)
	if err != nil {
		return Buffer{}, err
	}
	if info.SampleRate <= 0 {
		return Buffer{}, fmt.Errorf("ffprobe reported no sample rate for %s", path)
	}

	binaryName := strings.TrimSpace(d.FFmpegBinary)
	if binaryName == "" {
		binaryName = "ffmpeg"
	}

	cmd := exec.CommandContext(ctx, binaryName,
		"-i", path,
		"-f", "s16le",
		"-acodec", "pcm_s16le",
		"-ac", "1",
		"-loglevel", "error",
		"pipe:1",
	)
	out, err := cmd.Output()
	if err != nil {
		return Buffer{}, fmt.Errorf("ffmpeg decode %s: %w", path, err)
	}

	// Trim a trailing odd byte so the int16 conversion stays aligned.
	if len(out)%2 != 0 {
		out = out[:len(out)-1]
	}
	if len(out) == 0 {
		return Buffer{}, fmt.Errorf("no audio samples in %s", path)
	}

	samples := make([]float64, len(out)/2)
	for i := range samples {
		samples[i] = float64(int16(binary.LittleEndian.Uint16(out[i*2:i*2+2]))) / 32768
	}
	return Buffer{Samples: samples, SampleRate: info.SampleRate}, nil
}
