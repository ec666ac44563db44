package audio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Info describes the primary audio stream of a media file as reported by
// ffprobe. Duration is in seconds, 0 when unavailable.
type Info struct {
	Codec      string
	SampleRate int
	Channels   int
	Duration   float64
}

type probeResult struct {
	Streams []probeStream `json:"streams"`
	Format  probeFormat   `json:"format"`
}

type probeStream struct {
	CodecName  string `json:"codec_name"`
	CodecType  string `json:"codec_type"`
	SampleRate string `json:"sample_rate"`
	Channels   int    `json:"channels"`
	Duration   string `json:"duration"`
}

type probeFormat struct {
	Duration string `json:"duration"`
}

// Probe executes ffprobe against the provided path and returns metadata for
// the first audio stream.
func (d Decoder) Probe(ctx context.Context, path string) (Info, error) {
	binaryName := strings.TrimSpace(d.FFprobeBinary)
	if binaryName == "" {
		binaryName = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Info{}, errors.New("ffprobe inspect: empty path")
	}

	cmd := exec.CommandContext(ctx, binaryName, "-v", "error", "-hide_banner", "-show_format", "-show_streams", "-of", "json", "--", path)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return Info{}, fmt.Errorf("ffprobe inspect: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return parseProbe(output)
}

func parseProbe(output []byte) (Info, error) {
	var result probeResult
	if err := json.Unmarshal(output, &result); err != nil {
		return Info{}, fmt.Errorf("ffprobe parse: %w", err)
	}
	stream, ok := result.audioStream()
	if !ok {
		return Info{}, errors.New("ffprobe inspect: no audio stream")
	}

	info := Info{
		Codec:    stream.CodecName,
		Channels: stream.Channels,
	}
	if rate, err := strconv.Atoi(strings.TrimSpace(stream.SampleRate)); err == nil && rate > 0 {
		info.SampleRate = rate
	}
	info.Duration = parseSeconds(stream.Duration)
	if info.Duration == 0 {
		info.Duration = parseSeconds(result.Format.Duration)
	}
	return info, nil
}

func (r probeResult) audioStream() (probeStream, bool) {
	for _, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, "audio") {
			return stream, true
		}
	}
	return probeStream{}, false
}

func parseSeconds(value string) float64 {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || parsed < 0 {
		return 0
	}
	return parsed
}
