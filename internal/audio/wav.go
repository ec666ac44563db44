package audio

import (
	"fmt"
	"os"

	"github.com/go-audio/wav"
)

func decodeWAV(path string) (Buffer, error) {
	file, err := os.Open(path)
	if err != nil {
		return Buffer{}, fmt.Errorf("open wav: %w", err)
	}
	defer file.Close()

	decoder := wav.NewDecoder(file)
	if !decoder.IsValidFile() {
		return Buffer{}, fmt.Errorf("not a valid wav file: %s", path)
	}

	pcm, err := decoder.FullPCMBuffer()
	if err != nil {
		return Buffer{}, fmt.Errorf("read wav samples: %w", err)
	}
	if pcm == nil || len(pcm.Data) == 0 {
		return Buffer{}, fmt.Errorf("no audio samples in %s", path)
	}

	channels := 1
	sampleRate := int(decoder.SampleRate)
	if pcm.Format != nil {
		if pcm.Format.NumChannels > 0 {
			channels = pcm.Format.NumChannels
		}
		if pcm.Format.SampleRate > 0 {
			sampleRate = pcm.Format.SampleRate
		}
	}
	if sampleRate <= 0 {
		return Buffer{}, fmt.Errorf("wav reports no sample rate: %s", path)
	}

	bitDepth := pcm.SourceBitDepth
	if bitDepth <= 0 {
		bitDepth = int(decoder.BitDepth)
	}
	if bitDepth <= 0 {
		bitDepth = 16
	}

	scale := float64(int64(1) << uint(bitDepth-1))
	return Buffer{Samples: downmix(pcm.Data, channels, scale), SampleRate: sampleRate}, nil
}

// downmix averages interleaved channels into mono and normalizes by scale.
func downmix(data []int, channels int, scale float64) []float64 {
	if channels < 1 {
		channels = 1
	}
	frames := len(data) / channels
	samples := make([]float64, 0, frames)
	for frame := 0; frame < frames; frame++ {
		sum := 0.0
		for ch := 0; ch < channels; ch++ {
			sum += float64(data[frame*channels+ch])
		}
		samples = append(samples, sum/float64(channels)/scale)
	}
	return samples
}
