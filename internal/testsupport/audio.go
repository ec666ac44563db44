package testsupport

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WriteWAV writes 16-bit PCM samples to path, creating parent directories as
// needed.
func WriteWAV(t testing.TB, path string, data []int, channels, sampleRate int) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer file.Close()

	encoder := wav.NewEncoder(file, sampleRate, 16, channels, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := encoder.Write(buf); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	if err := encoder.Close(); err != nil {
		t.Fatalf("close %s: %v", path, err)
	}
}

// WriteClickWAV writes a mono click track at the requested tempo, suitable
// for exercising the beat tracker end to end.
func WriteClickWAV(t testing.TB, path string, bpm float64, seconds float64, sampleRate int) {
	t.Helper()

	data := make([]int, int(float64(sampleRate)*seconds))
	period := int(float64(sampleRate) * 60 / bpm)
	const clickLen = 256
	for start := 0; start < len(data); start += period {
		for i := 0; i < clickLen && start+i < len(data); i++ {
			decay := 1 - float64(i)/clickLen
			phase := 2 * math.Pi * 1000 * float64(i) / float64(sampleRate)
			data[start+i] = int(28000 * decay * math.Sin(phase))
		}
	}
	WriteWAV(t, path, data, 1, sampleRate)
}

// WriteSilenceWAV writes a mono silent file, which decodes cleanly but
// carries no beats.
func WriteSilenceWAV(t testing.TB, path string, seconds float64, sampleRate int) {
	t.Helper()
	WriteWAV(t, path, make([]int, int(float64(sampleRate)*seconds)), 1, sampleRate)
}
