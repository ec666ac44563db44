package beattrack

import (
	"math"
	"strings"
	"testing"
)

// clickTrack synthesizes short 1 kHz bursts spaced for the requested tempo.
func clickTrack(sampleRate int, bpm float64, seconds float64) []float64 {
	samples := make([]float64, int(float64(sampleRate)*seconds))
	period := int(float64(sampleRate) * 60 / bpm)
	const clickLen = 256
	for start := 0; start < len(samples); start += period {
		for i := 0; i < clickLen && start+i < len(samples); i++ {
			decay := 1 - float64(i)/clickLen
			phase := 2 * math.Pi * 1000 * float64(i) / float64(sampleRate)
			samples[start+i] = 0.9 * decay * math.Sin(phase)
		}
	}
	return samples
}

func TestEstimateClickTrack(t *testing.T) {
	samples := clickTrack(22050, 120, 8)
	candidates, err := Estimate(samples, 22050, Options{})
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	if math.Abs(candidates[0]-120) > 3 {
		t.Fatalf("expected ~120 BPM, got %.2f (all: %v)", candidates[0], candidates)
	}
}

func TestEstimateSlowClickTrack(t *testing.T) {
	samples := clickTrack(22050, 80, 10)
	candidates, err := Estimate(samples, 22050, Options{})
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	if math.Abs(candidates[0]-80) > 3 {
		t.Fatalf("expected ~80 BPM, got %.2f (all: %v)", candidates[0], candidates)
	}
}

func TestEstimateBoundsCandidates(t *testing.T) {
	samples := clickTrack(22050, 120, 8)
	candidates, err := Estimate(samples, 22050, Options{MinTempo: 100, MaxTempo: 140})
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	if math.Abs(candidates[0]-120) > 3 {
		t.Fatalf("expected ~120 BPM, got %.2f", candidates[0])
	}
	for _, bpm := range candidates {
		if bpm < 100 || bpm > 140 {
			t.Errorf("candidate %.2f outside configured range", bpm)
		}
	}
}

func TestEstimateInputValidation(t *testing.T) {
	cases := []struct {
		name       string
		samples    []float64
		sampleRate int
		opts       Options
		want       string
	}{
		{
			name:       "inverted tempo range",
			samples:    make([]float64, 22050),
			sampleRate: 22050,
			opts:       Options{MinTempo: 200, MaxTempo: 100},
			want:       "tempo range",
		},
		{
			name:       "zero sample rate",
			samples:    make([]float64, 22050),
			sampleRate: 0,
			want:       "sample rate",
		},
		{
			name:       "too short",
			samples:    make([]float64, 512),
			sampleRate: 22050,
			want:       "too short",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Estimate(tc.samples, tc.sampleRate, tc.opts)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestEstimateSilenceHasNoCandidates(t *testing.T) {
	_, err := Estimate(make([]float64, 22050*5), 22050, Options{})
	if err == nil {
		t.Fatal("expected error for silent input")
	}
	if !strings.Contains(err.Error(), "no beat candidates") {
		t.Fatalf("unexpected error: %v", err)
	}
}
