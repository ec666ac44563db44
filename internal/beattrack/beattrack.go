package beattrack

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	"github.com/mjibson/go-dsp/fft"
)

const (
	windowSize = 1024
	hopSize    = 256

	// The log-normal prior pulls ambiguous octave choices toward common
	// song tempos instead of their half or double.
	priorCenter = 120.0
	priorWidth  = 1.0
)

// Options bounds the tempo search range in beats per minute. Zero values
// fall back to 30..240.
type Options struct {
	MinTempo float64
	MaxTempo float64
}

func (o Options) normalized() (minTempo, maxTempo float64, err error) {
	minTempo = o.MinTempo
	if minTempo <= 0 {
		minTempo = 30
	}
	maxTempo = o.MaxTempo
	if maxTempo <= 0 {
		maxTempo = 240
	}
	if maxTempo <= minTempo {
		return 0, 0, fmt.Errorf("invalid tempo range %.0f..%.0f", minTempo, maxTempo)
	}
	return minTempo, maxTempo, nil
}

// Estimate returns tempo candidates in beats per minute, strongest first.
// It fails when the input is too short for the analysis window, when the
// configured range leaves no usable lags, or when the signal carries no
// periodic onsets at all.
func Estimate(samples []float64, sampleRate int, opts Options) ([]float64, error) {
	minTempo, maxTempo, err := opts.normalized()
	if err != nil {
		return nil, err
	}
	if sampleRate <= 0 {
		return nil, errors.New("sample rate must be positive")
	}
	if len(samples) < windowSize+hopSize {
		return nil, errors.New("audio too short for beat tracking")
	}

	envelope := center(smooth(onsetEnvelope(samples)))
	frameRate := float64(sampleRate) / hopSize

	minLag := int(math.Ceil(60 * frameRate / maxTempo))
	if minLag < 1 {
		minLag = 1
	}
	maxLag := int(math.Floor(60 * frameRate / minTempo))
	if limit := len(envelope) / 2; maxLag > limit {
		maxLag = limit
	}
	if minLag >= maxLag {
		return nil, errors.New("audio too short for the configured tempo range")
	}

	// One extra slot on each side so boundary lags can still win a peak
	// comparison against the zero sentinel.
	scores := make([]float64, maxLag+2)
	for lag := minLag; lag <= maxLag; lag++ {
		bpm := 60 * frameRate / float64(lag)
		scores[lag] = autocorrelate(envelope, lag) * tempoPrior(bpm)
	}

	candidates := pickPeaks(scores, minLag, maxLag, frameRate)
	if len(candidates) == 0 {
		return nil, errors.New("no beat candidates detected")
	}
	return candidates, nil
}

// onsetEnvelope computes spectral flux per STFT frame: the sum of positive
// magnitude increases against the previous frame.
func onsetEnvelope(samples []float64) []float64 {
	window := hamming(windowSize)
	envelope := make([]float64, 0, len(samples)/hopSize)
	frame := make([]float64, windowSize)
	var prev []float64
	for start := 0; start+windowSize <= len(samples); start += hopSize {
		copy(frame, samples[start:start+windowSize])
		for i := range frame {
			frame[i] *= window[i]
		}
		magnitudes := magnitudeSpectrum(fft.FFTReal(frame))
		flux := 0.0
		if prev != nil {
			for i, m := range magnitudes {
				if rise := m - prev[i]; rise > 0 {
					flux += rise
				}
			}
		}
		envelope = append(envelope, flux)
		prev = magnitudes
	}
	return envelope
}

func hamming(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.54 - 0.46*math.Cos(2*math.Pi*float64(i)/float64(n-1))
	}
	return w
}

// magnitudeSpectrum keeps the positive-frequency half of the spectrum.
func magnitudeSpectrum(spectrum []complex128) []float64 {
	half := len(spectrum) / 2
	magnitudes := make([]float64, half)
	for i := range magnitudes {
		magnitudes[i] = cmplx.Abs(spectrum[i])
	}
	return magnitudes
}

// smooth applies a 3-point moving average so onset spikes span adjacent
// frames and near-integer lags still line up.
func smooth(envelope []float64) []float64 {
	if len(envelope) < 3 {
		return envelope
	}
	out := make([]float64, len(envelope))
	out[0] = envelope[0]
	out[len(envelope)-1] = envelope[len(envelope)-1]
	for i := 1; i < len(envelope)-1; i++ {
		out[i] = (envelope[i-1] + envelope[i] + envelope[i+1]) / 3
	}
	return out
}

// center removes the mean so the autocorrelation measures periodicity
// rather than the envelope's DC pedestal.
func center(envelope []float64) []float64 {
	if len(envelope) == 0 {
		return envelope
	}
	mean := 0.0
	for _, v := range envelope {
		mean += v
	}
	mean /= float64(len(envelope))
	out := make([]float64, len(envelope))
	for i, v := range envelope {
		out[i] = v - mean
	}
	return out
}

// autocorrelate normalizes by the overlap count so long lags are not
// penalized for having fewer product terms.
func autocorrelate(envelope []float64, lag int) float64 {
	n := len(envelope) - lag
	if n <= 0 {
		return 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += envelope[i] * envelope[i+lag]
	}
	return sum / float64(n)
}

// tempoPrior weights a candidate tempo by its distance from priorCenter in
// log2 space.
func tempoPrior(bpm float64) float64 {
	delta := math.Log2(bpm/priorCenter) / priorWidth
	return math.Exp(-0.5 * delta * delta)
}

// pickPeaks converts local maxima of the weighted autocorrelation into
// tempos, strongest first. Equal scores keep ascending lag order.
func pickPeaks(scores []float64, minLag, maxLag int, frameRate float64) []float64 {
	type peak struct {
		lag   int
		score float64
	}
	peaks := make([]peak, 0, 8)
	for lag := minLag; lag <= maxLag; lag++ {
		score := scores[lag]
		if score <= 0 {
			continue
		}
		if score >= scores[lag-1] && score > scores[lag+1] {
			peaks = append(peaks, peak{lag: lag, score: score})
		}
	}
	sort.SliceStable(peaks, func(i, j int) bool {
		return peaks[i].score > peaks[j].score
	})

	candidates := make([]float64, 0, len(peaks))
	for _, p := range peaks {
		candidates = append(candidates, 60*frameRate/float64(p.lag))
	}
	return candidates
}
