// Package beattrack estimates song tempo from decoded PCM.
//
// The estimator computes a short-time Fourier transform over Hamming-windowed
// frames, reduces it to a spectral flux onset envelope, and autocorrelates
// that envelope across the configured tempo range. Candidate tempos are the
// local maxima of the autocorrelation after weighting by a log-normal prior
// centered at 120 BPM, strongest first.
//
// Primary entry point:
//   - Estimate: returns candidate tempos in beats per minute
package beattrack
