// Package audio decodes song files into normalized PCM suitable for tempo
// analysis.
//
// WAV files are decoded in process. MP3 files are piped through ffmpeg as
// raw s16le at the stream's native sample rate, with ffprobe supplying the
// stream metadata first. Every decode path downmixes to mono float64 samples
// in [-1, 1].
//
// Key types:
//   - Buffer: decoded mono samples plus their sample rate
//   - Decoder: dispatches to the right decode path per file extension
//   - Info: primary audio stream metadata reported by ffprobe
//
// Primary entry points:
//   - Decoder.Decode: decodes a supported audio file into a Buffer
//   - SupportedFormat: reports whether a path carries an accepted extension
package audio
