// Package analysis derives a tempo from an audio file on disk.
//
// Analyze stats the file, decodes it through internal/audio, and hands the
// PCM to the beat tracker. The strongest candidate is returned unrounded;
// presentation layers decide display precision. A missing file is a distinct
// failure from a decode or tracking failure so callers can phrase the two
// differently.
package analysis
