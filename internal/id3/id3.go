// Package id3 writes resolved tempos back into mp3 metadata.
package id3

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	id3v2 "github.com/bogem/id3v2/v2"
)

// WriteBPM stores bpm in the file's TBPM frame, replacing any existing value.
// Only mp3 files carry ID3 tags; other extensions are rejected.
func WriteBPM(path string, bpm float64) error {
	if !strings.EqualFold(filepath.Ext(path), ".mp3") {
		return fmt.Errorf("id3: %s is not an mp3 file", path)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("id3: open %s: %w", path, err)
	}
	defer tag.Close()

	tag.AddTextFrame(tag.CommonID("BPM"), tag.DefaultEncoding(), formatTBPM(bpm))
	if err := tag.Save(); err != nil {
		return fmt.Errorf("id3: save %s: %w", path, err)
	}
	return nil
}

// ReadBPM reports the TBPM frame value, empty when the frame is absent.
func ReadBPM(path string) (string, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return "", fmt.Errorf("id3: open %s: %w", path, err)
	}
	defer tag.Close()

	return strings.TrimSpace(tag.GetTextFrame(tag.CommonID("BPM")).Text), nil
}

// formatTBPM renders bpm as the integer string the TBPM frame expects.
func formatTBPM(bpm float64) string {
	return strconv.Itoa(int(math.Round(bpm)))
}
