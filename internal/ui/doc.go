// Package ui implements the desktop window for interactive BPM resolution.
//
// The window mirrors the resolver's fallback chain: a song name drives the
// remote lookup, an optional directory feeds the scan, and a file selection
// skips straight to local analysis. Pipeline progress arrives through the
// resolve.Sink interface and is marshaled onto the Fyne rendering thread.
//
// Key types:
//   - RootUI: window content, event handlers, and the pipeline's event sink
//   - InstanceLock: single-instance guard for the GUI
//
// Primary entry point: New, followed by SetResolver once the pipeline exists.
package ui
