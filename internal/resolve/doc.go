// Package resolve implements the BPM resolution pipeline.
//
// A Request names a song by free-text name, explicit file path, or directory
// to search. Resolve validates the request, picks the matching branch, and
// walks the fixed fallback order: remote lookup, then directory scan, then
// local beat tracking. The pipeline itself never fails; every outcome is a
// Result carrying either a resolved tempo or the last step's diagnostic,
// plus the full trail of attempted steps.
//
// Collaborators are consumed through the Searcher, Matcher, and Analyzer
// interfaces so presentation layers and tests can swap implementations. A
// Sink receives progress events as steps start, fail, and finish.
//
// Key types:
//   - Request: the identifying inputs for one resolution
//   - Result: the single best-effort answer with its diagnostic trail
//   - Pipeline: the orchestrator built from Deps
//
// Primary entry point:
//   - Pipeline.Resolve: runs one request to completion
package resolve
