// Package services defines shared utilities consumed by the resolution
// pipeline steps and external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp request correlation identifiers and step
//     names for logging and tracing.
//   - Structured error markers plus the Wrap helper that classify failures
//     consistently across the lookup, scan, and analysis steps.
//   - User-facing message attachment so presentation layers can render a
//     clean diagnostic without parsing wrapped error chains.
//
// Use these helpers when wiring new step logic so operational behaviour
// (error handling, observability) stays uniform across the pipeline.
package services
