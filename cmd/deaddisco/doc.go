// Package main hosts the deaddisco CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into BPM
// resolution runs, dependency checks, and configuration scaffolding, and
// launches the graphical resolver when no resolution flags are given. It
// centralizes configuration resolution and structured logging setup so
// subcommands can focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
// That separation keeps the CLI declarative while the heavy lifting lives in
// the resolution pipeline.
package main
