// Package config loads, normalizes, and validates resolver configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment overrides such as
// SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET. The Config type centralizes
// every knob the CLI and GUI need: remote credentials, decoder binaries,
// analysis budgets, and log routing.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
