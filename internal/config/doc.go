// Package config loads, normalizes, and validates curator configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// CURATOR_MODEL_API_KEY. Category rules are normalized (lowercased, deduped,
// dot-prefixed) and checked for empty or overlapping extension sets at load
// time, so the classifier never has to handle malformed rules per file.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, deterministic rule ordering, and clear validation errors.
package config
