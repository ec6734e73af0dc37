// Package config loads, normalizes, and validates navicull configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// NAVIDROME_USER and NAVIDROME_PASSWORD. Credentials may also come from a
// dotenv file, loaded before the environment is consulted.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, a trimmed server URL, and clear validation errors.
package config
