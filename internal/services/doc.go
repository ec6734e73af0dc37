// Package services defines shared utilities consumed by the server clients
// and the prune pipeline.
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers and album IDs for logging.
//   - Structured error markers plus the Wrap helper so callers can tell
//     transport failures from authentication or configuration problems.
//
// The concrete server clients live in the subsonic and navidrome
// subpackages.
package services
