// Package navidrome talks to Navidrome's native JSON API: a one-time login
// that yields a bearer token, and song lookups used to find where an album
// lives on disk.
package navidrome
