// Package notifications sends ntfy push messages when a prune run finishes
// or fails.
//
// NewService returns a no-op implementation when no topic is configured, so
// callers can notify unconditionally.
package notifications
