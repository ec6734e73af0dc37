package services

import "context"

type contextKey string

const (
	runIDKey   contextKey = "run_id"
	albumIDKey contextKey = "album_id"
)

// WithRunID annotates context with the journal run identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithAlbumID annotates context with the album currently being processed.
func WithAlbumID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, albumIDKey, id)
}

// AlbumIDFromContext returns the album identifier if present.
func AlbumIDFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(albumIDKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}
