package services

import (
	"context"
	"testing"
)

func TestRunIDRoundTrip(t *testing.T) {
	ctx := WithRunID(context.Background(), "run-1")
	if id, ok := RunIDFromContext(ctx); !ok || id != "run-1" {
		t.Fatalf("unexpected run id %q ok=%v", id, ok)
	}
	if WithRunID(context.Background(), "") != context.Background() {
		t.Fatal("empty id should leave context untouched")
	}
}

func TestAlbumIDMissing(t *testing.T) {
	if _, ok := AlbumIDFromContext(context.Background()); ok {
		t.Fatal("expected no album id")
	}
	ctx := WithAlbumID(context.Background(), "al-9")
	if id, _ := AlbumIDFromContext(ctx); id != "al-9" {
		t.Fatalf("unexpected album id %q", id)
	}
}
