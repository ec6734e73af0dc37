package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"navicull/internal/services"
)

func TestContextFieldsEmpty(t *testing.T) {
	if fields := ContextFields(context.Background()); len(fields) != 0 {
		t.Fatalf("expected no fields, got %v", fields)
	}
}

func TestWithContextAddsRunAndAlbum(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, nil))

	ctx := services.WithRunID(context.Background(), "run-7")
	ctx = services.WithAlbumID(ctx, "al-3")
	WithContext(ctx, base).Info("deleted")

	out := buf.String()
	for _, want := range []string{"run_id=run-7", "album_id=al-3"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}

func TestWithContextNilLogger(t *testing.T) {
	ctx := services.WithAlbumID(context.Background(), "al-1")
	WithContext(ctx, nil).Info("discarded")
}
