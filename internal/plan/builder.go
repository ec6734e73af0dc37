package plan

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/text/unicode/norm"

	"navicull/internal/catalog"
	"navicull/internal/logging"
	"navicull/internal/services"
)

// Resolver maps an album ID to its library-relative directory. ok is false
// when the server cannot place the album.
type Resolver interface {
	ResolveAlbumDir(ctx context.Context, albumID string) (dir string, ok bool, err error)
}

// Builder assembles plans against a local music root.
type Builder struct {
	Resolver Resolver
	FS       afero.Fs
	Root     string
	Logger   *slog.Logger
}

// Build resolves every candidate in order. Unresolved albums are logged and
// collected in Plan.Dropped; resolver errors abort the build.
func (b *Builder) Build(ctx context.Context, candidates []catalog.Record) (Plan, error) {
	if b.Resolver == nil {
		return Plan{}, fmt.Errorf("plan builder: resolver is required")
	}
	fs := b.FS
	if fs == nil {
		fs = afero.NewOsFs()
	}
	base := logging.NewComponentLogger(b.Logger, "plan")
	root := filepath.Clean(b.Root)

	var result Plan
	for _, candidate := range candidates {
		albumCtx := services.WithAlbumID(ctx, candidate.ID)
		logger := logging.WithContext(albumCtx, base)
		dir, ok, err := b.Resolver.ResolveAlbumDir(albumCtx, candidate.ID)
		if err != nil {
			return Plan{}, fmt.Errorf("resolve %s: %w", candidate.Label(), err)
		}
		var abs string
		if ok {
			abs, ok = joinWithinRoot(root, dir)
		}
		if !ok {
			logger.Warn("could not resolve album path",
				slog.String("artist", candidate.Artist),
				slog.String("album", candidate.Name),
			)
			result.Dropped = append(result.Dropped, candidate)
			continue
		}

		abs, exists := probe(fs, abs)
		if !exists {
			logger.Debug("album directory not found", slog.String(logging.FieldPath, abs))
		}
		result.Entries = append(result.Entries, Entry{
			ID:           candidate.ID,
			Artist:       candidate.Artist,
			Name:         candidate.Name,
			Rating:       candidate.Rating,
			RelativeDir:  dir,
			AbsolutePath: abs,
			Exists:       exists,
		})
	}
	return result, nil
}

// joinWithinRoot joins dir onto root and refuses results that are the root
// itself or lie outside it.
func joinWithinRoot(root, dir string) (string, bool) {
	abs := filepath.Join(root, filepath.FromSlash(dir))
	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return abs, true
}

// probe checks the path as given and then its NFC and NFD spellings. The
// first spelling found wins; if none exist the original path is returned.
func probe(fs afero.Fs, abs string) (string, bool) {
	candidates := []string{abs}
	for _, form := range []norm.Form{norm.NFC, norm.NFD} {
		alt := form.String(abs)
		if alt != abs && !slices.Contains(candidates, alt) {
			candidates = append(candidates, alt)
		}
	}
	for _, candidate := range candidates {
		if exists, err := afero.Exists(fs, candidate); err == nil && exists {
			return candidate, true
		}
	}
	return abs, false
}
