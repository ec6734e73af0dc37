package plan_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/norm"

	"navicull/internal/catalog"
	"navicull/internal/plan"
)

type stubResolver struct {
	dirs  map[string]string
	errs  map[string]error
	calls []string
}

func (s *stubResolver) ResolveAlbumDir(_ context.Context, id string) (string, bool, error) {
	s.calls = append(s.calls, id)
	if err := s.errs[id]; err != nil {
		return "", false, err
	}
	dir, ok := s.dirs[id]
	return dir, ok, nil
}

const root = "/music"

func TestBuildKeepsOrderAndMarksMissing(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/music/A/One", 0o755))
	require.NoError(t, fs.MkdirAll("/music/C/Three", 0o755))

	resolver := &stubResolver{dirs: map[string]string{
		"1": "A/One",
		"2": "B/Two",
		"3": "C/Three",
	}}
	builder := &plan.Builder{Resolver: resolver, FS: fs, Root: root}

	candidates := []catalog.Record{
		{ID: "1", Artist: "A", Name: "One", Rating: 1},
		{ID: "2", Artist: "B", Name: "Two", Rating: 2},
		{ID: "3", Artist: "C", Name: "Three", Rating: 1},
	}
	result, err := builder.Build(context.Background(), candidates)
	require.NoError(t, err)
	require.Len(t, result.Entries, 3)
	require.Empty(t, result.Dropped)
	require.Equal(t, []string{"1", "2", "3"}, resolver.calls)

	require.Equal(t, "1", result.Entries[0].ID)
	require.Equal(t, filepath.Join(root, "A", "One"), result.Entries[0].AbsolutePath)
	require.True(t, result.Entries[0].Exists)
	require.False(t, result.Entries[1].Exists, "absence must not abort the build")
	require.True(t, result.Entries[2].Exists)
	require.Equal(t, 1, result.Missing())
	require.Equal(t, 2, result.Entries[1].Rating)
}

func TestBuildDropsUnresolvedAndEscapingDirs(t *testing.T) {
	fs := afero.NewMemMapFs()
	resolver := &stubResolver{dirs: map[string]string{
		"ok":     "Artist/Album",
		"escape": "../outside",
		"root":   "Artist/..",
	}}
	builder := &plan.Builder{Resolver: resolver, FS: fs, Root: root}

	result, err := builder.Build(context.Background(), []catalog.Record{
		{ID: "gone", Artist: "X", Name: "Nowhere"},
		{ID: "ok", Artist: "Artist", Name: "Album"},
		{ID: "escape", Artist: "E", Name: "Escape"},
		{ID: "root", Artist: "R", Name: "Root"},
	})
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)
	require.Equal(t, "ok", result.Entries[0].ID)
	require.Len(t, result.Dropped, 3)
	require.Equal(t, "gone", result.Dropped[0].ID)
	require.Equal(t, "escape", result.Dropped[1].ID)
	require.Equal(t, "root", result.Dropped[2].ID)
}

func TestBuildStopsOnResolverError(t *testing.T) {
	boom := errors.New("connection reset")
	resolver := &stubResolver{
		dirs: map[string]string{"1": "A/One"},
		errs: map[string]error{"2": boom},
	}
	builder := &plan.Builder{Resolver: resolver, FS: afero.NewMemMapFs(), Root: root}

	_, err := builder.Build(context.Background(), []catalog.Record{{ID: "1"}, {ID: "2"}, {ID: "3"}})
	require.ErrorIs(t, err, boom)
	require.Equal(t, []string{"1", "2"}, resolver.calls)
}

func TestBuildFindsAlternateNormalization(t *testing.T) {
	decomposed := norm.NFD.String("Beyoncé/Lemonade")
	composed := norm.NFC.String("Beyoncé/Lemonade")
	require.NotEqual(t, decomposed, composed)

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(filepath.Join(root, decomposed), 0o755))

	resolver := &stubResolver{dirs: map[string]string{"b": composed}}
	builder := &plan.Builder{Resolver: resolver, FS: fs, Root: root}

	result, err := builder.Build(context.Background(), []catalog.Record{{ID: "b"}})
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)
	require.True(t, result.Entries[0].Exists)
	require.Equal(t, filepath.Join(root, decomposed), result.Entries[0].AbsolutePath)
	require.Equal(t, composed, result.Entries[0].RelativeDir)
}

func TestBuildDoesNotMutateFilesystem(t *testing.T) {
	base := afero.NewMemMapFs()
	require.NoError(t, base.MkdirAll("/music/A/One", 0o755))
	fs := afero.NewReadOnlyFs(base)

	builder := &plan.Builder{Resolver: &stubResolver{dirs: map[string]string{"1": "A/One"}}, FS: fs, Root: root}
	result, err := builder.Build(context.Background(), []catalog.Record{{ID: "1"}})
	require.NoError(t, err)
	require.True(t, result.Entries[0].Exists)
}

func TestBuildRequiresResolver(t *testing.T) {
	_, err := (&plan.Builder{Root: root}).Build(context.Background(), nil)
	require.Error(t, err)
}
