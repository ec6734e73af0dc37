package executor_test

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"syscall"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"navicull/internal/executor"
	"navicull/internal/plan"
	"navicull/internal/services"
)

// denyFs refuses to remove one path and delegates everything else.
type denyFs struct {
	afero.Fs
	denied  string
	removed []string
}

func (d *denyFs) RemoveAll(path string) error {
	d.removed = append(d.removed, path)
	if path == d.denied {
		return &fs.PathError{Op: "unlinkat", Path: path, Err: syscall.EACCES}
	}
	return d.Fs.RemoveAll(path)
}

func seed(t *testing.T, fsys afero.Fs, paths ...string) {
	t.Helper()
	for _, p := range paths {
		require.NoError(t, fsys.MkdirAll(p, 0o755))
		require.NoError(t, afero.WriteFile(fsys, p+"/01.flac", []byte("audio"), 0o644))
	}
}

func TestExecuteSkipsMissingWithoutAttempting(t *testing.T) {
	base := afero.NewMemMapFs()
	seed(t, base, "/music/A/One", "/music/C/Three")
	fsys := &denyFs{Fs: base}

	p := plan.Plan{Entries: []plan.Entry{
		{ID: "1", AbsolutePath: "/music/A/One", Exists: true},
		{ID: "2", AbsolutePath: "/music/B/Two", Exists: false},
		{ID: "3", AbsolutePath: "/music/C/Three", Exists: true},
	}}

	var outcomes []executor.Outcome
	exec := &executor.Executor{FS: fsys, Observer: executor.ObserverFunc(func(o executor.Outcome) {
		outcomes = append(outcomes, o)
	})}
	tally := exec.Execute(context.Background(), p)

	require.Equal(t, executor.Tally{Deleted: 2, Skipped: 1}, tally)
	require.Equal(t, []string{"/music/A/One", "/music/C/Three"}, fsys.removed)
	require.Equal(t, 2, tally.Attempted())
	require.Equal(t, 1, tally.Unsuccessful())

	require.Len(t, outcomes, 3)
	require.Equal(t, executor.StatusDeleted, outcomes[0].Status)
	require.Equal(t, executor.StatusSkipped, outcomes[1].Status)
	require.Equal(t, executor.StatusDeleted, outcomes[2].Status)

	exists, err := afero.DirExists(base, "/music/A/One")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestExecuteContinuesAfterPermissionFailure(t *testing.T) {
	base := afero.NewMemMapFs()
	seed(t, base, "/music/Locked", "/music/Open")
	fsys := &denyFs{Fs: base, denied: "/music/Locked"}

	p := plan.Plan{Entries: []plan.Entry{
		{ID: "locked", AbsolutePath: "/music/Locked", Exists: true},
		{ID: "open", AbsolutePath: "/music/Open", Exists: true},
	}}

	var outcomes []executor.Outcome
	exec := &executor.Executor{FS: fsys, Observer: executor.ObserverFunc(func(o executor.Outcome) {
		outcomes = append(outcomes, o)
	})}
	tally := exec.Execute(context.Background(), p)

	require.Equal(t, 1, tally.Deleted)
	require.Equal(t, 1, tally.Failed)
	require.Equal(t, executor.StatusFailed, outcomes[0].Status)
	require.True(t, outcomes[0].PermissionDenied)
	require.ErrorIs(t, outcomes[0].Err, fs.ErrPermission)

	stillThere, err := afero.DirExists(base, "/music/Locked")
	require.NoError(t, err)
	require.True(t, stillThere)
}

func TestExecuteOnReadOnlyFilesystem(t *testing.T) {
	base := afero.NewMemMapFs()
	seed(t, base, "/music/A")
	exec := &executor.Executor{FS: afero.NewReadOnlyFs(base)}

	tally := exec.Execute(context.Background(), plan.Plan{Entries: []plan.Entry{
		{ID: "a", AbsolutePath: "/music/A", Exists: true},
	}})
	require.Equal(t, executor.Tally{Failed: 1}, tally)
}

func TestExecuteEmptyPlan(t *testing.T) {
	exec := &executor.Executor{FS: afero.NewMemMapFs()}
	require.Equal(t, executor.Tally{}, exec.Execute(context.Background(), plan.Plan{}))
}

func TestIsPermissionError(t *testing.T) {
	require.True(t, executor.IsPermissionError(&fs.PathError{Op: "remove", Path: "/x", Err: syscall.EACCES}))
	require.True(t, executor.IsPermissionError(syscall.EPERM))
	require.False(t, executor.IsPermissionError(errors.New("disk on fire")))
	require.False(t, executor.IsPermissionError(nil))
}

func TestExecuteLogsCarryRunAndAlbumIDs(t *testing.T) {
	fsys := afero.NewMemMapFs()
	seed(t, fsys, "/music/A/One")

	var buf bytes.Buffer
	exec := &executor.Executor{FS: fsys, Logger: slog.New(slog.NewTextHandler(&buf, nil))}
	ctx := services.WithRunID(context.Background(), "run-42")
	exec.Execute(ctx, plan.Plan{Entries: []plan.Entry{
		{ID: "al-9", AbsolutePath: "/music/A/One", Exists: true},
	}})

	out := buf.String()
	require.Contains(t, out, "deleted album directory")
	require.Contains(t, out, "run_id=run-42")
	require.Contains(t, out, "album_id=al-9")
}

func TestIsPermissionErrorReadOnlyFilesystem(t *testing.T) {
	require.True(t, executor.IsPermissionError(&fs.PathError{Op: "unlinkat", Path: "/music", Err: unix.EROFS}))
	require.True(t, executor.IsPermissionError(unix.EPERM))
	require.False(t, executor.IsPermissionError(unix.ENOENT))
}
