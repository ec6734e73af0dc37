package executor

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/afero"
	"golang.org/x/sys/unix"

	"navicull/internal/logging"
	"navicull/internal/plan"
	"navicull/internal/services"
)

// Status classifies what happened to one plan entry.
type Status string

const (
	StatusDeleted Status = "deleted"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// Outcome describes the result for one plan entry.
type Outcome struct {
	Entry  plan.Entry
	Status Status
	Err    error
	// PermissionDenied is set when Err is an access error.
	PermissionDenied bool
}

// Observer receives outcomes as they happen.
type Observer interface {
	Observe(Outcome)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Outcome)

// Observe calls f.
func (f ObserverFunc) Observe(o Outcome) { f(o) }

// Tally counts outcomes for a run.
type Tally struct {
	Deleted int
	Failed  int
	Skipped int
}

// Unsuccessful returns the failed and skipped entries combined.
func (t Tally) Unsuccessful() int {
	return t.Failed + t.Skipped
}

// Attempted returns how many entries reached the delete call.
func (t Tally) Attempted() int {
	return t.Deleted + t.Failed
}

// Executor deletes plan entries through an afero filesystem.
type Executor struct {
	FS       afero.Fs
	Logger   *slog.Logger
	Observer Observer
}

// Execute processes every entry and returns the tally. It never stops early.
func (e *Executor) Execute(ctx context.Context, p plan.Plan) Tally {
	fsys := e.FS
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	base := logging.NewComponentLogger(e.Logger, "executor")

	var tally Tally
	for _, entry := range p.Entries {
		logger := logging.WithContext(services.WithAlbumID(ctx, entry.ID), base)
		outcome := Outcome{Entry: entry}
		switch {
		case !entry.Exists:
			outcome.Status = StatusSkipped
			tally.Skipped++
			logger.Info("skipping missing directory", slog.String(logging.FieldPath, entry.AbsolutePath))
		default:
			if err := fsys.RemoveAll(entry.AbsolutePath); err != nil {
				outcome.Status = StatusFailed
				outcome.Err = err
				outcome.PermissionDenied = IsPermissionError(err)
				tally.Failed++
				logger.Warn("delete failed",
					slog.String(logging.FieldPath, entry.AbsolutePath),
					slog.Bool("permission_denied", outcome.PermissionDenied),
					logging.Error(err),
				)
			} else {
				outcome.Status = StatusDeleted
				tally.Deleted++
				logger.Info("deleted album directory", slog.String(logging.FieldPath, entry.AbsolutePath))
			}
		}
		if e.Observer != nil {
			e.Observer.Observe(outcome)
		}
	}
	return tally
}

// IsPermissionError reports whether err is an access failure.
func IsPermissionError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, fs.ErrPermission) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, unix.EPERM) ||
		errors.Is(err, unix.EROFS)
}
