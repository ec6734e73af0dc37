package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"navicull/internal/executor"
	"navicull/internal/logging"
)

func (r *Runner) beginJournal(ctx context.Context, logger *slog.Logger) string {
	if r.Journal == nil {
		return ""
	}
	run, err := r.Journal.BeginRun(ctx, r.Mode.String(), r.Range)
	if err != nil {
		logger.Warn("journal unavailable; run will not be recorded",
			logging.Error(err),
			slog.String("impact", "history will not list this run"),
		)
		return ""
	}
	return run.ID
}

func (r *Runner) recordOutcome(ctx context.Context, logger *slog.Logger, runID string, o executor.Outcome) {
	if r.Journal == nil || runID == "" {
		return
	}
	if err := r.Journal.RecordOutcome(ctx, runID, o); err != nil {
		logger.Warn("journal outcome not recorded",
			slog.String(logging.FieldAlbumID, o.Entry.ID),
			logging.Error(err),
		)
	}
}

func (r *Runner) finishJournal(ctx context.Context, logger *slog.Logger, runID string, tally executor.Tally) {
	if r.Journal == nil || runID == "" {
		return
	}
	if err := r.Journal.FinishRun(ctx, runID, tally); err != nil {
		logger.Warn("journal run not finalized", logging.Error(err))
	}
}

func (r *Runner) notifyCompleted(ctx context.Context, logger *slog.Logger, tally executor.Tally, elapsed time.Duration) {
	if r.Notifier == nil {
		return
	}
	if err := r.Notifier.NotifyPruneCompleted(ctx, tally.Deleted, tally.Unsuccessful(), elapsed); err != nil {
		logNotifyFailure(logger, "prune completion", err)
	}
}

func (r *Runner) notifyRescan(ctx context.Context, logger *slog.Logger) {
	if r.Notifier == nil {
		return
	}
	if err := r.Notifier.NotifyRescanTriggered(ctx); err != nil {
		logNotifyFailure(logger, "rescan", err)
	}
}

func (r *Runner) notifyError(ctx context.Context, logger *slog.Logger, stage string, runErr error) {
	if r.Notifier == nil || runErr == nil {
		return
	}
	if err := r.Notifier.NotifyError(ctx, runErr, stage); err != nil {
		logNotifyFailure(logger, "error", err)
	}
}

func logNotifyFailure(logger *slog.Logger, kind string, err error) {
	if errors.Is(err, context.Canceled) {
		logger.Debug("notification skipped, context canceled", slog.String("notification", kind))
		return
	}
	logger.Warn("notification failed", slog.String("notification", kind), logging.Error(err))
}
