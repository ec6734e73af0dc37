package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/afero"

	"navicull/internal/catalog"
	"navicull/internal/executor"
	"navicull/internal/logging"
	"navicull/internal/notifications"
	"navicull/internal/plan"
	"navicull/internal/services"
)

// Runner wires the prune stages together. Source, Resolver and Auth are
// required; everything else has a usable zero value.
type Runner struct {
	Source   AlbumSource
	Resolver plan.Resolver
	Auth     Authenticator

	FS       afero.Fs
	Root     string
	Range    catalog.RatingRange
	PageSize int
	Mode     Mode

	Reporter Reporter
	Journal  Journal
	Notifier notifications.Service
	Logger   *slog.Logger

	now func() time.Time
}

// Run performs one prune pass. The returned Result is populated as far as
// the run got, even when an error is returned.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	var result Result
	if err := r.validate(); err != nil {
		return result, err
	}
	now := r.clock()
	started := now()
	reporter := r.reporter()
	logger := logging.NewComponentLogger(r.Logger, "pipeline")
	fsys := r.FS
	if fsys == nil {
		fsys = afero.NewOsFs()
	}

	defer func() {
		result.Duration = now().Sub(started)
	}()

	if err := r.Auth.Login(ctx); err != nil {
		return result, r.fail(ctx, logger, "login", fmt.Errorf("login: %w", err))
	}

	reporter.FetchStarted()
	fetchStart := now()
	records, err := catalog.FetchAll(ctx, r.Source, r.PageSize)
	if err != nil {
		return result, r.fail(ctx, logger, "fetch", fmt.Errorf("fetch albums: %w", err))
	}
	result.Fetched = len(records)
	reporter.Fetched(len(records), now().Sub(fetchStart))
	logger.Debug("album listing fetched", slog.Int("albums", len(records)))

	candidates := catalog.Filter(records, r.Range)
	result.Matched = len(candidates)
	reporter.Matched(len(candidates), r.Range)
	if len(candidates) == 0 {
		reporter.NothingToDo()
		return result, nil
	}

	builder := &plan.Builder{Resolver: r.Resolver, FS: fsys, Root: r.Root, Logger: r.Logger}
	built, err := builder.Build(ctx, candidates)
	if err != nil {
		return result, r.fail(ctx, logger, "plan", fmt.Errorf("build plan: %w", err))
	}
	result.Plan = built
	reporter.PlanReady(built, r.Mode)
	logger.Info("plan built",
		slog.Int("entries", built.Len()),
		slog.Int("missing", built.Missing()),
		slog.Int("unresolved", len(built.Dropped)),
	)

	if r.Mode != ModePlanAndExecute || built.Len() == 0 {
		return result, nil
	}

	runID := r.beginJournal(ctx, logger)
	result.RunID = runID
	if runID != "" {
		ctx = services.WithRunID(ctx, runID)
		logger = logging.WithContext(ctx, logger)
	}

	exec := &executor.Executor{
		FS:     fsys,
		Logger: r.Logger,
		Observer: executor.ObserverFunc(func(o executor.Outcome) {
			reporter.Outcome(o)
			r.recordOutcome(ctx, logger, runID, o)
		}),
	}
	tally := exec.Execute(ctx, built)
	result.Tally = tally
	result.Executed = true
	reporter.Summary(tally)
	logger.Info("prune finished",
		slog.Int("attempted", tally.Attempted()),
		slog.Int("deleted", tally.Deleted),
		slog.Int("failed", tally.Failed),
		slog.Int("skipped", tally.Skipped),
	)
	r.finishJournal(ctx, logger, runID, tally)
	r.notifyCompleted(ctx, logger, tally, now().Sub(started))

	if tally.Deleted == 0 {
		return result, nil
	}
	if err := r.Source.StartScan(ctx); err != nil {
		logger.Error("library rescan failed", logging.Error(err))
		r.notifyError(ctx, logger, "rescan", err)
		return result, err
	}
	result.Rescanned = true
	reporter.RescanTriggered()
	r.notifyRescan(ctx, logger)
	return result, nil
}

func (r *Runner) validate() error {
	switch {
	case r.Source == nil:
		return errors.New("pipeline: album source is required")
	case r.Resolver == nil:
		return errors.New("pipeline: path resolver is required")
	case r.Auth == nil:
		return errors.New("pipeline: authenticator is required")
	}
	if err := r.Range.Validate(); err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}
	return nil
}

func (r *Runner) fail(ctx context.Context, logger *slog.Logger, stage string, err error) error {
	logger.Error("prune run failed",
		slog.String("stage", stage),
		slog.String("category", services.Category(err)),
		logging.Error(err),
	)
	if r.Mode == ModePlanAndExecute {
		r.notifyError(ctx, logger, stage, err)
	}
	return err
}

func (r *Runner) reporter() Reporter {
	if r.Reporter == nil {
		return NopReporter{}
	}
	return r.Reporter
}

func (r *Runner) clock() func() time.Time {
	if r.now == nil {
		return time.Now
	}
	return r.now
}
