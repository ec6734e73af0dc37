package pipeline

import (
	"context"
	"time"

	"navicull/internal/catalog"
	"navicull/internal/executor"
	"navicull/internal/journal"
	"navicull/internal/plan"
)

// Mode selects between a dry run and a destructive run.
type Mode int

const (
	// ModePlan builds and reports the plan without touching the filesystem.
	ModePlan Mode = iota
	// ModePlanAndExecute builds the plan and deletes its entries.
	ModePlanAndExecute
)

func (m Mode) String() string {
	switch m {
	case ModePlanAndExecute:
		return "execute"
	default:
		return "dry-run"
	}
}

// AlbumSource lists albums and triggers library rescans.
type AlbumSource interface {
	catalog.Lister
	StartScan(ctx context.Context) error
}

// Authenticator establishes the native API session.
type Authenticator interface {
	Login(ctx context.Context) error
}

// Journal records executed runs.
type Journal interface {
	BeginRun(ctx context.Context, mode string, rng catalog.RatingRange) (*journal.Run, error)
	RecordOutcome(ctx context.Context, runID string, outcome executor.Outcome) error
	FinishRun(ctx context.Context, runID string, tally executor.Tally) error
}

// Reporter renders progress for the operator.
type Reporter interface {
	FetchStarted()
	Fetched(count int, elapsed time.Duration)
	Matched(count int, rng catalog.RatingRange)
	NothingToDo()
	PlanReady(p plan.Plan, mode Mode)
	Outcome(o executor.Outcome)
	Summary(t executor.Tally)
	RescanTriggered()
}

// Result summarizes a run.
type Result struct {
	Fetched  int
	Matched  int
	Plan     plan.Plan
	Tally    executor.Tally
	Executed bool
	// Rescanned is true when startScan succeeded.
	Rescanned bool
	RunID     string
	Duration  time.Duration
}

// NopReporter discards every report.
type NopReporter struct{}

func (NopReporter) FetchStarted()                    {}
func (NopReporter) Fetched(int, time.Duration)       {}
func (NopReporter) Matched(int, catalog.RatingRange) {}
func (NopReporter) NothingToDo()                     {}
func (NopReporter) PlanReady(plan.Plan, Mode)        {}
func (NopReporter) Outcome(executor.Outcome)         {}
func (NopReporter) Summary(executor.Tally)           {}
func (NopReporter) RescanTriggered()                 {}
