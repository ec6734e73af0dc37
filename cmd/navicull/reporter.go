package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"navicull/internal/catalog"
	"navicull/internal/executor"
	"navicull/internal/pipeline"
	"navicull/internal/plan"
)

const bannerWidth = 70

// textReporter prints pipeline progress in the classic line format.
type textReporter struct {
	out      io.Writer
	colorize bool
}

func newTextReporter(out io.Writer, colorize bool) *textReporter {
	return &textReporter{out: out, colorize: colorize}
}

func (r *textReporter) FetchStarted() {
	fmt.Fprintln(r.out, "\nFetching albums...")
}

func (r *textReporter) Fetched(count int, elapsed time.Duration) {
	fmt.Fprintf(r.out, "Found %d albums (%.1fs)\n", count, elapsed.Seconds())
}

func (r *textReporter) Matched(count int, rng catalog.RatingRange) {
	fmt.Fprintf(r.out, "Matched %d albums with rating %s\n", count, rng)
	if count > 0 {
		fmt.Fprintln(r.out, "Resolving paths...")
	}
}

func (r *textReporter) NothingToDo() {
	fmt.Fprintln(r.out, "Nothing to do.")
}

func (r *textReporter) PlanReady(p plan.Plan, mode pipeline.Mode) {
	for _, dropped := range p.Dropped {
		fmt.Fprintln(r.out, paint(fmt.Sprintf("  Warning: no songs found for '%s', skipping", dropped.Label()), statusWarn, r.colorize))
	}
	if p.Len() == 0 {
		fmt.Fprintln(r.out, "No albums match the filter criteria.")
		return
	}

	modeLabel := "DRY RUN"
	if mode == pipeline.ModePlanAndExecute {
		modeLabel = "EXECUTE"
	}
	rule := strings.Repeat("=", bannerWidth)
	fmt.Fprintf(r.out, "\n%s\n", rule)
	fmt.Fprintf(r.out, "  Mode: %s | Albums: %d\n", modeLabel, p.Len())
	fmt.Fprintf(r.out, "%s\n\n", rule)

	for _, entry := range p.Entries {
		marker := ""
		if !entry.Exists {
			marker = paint(" [NOT FOUND]", statusWarn, r.colorize)
		}
		fmt.Fprintf(r.out, "  Rating: %d/%d\n", entry.Rating, catalog.MaxRating)
		fmt.Fprintf(r.out, "  Artist: %s\n", entry.Artist)
		fmt.Fprintf(r.out, "  Album:  %s\n", entry.Name)
		fmt.Fprintf(r.out, "  Path:   %s%s\n", entry.AbsolutePath, marker)
		fmt.Fprintln(r.out)
	}

	if mode == pipeline.ModePlan {
		fmt.Fprintln(r.out, "---")
		fmt.Fprintln(r.out, "Dry run complete. Use --execute to delete these directories.")
		return
	}
	fmt.Fprintln(r.out, "\nDeleting directories...")
}

func (r *textReporter) Outcome(o executor.Outcome) {
	path := o.Entry.AbsolutePath
	var line string
	var kind statusKind
	switch o.Status {
	case executor.StatusSkipped:
		line, kind = fmt.Sprintf("  Skip (not found): %s", path), statusWarn
	case executor.StatusDeleted:
		line, kind = fmt.Sprintf("  Deleted: %s", path), statusOK
	default:
		label := "Error"
		if o.PermissionDenied {
			label = "Error (permission denied)"
		}
		line, kind = fmt.Sprintf("  %s: %s — %v", label, path, o.Err), statusError
	}
	fmt.Fprintln(r.out, paint(line, kind, r.colorize))
}

func (r *textReporter) Summary(t executor.Tally) {
	fmt.Fprintf(r.out, "\nDone: %d deleted, %d failed/skipped\n", t.Deleted, t.Unsuccessful())
	if t.Deleted > 0 {
		fmt.Fprintln(r.out, "\nTriggering library rescan...")
	}
}

func (r *textReporter) RescanTriggered() {
	fmt.Fprintln(r.out, "Library rescan triggered.")
}
