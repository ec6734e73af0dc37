package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"navicull/internal/journal"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var runID string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show journalled prune runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := journal.Open(cfg)
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			if runID != "" {
				outcomes, err := store.Outcomes(cmd.Context(), runID)
				if err != nil {
					return err
				}
				if len(outcomes) == 0 {
					fmt.Fprintf(out, "No outcomes recorded for run %s\n", runID)
					return nil
				}
				fmt.Fprintln(out, renderOutcomeTable(outcomes))
				return nil
			}

			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintf(out, "No prune runs recorded in %s\n", store.Path())
				return nil
			}
			fmt.Fprintln(out, renderRunTable(runs))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show (0 for all)")
	cmd.Flags().StringVar(&runID, "run", "", "Show per-album outcomes for one run ID")
	return cmd
}

func renderRunTable(runs []journal.Run) string {
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		finished := "-"
		if run.Finished() {
			finished = run.FinishedAt.Local().Format(time.DateTime)
		}
		rows = append(rows, []string{
			run.ID,
			run.StartedAt.Local().Format(time.DateTime),
			finished,
			fmt.Sprintf("%d-%d", run.MinRating, run.MaxRating),
			strconv.Itoa(run.Deleted),
			strconv.Itoa(run.Failed),
			strconv.Itoa(run.Skipped),
		})
	}
	return renderTable(
		[]string{"Run", "Started", "Finished", "Ratings", "Deleted", "Failed", "Skipped"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight},
	)
}

func renderOutcomeTable(outcomes []journal.Outcome) string {
	rows := make([][]string, 0, len(outcomes))
	for _, o := range outcomes {
		rows = append(rows, []string{o.Status, o.Artist, o.Album, o.Path, o.Detail})
	}
	return renderTable([]string{"Status", "Artist", "Album", "Path", "Detail"}, rows, nil)
}
