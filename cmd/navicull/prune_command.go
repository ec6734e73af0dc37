package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/gofrs/flock"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"navicull/internal/catalog"
	"navicull/internal/config"
	"navicull/internal/journal"
	"navicull/internal/logging"
	"navicull/internal/notifications"
	"navicull/internal/pipeline"
	"navicull/internal/services/navidrome"
	"navicull/internal/services/subsonic"
)

type pruneOptions struct {
	execute   bool
	minRating int
	maxRating int
	musicRoot string
	serverURL string
	pageSize  int
}

func newPruneCommand(ctx *commandContext) *cobra.Command {
	var opts pruneOptions

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Plan (and with --execute, delete) low-rated album directories",
		Long: `Fetch every album from the server, keep those whose rating falls in the
configured range, resolve each to a directory under the music root, and
print the plan. Nothing is deleted unless --execute is given. Unrated albums
are never selected.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cfg, err := applyPruneOverrides(cmd, base, opts)
			if err != nil {
				return err
			}
			if err := cfg.ValidateCredentials(); err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			return runPrune(cmd, cfg, opts.execute, logger)
		},
	}

	cmd.Flags().BoolVar(&opts.execute, "execute", false, "Actually delete directories (default: dry run)")
	cmd.Flags().IntVar(&opts.minRating, "min-rating", 0, "Minimum rating to delete, inclusive (default from config)")
	cmd.Flags().IntVar(&opts.maxRating, "max-rating", 0, "Maximum rating to delete, inclusive (default from config)")
	cmd.Flags().StringVar(&opts.musicRoot, "music-root", "", "Local path of the server's music folder")
	cmd.Flags().StringVar(&opts.serverURL, "url", "", "Navidrome server URL")
	cmd.Flags().IntVar(&opts.pageSize, "page-size", 0, "Albums requested per listing call")
	return cmd
}

// applyPruneOverrides copies cfg and applies explicitly set flags.
func applyPruneOverrides(cmd *cobra.Command, base *config.Config, opts pruneOptions) (*config.Config, error) {
	cfg := *base
	flags := cmd.Flags()
	if flags.Changed("min-rating") {
		cfg.Prune.MinRating = opts.minRating
	}
	if flags.Changed("max-rating") {
		cfg.Prune.MaxRating = opts.maxRating
	}
	if flags.Changed("page-size") {
		cfg.Prune.PageSize = opts.pageSize
	}
	if flags.Changed("url") {
		cfg.Server.URL = strings.TrimRight(strings.TrimSpace(opts.serverURL), "/")
	}
	if flags.Changed("music-root") {
		root, err := config.ExpandPath(strings.TrimSpace(opts.musicRoot))
		if err != nil {
			return nil, fmt.Errorf("--music-root: %w", err)
		}
		cfg.Library.MusicRoot = root
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func runPrune(cmd *cobra.Command, cfg *config.Config, execute bool, logger *slog.Logger) error {
	out := cmd.OutOrStdout()
	mode := pipeline.ModePlan
	if execute {
		mode = pipeline.ModePlanAndExecute
	}

	lock := flock.New(cfg.LockPath())
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("another navicull prune is already running (lock %s)", cfg.LockPath())
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release run lock", slog.String(logging.FieldPath, cfg.LockPath()), logging.Error(err))
		}
	}()

	sub, err := subsonic.NewFromConfig(cfg)
	if err != nil {
		return err
	}
	native, err := navidrome.NewFromConfig(cfg)
	if err != nil {
		return err
	}

	rng := catalog.RatingRange{Min: cfg.Prune.MinRating, Max: cfg.Prune.MaxRating}
	reporter := newTextReporter(out, shouldColorize(out))
	printPruneHeader(out, cfg, rng, mode)

	runner := &pipeline.Runner{
		Source:   sub,
		Resolver: native,
		Auth:     native,
		FS:       afero.NewOsFs(),
		Root:     cfg.Library.MusicRoot,
		Range:    rng,
		PageSize: cfg.Prune.PageSize,
		Mode:     mode,
		Reporter: reporter,
		Notifier: notifications.NewService(cfg),
		Logger:   logger,
	}
	if mode == pipeline.ModePlanAndExecute {
		store, err := journal.Open(cfg)
		if err != nil {
			logger.Warn("journal unavailable; run will not be recorded", logging.Error(err))
		} else {
			defer store.Close()
			runner.Journal = store
		}
	}

	_, err = runner.Run(cmd.Context())
	return err
}

func printPruneHeader(out io.Writer, cfg *config.Config, rng catalog.RatingRange, mode pipeline.Mode) {
	modeLabel := "DRY RUN"
	if mode == pipeline.ModePlanAndExecute {
		modeLabel = "EXECUTE"
	}
	fmt.Fprintf(out, "Server:     %s\n", cfg.Server.URL)
	fmt.Fprintf(out, "Music root: %s\n", cfg.Library.MusicRoot)
	fmt.Fprintf(out, "Filter:     rating %s\n", rng)
	fmt.Fprintf(out, "Mode:       %s\n", modeLabel)
}
