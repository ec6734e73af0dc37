package preflight

import (
	"context"

	"navicull/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every preflight check for the given config. Server checks
// are skipped when credentials are missing since they cannot succeed.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{CheckCredentials(cfg)}
	if results[0].Passed {
		results = append(results,
			CheckServerPing(ctx, cfg),
			CheckNativeLogin(ctx, cfg),
		)
	}
	results = append(results,
		CheckDirectoryAccess("Music root", cfg.Library.MusicRoot),
		CheckDirectoryAccess("State directory", cfg.Paths.StateDir),
	)
	return results
}

// AllPassed reports whether every result passed.
func AllPassed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}
