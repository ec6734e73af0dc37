// Package pipeline runs one prune pass end to end.
//
// Runner logs in to the native API, walks the album listing, filters by
// rating, builds the deletion plan and, in ModePlanAndExecute, deletes the
// planned directories and asks the server to rescan when anything was
// removed. Every network failure ends the run; filesystem failures are
// per-entry and never do.
//
// Operator-facing output goes through a Reporter. Executed runs are written
// to the journal and announced through the notification service; failures in
// either are logged and never change the run's result.
package pipeline
