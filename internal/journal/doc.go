// Package journal records executed prune runs in a SQLite database under the
// state directory.
//
// The journal is append-only: each execute-mode run gets a row in runs and
// one row per plan entry in outcomes. Nothing in the prune pipeline reads it
// back; it exists for the history command and for operators who want to know
// what was removed and when.
package journal
