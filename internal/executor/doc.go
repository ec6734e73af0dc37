// Package executor carries out a deletion plan.
//
// Entries are processed in plan order. Directories that were missing when
// the plan was built are skipped without another look at the filesystem;
// everything else is removed recursively. A failure on one entry is recorded
// and the run moves on to the next.
package executor
