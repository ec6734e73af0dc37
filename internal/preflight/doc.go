// Package preflight provides readiness checks for the Navidrome server and
// the local paths navicull depends on.
//
// The "navicull check" command runs RunAll and prints each Result. Checks
// never mutate anything: the server checks call ping and login only, and the
// directory checks use access(2) instead of writing probe files.
package preflight
