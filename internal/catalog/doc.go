// Package catalog models the server's album listing and the stages that
// shape it before planning: the pagination walker that assembles the full
// listing and the rating filter that selects deletion candidates.
package catalog
