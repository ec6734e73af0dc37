// Package plan turns rating-filtered albums into an ordered deletion plan.
//
// Each candidate is resolved to a library-relative directory once, joined
// onto the local music root, and checked for existence. Albums the server
// cannot place on disk are kept aside in Plan.Dropped for reporting and are
// never executed. Building a plan never touches the filesystem beyond
// existence checks.
package plan
