// Package main hosts the navicull CLI entrypoint and command graph.
//
// The Cobra-based command tree loads configuration (TOML file, .env file and
// NAVIDROME_* environment variables), sets up structured logging, and hands
// off to the internal packages: prune runs the pipeline, history reads the
// journal, check runs preflight, and config scaffolds or validates the
// configuration file.
//
// Keep this package lean: behaviour belongs in internal/, this package only
// translates flags into configuration and renders results for the terminal.
package main
