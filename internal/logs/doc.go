// Package logs reads back navicull's own log file for the "navicull logs"
// command.
package logs
