// Package logger configures charmbracelet/log for the rest of the
// module. Everything logs to stderr: in server mode stdout carries the
// msgpack protocol stream and must stay clean.
package logger

import (
	"os"

	"github.com/charmbracelet/log"
)

// New creates a prefixed logger with the process-wide level.
func New(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: true,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}

// Setup routes the default logger to stderr and applies the debug
// toggle. Called once from main before anything else logs.
func Setup(debug bool) {
	log.SetOutput(os.Stderr)
	if debug {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}
}
