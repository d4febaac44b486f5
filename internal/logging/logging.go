// Package logging builds the component-tagged loggers used across producer,
// listener and navstore: a single charmbracelet/log root logger, with every
// long-lived goroutine (tick loop, accept loop, per-connection handler)
// getting its own "component"-scoped child so log lines can be told apart
// in a multi-goroutine service.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// New builds the root logger, writing to w with timestamps and the
// component field reported by every child logger.
func New(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.000",
	})
}

// NewStderr builds the root logger writing to os.Stderr, the default sink
// for the cmd/ binaries.
func NewStderr() *log.Logger {
	return New(os.Stderr)
}

// For returns a child logger tagged with the given component name, e.g.
// "producer", "listener", "handler", "navstore".
func For(root *log.Logger, component string) *log.Logger {
	return root.With("component", component)
}
