// Package cli implements the arbor command-line interface.
//
// This package provides commands for laying out graph files, rendering
// them through Graphviz, previewing layouts in the terminal, serving the
// layout engine over HTTP and managing the layout cache. The CLI is built
// using cobra and supports verbose logging via the charmbracelet/log
// library.
//
// # Commands
//
// The main commands are:
//   - layout: Compute positions and write them back into the graph file
//   - render: Generate DOT, SVG, PNG or PDF drawings
//   - preview: Browse algorithms interactively in the terminal
//   - serve: Run the HTTP layout API
//   - cache: Manage the layout cache
//
// # Configuration
//
// Flags are bound to configuration keys and loaded with the global and
// project config files and ARBOR_* environment variables before any
// command runs.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. With
// --log-file (or log.file) the same records are also appended to a
// size-rotated file.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/matzehuels/arbor/internal/config"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// openLogFile returns a rotating writer for cfg.File. The file is created
// lazily on the first write.
func openLogFile(cfg config.LogConfig) io.WriteCloser {
	return &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// elapsed returns the time since the tracker was created, rounded to the
// millisecond.
func (p *progress) elapsed() time.Duration {
	return time.Since(p.start).Round(time.Millisecond)
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Layout committed (12ms)"
func (p *progress) done(msg string, keyvals ...any) {
	p.logger.Info(msg+" ("+p.elapsed().String()+")", keyvals...)
}
