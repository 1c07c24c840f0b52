// Package logging sets up the diagnostic logger shared by the cleaner, the
// runner and the CLI. Human-facing progress and the final report go to
// stdout; everything here is diagnostics and goes to stderr or a log file.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fenilsonani/winclean/internal/config"
)

// Logger bundles the root logger with the file it may own
type Logger struct {
	*log.Logger
	file *os.File
}

// New builds a logger from cfg writing to w. If cfg.File is set, output goes
// to that file (appended) instead and Close must be called.
func New(cfg config.LoggingConfig, w io.Writer) (*Logger, error) {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}

	l := &Logger{}

	out := w
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		l.file = f
		out = f
	}

	l.Logger = log.NewWithOptions(out, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})

	if l.file != nil {
		l.Logger.SetFormatter(log.LogfmtFormatter)
		l.Logger.SetTimeFormat(time.RFC3339)
	}

	return l, nil
}

// Component returns a child logger whose lines are prefixed with name
func (l *Logger) Component(name string) *log.Logger {
	return l.Logger.WithPrefix(name)
}

// Close closes the log file, if any
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
