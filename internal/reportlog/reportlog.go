// Package reportlog provides the rotating progress log a batch run
// writes alongside its JSON report: one line per asset processed, kept
// small and bounded regardless of how many images a run touches.
package reportlog

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger writes timestamped progress lines to stderr when Verbose is
// set and, when Path is set, to a size-rotated file.
type Logger struct {
	verbose bool
	file    io.WriteCloser
}

// Config controls where a Logger writes and how its file is rotated.
type Config struct {
	Path       string // empty disables file logging
	MaxSizeMB  int    // default 10
	MaxBackups int    // default 3
	MaxAgeDays int    // default 28
	Verbose    bool
}

// New builds a Logger. When cfg.Path is set, lines are written to a
// lumberjack-rotated file in addition to stderr when Verbose is set.
func New(cfg Config) *Logger {
	l := &Logger{verbose: cfg.Verbose}
	if cfg.Path == "" {
		return l
	}
	maxSize := cfg.MaxSizeMB
	if maxSize <= 0 {
		maxSize = 10
	}
	maxBackups := cfg.MaxBackups
	if maxBackups <= 0 {
		maxBackups = 3
	}
	maxAge := cfg.MaxAgeDays
	if maxAge <= 0 {
		maxAge = 28
	}
	l.file = &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		MaxAge:     maxAge,
	}
	return l
}

// Close releases the rotated file handle, if any.
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// Progress logs one asset's completion. Printed to stderr only when
// Verbose was set, but always appended to the rotated file when
// configured — the file is the durable record, stderr is for a human
// watching a terminal.
func (l *Logger) Progress(key string, variants int) {
	line := fmt.Sprintf("%s processed %s (%d variants)\n", timestamp(), key, variants)
	l.write(line)
}

// Warn logs a recoverable per-asset failure.
func (l *Logger) Warn(key string, err error) {
	line := fmt.Sprintf("%s warn %s: %v\n", timestamp(), key, err)
	l.write(line)
}

func (l *Logger) write(line string) {
	if l.verbose {
		fmt.Fprint(os.Stderr, line)
	}
	if l.file != nil {
		l.file.Write([]byte(line))
	}
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
