// Package logging provides structured JSON logging for devosctl components.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"
)

// Level represents log severity
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Event represents a structured log event
type Event struct {
	Timestamp string         `json:"ts"`
	Level     Level          `json:"level"`
	Component string         `json:"component"`
	Event     string         `json:"event"`
	Repo      string         `json:"repo,omitempty"`
	Check     string         `json:"check,omitempty"`
	Duration  int64          `json:"duration_ms,omitempty"`
	Error     string         `json:"error,omitempty"`
	Extra     map[string]any `json:"extra,omitempty"`
}

var (
	enabled atomic.Bool
	sink    io.Writer = os.Stderr
)

// SetEnabled toggles log emission. Disabled by default so normal CLI
// output stays clean; enabled via --verbose or DEVOS_DEBUG=1.
func SetEnabled(on bool) {
	enabled.Store(on)
}

// Enabled reports whether logging is active.
func Enabled() bool {
	return enabled.Load()
}

// SetSink redirects log output (for testing). A nil writer restores
// the stderr default.
func SetSink(w io.Writer) {
	if w == nil {
		sink = os.Stderr
		return
	}
	sink = w
}

// Logger provides structured logging
type Logger struct {
	component string
	repo      string
}

// New creates a new logger for a component
func New(component string) *Logger {
	return &Logger{component: component}
}

// WithRepo sets the repository context
func (l *Logger) WithRepo(repo string) *Logger {
	return &Logger{
		component: l.component,
		repo:      repo,
	}
}

// log emits a structured log event
func (l *Logger) log(level Level, event string, extra map[string]any, err error) {
	if !enabled.Load() {
		return
	}

	e := Event{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     level,
		Component: l.component,
		Event:     event,
		Repo:      l.repo,
		Extra:     extra,
	}

	if err != nil {
		e.Error = err.Error()
	}

	data, _ := json.Marshal(e)
	fmt.Fprintln(sink, string(data))
}

// Debug logs a debug event
func (l *Logger) Debug(event string, extra map[string]any) {
	l.log(LevelDebug, event, extra, nil)
}

// Info logs an info event
func (l *Logger) Info(event string, extra map[string]any) {
	l.log(LevelInfo, event, extra, nil)
}

// Warn logs a warning event
func (l *Logger) Warn(event string, extra map[string]any, err error) {
	l.log(LevelWarn, event, extra, err)
}

// Error logs an error event
func (l *Logger) Error(event string, extra map[string]any, err error) {
	l.log(LevelError, event, extra, err)
}

// CheckEvent logs the outcome of a single validation check.
func (l *Logger) CheckEvent(check string, findings int, start time.Time) {
	if !enabled.Load() {
		return
	}

	e := Event{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     LevelInfo,
		Component: l.component,
		Event:     "check_complete",
		Repo:      l.repo,
		Check:     check,
		Duration:  time.Since(start).Milliseconds(),
		Extra: map[string]any{
			"findings": findings,
		},
	}

	data, _ := json.Marshal(e)
	fmt.Fprintln(sink, string(data))
}
