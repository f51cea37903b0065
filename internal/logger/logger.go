// Package logger collects and prints the diagnostics a bundle run
// produces, in clang's error-format style: a kind, a location, and a
// message, streamed to stderr as they're added.
package logger

import (
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/fatih/color"
)

// LogLevel gates which Msg kinds are actually printed.
type LogLevel int8

const (
	LevelInfo LogLevel = iota
	LevelWarning
	LevelError
	LevelSilent
)

// MsgKind is the severity of a single diagnostic.
type MsgKind uint8

const (
	Error MsgKind = iota
	Warning
	Note
)

func (kind MsgKind) String() string {
	switch kind {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Note:
		return "note"
	default:
		return "unknown"
	}
}

// MsgLocation names where a diagnostic originated. Location is a
// CanonicalLocation (for Parse/Load diagnostics) or a ModuleSpecifier
// (for Resolve diagnostics); Referrer is only meaningful for the latter.
type MsgLocation struct {
	Location string
	Referrer string
}

// Msg is one diagnostic.
type Msg struct {
	Kind MsgKind
	Text string
	Loc  *MsgLocation
}

func (m Msg) String() string {
	if m.Loc == nil {
		return fmt.Sprintf("%s: %s", m.Kind, m.Text)
	}
	if m.Loc.Referrer != "" {
		return fmt.Sprintf("%s: %s (resolving %q from %q)", m.Kind, m.Text, m.Loc.Location, m.Loc.Referrer)
	}
	return fmt.Sprintf("%s: %s: %s", m.Kind, m.Loc.Location, m.Text)
}

// Log accumulates diagnostics and reports whether any were errors.
type Log struct {
	mu        sync.Mutex
	level     LogLevel
	useColor  bool
	msgs      []Msg
	hasErrors bool
}

// New returns a Log that writes Errors and Warnings at or above level to
// stderr as they're added. useColor controls whether kind labels are
// colorized; callers typically pass color.NoColor negated, or a flag.
func New(level LogLevel, useColor bool) *Log {
	return &Log{level: level, useColor: useColor}
}

// AddMsg records a diagnostic and prints it immediately if its level
// clears the log's threshold.
func (l *Log) AddMsg(msg Msg) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.msgs = append(l.msgs, msg)
	if msg.Kind == Error {
		l.hasErrors = true
	}

	threshold := l.level
	switch msg.Kind {
	case Error:
		if threshold <= LevelError {
			fmt.Fprintln(os.Stderr, l.colorize(msg))
		}
	case Warning:
		if threshold <= LevelWarning {
			fmt.Fprintln(os.Stderr, l.colorize(msg))
		}
	}
}

// AddError is a convenience wrapper for the common case of reporting a
// single located error.
func (l *Log) AddError(location, referrer, text string) {
	l.AddMsg(Msg{Kind: Error, Text: text, Loc: &MsgLocation{Location: location, Referrer: referrer}})
}

// HasErrors reports whether any Error-kind message has been added.
func (l *Log) HasErrors() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.hasErrors
}

// Done returns every recorded message, sorted by kind then text.
func (l *Log) Done() []Msg {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Msg, len(l.msgs))
	copy(out, l.msgs)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].Text < out[j].Text
	})
	return out
}

func (l *Log) colorize(msg Msg) string {
	if !l.useColor {
		return msg.String()
	}
	kindColor := color.New(color.FgRed, color.Bold)
	if msg.Kind == Warning {
		kindColor = color.New(color.FgMagenta, color.Bold)
	}
	if msg.Loc == nil {
		return fmt.Sprintf("%s: %s", kindColor.Sprint(msg.Kind), msg.Text)
	}
	if msg.Loc.Referrer != "" {
		return fmt.Sprintf("%s: %s (resolving %q from %q)", kindColor.Sprint(msg.Kind), msg.Text, msg.Loc.Location, msg.Loc.Referrer)
	}
	return fmt.Sprintf("%s: %s: %s", kindColor.Sprint(msg.Kind), msg.Loc.Location, msg.Text)
}
