// Package format validates raw JSON text and re-serializes it with a
// configurable indent width. It holds no state and performs no I/O.
package format

import (
	"strings"
	"time"
)

// DefaultIndent is the indent width used when none is configured.
const DefaultIndent = 2

// MaxIndent caps the indent width the same way JSON.stringify does.
const MaxIndent = 10

// Options controls how a document is re-serialized.
type Options struct {
	// Indent is the number of spaces per nesting level. 0 means compact.
	Indent int
}

// Stats is attached to every Outcome, success or failure.
type Stats struct {
	Bytes    int           // UTF-8 length of the raw input
	Duration time.Duration // time spent inside Format
}

// Outcome is the tagged result of one formatting pass. Err is nil on success.
type Outcome struct {
	Formatted string
	Err       error
	Stats     Stats
}

// OK reports whether the pass succeeded.
func (o Outcome) OK() bool { return o.Err == nil }

// Message returns the user-facing error text, or "" on success.
func (o Outcome) Message() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}

// Format parses raw as any JSON value and re-serializes it using opts.Indent.
// Blank input is not an error: it yields an empty Success. Parse failures are
// returned inside the Outcome, never as a panic.
func Format(raw string, opts Options) Outcome {
	start := time.Now()
	bytes := len(raw)
	done := func(formatted string, err error) Outcome {
		return Outcome{
			Formatted: formatted,
			Err:       err,
			Stats:     Stats{Bytes: bytes, Duration: time.Since(start)},
		}
	}

	if strings.TrimSpace(raw) == "" {
		return done("", nil)
	}

	root, err := parse(raw)
	if err != nil {
		return done("", err)
	}
	return done(encode(root, clampIndent(opts.Indent)), nil)
}

func clampIndent(n int) int {
	if n < 0 {
		return 0
	}
	if n > MaxIndent {
		return MaxIndent
	}
	return n
}
