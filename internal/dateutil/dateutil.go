// Package dateutil resolves the publication date shown on standalone pages.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date value or format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxDateFormatLength limits format string length.
const MaxDateFormatLength = 50

// DefaultDateFormat is used when a source is given without a format.
const DefaultDateFormat = "YYYY-MM-DD"

// isoLayout is the machine-readable form carried by <time datetime>.
const isoLayout = "2006-01-02"

// Date sources.
const (
	SourceNow      = "auto"  // time of rendering
	SourceModified = "mtime" // modification time of the Markdown file
)

// Tokens, longest first so greedy matching picks MMMM over MM.
var tokens = [...]struct{ token, layout string }{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// Presets are named formats.
var Presets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
}

// Stamp is a resolved date: Text for readers, ISO for the datetime
// attribute. ISO is empty for literal values that are not ISO dates.
type Stamp struct {
	Text string
	ISO  string
}

// IsZero reports whether no date was requested.
func (s Stamp) IsZero() bool {
	return s.Text == ""
}

// Layout converts a token format (YYYY, YY, MMMM, MMM, MM, M, DD, D) to a Go
// time layout. Text in brackets is copied literally, as is anything that is
// not a token.
func Layout(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var b strings.Builder
	b.Grow(len(format) + 8)

	for rest := format; rest != ""; {
		if rest[0] == '[' {
			end := strings.IndexByte(rest, ']')
			if end < 0 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, len(format)-len(rest))
			}
			b.WriteString(rest[1:end])
			rest = rest[end+1:]
			continue
		}
		n := 1
		lit := rest[:1]
		for _, t := range tokens {
			if strings.HasPrefix(rest, t.token) {
				n, lit = len(t.token), t.layout
				break
			}
		}
		b.WriteString(lit)
		rest = rest[n:]
	}

	return b.String(), nil
}

// Resolve turns a date value into a Stamp:
//
//   - "" yields the zero Stamp
//   - "auto" or "auto:FORMAT" formats now
//   - "mtime" or "mtime:FORMAT" formats modified
//   - an ISO date (2025-01-31) is kept as both text and datetime
//   - anything else is shown as is, without a datetime
//
// FORMAT is a token format or a preset name (iso, european, us, long).
func Resolve(value string, now, modified time.Time) (Stamp, error) {
	if value == "" {
		return Stamp{}, nil
	}

	source, format, hasFormat := strings.Cut(value, ":")
	var t time.Time
	switch strings.ToLower(source) {
	case SourceNow:
		t = now
	case SourceModified:
		t = modified
	default:
		if d, err := time.Parse(isoLayout, value); err == nil {
			return Stamp{Text: value, ISO: d.Format(isoLayout)}, nil
		}
		return Stamp{Text: value}, nil
	}

	if !hasFormat {
		format = DefaultDateFormat
	} else if format == "" {
		return Stamp{}, fmt.Errorf("%w: format cannot be empty after %q", ErrInvalidDateFormat, source+":")
	}
	if preset, ok := Presets[strings.ToLower(format)]; ok {
		format = preset
	}

	layout, err := Layout(format)
	if err != nil {
		return Stamp{}, err
	}
	return Stamp{Text: t.Format(layout), ISO: t.Format(isoLayout)}, nil
}
