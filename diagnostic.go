package openair

import (
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
)

// DiagnosticKind classifies the ways an OpenAir document can be
// degraded without being rejected.
type DiagnosticKind string

const (
	UnresolvedAltitude DiagnosticKind = "unresolved-altitude"
	MissingCenter      DiagnosticKind = "missing-center"
	BadGeometry        DiagnosticKind = "bad-geometry"
	UnknownCommand     DiagnosticKind = "unknown-command"
	UnknownClass       DiagnosticKind = "unknown-class"
	BadArgument        DiagnosticKind = "bad-argument"
	Discontinuity      DiagnosticKind = "discontinuity"
	SkippedAirspace    DiagnosticKind = "skipped-airspace"
)

var (
	ErrEmptyDocument = errors.New("no airspace records in document")
	ErrMissingCenter = errors.New("no centre set with V X=")
)

// Diagnostic describes one degraded line. Line numbers are 1-based and
// relative to the whole document when the block came from a Collection.
type Diagnostic struct {
	Kind     DiagnosticKind `json:"kind"`
	Line     int            `json:"line"`
	Text     string         `json:"text"`
	Airspace string         `json:"airspace,omitempty"`
	Message  string         `json:"message"`
}

func (d Diagnostic) String() string {
	s := fmt.Sprintf("line %d: %s: %s", d.Line, d.Kind, d.Message)
	if d.Airspace != "" {
		s = d.Airspace + ": " + s
	}
	return s
}

// Report accumulates diagnostics, in document order.
type Report struct {
	Diagnostics []Diagnostic `json:"diagnostics"`
}

func (r *Report) add(d Diagnostic) {
	log.WithFields(log.Fields{
		"kind":     d.Kind,
		"line":     d.Line,
		"airspace": d.Airspace,
		"text":     d.Text,
	}).Warn(d.Message)
	r.Diagnostics = append(r.Diagnostics, d)
}

func (r *Report) merge(other Report) {
	r.Diagnostics = append(r.Diagnostics, other.Diagnostics...)
}

// Count returns the number of diagnostics of the given kind.
func (r Report) Count(kind DiagnosticKind) int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

func (r Report) Empty() bool {
	return len(r.Diagnostics) == 0
}

func (r Report) String() string {
	var sb strings.Builder
	for _, d := range r.Diagnostics {
		sb.WriteString(d.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// LineError is returned when a line holds geometry that cannot be
// projected; the airspace containing it is unusable.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d %#q: %s", e.Line, e.Text, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}
