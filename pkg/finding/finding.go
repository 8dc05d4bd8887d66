// Package finding defines the result record produced by lint rules.
// A finding carries a severity, a message and an optional location made of
// a file path and a position inside it.
package finding

import (
	"fmt"
	"strconv"
)

// Severity is the strictness of a finding.
// Only Error makes a run fail.
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "Info"
	case Warning:
		return "Warning"
	case Error:
		return "Error"
	default:
		return "Unknown"
	}
}

// MarshalText encodes the severity as its lower case name so JSON output is readable.
func (s Severity) MarshalText() ([]byte, error) {
	switch s {
	case Info:
		return []byte("info"), nil
	case Warning:
		return []byte("warning"), nil
	case Error:
		return []byte("error"), nil
	default:
		return nil, fmt.Errorf("unknown severity: %d", int(s))
	}
}

// Position locates a finding inside a file.
// Either Path (e.g. jobs.build.steps[2].uses) or Line is set.
type Position struct {
	Path   string `json:"path,omitempty"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
}

// Path returns a position pointing at a key path in a structured document.
func Path(p string) *Position {
	return &Position{Path: p}
}

// LineColumn returns a position pointing at a physical line and column.
func LineColumn(line, column int) *Position {
	return &Position{Line: line, Column: column}
}

func (p *Position) String() string {
	if p == nil {
		return ""
	}
	if p.Path != "" {
		return p.Path
	}
	if p.Line == 0 {
		return ""
	}
	if p.Column == 0 {
		return strconv.Itoa(p.Line)
	}
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// Finding is a single observation reported by a rule.
// Rule may be left empty by a rule; the runner fills it in.
type Finding struct {
	Rule     string    `json:"rule"`
	Severity Severity  `json:"severity"`
	Message  string    `json:"message"`
	File     string    `json:"file,omitempty"`
	Position *Position `json:"position,omitempty"`
}

// String formats the finding as `<Severity>: <file>:<position>: <message>`.
func (f *Finding) String() string {
	return fmt.Sprintf("%s: %s:%s: %s", f.Severity, f.File, f.Position, f.Message)
}

// Location returns `<file>:<position>`.
func (f *Finding) Location() string {
	return f.File + ":" + f.Position.String()
}
