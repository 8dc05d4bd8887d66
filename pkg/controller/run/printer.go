package run

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/projectlint/projectlint/pkg/finding"
	"github.com/projectlint/projectlint/pkg/rule"
)

type colorFunc func(a ...any) string

// Printer writes a line per finding.
// Severities are colored only when stdout is a terminal.
type Printer struct {
	stdout io.Writer
	red    colorFunc
	yellow colorFunc
	cyan   colorFunc
}

func NewPrinter(stdout io.Writer) *Printer {
	tty := isTerminal(stdout)
	newColor := func(attr color.Attribute) colorFunc {
		c := color.New(attr)
		if !tty {
			c.DisableColor()
		}
		return c.SprintFunc()
	}
	return &Printer{
		stdout: stdout,
		red:    newColor(color.FgRed),
		yellow: newColor(color.FgYellow),
		cyan:   newColor(color.FgCyan),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (p *Printer) Emit(f *finding.Finding) {
	fmt.Fprintf(p.stdout, "%s: %s: %s\n", p.severity(f.Severity), f.Location(), f.Message)
}

func (p *Printer) Close(*rule.Result) error {
	return nil
}

func (p *Printer) severity(s finding.Severity) string {
	switch s {
	case finding.Error:
		return p.red(s.String())
	case finding.Warning:
		return p.yellow(s.String())
	case finding.Info:
		return p.cyan(s.String())
	default:
		return s.String()
	}
}
