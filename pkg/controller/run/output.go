package run

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/projectlint/projectlint/pkg/finding"
	"github.com/projectlint/projectlint/pkg/rule"
)

const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatSARIF = "sarif"
)

// output receives findings as they are reported.
// Close is called once after every rule has run.
type output interface {
	Emit(f *finding.Finding)
	Close(result *rule.Result) error
}

func (c *Controller) newOutput() (output, error) {
	switch c.param.Format {
	case "", FormatText:
		return NewPrinter(c.param.Stdout), nil
	case FormatJSON:
		return &jsonOutput{stdout: c.param.Stdout}, nil
	case FormatSARIF:
		return &sarifOutput{stdout: c.param.Stdout, version: c.param.Version}, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q: must be text, json, or sarif", c.param.Format)
	}
}

type jsonOutput struct {
	stdout   io.Writer
	findings []*finding.Finding
}

func (o *jsonOutput) Emit(f *finding.Finding) {
	o.findings = append(o.findings, f)
}

type jsonResult struct {
	Failed   bool                     `json:"failed"`
	Counts   map[finding.Severity]int `json:"counts"`
	Findings []*finding.Finding       `json:"findings"`
}

func (o *jsonOutput) Close(result *rule.Result) error {
	findings := o.findings
	if findings == nil {
		findings = []*finding.Finding{}
	}
	encoder := json.NewEncoder(o.stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(&jsonResult{
		Failed:   result.Failed,
		Counts:   result.Counts,
		Findings: findings,
	}); err != nil {
		return fmt.Errorf("encode findings as JSON: %w", err)
	}
	return nil
}
