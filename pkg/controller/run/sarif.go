package run

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/projectlint/projectlint/pkg/finding"
	"github.com/projectlint/projectlint/pkg/rule"
	"github.com/projectlint/projectlint/pkg/sarif"
)

type sarifOutput struct {
	stdout   io.Writer
	version  string
	findings []*finding.Finding
}

func (o *sarifOutput) Emit(f *finding.Finding) {
	o.findings = append(o.findings, f)
}

// Close writes findings in SARIF format.
func (o *sarifOutput) Close(*rule.Result) error {
	log := sarif.Log{
		Schema:  sarif.Schema,
		Version: sarif.Version,
		Runs: []sarif.Run{
			{
				Tool: sarif.Tool{
					Driver: sarif.Driver{
						Name:           "projectlint",
						InformationURI: "https://github.com/projectlint/projectlint",
						Version:        o.version,
						Rules:          buildSARIFRules(rule.Registrations()),
					},
				},
				Results: buildSARIFResults(o.findings),
			},
		},
	}

	encoder := json.NewEncoder(o.stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(log); err != nil {
		return fmt.Errorf("encode SARIF: %w", err)
	}
	return nil
}

func buildSARIFRules(regs []*rule.Registration) []sarif.Rule {
	rules := make([]sarif.Rule, len(regs))
	for i, reg := range regs {
		rules[i] = sarif.Rule{
			ID: reg.Name,
			ShortDescription: sarif.Message{
				Text: reg.Description,
			},
		}
	}
	return rules
}

func buildSARIFResults(findings []*finding.Finding) []sarif.Result {
	results := make([]sarif.Result, 0, len(findings))
	for _, f := range findings {
		results = append(results, sarif.Result{
			RuleID:    f.Rule,
			Level:     sarifLevel(f.Severity),
			Message:   sarif.Message{Text: f.Message},
			Locations: sarifLocations(f),
		})
	}
	return results
}

func sarifLevel(s finding.Severity) string {
	switch s {
	case finding.Error:
		return "error"
	case finding.Warning:
		return "warning"
	default:
		return "note"
	}
}

func sarifLocations(f *finding.Finding) []sarif.Location {
	if f.File == "" {
		return nil
	}
	loc := sarif.Location{
		PhysicalLocation: &sarif.PhysicalLocation{
			ArtifactLocation: sarif.ArtifactLocation{
				URI: filepath.ToSlash(f.File),
			},
		},
	}
	if pos := f.Position; pos != nil {
		if pos.Line > 0 {
			loc.PhysicalLocation.Region = &sarif.Region{
				StartLine:   pos.Line,
				StartColumn: pos.Column,
			}
		}
		if pos.Path != "" {
			loc.LogicalLocations = []sarif.LogicalLocation{{FullyQualifiedName: pos.Path}}
		}
	}
	return []sarif.Location{loc}
}
