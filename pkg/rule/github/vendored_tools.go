package github

import (
	"fmt"
	"iter"
	"path/filepath"
	"strings"

	"github.com/projectlint/projectlint/pkg/document"
	"github.com/projectlint/projectlint/pkg/finding"
	"github.com/projectlint/projectlint/pkg/rule"
)

const vendoredToolsName = "github-actions-vendored-tools"

func init() { //nolint:gochecknoinits
	rule.Register(&rule.Registration{
		Name:        vendoredToolsName,
		Description: "dev tools required in composer.json are run in a workflow",
		New:         newVendoredTools,
	})
}

// vendoredTools checks the root composer.json against every workflow,
// so it isn't a FileRule.
type vendoredTools struct {
	env       *rule.Env
	manifest  string
	workflows []string
}

func newVendoredTools(env *rule.Env) rule.Rule {
	return &vendoredTools{
		env:       env,
		manifest:  filepath.Join(env.Project.Root, "composer.json"),
		workflows: env.Find(workflowPatterns()...),
	}
}

func (r *vendoredTools) Name() string {
	return vendoredToolsName
}

func (r *vendoredTools) Active() bool {
	return len(r.workflows) > 0 && r.env.Documents.Exists(r.manifest)
}

func (r *vendoredTools) Check() iter.Seq2[*finding.Finding, error] {
	return func(yield func(*finding.Finding, error) bool) {
		m, err := r.env.Documents.Manifest(r.manifest)
		if err != nil {
			yield(nil, fmt.Errorf("check %s: %w", r.manifest, err))
			return
		}
		requireDev, ok := m.StringMap("require-dev")
		if !ok {
			return
		}
		runs, err := r.runs()
		if err != nil {
			yield(nil, err)
			return
		}
		binaries := r.env.Config.Composer.ToolBinaries
		for _, tool := range document.SortedKeys(requireDev) {
			bins, ok := binaries[tool]
			if !ok || used(runs, bins) {
				continue
			}
			if !yield(&finding.Finding{
				Rule:     vendoredToolsName,
				Severity: finding.Warning,
				Message:  tool + " is vendored but not used in a workflow",
				File:     r.manifest,
				Position: finding.Path("require-dev." + tool),
			}, nil) {
				return
			}
		}
	}
}

// runs returns the run commands of all workflow steps.
func (r *vendoredTools) runs() ([]string, error) {
	var runs []string
	for _, file := range r.workflows {
		wf, err := r.env.Documents.Workflow(file)
		if err != nil {
			return nil, fmt.Errorf("check %s: %w", file, err)
		}
		for _, job := range wf.Jobs {
			for _, step := range job.Steps {
				if step.Run != "" {
					runs = append(runs, step.Run)
				}
			}
		}
	}
	return runs, nil
}

func used(runs, binaries []string) bool {
	for _, run := range runs {
		for _, bin := range binaries {
			if strings.Contains(run, bin) {
				return true
			}
		}
	}
	return false
}
