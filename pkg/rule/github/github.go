// Package github provides rules for GitHub Actions workflows.
package github

import (
	"fmt"

	"github.com/projectlint/projectlint/pkg/document"
	"github.com/projectlint/projectlint/pkg/finding"
	"github.com/projectlint/projectlint/pkg/rule"
)

func workflowPatterns() []string {
	return []string{".github/workflows/*.yml", ".github/workflows/*.yaml"}
}

// newWorkflowRule returns a rule checking each workflow file.
func newWorkflowRule(env *rule.Env, name string, check func(wf *document.Workflow) []*finding.Finding) *rule.FileRule {
	return rule.NewFileRule(env, name, workflowPatterns(), func(file string) ([]*finding.Finding, error) {
		wf, err := env.Documents.Workflow(file)
		if err != nil {
			return nil, err //nolint:wrapcheck
		}
		return check(wf), nil
	})
}

func jobPosition(job *document.Job, format string, a ...any) *finding.Position {
	return finding.Path("jobs." + job.ID + "." + fmt.Sprintf(format, a...))
}
