package github

import (
	"strings"

	"github.com/projectlint/projectlint/pkg/document"
	"github.com/projectlint/projectlint/pkg/finding"
	"github.com/projectlint/projectlint/pkg/rule"
)

const runsOnName = "github-actions-runs-on"

func init() { //nolint:gochecknoinits
	rule.Register(&rule.Registration{
		Name:        runsOnName,
		Description: "jobs run on pinned runner images instead of floating aliases",
		New:         newRunsOn,
	})
}

func newRunsOn(env *rule.Env) rule.Rule {
	runners := env.Config.GitHubActions.Runners
	return newWorkflowRule(env, runsOnName, func(wf *document.Workflow) []*finding.Finding {
		var findings []*finding.Finding
		for _, job := range wf.Jobs {
			for _, label := range job.RunsOn {
				msg := ""
				if pin, ok := runners[label]; ok {
					msg = label + " is not recommended, use " + pin
				} else if strings.HasSuffix(label, "-latest") {
					msg = label + " is not recommended, use a pinned runner image"
				}
				if msg == "" {
					continue
				}
				findings = append(findings, &finding.Finding{
					Rule:     runsOnName,
					Severity: finding.Warning,
					Message:  msg,
					File:     wf.Path,
					Position: jobPosition(job, "runs-on"),
				})
			}
		}
		return findings
	})
}
