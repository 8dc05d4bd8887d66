package github

import (
	"fmt"
	"strings"

	"github.com/projectlint/projectlint/pkg/document"
	"github.com/projectlint/projectlint/pkg/finding"
	"github.com/projectlint/projectlint/pkg/rule"
)

const actionVersionsName = "github-actions-action-versions"

func init() { //nolint:gochecknoinits
	rule.Register(&rule.Registration{
		Name:        actionVersionsName,
		Description: "well known actions are pinned to their expected tag",
		New:         newActionVersions,
	})
}

func newActionVersions(env *rule.Env) rule.Rule {
	actions := env.Config.GitHubActions.Actions
	return newWorkflowRule(env, actionVersionsName, func(wf *document.Workflow) []*finding.Finding {
		var findings []*finding.Finding
		for _, job := range wf.Jobs {
			for i, step := range job.Steps {
				if step.Uses == "" {
					continue
				}
				action, ref, pinned := strings.Cut(step.Uses, "@")
				tag, ok := actions[action]
				if !ok || (pinned && ref == tag) {
					continue
				}
				if !pinned {
					ref = "unpinned"
				}
				findings = append(findings, &finding.Finding{
					Rule:     actionVersionsName,
					Severity: finding.Error,
					Message:  fmt.Sprintf("%s should be %s, is %s", action, tag, ref),
					File:     wf.Path,
					Position: jobPosition(job, "steps[%d].uses", i),
				})
			}
		}
		return findings
	})
}
