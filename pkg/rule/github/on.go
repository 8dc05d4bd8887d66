package github

import (
	"github.com/projectlint/projectlint/pkg/document"
	"github.com/projectlint/projectlint/pkg/finding"
	"github.com/projectlint/projectlint/pkg/rule"
)

const onName = "github-actions-on"

func init() { //nolint:gochecknoinits
	rule.Register(&rule.Registration{
		Name:        onName,
		Description: "workflows triggered by both push and pull_request filter push by branches",
		New:         newOn,
	})
}

func newOn(env *rule.Env) rule.Rule {
	return newWorkflowRule(env, onName, func(wf *document.Workflow) []*finding.Finding {
		if !wf.Triggers.Has("push") || !wf.Triggers.Has("pull_request") {
			return nil
		}
		if _, ok := wf.Triggers["push"]["branches"]; ok {
			return nil
		}
		return []*finding.Finding{{
			Rule:     onName,
			Severity: finding.Error,
			Message:  "If an action is triggered by both push and pull_request, it should have a 'branches' filter to avoid running twice",
			File:     wf.Path,
		}}
	})
}
