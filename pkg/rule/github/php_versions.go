package github

import (
	"slices"
	"strings"

	"github.com/projectlint/projectlint/pkg/config"
	"github.com/projectlint/projectlint/pkg/document"
	"github.com/projectlint/projectlint/pkg/finding"
	"github.com/projectlint/projectlint/pkg/rule"
)

const phpVersionsName = "github-actions-php-versions"

func init() { //nolint:gochecknoinits
	rule.Register(&rule.Registration{
		Name:        phpVersionsName,
		Description: "test matrices cover every supported PHP version and no deprecated one",
		New:         newPHPVersions,
	})
}

func newPHPVersions(env *rule.Env) rule.Rule {
	runtime := env.Config.Runtime
	major, _, _ := strings.Cut(runtime.Stable[0], ".")
	return newWorkflowRule(env, phpVersionsName, func(wf *document.Workflow) []*finding.Finding {
		var findings []*finding.Finding
		for _, job := range wf.Jobs {
			for _, axis := range job.Matrix {
				if !isVersionMatrix(axis, runtime.Name, major) {
					continue
				}
				pos := jobPosition(job, "strategy.matrix.%s", axis.Key)
				for _, f := range checkVersions(runtime, axis.Values) {
					f.File = wf.Path
					f.Position = pos
					findings = append(findings, f)
				}
			}
		}
		return findings
	})
}

// isVersionMatrix reports whether a matrix axis lists several versions of the runtime.
func isVersionMatrix(axis *document.MatrixAxis, name, major string) bool {
	if !strings.HasPrefix(axis.Key, name) || !axis.IsList || len(axis.Values) < 2 {
		return false
	}
	return slices.ContainsFunc(axis.Values, func(v string) bool {
		return strings.HasPrefix(v, major)
	})
}

func checkVersions(runtime *config.Runtime, versions []string) []*finding.Finding {
	var findings []*finding.Finding
	for _, v := range versions {
		for _, deprecated := range runtime.Deprecated {
			if strings.HasPrefix(v, deprecated) {
				findings = append(findings, &finding.Finding{
					Rule:     phpVersionsName,
					Severity: finding.Error,
					Message:  "PHP " + v + " is deprecated",
				})
				break
			}
		}
	}
	for _, v := range runtime.Stable {
		if !slices.Contains(versions, v) {
			findings = append(findings, &finding.Finding{
				Rule:     phpVersionsName,
				Severity: finding.Error,
				Message:  "PHP " + v + " is not tested",
			})
		}
	}
	for _, v := range runtime.Unstable {
		if !slices.Contains(versions, v) {
			findings = append(findings, &finding.Finding{
				Rule:     phpVersionsName,
				Severity: finding.Info,
				Message:  "PHP " + v + " is not tested",
			})
		}
	}
	return findings
}
