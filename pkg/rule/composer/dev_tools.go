package composer

import (
	"fmt"

	"github.com/projectlint/projectlint/pkg/document"
	"github.com/projectlint/projectlint/pkg/finding"
	"github.com/projectlint/projectlint/pkg/rule"
)

const devToolsName = "composer-dev-tools"

func init() { //nolint:gochecknoinits
	rule.Register(&rule.Registration{
		Name:        devToolsName,
		Description: "composer.json requires the expected versions of dev tools",
		New:         newDevTools,
	})
}

func newDevTools(env *rule.Env) rule.Rule {
	pins := env.Config.Composer.DevTools
	return rule.NewFileRule(env, devToolsName, []string{manifestFile}, func(file string) ([]*finding.Finding, error) {
		m, err := env.Documents.Manifest(file)
		if err != nil {
			return nil, err //nolint:wrapcheck
		}
		requireDev, ok := m.StringMap("require-dev")
		if !ok {
			return []*finding.Finding{{
				Rule:     devToolsName,
				Severity: finding.Warning,
				Message:  "No dev dependencies are required, should at least require phpunit",
				File:     file,
			}}, nil
		}
		var findings []*finding.Finding
		for _, tool := range document.SortedKeys(pins) {
			pin := pins[tool]
			v, ok := requireDev[tool]
			if !ok {
				findings = append(findings, &finding.Finding{
					Rule:     devToolsName,
					Severity: finding.Warning,
					Message:  tool + " should be required",
					File:     file,
					Position: finding.Path("require-dev"),
				})
				continue
			}
			if v != pin {
				findings = append(findings, &finding.Finding{
					Rule:     devToolsName,
					Severity: finding.Warning,
					Message:  fmt.Sprintf("should be %s, is %s", pin, v),
					File:     file,
					Position: finding.Path("require-dev." + tool),
				})
			}
		}
		return findings, nil
	})
}
