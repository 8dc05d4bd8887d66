package composer

import (
	"fmt"

	"github.com/projectlint/projectlint/pkg/finding"
	"github.com/projectlint/projectlint/pkg/rule"
)

const requirePHPName = "composer-require-php"

func init() { //nolint:gochecknoinits
	rule.Register(&rule.Registration{
		Name:        requirePHPName,
		Description: "composer.json requires the oldest supported PHP version",
		New:         newRequirePHP,
	})
}

func newRequirePHP(env *rule.Env) rule.Rule {
	expected := "^" + env.Config.Runtime.Stable[0]
	return rule.NewFileRule(env, requirePHPName, []string{manifestFile}, func(file string) ([]*finding.Finding, error) {
		m, err := env.Documents.Manifest(file)
		if err != nil {
			return nil, err //nolint:wrapcheck
		}
		require, ok := m.StringMap("require")
		if !ok {
			return []*finding.Finding{{
				Rule:     requirePHPName,
				Severity: finding.Warning,
				Message:  "No dependencies are required, should at least require php",
				File:     file,
			}}, nil
		}
		v, ok := require["php"]
		if !ok {
			return []*finding.Finding{{
				Rule:     requirePHPName,
				Severity: finding.Warning,
				Message:  "PHP should be required",
				File:     file,
				Position: finding.Path("require"),
			}}, nil
		}
		if v == expected {
			return nil, nil
		}
		return []*finding.Finding{{
			Rule:     requirePHPName,
			Severity: finding.Warning,
			Message:  fmt.Sprintf("should be %s, is %s", expected, v),
			File:     file,
			Position: finding.Path("require.php"),
		}}, nil
	})
}
