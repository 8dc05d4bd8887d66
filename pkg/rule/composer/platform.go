package composer

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/projectlint/projectlint/pkg/finding"
	"github.com/projectlint/projectlint/pkg/rule"
)

const platformName = "composer-platform"

func init() { //nolint:gochecknoinits
	rule.Register(&rule.Registration{
		Name:        platformName,
		Description: "config.platform.php in composer.json is within the oldest supported PHP release line",
		New:         newPlatform,
	})
}

func newPlatform(env *rule.Env) rule.Rule {
	expected := "~" + env.Config.Runtime.Stable[0]
	return rule.NewFileRule(env, platformName, []string{manifestFile}, func(file string) ([]*finding.Finding, error) {
		constraint, err := semver.NewConstraint(expected)
		if err != nil {
			return nil, fmt.Errorf("parse the expected platform version as a constraint: %w", err)
		}
		m, err := env.Documents.Manifest(file)
		if err != nil {
			return nil, err //nolint:wrapcheck
		}
		v, ok := m.StringValue("config", "platform", "php")
		if !ok {
			return nil, nil
		}
		pos := finding.Path("config.platform.php")
		ver, err := semver.NewVersion(v)
		if err != nil {
			return []*finding.Finding{{
				Rule:     platformName,
				Severity: finding.Warning,
				Message:  fmt.Sprintf("%s is not a valid version, should be %s", v, expected),
				File:     file,
				Position: pos,
			}}, nil
		}
		if constraint.Check(ver) {
			return nil, nil
		}
		return []*finding.Finding{{
			Rule:     platformName,
			Severity: finding.Warning,
			Message:  fmt.Sprintf("should be %s, is %s", expected, v),
			File:     file,
			Position: pos,
		}}, nil
	})
}
