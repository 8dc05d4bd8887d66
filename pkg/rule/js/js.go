// Package js provides rules for package.json.
package js

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-version"
	"github.com/projectlint/projectlint/pkg/document"
	"github.com/projectlint/projectlint/pkg/finding"
	"github.com/projectlint/projectlint/pkg/rule"
)

const packageVersionsName = "js-package-versions"

func init() { //nolint:gochecknoinits
	rule.Register(&rule.Registration{
		Name:        packageVersionsName,
		Description: "package.json depends on recent versions of well known packages",
		New:         newPackageVersions,
	})
}

func newPackageVersions(env *rule.Env) rule.Rule {
	expected := env.Config.JS.Packages
	return rule.NewFileRule(env, packageVersionsName, []string{"package.json"}, func(file string) ([]*finding.Finding, error) {
		m, err := env.Documents.Manifest(file)
		if err != nil {
			return nil, err //nolint:wrapcheck
		}
		deps := dependencies(m)
		var findings []*finding.Finding
		for _, pkg := range document.SortedKeys(expected) {
			dep, ok := deps[pkg]
			if !ok || satisfies(dep.version, expected[pkg]) {
				continue
			}
			findings = append(findings, &finding.Finding{
				Rule:     packageVersionsName,
				Severity: finding.Warning,
				Message:  fmt.Sprintf("%s should be %s, is %s", pkg, expected[pkg], dep.version),
				File:     file,
				Position: finding.Path(dep.group + "." + pkg),
			})
		}
		return findings, nil
	})
}

type dependency struct {
	group   string
	version string
}

// dependencies merges dependencies and devDependencies.
// devDependencies win.
func dependencies(m *document.Manifest) map[string]*dependency {
	deps := map[string]*dependency{}
	for _, group := range []string{"dependencies", "devDependencies"} {
		versions, _ := m.StringMap(group)
		for pkg, v := range versions {
			deps[pkg] = &dependency{group: group, version: v}
		}
	}
	return deps
}

// satisfies reports whether actual starts with minimum
// or is at least minimum once range operators are removed.
func satisfies(actual, minimum string) bool {
	if strings.HasPrefix(actual, minimum) {
		return true
	}
	a, err := version.NewVersion(trimRange(actual))
	if err != nil {
		return false
	}
	b, err := version.NewVersion(trimRange(minimum))
	if err != nil {
		return false
	}
	return a.GreaterThanOrEqual(b)
}

func trimRange(s string) string {
	return strings.TrimLeft(strings.TrimSpace(s), "^~>=v ")
}
