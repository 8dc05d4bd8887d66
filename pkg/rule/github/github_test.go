package github_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/projectlint/projectlint/pkg/finding"
	_ "github.com/projectlint/projectlint/pkg/rule/github"
	"github.com/projectlint/projectlint/pkg/rule/ruletest"
)

const workflowPath = ".github/workflows/test.yml"

func TestWorkflowRules(t *testing.T) { //nolint:funlen,maintidx
	t.Parallel()
	file := ruletest.Path(workflowPath)
	data := []struct {
		name     string
		rule     string
		workflow string
		exp      []*finding.Finding
	}{
		{
			name:     "on: push and pull_request without branches",
			rule:     "github-actions-on",
			workflow: "on: [push, pull_request]\n",
			exp: []*finding.Finding{
				{
					Rule:     "github-actions-on",
					Severity: finding.Error,
					Message:  "If an action is triggered by both push and pull_request, it should have a 'branches' filter to avoid running twice",
					File:     file,
				},
			},
		},
		{
			name: "on: boolean key",
			rule: "github-actions-on",
			workflow: `true:
  push:
    tags: ["v*"]
  pull_request:
`,
			exp: []*finding.Finding{
				{
					Rule:     "github-actions-on",
					Severity: finding.Error,
					Message:  "If an action is triggered by both push and pull_request, it should have a 'branches' filter to avoid running twice",
					File:     file,
				},
			},
		},
		{
			name: "on: push with branches",
			rule: "github-actions-on",
			workflow: `on:
  push:
    branches: [main]
  pull_request:
`,
		},
		{
			name:     "on: push only",
			rule:     "github-actions-on",
			workflow: "on: push\n",
		},
		{
			name: "runs-on",
			rule: "github-actions-runs-on",
			workflow: `jobs:
  test:
    runs-on: ubuntu-latest
  build:
    runs-on: [self-hosted, linux]
  mac:
    runs-on: [macos-latest, arm64]
  win:
    runs-on: windows-latest
  other:
    runs-on: fedora-latest
  pinned:
    runs-on: ubuntu-24.04
`,
			exp: []*finding.Finding{
				{Rule: "github-actions-runs-on", Severity: finding.Warning, Message: "ubuntu-latest is not recommended, use ubuntu-24.04", File: file, Position: finding.Path("jobs.test.runs-on")},
				{Rule: "github-actions-runs-on", Severity: finding.Warning, Message: "macos-latest is not recommended, use macos-14", File: file, Position: finding.Path("jobs.mac.runs-on")},
				{Rule: "github-actions-runs-on", Severity: finding.Warning, Message: "windows-latest is not recommended, use windows-2022", File: file, Position: finding.Path("jobs.win.runs-on")},
				{Rule: "github-actions-runs-on", Severity: finding.Warning, Message: "fedora-latest is not recommended, use a pinned runner image", File: file, Position: finding.Path("jobs.other.runs-on")},
			},
		},
		{
			name: "php versions: deprecated version",
			rule: "github-actions-php-versions",
			workflow: `jobs:
  test:
    strategy:
      matrix:
        php: ["7.4", "8.2", "8.3", "8.4"]
`,
			exp: []*finding.Finding{
				{Rule: "github-actions-php-versions", Severity: finding.Error, Message: "PHP 7.4 is deprecated", File: file, Position: finding.Path("jobs.test.strategy.matrix.php")},
			},
		},
		{
			name: "php versions: missing versions",
			rule: "github-actions-php-versions",
			workflow: `jobs:
  test:
    strategy:
      matrix:
        php-version: [8.1.2, 8.2]
`,
			exp: []*finding.Finding{
				{Rule: "github-actions-php-versions", Severity: finding.Error, Message: "PHP 8.1.2 is deprecated", File: file, Position: finding.Path("jobs.test.strategy.matrix.php-version")},
				{Rule: "github-actions-php-versions", Severity: finding.Error, Message: "PHP 8.3 is not tested", File: file, Position: finding.Path("jobs.test.strategy.matrix.php-version")},
				{Rule: "github-actions-php-versions", Severity: finding.Info, Message: "PHP 8.4 is not tested", File: file, Position: finding.Path("jobs.test.strategy.matrix.php-version")},
			},
		},
		{
			name: "php versions: single version",
			rule: "github-actions-php-versions",
			workflow: `jobs:
  test:
    strategy:
      matrix:
        php: ["8.2"]
`,
		},
		{
			name: "php versions: not a version matrix",
			rule: "github-actions-php-versions",
			workflow: `jobs:
  test:
    strategy:
      matrix:
        php-extensions: [intl, mbstring]
        os: [ubuntu-24.04, windows-2022]
        php: ${{ fromJSON(needs.setup.outputs.php) }}
`,
		},
		{
			name: "action versions",
			rule: "github-actions-action-versions",
			workflow: `jobs:
  test:
    steps:
      - uses: actions/checkout@v3
      - run: composer install
      - uses: shivammathur/setup-php
      - uses: actions/cache@v4
      - uses: ./.github/actions/local
      - uses: php-actions/composer@8a65f0d3c6a1d17ca4800491a40b85756a4c3c56
`,
			exp: []*finding.Finding{
				{Rule: "github-actions-action-versions", Severity: finding.Error, Message: "actions/checkout should be v4, is v3", File: file, Position: finding.Path("jobs.test.steps[0].uses")},
				{Rule: "github-actions-action-versions", Severity: finding.Error, Message: "shivammathur/setup-php should be v2, is unpinned", File: file, Position: finding.Path("jobs.test.steps[2].uses")},
				{Rule: "github-actions-action-versions", Severity: finding.Error, Message: "php-actions/composer should be v6, is 8a65f0d3c6a1d17ca4800491a40b85756a4c3c56", File: file, Position: finding.Path("jobs.test.steps[5].uses")},
			},
		},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			env, _ := ruletest.NewEnv(t, map[string]string{workflowPath: d.workflow})
			got := ruletest.Check(t, env, d.rule)
			if diff := cmp.Diff(d.exp, got); diff != "" {
				t.Fatal(diff)
			}
		})
	}
}

func TestWorkflowRules_inactive(t *testing.T) {
	t.Parallel()
	env, _ := ruletest.NewEnv(t, map[string]string{
		"composer.json":      `{}`,
		"workflows/test.yml": "on: push\n",
		"node_modules/x/.github/workflows/test.yml": "on: push\n",
	})
	for _, name := range []string{
		"github-actions-on",
		"github-actions-runs-on",
		"github-actions-php-versions",
		"github-actions-action-versions",
		"github-actions-vendored-tools",
	} {
		if ruletest.New(t, env, name).Active() {
			t.Errorf("%s must be inactive", name)
		}
	}
}

func TestVendoredTools(t *testing.T) { //nolint:funlen
	t.Parallel()
	data := []struct {
		name     string
		files    map[string]string
		inactive bool
		exp      []*finding.Finding
	}{
		{
			name: "unused tools",
			files: map[string]string{
				"composer.json": `{"require-dev": {
  "phpunit/phpunit": "^11.0",
  "squizlabs/php_codesniffer": "^3.10",
  "vimeo/psalm": "^5.0",
  "mockery/mockery": "^1.6"
}}`,
				".github/workflows/test.yml": `jobs:
  test:
    steps:
      - uses: actions/checkout@v4
      - run: vendor/bin/phpunit
`,
				".github/workflows/lint.yaml": `jobs:
  lint:
    steps:
      - run: |
          composer install
          vendor/bin/phpcbf --dry-run
`,
			},
			exp: []*finding.Finding{
				{
					Rule:     "github-actions-vendored-tools",
					Severity: finding.Warning,
					Message:  "vimeo/psalm is vendored but not used in a workflow",
					File:     ruletest.Path("composer.json"),
					Position: finding.Path("require-dev.vimeo/psalm"),
				},
			},
		},
		{
			name: "no require-dev",
			files: map[string]string{
				"composer.json":              `{"require": {"php": "^8.2"}}`,
				".github/workflows/test.yml": "on: push\n",
			},
		},
		{
			name: "no workflow",
			files: map[string]string{
				"composer.json": `{"require-dev": {"vimeo/psalm": "^5.0"}}`,
			},
			inactive: true,
		},
		{
			name: "composer.json isn't at the root",
			files: map[string]string{
				"app/composer.json":          `{"require-dev": {"vimeo/psalm": "^5.0"}}`,
				".github/workflows/test.yml": "on: push\n",
			},
			inactive: true,
		},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			env, _ := ruletest.NewEnv(t, d.files)
			r := ruletest.New(t, env, "github-actions-vendored-tools")
			if r.Active() == d.inactive {
				t.Fatalf("Active: wanted %v", !d.inactive)
			}
			got := ruletest.Check(t, env, "github-actions-vendored-tools")
			if diff := cmp.Diff(d.exp, got); diff != "" {
				t.Fatal(diff)
			}
		})
	}
}

func TestWorkflowRules_malformed(t *testing.T) {
	t.Parallel()
	env, _ := ruletest.NewEnv(t, map[string]string{
		"composer.json":              `{"require-dev": {"vimeo/psalm": "^5.0"}}`,
		".github/workflows/test.yml": "jobs:\n  - test\n",
	})
	for _, name := range []string{"github-actions-on", "github-actions-vendored-tools"} {
		r := ruletest.New(t, env, name)
		failed := false
		for _, err := range r.Check() {
			if err != nil {
				failed = true
			}
		}
		if !failed {
			t.Errorf("%s must fail on a malformed workflow", name)
		}
	}
}
