package document_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/projectlint/projectlint/pkg/document"
)

func TestParseWorkflow_triggers(t *testing.T) { //nolint:funlen
	t.Parallel()
	data := []struct {
		name    string
		content string
		exp     document.Triggers
	}{
		{
			name:    "string",
			content: "on: push\n",
			exp:     document.Triggers{"push": {}},
		},
		{
			name:    "comma separated string",
			content: "on: push, pull_request\n",
			exp:     document.Triggers{"push": {}, "pull_request": {}},
		},
		{
			name:    "list",
			content: "on: [push, pull_request]\n",
			exp:     document.Triggers{"push": {}, "pull_request": {}},
		},
		{
			name: "mapping",
			content: `on:
  push:
    branches: [main]
  pull_request:
`,
			exp: document.Triggers{
				"push":         {"branches": []any{"main"}},
				"pull_request": {},
			},
		},
		{
			name: "boolean key",
			content: `true:
  push:
  workflow_dispatch: {}
`,
			exp: document.Triggers{"push": {}, "workflow_dispatch": {}},
		},
		{
			name:    "quoted on",
			content: "\"on\": [push]\n",
			exp:     document.Triggers{"push": {}},
		},
		{
			name:    "no trigger",
			content: "name: test\n",
			exp:     document.Triggers{},
		},
		{
			name:    "false key is not a trigger",
			content: "false: [push]\n",
			exp:     document.Triggers{},
		},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			wf, err := document.ParseWorkflow("test.yml", []byte(d.content))
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(d.exp, wf.Triggers); diff != "" {
				t.Fatal(diff)
			}
		})
	}
}

func TestParseWorkflow_jobs(t *testing.T) { //nolint:funlen
	t.Parallel()
	content := `name: test
on: push
jobs:
  test:
    runs-on: ubuntu-latest
    strategy:
      matrix:
        php: [8.2, "8.3", '8.4']
        os: ${{ fromJSON(needs.setup.outputs.os) }}
        include:
          - php: "8.1"
    steps:
      - uses: actions/checkout@v4
      - run: vendor/bin/phpunit
        name: test
      - name: multi line
        run: |
          composer install
          vendor/bin/phpstan
  build:
    runs-on: [self-hosted, linux]
  group:
    runs-on:
      group: large
      labels: ubuntu-24.04
`
	wf, err := document.ParseWorkflow("test.yml", []byte(content))
	if err != nil {
		t.Fatal(err)
	}
	exp := &document.Workflow{
		Path:     "test.yml",
		Name:     "test",
		Triggers: document.Triggers{"push": {}},
		Jobs: []*document.Job{
			{
				ID:     "test",
				RunsOn: []string{"ubuntu-latest"},
				Matrix: []*document.MatrixAxis{
					{Key: "php", IsList: true, Values: []string{"8.2", "8.3", "8.4"}},
					{Key: "os"},
					{Key: "include", IsList: true, Values: []string{}},
				},
				Steps: []*document.Step{
					{Uses: "actions/checkout@v4"},
					{Name: "test", Run: "vendor/bin/phpunit"},
					{Name: "multi line", Run: "composer install\nvendor/bin/phpstan\n"},
				},
			},
			{
				ID:     "build",
				RunsOn: []string{"self-hosted", "linux"},
			},
			{
				ID:     "group",
				RunsOn: []string{"ubuntu-24.04"},
			},
		},
	}
	if diff := cmp.Diff(exp, wf); diff != "" {
		t.Fatal(diff)
	}
}

func TestParseWorkflow_empty(t *testing.T) {
	t.Parallel()
	wf, err := document.ParseWorkflow("empty.yml", nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(wf.Jobs) != 0 || len(wf.Triggers) != 0 {
		t.Errorf("wanted an empty workflow, got %+v", wf)
	}
}

func TestParseWorkflow_invalid(t *testing.T) {
	t.Parallel()
	data := []struct {
		name    string
		content string
	}{
		{name: "syntax error", content: "jobs:\n  test: [\n"},
		{name: "top level list", content: "- a\n- b\n"},
		{name: "jobs is a list", content: "jobs:\n  - test\n"},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			if _, err := document.ParseWorkflow("test.yml", []byte(d.content)); err == nil {
				t.Fatal("error must be returned")
			}
		})
	}
}
