package rules_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/projectlint/projectlint/pkg/controller/rules"
)

func TestController_List(t *testing.T) {
	t.Parallel()
	data := []struct {
		name     string
		template string
		first    string
		isErr    bool
	}{
		{
			name:  "default",
			first: "composer-dev-tools\tcomposer.json requires the expected versions of dev tools",
		},
		{
			name:     "custom template",
			template: "{{.Name}}",
			first:    "composer-dev-tools",
		},
		{
			name:     "invalid template",
			template: "{{.Name",
			isErr:    true,
		},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			buf := &bytes.Buffer{}
			err := rules.New(buf, &rules.Param{LineTemplate: d.template}).List()
			if d.isErr {
				if err == nil {
					t.Fatal("error must be returned")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
			if len(lines) != 11 {
				t.Fatalf("wanted 11 rules, got %d", len(lines))
			}
			if lines[0] != d.first {
				t.Fatalf("wanted %q, got %q", d.first, lines[0])
			}
		})
	}
}
