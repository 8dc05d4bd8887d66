// Package rules lists the registered rules.
package rules

import (
	"fmt"
	"io"
	"text/template"

	"github.com/projectlint/projectlint/pkg/rule"
	_ "github.com/projectlint/projectlint/pkg/rule/all" // register rules
)

// DefaultLineTemplate prints a rule per line.
const DefaultLineTemplate = "{{.Name}}\t{{.Description}}"

type Controller struct {
	stdout io.Writer
	param  *Param
}

type Param struct {
	// LineTemplate is a text/template executed with each rule.Registration.
	LineTemplate string
}

func New(stdout io.Writer, param *Param) *Controller {
	return &Controller{
		stdout: stdout,
		param:  param,
	}
}

func (c *Controller) List() error {
	tmpl, err := c.parseTemplate()
	if err != nil {
		return err
	}
	for _, reg := range rule.Registrations() {
		if err := tmpl.Execute(c.stdout, reg); err != nil {
			return fmt.Errorf("render a rule: %w", err)
		}
		fmt.Fprintln(c.stdout)
	}
	return nil
}

func (c *Controller) parseTemplate() (*template.Template, error) {
	s := c.param.LineTemplate
	if s == "" {
		s = DefaultLineTemplate
	}
	tmpl, err := template.New("line").Parse(s)
	if err != nil {
		return nil, fmt.Errorf("parse line template: %w", err)
	}
	return tmpl, nil
}
