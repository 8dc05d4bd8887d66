// Package rules implements the 'projectlint rules' command.
package rules

import (
	"context"
	"fmt"
	"io"

	"github.com/projectlint/projectlint/pkg/cli/flag"
	"github.com/projectlint/projectlint/pkg/controller/rules"
	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/logrus-util/log"
	"github.com/urfave/cli/v3"
)

type runner struct {
	logE   *logrus.Entry
	stdout io.Writer
}

func New(logE *logrus.Entry, globalFlags *flag.GlobalFlags, stdout io.Writer) *cli.Command {
	r := &runner{
		logE:   logE,
		stdout: stdout,
	}
	return r.Command(globalFlags)
}

func (r *runner) Command(globalFlags *flag.GlobalFlags) *cli.Command {
	param := &rules.Param{}
	return &cli.Command{
		Name:  "rules",
		Usage: "List rules",
		Description: `List rules with their description.

$ projectlint rules

Custom output format using Go template:
$ projectlint rules --line-template "{{.Name}}"

Available template fields:
  Name        - Rule name (e.g., composer-lock)
  Description - What the rule checks
`,
		Action: func(_ context.Context, _ *cli.Command) error {
			if err := log.Set(r.logE, globalFlags.LogLevel, globalFlags.LogColor); err != nil {
				return fmt.Errorf("configure logger: %w", err)
			}
			return rules.New(r.stdout, param).List() //nolint:wrapcheck
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "line-template",
				Usage:       "Go text/template format for each line",
				Destination: &param.LineTemplate,
			},
		},
	}
}
