// Package run implements 'projectlint run', which is also the default action of projectlint.
package run

import (
	"context"
	"fmt"
	"io"

	"github.com/projectlint/projectlint/pkg/cli/flag"
	"github.com/projectlint/projectlint/pkg/config"
	"github.com/projectlint/projectlint/pkg/controller/run"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/suzuki-shunsuke/logrus-util/log"
	"github.com/urfave/cli/v3"
)

type Flags struct {
	Verbose bool
	Format  string
	Disable []string
	Args    []string
}

type runner struct {
	logE        *logrus.Entry
	globalFlags *flag.GlobalFlags
	stdout      io.Writer
	version     string
}

func newRunner(logE *logrus.Entry, globalFlags *flag.GlobalFlags, stdout io.Writer, version string) *runner {
	return &runner{
		logE:        logE,
		globalFlags: globalFlags,
		stdout:      stdout,
		version:     version,
	}
}

// New returns the run command.
func New(logE *logrus.Entry, globalFlags *flag.GlobalFlags, stdout io.Writer, version string) *cli.Command {
	r := newRunner(logE, globalFlags, stdout, version)
	flags := &Flags{}
	return &cli.Command{
		Name:  "run",
		Usage: "Lint a project",
		Description: `Lint a project. If no argument is passed, the current directory is linted.

$ projectlint run

You can also pass the project directory.

$ projectlint run path/to/project

"projectlint run" can be omitted.

$ projectlint path/to/project

The exit code is 1 if an Error is reported.
Rules can be disabled by glob patterns.

$ projectlint run --disable composer-lock --disable 'github-actions-*'
`,
		Action:    r.actionFunc(flags),
		Flags:     r.flags(flags, false),
		Arguments: r.arguments(flags),
	}
}

// Root makes cmd lint a project when no subcommand is given.
// The lint flags are local to cmd so that subcommands don't inherit them.
func Root(cmd *cli.Command, logE *logrus.Entry, globalFlags *flag.GlobalFlags, stdout io.Writer, version string) *cli.Command {
	r := newRunner(logE, globalFlags, stdout, version)
	flags := &Flags{}
	cmd.Action = r.actionFunc(flags)
	cmd.Flags = append(cmd.Flags, r.flags(flags, true)...)
	cmd.Arguments = r.arguments(flags)
	return cmd
}

func (r *runner) actionFunc(flags *Flags) cli.ActionFunc {
	return func(ctx context.Context, _ *cli.Command) error {
		return r.action(ctx, flags)
	}
}

func (r *runner) flags(flags *Flags, local bool) []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "verbose",
			Aliases:     []string{"v"},
			Usage:       "Output debug logs",
			Local:       local,
			Destination: &flags.Verbose,
		},
		&cli.StringFlag{
			Name:        "format",
			Usage:       "Output format. One of text, json, and sarif",
			Value:       run.FormatText,
			Sources:     cli.EnvVars("PROJECTLINT_FORMAT"),
			Local:       local,
			Destination: &flags.Format,
		},
		&cli.StringSliceFlag{
			Name:        "disable",
			Aliases:     []string{"d"},
			Usage:       "A glob pattern of rule names to disable",
			Local:       local,
			Destination: &flags.Disable,
		},
	}
}

func (r *runner) arguments(flags *Flags) []cli.Argument {
	return []cli.Argument{
		&cli.StringArgs{
			Name:        "project",
			Max:         1,
			Destination: &flags.Args,
		},
	}
}

func (r *runner) action(ctx context.Context, flags *Flags) error {
	level := r.globalFlags.LogLevel
	if flags.Verbose {
		level = "debug"
	}
	if err := log.Set(r.logE, level, r.globalFlags.LogColor); err != nil {
		return fmt.Errorf("configure logger: %w", err)
	}
	projectDir := "."
	if len(flags.Args) > 0 && flags.Args[0] != "" {
		projectDir = flags.Args[0]
	}
	fs := afero.NewOsFs()
	ctrl := run.New(fs, config.NewFinder(fs), config.NewReader(fs), &run.ParamRun{
		ProjectDir:     projectDir,
		ConfigFilePath: r.globalFlags.Config,
		Format:         flags.Format,
		Disabled:       flags.Disable,
		Version:        r.version,
		Stdout:         r.stdout,
	})
	return ctrl.Run(ctx, r.logE) //nolint:wrapcheck
}
