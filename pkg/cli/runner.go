package cli

import (
	"context"
	"io"

	"github.com/projectlint/projectlint/pkg/cli/flag"
	"github.com/projectlint/projectlint/pkg/cli/initcmd"
	"github.com/projectlint/projectlint/pkg/cli/rules"
	"github.com/projectlint/projectlint/pkg/cli/run"
	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/go-stdutil"
	"github.com/suzuki-shunsuke/urfave-cli-v3-util/urfave"
	"github.com/urfave/cli/v3"
)

type Runner struct {
	Stdout  io.Writer
	LDFlags *stdutil.LDFlags
	LogE    *logrus.Entry
}

func (r *Runner) Run(ctx context.Context, args ...string) error {
	globalFlags := &flag.GlobalFlags{}
	cmd := urfave.Command(r.LDFlags, &cli.Command{
		Name:      "projectlint",
		Usage:     "Lint project metadata such as composer.json, GitHub Actions workflows and Dockerfiles. https://github.com/projectlint/projectlint",
		UsageText: "projectlint [global options] [-v] [PROJECT]\nprojectlint [global options] command [command options]",
		Flags:     globalFlags.Flags(),
		Writer:    r.Stdout,
		Commands: []*cli.Command{
			initcmd.New(r.LogE, globalFlags),
			run.New(r.LogE, globalFlags, r.Stdout, r.LDFlags.Version),
			rules.New(r.LogE, globalFlags, r.Stdout),
		},
	})
	return withVersionFlag(run.Root(cmd, r.LogE, globalFlags, r.Stdout, r.LDFlags.Version)).Run(ctx, args) //nolint:wrapcheck
}

// Run runs the command line application with os.Args like arguments.
func Run(ctx context.Context, logE *logrus.Entry, ldFlags *stdutil.LDFlags, stdout io.Writer, args ...string) error {
	r := &Runner{
		Stdout:  stdout,
		LDFlags: ldFlags,
		LogE:    logE,
	}
	return r.Run(ctx, args...)
}
