// Package initcmd implements the 'projectlint init' command.
package initcmd

import (
	"context"
	"fmt"

	"github.com/projectlint/projectlint/pkg/cli/flag"
	"github.com/projectlint/projectlint/pkg/config"
	"github.com/projectlint/projectlint/pkg/controller/initcmd"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/suzuki-shunsuke/logrus-util/log"
	"github.com/urfave/cli/v3"
)

type runner struct {
	logE *logrus.Entry
}

func New(logE *logrus.Entry, globalFlags *flag.GlobalFlags) *cli.Command {
	r := &runner{
		logE: logE,
	}
	return r.Command(globalFlags)
}

func (r *runner) Command(globalFlags *flag.GlobalFlags) *cli.Command {
	var args []string
	return &cli.Command{
		Name:  "init",
		Usage: "Create .projectlint.yaml if it doesn't exist",
		Description: `Create .projectlint.yaml with the default policy if it doesn't exist

$ projectlint init

You can also pass configuration file path.

e.g.

$ projectlint init .github/projectlint.yaml
`,
		Action: func(_ context.Context, _ *cli.Command) error {
			return r.action(globalFlags, args)
		},
		Arguments: []cli.Argument{
			&cli.StringArgs{
				Name:        "path",
				Max:         1,
				Destination: &args,
			},
		},
	}
}

func (r *runner) action(globalFlags *flag.GlobalFlags, args []string) error {
	if err := log.Set(r.logE, globalFlags.LogLevel, globalFlags.LogColor); err != nil {
		return fmt.Errorf("configure logger: %w", err)
	}
	configFilePath := ""
	if len(args) > 0 {
		configFilePath = args[0]
	}
	if configFilePath == "" {
		configFilePath = globalFlags.Config
	}
	if configFilePath == "" {
		configFilePath = config.DefaultPath
	}
	ctrl := initcmd.New(afero.NewOsFs())
	return ctrl.Init(configFilePath) //nolint:wrapcheck
}
