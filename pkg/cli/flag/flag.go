// Package flag defines the flags shared by every subcommand.
package flag

import "github.com/urfave/cli/v3"

type GlobalFlags struct {
	LogLevel string
	LogColor string
	Config   string
}

func (gf *GlobalFlags) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level",
			Sources:     cli.EnvVars("PROJECTLINT_LOG_LEVEL"),
			Destination: &gf.LogLevel,
		},
		&cli.StringFlag{
			Name:        "log-color",
			Usage:       "log color. One of 'auto', 'always', and 'never'",
			Value:       "auto",
			Sources:     cli.EnvVars("PROJECTLINT_LOG_COLOR"),
			Destination: &gf.LogColor,
		},
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "configuration file path",
			Sources:     cli.EnvVars("PROJECTLINT_CONFIG"),
			Destination: &gf.Config,
		},
	}
}
