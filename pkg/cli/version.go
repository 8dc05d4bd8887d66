package cli

import (
	"context"

	"github.com/urfave/cli/v3"
)

// withVersionFlag replaces the built-in version flag with --version,
// because -v is the alias of --verbose.
func withVersionFlag(cmd *cli.Command) *cli.Command {
	cmd.HideVersion = true
	cmd.Flags = append(cmd.Flags, &cli.BoolFlag{
		Name:        "version",
		Usage:       "print the version",
		HideDefault: true,
		Local:       true,
	})
	action := cmd.Action
	cmd.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Bool("version") {
			cli.ShowVersion(c)
			return nil
		}
		return action(ctx, c)
	}
	return cmd
}
