package run

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/projectlint/projectlint/pkg/config"
	"github.com/projectlint/projectlint/pkg/finding"
	"github.com/projectlint/projectlint/pkg/rule"
	_ "github.com/projectlint/projectlint/pkg/rule/all" // register rules
	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
)

type ParamRun struct {
	ProjectDir     string
	ConfigFilePath string
	Format         string
	Disabled       []string
	Version        string
	Stdout         io.Writer
}

// ErrPolicyViolation is returned when a finding of Error severity is reported.
var ErrPolicyViolation = errors.New("the project violates the policy")

func (c *Controller) Run(ctx context.Context, logE *logrus.Entry) error {
	out, err := c.newOutput()
	if err != nil {
		return err
	}
	cfg, err := c.readConfig()
	if err != nil {
		return err
	}
	if err := cfg.Disable(c.param.Disabled...); err != nil {
		return fmt.Errorf("disable rules: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("start linting: %w", err)
	}

	env := rule.NewEnv(c.fs, c.param.ProjectDir, cfg, logE)
	rules := rule.Build(env, cfg.RuleDisabled)
	result := rule.NewRunner(rules).Run(logE, out.Emit)
	logE.WithFields(logrus.Fields{
		"errors":   result.Counts[finding.Error],
		"warnings": result.Counts[finding.Warning],
		"infos":    result.Counts[finding.Info],
	}).Debug("lint the project")
	if err := out.Close(result); err != nil {
		return err
	}
	if result.Failed {
		return ErrPolicyViolation
	}
	return nil
}

func (c *Controller) readConfig() (*config.Config, error) {
	p, err := c.cfgFinder.Find(c.param.ProjectDir, c.param.ConfigFilePath)
	if err != nil {
		return nil, fmt.Errorf("find a configuration file: %w", err)
	}
	cfg := &config.Config{}
	if err := c.cfgReader.Read(cfg, p); err != nil {
		return nil, fmt.Errorf("read a configuration file: %w", logerr.WithFields(err, logrus.Fields{
			"config_file": p,
		}))
	}
	return cfg, nil
}
