// Package run lints a project.
// It reads the configuration, builds every registered rule against the project,
// runs them and writes the findings as text, JSON or SARIF.
package run

import (
	"github.com/projectlint/projectlint/pkg/config"
	"github.com/spf13/afero"
)

type Controller struct {
	fs        afero.Fs
	param     *ParamRun
	cfgFinder ConfigFinder
	cfgReader ConfigReader
}

type ConfigFinder interface {
	Find(root, configFilePath string) (string, error)
}

type ConfigReader interface {
	Read(cfg *config.Config, configFilePath string) error
}

func New(fs afero.Fs, cfgFinder ConfigFinder, cfgReader ConfigReader, param *ParamRun) *Controller {
	return &Controller{
		fs:        fs,
		param:     param,
		cfgFinder: cfgFinder,
		cfgReader: cfgReader,
	}
}
