// Package rule defines policy rules and runs them against a project.
//
// A rule decides by itself whether it applies to a project (Active) and
// produces findings lazily (Check). Concrete rules register themselves from
// init functions, so a rule is added by importing its package.
package rule

import (
	"iter"

	"github.com/projectlint/projectlint/pkg/config"
	"github.com/projectlint/projectlint/pkg/discovery"
	"github.com/projectlint/projectlint/pkg/document"
	"github.com/projectlint/projectlint/pkg/finding"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

type Rule interface {
	Name() string
	// Active reports whether the rule applies to the project.
	// The runner skips inactive rules.
	Active() bool
	// Check yields findings.
	// A non nil error means the rule couldn't finish, e.g. because a document is malformed.
	Check() iter.Seq2[*finding.Finding, error]
}

// Project is the root directory being linted.
type Project struct {
	Root string
}

// Env holds the collaborators shared by rules during a run.
type Env struct {
	Project   *Project
	Files     *discovery.Finder
	Documents *document.Loader
	Config    *config.Config
	LogE      *logrus.Entry
}

func NewEnv(fs afero.Fs, root string, cfg *config.Config, logE *logrus.Entry) *Env {
	return &Env{
		Project:   &Project{Root: root},
		Files:     discovery.New(fs, logE, cfg.IgnoreDirs...),
		Documents: document.NewLoader(fs),
		Config:    cfg,
		LogE:      logE,
	}
}

// Find returns project files matching patterns.
func (e *Env) Find(patterns ...string) []string {
	return e.Files.Find(e.Project.Root, patterns...)
}
