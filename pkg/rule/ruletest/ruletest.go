// Package ruletest helps testing rules against an in-memory project.
package ruletest

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/projectlint/projectlint/pkg/config"
	"github.com/projectlint/projectlint/pkg/document"
	"github.com/projectlint/projectlint/pkg/finding"
	"github.com/projectlint/projectlint/pkg/rule"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Root is the project root of environments created by NewEnv.
const Root = "project"

// NewEnv creates files relative to Root in a MemMapFs and returns an Env with the default configuration.
func NewEnv(t *testing.T, files map[string]string) (*rule.Env, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	for _, p := range document.SortedKeys(files) {
		if err := afero.WriteFile(fs, filepath.Join(Root, p), []byte(files[p]), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	cfg := &config.Config{}
	if err := cfg.Init(); err != nil {
		t.Fatal(err)
	}
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return rule.NewEnv(fs, Root, cfg, logrus.NewEntry(logger)), fs
}

// Path returns a path relative to Root as rules report it.
func Path(p string) string {
	return filepath.Join(Root, p)
}

// New creates a registered rule.
func New(t *testing.T, env *rule.Env, name string) rule.Rule {
	t.Helper()
	for _, reg := range rule.Registrations() {
		if reg.Name == name {
			return reg.New(env)
		}
	}
	t.Fatalf("rule %s isn't registered", name)
	return nil
}

// Check creates a registered rule and returns its findings.
// An inactive rule returns nil.
func Check(t *testing.T, env *rule.Env, name string) []*finding.Finding {
	t.Helper()
	r := New(t, env, name)
	if !r.Active() {
		return nil
	}
	findings, err := rule.Drain(r)
	if err != nil {
		t.Fatal(err)
	}
	return findings
}
