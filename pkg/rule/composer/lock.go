package composer

import (
	"path/filepath"

	"github.com/projectlint/projectlint/pkg/finding"
	"github.com/projectlint/projectlint/pkg/rule"
)

const lockName = "composer-lock"

func init() { //nolint:gochecknoinits
	rule.Register(&rule.Registration{
		Name:        lockName,
		Description: "composer.lock isn't older than composer.json",
		New:         newLock,
	})
}

func newLock(env *rule.Env) rule.Rule {
	return rule.NewFileRule(env, lockName, []string{lockFile}, func(file string) ([]*finding.Finding, error) {
		lockTime, err := env.Documents.ModTime(file)
		if err != nil {
			return nil, err //nolint:wrapcheck
		}
		manifestTime, err := env.Documents.ModTime(siblingManifest(file))
		if err != nil {
			return nil, err //nolint:wrapcheck
		}
		if !manifestTime.After(lockTime) {
			return nil, nil
		}
		return []*finding.Finding{{
			Rule:     lockName,
			Severity: finding.Error,
			Message:  "composer.lock is out of date",
			File:     file,
		}}, nil
	}).Filter(func(file string) bool {
		if env.Documents.Exists(siblingManifest(file)) {
			return true
		}
		env.LogE.WithField("lock_file", file).Debug("ignore a lock file without composer.json")
		return false
	})
}

func siblingManifest(lock string) string {
	return filepath.Join(filepath.Dir(lock), manifestFile)
}
