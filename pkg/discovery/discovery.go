// Package discovery finds project files that match glob patterns.
// Patterns are matched at any depth below the project root, and vendor or
// build directories such as node_modules and .git are never descended into.
// Filesystem errors are treated as "no match" so that a missing directory
// simply makes the rules depending on it inactive.
package discovery

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
)

// DefaultIgnoreDirs are directory names that are never searched.
var DefaultIgnoreDirs = []string{ //nolint:gochecknoglobals
	"node_modules",
	"vendor",
	"target",
	"venv",
	"__pycache__",
	".git",
	".hg",
	".sl",
}

// Finder caches the file list of each root, so a project is walked once however
// many rules search it. A Finder isn't safe for concurrent use.
type Finder struct {
	fs     afero.Fs
	ignore []string
	logE   *logrus.Entry
	walked map[string][]*file
}

type file struct {
	path string
	rel  string
}

// New returns a Finder. extraIgnoreDirs are appended to DefaultIgnoreDirs.
func New(fs afero.Fs, logE *logrus.Entry, extraIgnoreDirs ...string) *Finder {
	ignore := make([]string, 0, len(DefaultIgnoreDirs)+len(extraIgnoreDirs))
	ignore = append(ignore, DefaultIgnoreDirs...)
	ignore = append(ignore, extraIgnoreDirs...)
	return &Finder{
		fs:     fs,
		ignore: ignore,
		logE:   logE,
		walked: map[string][]*file{},
	}
}

// Find returns files under root matching any of patterns.
// Returned paths are joined with root and sorted in walk order.
// A file matching several patterns is returned once.
func (f *Finder) Find(root string, patterns ...string) []string {
	if len(patterns) == 0 {
		return nil
	}
	globs := make([]string, len(patterns))
	for i, pattern := range patterns {
		globs[i] = "**/" + filepath.ToSlash(pattern)
	}
	files := []string{}
	for _, fi := range f.files(root) {
		if f.match(globs, fi.rel) {
			files = append(files, fi.path)
		}
	}
	return files
}

func (f *Finder) files(root string) []*file {
	if files, ok := f.walked[root]; ok {
		return files
	}
	files := f.walk(root)
	f.walked[root] = files
	return files
}

func (f *Finder) walk(root string) []*file {
	files := []*file{}
	if err := afero.Walk(f.fs, root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			f.logE.WithField("path", p).WithError(err).Debug("skip an unreadable path")
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			f.logE.WithFields(logrus.Fields{
				"root": root,
				"path": p,
			}).WithError(err).Debug("get a relative path")
			return nil
		}
		if info.IsDir() {
			if rel != "." && f.Ignored(info.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		files = append(files, &file{path: p, rel: filepath.ToSlash(rel)})
		return nil
	}); err != nil {
		logerr.WithError(f.logE, err).Debug("walk the project")
	}
	f.logE.WithFields(logrus.Fields{
		"root":  root,
		"files": len(files),
	}).Debug("walk the project")
	return files
}

// Ignored reports whether a directory name is excluded from the search.
func (f *Finder) Ignored(name string) bool {
	return slices.Contains(f.ignore, name)
}

func (f *Finder) match(globs []string, rel string) bool {
	for _, g := range globs {
		ok, err := doublestar.Match(g, rel)
		if err != nil {
			f.logE.WithField("pattern", g).WithError(err).Debug("match a glob pattern")
			continue
		}
		if ok {
			return true
		}
	}
	return false
}
