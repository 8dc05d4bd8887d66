// Package document loads the project files inspected by rules:
// GitHub Actions workflows (YAML), JSON manifests and container build files.
// Parse errors are returned to the caller; absence of optional keys is not an error.
package document

import (
	"fmt"
	"time"

	"github.com/spf13/afero"
)

// Loader reads documents from a filesystem.
// Workflows are cached by path because several rules inspect the same files.
// A Loader is not safe for concurrent use.
type Loader struct {
	fs        afero.Fs
	workflows map[string]*Workflow
}

func NewLoader(fs afero.Fs) *Loader {
	return &Loader{
		fs:        fs,
		workflows: map[string]*Workflow{},
	}
}

func (l *Loader) Workflow(path string) (*Workflow, error) {
	if wf, ok := l.workflows[path]; ok {
		return wf, nil
	}
	content, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, fmt.Errorf("read a workflow file: %w", err)
	}
	wf, err := ParseWorkflow(path, content)
	if err != nil {
		return nil, err
	}
	l.workflows[path] = wf
	return wf, nil
}

func (l *Loader) Manifest(path string) (*Manifest, error) {
	content, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, fmt.Errorf("read a manifest: %w", err)
	}
	return ParseManifest(path, content)
}

func (l *Loader) BuildFile(path string) (*BuildFile, error) {
	content, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, fmt.Errorf("read a build file: %w", err)
	}
	return ParseBuildFile(path, content)
}

// Exists reports whether path is an existing regular file.
func (l *Loader) Exists(path string) bool {
	info, err := l.fs.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// ModTime returns the modification time of path.
func (l *Loader) ModTime(path string) (time.Time, error) {
	info, err := l.fs.Stat(path)
	if err != nil {
		return time.Time{}, fmt.Errorf("get file stat: %w", err)
	}
	return info.ModTime(), nil
}
