package rule

import (
	"fmt"
	"iter"

	"github.com/projectlint/projectlint/pkg/finding"
)

// FileCheck inspects one file.
type FileCheck func(file string) ([]*finding.Finding, error)

// FileRule is a rule that checks each matched file independently.
// The matched files are computed once when the rule is created.
type FileRule struct {
	name  string
	files []string
	check FileCheck
}

func NewFileRule(env *Env, name string, patterns []string, check FileCheck) *FileRule {
	return &FileRule{
		name:  name,
		files: env.Find(patterns...),
		check: check,
	}
}

// Filter drops the matched files for which keep returns false.
// A rule left without files is inactive.
func (r *FileRule) Filter(keep func(file string) bool) *FileRule {
	files := make([]string, 0, len(r.files))
	for _, file := range r.files {
		if keep(file) {
			files = append(files, file)
		}
	}
	r.files = files
	return r
}

func (r *FileRule) Name() string {
	return r.name
}

func (r *FileRule) Files() []string {
	return r.files
}

func (r *FileRule) Active() bool {
	return len(r.files) > 0
}

func (r *FileRule) Check() iter.Seq2[*finding.Finding, error] {
	return func(yield func(*finding.Finding, error) bool) {
		for _, file := range r.files {
			findings, err := r.check(file)
			if err != nil {
				yield(nil, fmt.Errorf("check %s: %w", file, err))
				return
			}
			for _, f := range findings {
				if !yield(f, nil) {
					return
				}
			}
		}
	}
}
