package rule

import (
	"fmt"

	"github.com/projectlint/projectlint/pkg/finding"
	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
)

type Result struct {
	Failed bool
	Counts map[finding.Severity]int
}

func (r *Result) add(f *finding.Finding) {
	r.Counts[f.Severity]++
	if f.Severity == finding.Error {
		r.Failed = true
	}
}

type Runner struct {
	rules []Rule
}

func NewRunner(rules []Rule) *Runner {
	return &Runner{rules: rules}
}

// Run runs active rules in order and passes each finding to emit as soon as it is produced.
// A rule returning an error is reported as an Error finding and the run continues with the next rule.
func (r *Runner) Run(logE *logrus.Entry, emit func(f *finding.Finding)) *Result {
	result := &Result{
		Counts: map[finding.Severity]int{},
	}
	for _, rl := range r.rules {
		logE := logE.WithField("rule", rl.Name())
		if !rl.Active() {
			logE.Debug("skip an inactive rule")
			continue
		}
		logE.Debug("run a rule")
		for f, err := range rl.Check() {
			if err != nil {
				logerr.WithError(logE, err).Error("the rule failed")
				f = &finding.Finding{
					Rule:     rl.Name(),
					Severity: finding.Error,
					Message:  fmt.Sprintf("rule %s failed: %s", rl.Name(), err),
				}
				result.add(f)
				emit(f)
				break
			}
			if f.Rule == "" {
				f.Rule = rl.Name()
			}
			result.add(f)
			emit(f)
		}
	}
	return result
}

// Drain collects all findings of a rule.
// It stops at the first error.
func Drain(r Rule) ([]*finding.Finding, error) {
	var findings []*finding.Finding
	for f, err := range r.Check() {
		if err != nil {
			return findings, err
		}
		findings = append(findings, f)
	}
	return findings, nil
}
