package rule

import (
	"fmt"
	"slices"
	"strings"
)

type Registration struct {
	Name        string
	Description string
	New         func(env *Env) Rule
}

type Registry struct {
	registrations map[string]*Registration
}

func NewRegistry() *Registry {
	return &Registry{
		registrations: map[string]*Registration{},
	}
}

// Register adds a rule to the registry.
// It panics if the name is empty or already registered.
func (r *Registry) Register(reg *Registration) {
	if reg.Name == "" || reg.New == nil {
		panic("rule: a registration requires a name and a constructor")
	}
	if _, ok := r.registrations[reg.Name]; ok {
		panic(fmt.Sprintf("rule: %s is registered twice", reg.Name))
	}
	r.registrations[reg.Name] = reg
}

// Registrations returns the registered rules sorted by name.
func (r *Registry) Registrations() []*Registration {
	regs := make([]*Registration, 0, len(r.registrations))
	for _, reg := range r.registrations {
		regs = append(regs, reg)
	}
	slices.SortFunc(regs, func(a, b *Registration) int {
		return strings.Compare(a.Name, b.Name)
	})
	return regs
}

// Build creates a rule per registration in name order.
// Rules whose name matches skip aren't created.
func (r *Registry) Build(env *Env, skip func(name string) bool) []Rule {
	regs := r.Registrations()
	rules := make([]Rule, 0, len(regs))
	for _, reg := range regs {
		if skip != nil && skip(reg.Name) {
			env.LogE.WithField("rule", reg.Name).Debug("the rule is disabled")
			continue
		}
		rules = append(rules, reg.New(env))
	}
	return rules
}

var defaultRegistry = NewRegistry() //nolint:gochecknoglobals

// Register adds a rule to the default registry. It is called from init functions.
func Register(reg *Registration) {
	defaultRegistry.Register(reg)
}

func Registrations() []*Registration {
	return defaultRegistry.Registrations()
}

func Build(env *Env, skip func(name string) bool) []Rule {
	return defaultRegistry.Build(env, skip)
}
