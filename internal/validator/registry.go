package validator

import (
	"fmt"
	"sort"
)

// Check is a single named validation. Checks are independent,
// idempotent and read-only; they may run in any order.
type Check struct {
	Name        string
	Group       string
	Description string
	Run         func(*Context) []Finding
}

// Registry holds checks in registration order.
type Registry struct {
	checks []Check
	byName map[string]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]int)}
}

// Register adds a check. Duplicate names panic; registration happens
// at startup and a collision is a programming error.
func (r *Registry) Register(c Check) {
	if _, exists := r.byName[c.Name]; exists {
		panic(fmt.Sprintf("validator: duplicate check %q", c.Name))
	}
	r.byName[c.Name] = len(r.checks)
	r.checks = append(r.checks, c)
}

// All returns every check in registration order.
func (r *Registry) All() []Check {
	out := make([]Check, len(r.checks))
	copy(out, r.checks)
	return out
}

// ByName looks up a single check.
func (r *Registry) ByName(name string) (Check, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Check{}, false
	}
	return r.checks[i], true
}

// ByGroup returns the checks of one group, in registration order.
func (r *Registry) ByGroup(group string) []Check {
	var out []Check
	for _, c := range r.checks {
		if c.Group == group {
			out = append(out, c)
		}
	}
	return out
}

// Groups returns the distinct group names, sorted.
func (r *Registry) Groups() []string {
	seen := make(map[string]bool)
	var groups []string
	for _, c := range r.checks {
		if !seen[c.Group] {
			seen[c.Group] = true
			groups = append(groups, c.Group)
		}
	}
	sort.Strings(groups)
	return groups
}
