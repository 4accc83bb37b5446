package validator

import (
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/devos-project/devosctl/internal/config"
	"github.com/devos-project/devosctl/internal/logging"
)

// Runner executes checks from a registry against one repository.
type Runner struct {
	registry *Registry
	layout   config.Layout
	log      *logging.Logger
}

// NewRunner creates a runner for the repository at the given layout.
func NewRunner(registry *Registry, layout config.Layout) *Runner {
	return &Runner{
		registry: registry,
		layout:   layout,
		log:      logging.New("validator").WithRepo(layout.Root),
	}
}

// RunAll executes every registered check.
func (r *Runner) RunAll() *Report {
	return r.run(r.registry.All())
}

// RunGroup executes the checks of a single group.
func (r *Runner) RunGroup(group string) (*Report, error) {
	checks := r.registry.ByGroup(group)
	if len(checks) == 0 {
		return nil, fmt.Errorf("unknown check group %q", group)
	}
	return r.run(checks), nil
}

// RunNamed executes individual checks by name.
func (r *Runner) RunNamed(names []string) (*Report, error) {
	var checks []Check
	for _, name := range names {
		c, ok := r.registry.ByName(name)
		if !ok {
			return nil, fmt.Errorf("unknown check %q", name)
		}
		checks = append(checks, c)
	}
	return r.run(checks), nil
}

func (r *Runner) run(checks []Check) *Report {
	start := time.Now()
	report := &Report{
		ID:        ulid.Make().String(),
		Root:      r.layout.Root,
		StartedAt: start,
	}

	ctx := NewContext(r.layout)
	for _, c := range checks {
		checkStart := time.Now()
		findings := c.Run(ctx)
		for i := range findings {
			findings[i].Check = c.Name
		}
		report.Findings = append(report.Findings, findings...)
		report.ChecksRun = append(report.ChecksRun, c.Name)
		r.log.CheckEvent(c.Name, len(findings), checkStart)
	}

	report.Duration = time.Since(start)
	report.DurationMs = report.Duration.Milliseconds()

	r.log.Info("run_complete", map[string]any{
		"run_id":   report.ID,
		"checks":   len(report.ChecksRun),
		"findings": len(report.Findings),
		"ok":       report.OK(),
	})

	return report
}
