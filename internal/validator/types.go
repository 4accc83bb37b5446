// Package validator runs named checks against a DevOS repository and
// collects the violations into a report.
package validator

import (
	"fmt"
	"time"
)

// Kind classifies a finding.
type Kind string

const (
	// KindParse marks malformed YAML or JSON.
	KindParse Kind = "parse"
	// KindSchema marks a missing required field, section or entry.
	KindSchema Kind = "schema"
	// KindReference marks a name referenced in one file with no
	// definition in another.
	KindReference Kind = "reference"
)

// Finding is a single violated invariant.
type Finding struct {
	Check   string `json:"check"`
	Kind    Kind   `json:"kind"`
	File    string `json:"file,omitempty"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

func (f Finding) String() string {
	if f.File != "" {
		return fmt.Sprintf("[%s] %s: %s", f.Kind, f.File, f.Message)
	}
	return fmt.Sprintf("[%s] %s", f.Kind, f.Message)
}

// ParseError reports malformed YAML or JSON in a configuration file.
type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaError reports a required field or section that is missing.
type SchemaError struct {
	File  string
	Field string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: missing required %s", e.File, e.Field)
}

// ReferenceError reports a dangling cross-file reference.
type ReferenceError struct {
	File     string
	Name     string
	Referrer string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s: %q referenced by %s has no definition", e.File, e.Name, e.Referrer)
}

// Report is the outcome of one validation run.
type Report struct {
	ID         string        `json:"id"`
	Root       string        `json:"root"`
	StartedAt  time.Time     `json:"started_at"`
	Duration   time.Duration `json:"-"`
	DurationMs int64         `json:"duration_ms"`
	ChecksRun  []string      `json:"checks_run"`
	Findings   []Finding     `json:"findings"`
}

// OK reports whether the run had zero findings.
func (r *Report) OK() bool {
	return len(r.Findings) == 0
}

// Counts returns finding totals per kind.
func (r *Report) Counts() map[Kind]int {
	counts := make(map[Kind]int)
	for _, f := range r.Findings {
		counts[f.Kind]++
	}
	return counts
}

// ByCheck groups findings by the check that produced them, preserving
// check order.
func (r *Report) ByCheck() ([]string, map[string][]Finding) {
	grouped := make(map[string][]Finding)
	var order []string
	for _, f := range r.Findings {
		if _, seen := grouped[f.Check]; !seen {
			order = append(order, f.Check)
		}
		grouped[f.Check] = append(grouped[f.Check], f)
	}
	return order, grouped
}
