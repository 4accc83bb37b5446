// Package agentcfg parses the agents.yaml configuration file.
package agentcfg

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Agent is a named AI-role configuration entry.
type Agent struct {
	Model       string   `yaml:"model"`
	Role        string   `yaml:"role"`
	Description string   `yaml:"description"`
	Tools       []string `yaml:"tools"`
	Constraints []string `yaml:"constraints"`
}

// TaskRoute maps a task to an ordered agent sequence.
type TaskRoute struct {
	Description string   `yaml:"description"`
	Sequence    []string `yaml:"sequence"`
}

// Routing holds the task routing table.
type Routing struct {
	Tasks map[string]TaskRoute `yaml:"tasks"`
}

// Config is the typed shape of agents.yaml.
type Config struct {
	Agents  map[string]Agent `yaml:"agents"`
	Routing *Routing         `yaml:"routing"`
}

// Document is a parsed agents.yaml: the typed config plus the raw
// mapping, kept so field-presence checks can distinguish a missing
// key from a zero value.
type Document struct {
	Config Config
	raw    map[string]any
}

// Parse reads and parses an agents.yaml file.
func Parse(path string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseContent(content)
}

// ParseContent parses agents.yaml content. A surrounding markdown code
// fence (```yaml ... ```) is stripped before decoding.
//
// Type mismatches inside the document (a section that is a list
// instead of a mapping) are not parse failures; the raw mapping is
// kept so schema checks can report them precisely.
func ParseContent(content []byte) (*Document, error) {
	content = StripFence(content)

	doc := &Document{}
	if err := yaml.Unmarshal(content, &doc.raw); err != nil {
		return nil, fmt.Errorf("decode agents config: %w", err)
	}
	if doc.raw == nil {
		return nil, fmt.Errorf("decode agents config: document is empty")
	}

	if err := yaml.Unmarshal(content, &doc.Config); err != nil {
		var typeErr *yaml.TypeError
		if !errors.As(err, &typeErr) {
			return nil, fmt.Errorf("decode agents config: %w", err)
		}
	}

	return doc, nil
}

// StripFence removes a wrapping markdown code fence, if present.
// Config files exported from chat transcripts sometimes arrive as
// ```yaml ... ``` blocks.
func StripFence(content []byte) []byte {
	trimmed := bytes.TrimSpace(content)
	if !bytes.HasPrefix(trimmed, []byte("```")) {
		return content
	}

	lines := bytes.Split(trimmed, []byte("\n"))
	if len(lines) < 2 {
		return content
	}

	lines = lines[1:]
	if bytes.Equal(bytes.TrimSpace(lines[len(lines)-1]), []byte("```")) {
		lines = lines[:len(lines)-1]
	}
	return bytes.Join(lines, []byte("\n"))
}

// HasSection reports whether a top-level key exists in the document.
func (d *Document) HasSection(name string) bool {
	_, ok := d.raw[name]
	return ok
}

// SectionIsMap reports whether a top-level key exists and is a mapping.
func (d *Document) SectionIsMap(name string) bool {
	v, ok := d.raw[name]
	if !ok {
		return false
	}
	_, isMap := v.(map[string]any)
	return isMap
}

// AgentHasField reports whether the named agent entry carries the
// given field, regardless of its value.
func (d *Document) AgentHasField(agent, field string) bool {
	agents, ok := d.raw["agents"].(map[string]any)
	if !ok {
		return false
	}
	entry, ok := agents[agent].(map[string]any)
	if !ok {
		return false
	}
	_, ok = entry[field]
	return ok
}

// AgentField returns the raw value of an agent field, or nil.
func (d *Document) AgentField(agent, field string) any {
	agents, ok := d.raw["agents"].(map[string]any)
	if !ok {
		return nil
	}
	entry, ok := agents[agent].(map[string]any)
	if !ok {
		return nil
	}
	return entry[field]
}

// AgentNames returns the defined agent names, sorted.
func (d *Document) AgentNames() []string {
	names := make([]string, 0, len(d.Config.Agents))
	for name := range d.Config.Agents {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
