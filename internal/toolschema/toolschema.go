// Package toolschema parses the Tool-schema.json capability catalog.
package toolschema

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/devos-project/devosctl/internal/agentcfg"
)

// Tool describes an invocable capability: argument names mapped to
// their declared types, and the shape of the returned value.
type Tool struct {
	Description string            `json:"description,omitempty"`
	Args        map[string]string `json:"args"`
	Returns     map[string]string `json:"returns"`
}

// Schema is the typed shape of Tool-schema.json.
type Schema struct {
	Tools map[string]Tool `json:"tools"`

	raw map[string]json.RawMessage
}

// Parse reads and parses a Tool-schema.json file.
func Parse(path string) (*Schema, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseContent(content)
}

// ParseContent parses tool schema content. A surrounding markdown code
// fence (```json ... ```) is stripped before decoding.
func ParseContent(content []byte) (*Schema, error) {
	content = agentcfg.StripFence(content)

	schema := &Schema{}
	if err := json.Unmarshal(content, &schema.raw); err != nil {
		return nil, fmt.Errorf("decode tool schema: %w", err)
	}

	if toolsRaw, ok := schema.raw["tools"]; ok {
		// A tools section of the wrong shape is a schema violation,
		// not a parse failure; leave Tools nil for the section check.
		if err := json.Unmarshal(toolsRaw, &schema.Tools); err != nil {
			var typeErr *json.UnmarshalTypeError
			if !errors.As(err, &typeErr) {
				return nil, fmt.Errorf("decode tool schema: %w", err)
			}
			schema.Tools = nil
		}
	}

	return schema, nil
}

// HasSection reports whether a top-level key exists.
func (s *Schema) HasSection(name string) bool {
	_, ok := s.raw[name]
	return ok
}

// ToolHasField reports whether the named tool entry carries the given
// field, regardless of its value.
func (s *Schema) ToolHasField(tool, field string) bool {
	toolsRaw, ok := s.raw["tools"]
	if !ok {
		return false
	}
	var tools map[string]map[string]json.RawMessage
	if err := json.Unmarshal(toolsRaw, &tools); err != nil {
		return false
	}
	entry, ok := tools[tool]
	if !ok {
		return false
	}
	_, ok = entry[field]
	return ok
}

// Defined reports whether a tool name exists in the catalog.
func (s *Schema) Defined(name string) bool {
	_, ok := s.Tools[name]
	return ok
}

// Names returns the defined tool names, sorted.
func (s *Schema) Names() []string {
	names := make([]string, 0, len(s.Tools))
	for name := range s.Tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
