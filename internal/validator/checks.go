package validator

import (
	"errors"
	"io/fs"
	"sort"
)

// DefaultRegistry returns the full check set for a DevOS repository.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	registerAgentChecks(r)
	registerToolChecks(r)
	registerConsistencyChecks(r)
	registerDocChecks(r)
	registerStructureChecks(r)
	return r
}

// syntaxFinding converts a load error into a finding. A missing file
// is a schema violation (the contract requires it); anything else is a
// parse failure.
func syntaxFinding(file string, err error) Finding {
	if errors.Is(err, fs.ErrNotExist) {
		return Finding{
			Kind:    KindSchema,
			File:    file,
			Message: "file must exist",
		}
	}

	var perr *ParseError
	msg := err.Error()
	if errors.As(err, &perr) {
		msg = perr.Err.Error()
	}
	return Finding{
		Kind:    KindParse,
		File:    file,
		Message: msg,
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
