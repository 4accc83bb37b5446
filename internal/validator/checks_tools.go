package validator

import (
	"fmt"

	"github.com/devos-project/devosctl/internal/config"
)

// toolShapes pins the argument and return fields of the core tools the
// orchestrator depends on.
var toolShapes = map[string]struct {
	args    []string
	returns []string
}{
	"read_file":     {args: []string{"path"}, returns: []string{"content"}},
	"propose_patch": {args: []string{"path", "instructions"}, returns: []string{"patch", "comment"}},
	"run_tests":     {args: []string{"command"}, returns: []string{"ok", "output"}},
	"call_agent":    {args: []string{"agent", "payload"}, returns: []string{"result"}},
}

func registerToolChecks(r *Registry) {
	r.Register(Check{
		Name:        "tools/syntax",
		Group:       "tools",
		Description: "Tool-schema.json exists and parses as JSON",
		Run: func(ctx *Context) []Finding {
			if _, err := ctx.Tools(); err != nil {
				return []Finding{syntaxFinding(config.ToolSchemaFile, err)}
			}
			return nil
		},
	})

	r.Register(Check{
		Name:        "tools/section",
		Group:       "tools",
		Description: "top-level tools section is defined",
		Run: func(ctx *Context) []Finding {
			schema, err := ctx.Tools()
			if err != nil {
				return nil
			}
			if !schema.HasSection("tools") {
				return []Finding{{
					Kind:    KindSchema,
					File:    config.ToolSchemaFile,
					Subject: "tools",
					Message: "tools section must be defined",
				}}
			}
			if schema.Tools == nil {
				return []Finding{{
					Kind:    KindSchema,
					File:    config.ToolSchemaFile,
					Subject: "tools",
					Message: "tools must be a mapping of tool definitions",
				}}
			}
			return nil
		},
	})

	r.Register(Check{
		Name:        "tools/required",
		Group:       "tools",
		Description: "the core tools are defined in the schema",
		Run: func(ctx *Context) []Finding {
			schema, err := ctx.Tools()
			if err != nil {
				return nil
			}
			var findings []Finding
			for _, name := range config.RequiredTools {
				if !schema.Defined(name) {
					findings = append(findings, Finding{
						Kind:    KindSchema,
						File:    config.ToolSchemaFile,
						Subject: name,
						Message: fmt.Sprintf("tool %q must be defined in schema", name),
					})
				}
			}
			return findings
		},
	})

	r.Register(Check{
		Name:        "tools/args-returns",
		Group:       "tools",
		Description: "every tool declares args and returns specifications",
		Run: func(ctx *Context) []Finding {
			schema, err := ctx.Tools()
			if err != nil {
				return nil
			}
			var findings []Finding
			for _, name := range schema.Names() {
				for _, field := range []string{"args", "returns"} {
					if !schema.ToolHasField(name, field) {
						findings = append(findings, Finding{
							Kind:    KindSchema,
							File:    config.ToolSchemaFile,
							Subject: name,
							Message: fmt.Sprintf("tool %q must have %s specification", name, field),
						})
					}
				}
			}
			return findings
		},
	})

	r.Register(Check{
		Name:        "tools/shapes",
		Group:       "tools",
		Description: "core tools match their pinned argument and return shapes",
		Run: func(ctx *Context) []Finding {
			schema, err := ctx.Tools()
			if err != nil {
				return nil
			}
			var findings []Finding
			for _, name := range sortedKeys(toolShapes) {
				tool, ok := schema.Tools[name]
				if !ok {
					continue // tools/required reports the missing tool
				}
				shape := toolShapes[name]
				for _, arg := range shape.args {
					if _, ok := tool.Args[arg]; !ok {
						findings = append(findings, Finding{
							Kind:    KindSchema,
							File:    config.ToolSchemaFile,
							Subject: name,
							Message: fmt.Sprintf("tool %q must accept %s argument", name, arg),
						})
					}
				}
				for _, ret := range shape.returns {
					if _, ok := tool.Returns[ret]; !ok {
						findings = append(findings, Finding{
							Kind:    KindSchema,
							File:    config.ToolSchemaFile,
							Subject: name,
							Message: fmt.Sprintf("tool %q must return %s", name, ret),
						})
					}
				}
			}
			return findings
		},
	})
}
