package validator

import (
	"fmt"
	"strings"

	"github.com/devos-project/devosctl/internal/config"
)

func registerConsistencyChecks(r *Registry) {
	r.Register(Check{
		Name:        "consistency/tool-refs",
		Group:       "consistency",
		Description: "every tool an agent lists is defined in the tool schema",
		Run: func(ctx *Context) []Finding {
			doc, err := ctx.Agents()
			if err != nil {
				return nil
			}
			schema, err := ctx.Tools()
			if err != nil {
				return nil
			}
			var findings []Finding
			for _, agent := range doc.AgentNames() {
				for _, tool := range doc.Config.Agents[agent].Tools {
					if config.BuiltinTools[tool] {
						continue
					}
					if !schema.Defined(tool) {
						findings = append(findings, Finding{
							Kind:    KindReference,
							File:    config.ToolSchemaFile,
							Subject: tool,
							Message: fmt.Sprintf("tool %q used by agent %q is not defined in the tool schema", tool, agent),
						})
					}
				}
			}
			return findings
		},
	})

	r.Register(Check{
		Name:        "consistency/routing-refs",
		Group:       "consistency",
		Description: "routing sequences reference defined agents",
		Run: func(ctx *Context) []Finding {
			doc, err := ctx.Agents()
			if err != nil || doc.Config.Routing == nil {
				return nil
			}
			var findings []Finding
			for _, task := range sortedKeys(doc.Config.Routing.Tasks) {
				for _, agent := range doc.Config.Routing.Tasks[task].Sequence {
					if config.ImplicitAgents[agent] {
						continue
					}
					if _, ok := doc.Config.Agents[agent]; !ok {
						findings = append(findings, Finding{
							Kind:    KindReference,
							File:    config.AgentsFile,
							Subject: agent,
							Message: fmt.Sprintf("task %q routes to undefined agent %q", task, agent),
						})
					}
				}
			}
			return findings
		},
	})

	r.Register(Check{
		Name:        "consistency/doc-refs",
		Group:       "consistency",
		Description: "the instructions document references the real config paths",
		Run: func(ctx *Context) []Finding {
			content, err := ctx.ReadFile(config.InstructionsFile)
			if err != nil {
				return nil // docs/instructions-sections reports the missing file
			}
			text := string(content)
			var findings []Finding
			for _, ref := range []string{"agents.yaml", "Tool-schema.json", "/server/devos_core/"} {
				if !strings.Contains(text, ref) {
					findings = append(findings, Finding{
						Kind:    KindReference,
						File:    config.InstructionsFile,
						Subject: ref,
						Message: fmt.Sprintf("documentation must reference %s", ref),
					})
				}
			}
			return findings
		},
	})
}
