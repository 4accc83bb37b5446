package validator

import (
	"fmt"
	"slices"

	"github.com/devos-project/devosctl/internal/config"
)

func registerAgentChecks(r *Registry) {
	r.Register(Check{
		Name:        "agents/syntax",
		Group:       "agents",
		Description: "agents.yaml exists and parses as YAML",
		Run: func(ctx *Context) []Finding {
			if _, err := ctx.Agents(); err != nil {
				return []Finding{syntaxFinding(config.AgentsFile, err)}
			}
			return nil
		},
	})

	r.Register(Check{
		Name:        "agents/section",
		Group:       "agents",
		Description: "top-level agents section is a mapping",
		Run: func(ctx *Context) []Finding {
			doc, err := ctx.Agents()
			if err != nil {
				return nil
			}
			if !doc.SectionIsMap("agents") {
				return []Finding{{
					Kind:    KindSchema,
					File:    config.AgentsFile,
					Subject: "agents",
					Message: "agents section must be defined as a mapping",
				}}
			}
			return nil
		},
	})

	r.Register(Check{
		Name:        "agents/required",
		Group:       "agents",
		Description: "required agents are defined",
		Run: func(ctx *Context) []Finding {
			doc, err := ctx.Agents()
			if err != nil {
				return nil
			}
			var findings []Finding
			for _, name := range config.RequiredAgents {
				if _, ok := doc.Config.Agents[name]; !ok {
					findings = append(findings, Finding{
						Kind:    KindSchema,
						File:    config.AgentsFile,
						Subject: name,
						Message: fmt.Sprintf("agent %q must be defined", name),
					})
				}
			}
			return findings
		},
	})

	r.Register(Check{
		Name:        "agents/fields",
		Group:       "agents",
		Description: "every agent carries model, role, description, tools and constraints",
		Run: func(ctx *Context) []Finding {
			doc, err := ctx.Agents()
			if err != nil {
				return nil
			}
			var findings []Finding
			for _, name := range doc.AgentNames() {
				for _, field := range config.RequiredAgentFields {
					if !doc.AgentHasField(name, field) {
						findings = append(findings, Finding{
							Kind:    KindSchema,
							File:    config.AgentsFile,
							Subject: name,
							Message: fmt.Sprintf("agent %q must have %s field", name, field),
						})
					}
				}
				if v := doc.AgentField(name, "description"); v != nil {
					if _, ok := v.(string); !ok {
						findings = append(findings, Finding{
							Kind:    KindSchema,
							File:    config.AgentsFile,
							Subject: name,
							Message: fmt.Sprintf("agent %q description must be a string", name),
						})
					}
				}
			}
			return findings
		},
	})

	r.Register(Check{
		Name:        "agents/constraints",
		Group:       "agents",
		Description: "every agent has at least one behavioral constraint",
		Run: func(ctx *Context) []Finding {
			doc, err := ctx.Agents()
			if err != nil {
				return nil
			}
			var findings []Finding
			for _, name := range doc.AgentNames() {
				if !doc.AgentHasField(name, "constraints") {
					continue // agents/fields reports the missing field
				}
				if len(doc.Config.Agents[name].Constraints) == 0 {
					findings = append(findings, Finding{
						Kind:    KindSchema,
						File:    config.AgentsFile,
						Subject: name,
						Message: fmt.Sprintf("agent %q must have at least one constraint", name),
					})
				}
			}
			return findings
		},
	})

	r.Register(Check{
		Name:        "agents/supervisor-call-agent",
		Group:       "agents",
		Description: "the supervisor can invoke other agents",
		Run: func(ctx *Context) []Finding {
			doc, err := ctx.Agents()
			if err != nil {
				return nil
			}
			supervisor, ok := doc.Config.Agents["supervisor"]
			if !ok {
				return nil // agents/required reports the missing agent
			}
			if !slices.Contains(supervisor.Tools, "call_agent") {
				return []Finding{{
					Kind:    KindSchema,
					File:    config.AgentsFile,
					Subject: "supervisor",
					Message: "supervisor must have call_agent tool to orchestrate",
				}}
			}
			return nil
		},
	})

	r.Register(Check{
		Name:        "agents/routing",
		Group:       "agents",
		Description: "routing configuration with a task table is defined",
		Run: func(ctx *Context) []Finding {
			doc, err := ctx.Agents()
			if err != nil {
				return nil
			}
			var findings []Finding
			if !doc.HasSection("routing") {
				findings = append(findings, Finding{
					Kind:    KindSchema,
					File:    config.AgentsFile,
					Subject: "routing",
					Message: "routing section must be defined",
				})
			} else if doc.Config.Routing == nil || doc.Config.Routing.Tasks == nil {
				findings = append(findings, Finding{
					Kind:    KindSchema,
					File:    config.AgentsFile,
					Subject: "routing.tasks",
					Message: "routing.tasks must be defined",
				})
			}
			return findings
		},
	})

	r.Register(Check{
		Name:        "agents/routing-sequences",
		Group:       "agents",
		Description: "every routed task has a non-empty agent sequence",
		Run: func(ctx *Context) []Finding {
			doc, err := ctx.Agents()
			if err != nil || doc.Config.Routing == nil {
				return nil
			}
			var findings []Finding
			for _, task := range sortedKeys(doc.Config.Routing.Tasks) {
				if len(doc.Config.Routing.Tasks[task].Sequence) == 0 {
					findings = append(findings, Finding{
						Kind:    KindSchema,
						File:    config.AgentsFile,
						Subject: task,
						Message: fmt.Sprintf("task %q must have a non-empty sequence", task),
					})
				}
			}
			return findings
		},
	})
}
