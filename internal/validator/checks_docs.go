package validator

import (
	"fmt"
	"strings"

	"github.com/devos-project/devosctl/internal/config"
)

func registerDocChecks(r *Registry) {
	r.Register(Check{
		Name:        "docs/instructions-sections",
		Group:       "docs",
		Description: "the Copilot instructions document carries the required sections",
		Run: func(ctx *Context) []Finding {
			content, err := ctx.ReadFile(config.InstructionsFile)
			if err != nil {
				return []Finding{{
					Kind:    KindSchema,
					File:    config.InstructionsFile,
					Message: "file must exist",
				}}
			}
			text := string(content)
			var findings []Finding
			for _, section := range config.RequiredInstructionSections {
				if !strings.Contains(text, section) {
					findings = append(findings, Finding{
						Kind:    KindSchema,
						File:    config.InstructionsFile,
						Subject: section,
						Message: fmt.Sprintf("documentation must include %s section", section),
					})
				}
			}
			return findings
		},
	})

	r.Register(Check{
		Name:        "docs/web-support",
		Group:       "docs",
		Description: "the instructions mention web and browser support",
		Run: func(ctx *Context) []Finding {
			content, err := ctx.ReadFile(config.InstructionsFile)
			if err != nil {
				return nil
			}
			lower := strings.ToLower(string(content))
			var findings []Finding
			for _, term := range []string{"web", "browser"} {
				if !strings.Contains(lower, term) {
					findings = append(findings, Finding{
						Kind:    KindSchema,
						File:    config.InstructionsFile,
						Subject: term,
						Message: fmt.Sprintf("documentation must mention %s support", term),
					})
				}
			}
			return findings
		},
	})

	r.Register(Check{
		Name:        "docs/security",
		Group:       "docs",
		Description: "security guidelines and secrets handling are documented",
		Run: func(ctx *Context) []Finding {
			content, err := ctx.ReadFile(config.InstructionsFile)
			if err != nil {
				return nil
			}
			text := string(content)
			var findings []Finding
			if !strings.Contains(text, "Security") {
				findings = append(findings, Finding{
					Kind:    KindSchema,
					File:    config.InstructionsFile,
					Subject: "Security",
					Message: "documentation must have a Security section",
				})
			}
			if !strings.Contains(strings.ToLower(text), "secrets") {
				findings = append(findings, Finding{
					Kind:    KindSchema,
					File:    config.InstructionsFile,
					Subject: "secrets",
					Message: "documentation must mention secrets handling",
				})
			}
			return findings
		},
	})

	r.Register(Check{
		Name:        "docs/readme",
		Group:       "docs",
		Description: "README exists, is non-empty and names the project",
		Run: func(ctx *Context) []Finding {
			content, err := ctx.ReadFile(config.ReadmeFile)
			if err != nil {
				return []Finding{{
					Kind:    KindSchema,
					File:    config.ReadmeFile,
					Message: "file must exist",
				}}
			}
			text := strings.TrimSpace(string(content))
			var findings []Finding
			if text == "" {
				findings = append(findings, Finding{
					Kind:    KindSchema,
					File:    config.ReadmeFile,
					Message: "README must not be empty",
				})
			}
			if !strings.Contains(text, "DevOS") {
				findings = append(findings, Finding{
					Kind:    KindSchema,
					File:    config.ReadmeFile,
					Subject: "DevOS",
					Message: "README must mention DevOS",
				})
			}
			return findings
		},
	})

	r.Register(Check{
		Name:        "docs/algorithm",
		Group:       "docs",
		Description: "the orchestration algorithm doc defines the key functions",
		Run: func(ctx *Context) []Finding {
			content, err := ctx.ReadFile(config.AlgorithmFile)
			if err != nil {
				return []Finding{{
					Kind:    KindSchema,
					File:    config.AlgorithmFile,
					Message: "orchestration algorithm file must exist",
				}}
			}
			text := string(content)
			var findings []Finding
			for _, symbol := range config.RequiredAlgorithmSymbols {
				if !strings.Contains(text, symbol) {
					findings = append(findings, Finding{
						Kind:    KindSchema,
						File:    config.AlgorithmFile,
						Subject: symbol,
						Message: fmt.Sprintf("algorithm must define %s", symbol),
					})
				}
			}
			return findings
		},
	})

	r.Register(Check{
		Name:        "docs/path-separators",
		Group:       "docs",
		Description: "documented paths use forward slashes",
		Run: func(ctx *Context) []Finding {
			content, err := ctx.ReadFile(config.InstructionsFile)
			if err != nil {
				return nil
			}
			var findings []Finding
			for _, line := range strings.Split(string(content), "\n") {
				trimmed := strings.TrimSpace(line)
				if !strings.Contains(line, "/") || strings.HasPrefix(trimmed, "#") {
					continue
				}
				if strings.Contains(line, `\`) && !strings.Contains(strings.ToLower(line), "escape") {
					findings = append(findings, Finding{
						Kind:    KindSchema,
						File:    config.InstructionsFile,
						Message: fmt.Sprintf("found backslash in path: %s", trimmed),
					})
				}
			}
			return findings
		},
	})
}
