package config

import "path/filepath"

// Layout describes where the DevOS repository keeps its configuration
// artifacts and which entries the repository contract requires.
type Layout struct {
	// Root is the repository root directory.
	Root string
}

// NewLayout creates a layout rooted at dir.
func NewLayout(dir string) Layout {
	return Layout{Root: dir}
}

// Standard artifact locations, relative to the repository root.
const (
	AgentsFile       = "Config/agents.yaml"
	ToolSchemaFile   = "Config/Tool-schema.json"
	InstructionsFile = ".github/copilot-instructions.md"
	ReadmeFile       = "README.md"
	LicenseFile      = "LICENSE"
	AlgorithmFile    = "Docs/Orchestration algorithm (pseudo‑code)"
)

// Abs resolves a repo-relative path against the root.
func (l Layout) Abs(rel string) string {
	return filepath.Join(l.Root, filepath.FromSlash(rel))
}

// RequiredAgents lists agent names that must be defined in agents.yaml.
var RequiredAgents = []string{"supervisor", "code_consultant", "test_consultant"}

// RequiredAgentFields lists fields every agent entry must carry.
var RequiredAgentFields = []string{"model", "role", "description", "tools", "constraints"}

// RequiredTools lists tool names that must be defined in the tool schema.
var RequiredTools = []string{"read_file", "propose_patch", "run_tests", "call_agent"}

// BuiltinTools are provided by the runtime and exempt from the
// tool cross-reference check.
var BuiltinTools = map[string]bool{
	"list_files":  true,
	"diff_files":  true,
	"run_command": true,
	"search_web":  true,
}

// ImplicitAgents may appear in routing sequences without a definition
// in agents.yaml.
var ImplicitAgents = map[string]bool{
	"planner": true,
}

// RequiredDirs lists directories the repository tree must contain.
var RequiredDirs = []string{
	".github",
	"Config",
	"Docs",
	"Mobile",
	"Server",
	"server",
	"server/devos_core",
}

// RequiredFiles lists files the repository tree must contain.
var RequiredFiles = []string{
	ReadmeFile,
	LicenseFile,
	AgentsFile,
	ToolSchemaFile,
	InstructionsFile,
}

// PlaceholderDirs must carry a .gitkeep marker so empty directories
// survive version control.
var PlaceholderDirs = []string{
	"Config",
	"Docs",
	"Mobile",
	"Server",
	"server/devos_core",
}

// RequiredInstructionSections must appear verbatim in the instructions file.
var RequiredInstructionSections = []string{
	"Project Overview",
	"Architecture Principles",
	"Development Guidelines",
	"File Organization",
	"Technology Stack",
	"AI/Supervisor Integration",
}

// RequiredAlgorithmSymbols must appear in the orchestration algorithm doc.
var RequiredAlgorithmSymbols = []string{
	"handle_user_request",
	"supervisor_plan",
	"call_agent",
	"apply_patch",
	"run_tests",
}
