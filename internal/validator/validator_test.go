package validator

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devos-project/devosctl/internal/config"
)

const fixtureRepo = "../../testdata/devos-repo"

// copyFixture clones the known-good repository into a temp dir so a
// test can break it.
func copyFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, copyFS(dir, os.DirFS(fixtureRepo)))
	return dir
}

// copyFS mirrors os.CopyFS (Go 1.23+) for older toolchains.
func copyFS(dir string, fsys fs.FS) error {
	return fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		target := filepath.Join(dir, filepath.FromSlash(path))
		if d.IsDir() {
			return os.MkdirAll(target, 0777)
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, 0666)
	})
}

// rewrite applies a string replacement to a repo-relative file.
func rewrite(t *testing.T, root, rel, old, new string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	updated := strings.Replace(string(content), old, new, 1)
	require.NotEqual(t, string(content), updated, "replacement %q had no effect", old)
	require.NoError(t, os.WriteFile(path, []byte(updated), 0644))
}

func runAll(t *testing.T, root string) *Report {
	t.Helper()
	runner := NewRunner(DefaultRegistry(), config.NewLayout(root))
	return runner.RunAll()
}

func findingsOfKind(report *Report, kind Kind) []Finding {
	var out []Finding
	for _, f := range report.Findings {
		if f.Kind == kind {
			out = append(out, f)
		}
	}
	return out
}

func TestFullPassValidRepo(t *testing.T) {
	report := runAll(t, fixtureRepo)

	assert.True(t, report.OK(), "valid repo must produce zero findings, got: %v", report.Findings)
	assert.NotEmpty(t, report.ID)
	assert.Len(t, report.ChecksRun, len(DefaultRegistry().All()))
}

func TestIdempotent(t *testing.T) {
	runner := NewRunner(DefaultRegistry(), config.NewLayout(fixtureRepo))

	first := runner.RunAll()
	second := runner.RunAll()

	assert.Equal(t, first.Findings, second.Findings)
	assert.Equal(t, first.ChecksRun, second.ChecksRun)
}

func TestDanglingToolReference(t *testing.T) {
	root := copyFixture(t)
	rewrite(t, root, "Config/agents.yaml",
		"      - propose_patch",
		"      - propose_patch\n      - summarize_diff")

	report := runAll(t, root)

	refs := findingsOfKind(report, KindReference)
	require.Len(t, refs, 1, "exactly one reference finding expected, got: %v", report.Findings)
	assert.Equal(t, "consistency/tool-refs", refs[0].Check)
	assert.Equal(t, "summarize_diff", refs[0].Subject)
	assert.Contains(t, refs[0].Message, "summarize_diff")
	assert.Contains(t, refs[0].Message, "code_consultant")
}

func TestBuiltinToolsExempt(t *testing.T) {
	// list_files is in the fixture but not in the tool schema; the
	// builtin exemption keeps the full pass clean.
	report := runAll(t, fixtureRepo)
	assert.Empty(t, findingsOfKind(report, KindReference))
}

func TestMissingSupervisor(t *testing.T) {
	root := copyFixture(t)

	content, err := os.ReadFile(filepath.Join(root, "Config", "agents.yaml"))
	require.NoError(t, err)
	// Drop the whole supervisor block (ends at the next agent entry).
	text := string(content)
	start := strings.Index(text, "  supervisor:")
	end := strings.Index(text, "  code_consultant:")
	require.True(t, start >= 0 && end > start)
	require.NoError(t, os.WriteFile(filepath.Join(root, "Config", "agents.yaml"),
		[]byte(text[:start]+text[end:]), 0644))

	report := runAll(t, root)

	assert.False(t, report.OK())
	var found bool
	for _, f := range report.Findings {
		if f.Check == "agents/required" && f.Subject == "supervisor" {
			found = true
			assert.Equal(t, KindSchema, f.Kind)
		}
	}
	assert.True(t, found, "missing supervisor must yield a schema finding, got: %v", report.Findings)
}

func TestMissingAgentField(t *testing.T) {
	root := copyFixture(t)
	rewrite(t, root, "Config/agents.yaml", "    role: tester\n", "")

	report := runAll(t, root)

	var found bool
	for _, f := range report.Findings {
		if f.Check == "agents/fields" && f.Subject == "test_consultant" {
			found = true
			assert.Contains(t, f.Message, "role")
		}
	}
	assert.True(t, found, "got: %v", report.Findings)
}

func TestEmptyConstraints(t *testing.T) {
	root := copyFixture(t)
	rewrite(t, root, "Config/agents.yaml",
		"    constraints:\n      - reports raw test output alongside its interpretation",
		"    constraints: []")

	report := runAll(t, root)

	var found bool
	for _, f := range report.Findings {
		if f.Check == "agents/constraints" && f.Subject == "test_consultant" {
			found = true
		}
	}
	assert.True(t, found, "got: %v", report.Findings)
}

func TestSupervisorWithoutCallAgent(t *testing.T) {
	root := copyFixture(t)
	rewrite(t, root, "Config/agents.yaml", "      - call_agent\n", "")

	report := runAll(t, root)

	var found bool
	for _, f := range report.Findings {
		if f.Check == "agents/supervisor-call-agent" {
			found = true
		}
	}
	assert.True(t, found, "got: %v", report.Findings)
}

func TestMalformedYAML(t *testing.T) {
	root := copyFixture(t)
	// Truncated document with a tab in the indentation
	require.NoError(t, os.WriteFile(filepath.Join(root, "Config", "agents.yaml"),
		[]byte("agents:\n  supervisor:\n\tmodel: [truncated"), 0644))

	report := runAll(t, root)

	parses := findingsOfKind(report, KindParse)
	require.Len(t, parses, 1, "malformed YAML must yield one parse finding, got: %v", report.Findings)
	assert.Equal(t, "agents/syntax", parses[0].Check)
	assert.Equal(t, config.AgentsFile, parses[0].File)
}

func TestMalformedJSON(t *testing.T) {
	root := copyFixture(t)
	rewrite(t, root, "Config/Tool-schema.json",
		`"result": "object"`,
		`"result": "object",`)

	report := runAll(t, root)

	parses := findingsOfKind(report, KindParse)
	require.Len(t, parses, 1, "trailing comma must yield one parse finding, got: %v", report.Findings)
	assert.Equal(t, "tools/syntax", parses[0].Check)
	assert.Equal(t, config.ToolSchemaFile, parses[0].File)
}

func TestMissingRequiredTool(t *testing.T) {
	root := copyFixture(t)
	rewrite(t, root, "Config/Tool-schema.json",
		`"propose_patch": {`,
		`"propose_edit": {`)

	report := runAll(t, root)

	var found bool
	for _, f := range report.Findings {
		if f.Check == "tools/required" && f.Subject == "propose_patch" {
			found = true
			assert.Equal(t, KindSchema, f.Kind)
		}
	}
	assert.True(t, found, "got: %v", report.Findings)
}

func TestToolShapeMismatch(t *testing.T) {
	root := copyFixture(t)
	rewrite(t, root, "Config/Tool-schema.json",
		`"comment": "string"`,
		`"note": "string"`)

	report := runAll(t, root)

	var found bool
	for _, f := range report.Findings {
		if f.Check == "tools/shapes" && f.Subject == "propose_patch" {
			found = true
			assert.Contains(t, f.Message, "comment")
		}
	}
	assert.True(t, found, "got: %v", report.Findings)
}

func TestMissingConfigFile(t *testing.T) {
	root := copyFixture(t)
	require.NoError(t, os.Remove(filepath.Join(root, "Config", "agents.yaml")))

	report := runAll(t, root)

	assert.False(t, report.OK())
	// Missing file is a schema violation, not a parse failure
	assert.Empty(t, findingsOfKind(report, KindParse))
}

func TestRoutingToUndefinedAgent(t *testing.T) {
	root := copyFixture(t)
	rewrite(t, root, "Config/agents.yaml",
		"        - supervisor\n        - code_consultant\n        - test_consultant",
		"        - supervisor\n        - reviewer")

	report := runAll(t, root)

	refs := findingsOfKind(report, KindReference)
	require.Len(t, refs, 1, "got: %v", report.Findings)
	assert.Equal(t, "consistency/routing-refs", refs[0].Check)
	assert.Equal(t, "reviewer", refs[0].Subject)
}

func TestImplicitPlannerAllowed(t *testing.T) {
	// The fixture routes add_feature through the implicit planner
	report := runAll(t, fixtureRepo)
	for _, f := range report.Findings {
		assert.NotEqual(t, "planner", f.Subject)
	}
}

func TestDocMissingConfigReference(t *testing.T) {
	root := copyFixture(t)
	rewrite(t, root, ".github/copilot-instructions.md",
		"Tool-schema.json", "tool-schema.json")

	report := runAll(t, root)

	var found bool
	for _, f := range report.Findings {
		if f.Check == "consistency/doc-refs" && f.Subject == "Tool-schema.json" {
			found = true
			assert.Equal(t, KindReference, f.Kind)
		}
	}
	assert.True(t, found, "got: %v", report.Findings)
}

func TestWebSupportNotMentioned(t *testing.T) {
	root := copyFixture(t)
	rewrite(t, root, ".github/copilot-instructions.md",
		"web browser environments", "desktop environments")

	report := runAll(t, root)

	subjects := make(map[string]bool)
	for _, f := range report.Findings {
		if f.Check == "docs/web-support" {
			subjects[f.Subject] = true
		}
	}
	assert.True(t, subjects["web"], "got: %v", report.Findings)
	assert.True(t, subjects["browser"], "got: %v", report.Findings)
}

func TestSecuritySectionMissing(t *testing.T) {
	root := copyFixture(t)
	rewrite(t, root, ".github/copilot-instructions.md",
		"## Security", "## Hardening")

	report := runAll(t, root)

	var found bool
	for _, f := range report.Findings {
		if f.Check == "docs/security" && f.Subject == "Security" {
			found = true
		}
	}
	assert.True(t, found, "got: %v", report.Findings)
}

func TestSecretsNotMentioned(t *testing.T) {
	root := copyFixture(t)
	rewrite(t, root, ".github/copilot-instructions.md",
		"Never commit secrets or API keys.", "Never commit credentials.")

	report := runAll(t, root)

	var found bool
	for _, f := range report.Findings {
		if f.Check == "docs/security" && f.Subject == "secrets" {
			found = true
		}
	}
	assert.True(t, found, "got: %v", report.Findings)
}

func TestReadmeWithoutProjectName(t *testing.T) {
	root := copyFixture(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "README.md"),
		[]byte("# Placeholder\n\nNothing to see here.\n"), 0644))

	report := runAll(t, root)

	var found bool
	for _, f := range report.Findings {
		if f.Check == "docs/readme" && f.Subject == "DevOS" {
			found = true
		}
	}
	assert.True(t, found, "got: %v", report.Findings)
}

func TestEmptyReadme(t *testing.T) {
	root := copyFixture(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "README.md"), nil, 0644))

	report := runAll(t, root)

	var count int
	for _, f := range report.Findings {
		if f.Check == "docs/readme" {
			count++
		}
	}
	// empty plus no project name
	assert.Equal(t, 2, count, "got: %v", report.Findings)
}

func TestAlgorithmMissingSymbol(t *testing.T) {
	root := copyFixture(t)
	rewrite(t, root, config.AlgorithmFile, "apply_patch", "apply_diff")

	report := runAll(t, root)

	var found bool
	for _, f := range report.Findings {
		if f.Check == "docs/algorithm" && f.Subject == "apply_patch" {
			found = true
		}
	}
	assert.True(t, found, "got: %v", report.Findings)
}

func TestMissingAlgorithmDoc(t *testing.T) {
	root := copyFixture(t)
	require.NoError(t, os.Remove(filepath.Join(root, filepath.FromSlash(config.AlgorithmFile))))

	report := runAll(t, root)

	var found bool
	for _, f := range report.Findings {
		if f.Check == "docs/algorithm" {
			found = true
			assert.Contains(t, f.Message, "must exist")
		}
	}
	assert.True(t, found, "got: %v", report.Findings)
}

func TestMissingGitkeep(t *testing.T) {
	root := copyFixture(t)
	require.NoError(t, os.Remove(filepath.Join(root, "Mobile", ".gitkeep")))

	report := runAll(t, root)

	var found bool
	for _, f := range report.Findings {
		if f.Check == "structure/placeholders" && f.File == "Mobile" {
			found = true
		}
	}
	assert.True(t, found, "got: %v", report.Findings)
}

func TestNonMITLicense(t *testing.T) {
	root := copyFixture(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "LICENSE"),
		[]byte("Apache License\nVersion 2.0\n"), 0644))

	report := runAll(t, root)

	var count int
	for _, f := range report.Findings {
		if f.Check == "structure/license" {
			count++
		}
	}
	assert.Equal(t, 2, count, "got: %v", report.Findings)
}

func TestMissingInstructionSection(t *testing.T) {
	root := copyFixture(t)
	rewrite(t, root, ".github/copilot-instructions.md",
		"## Technology Stack", "## Stack")

	report := runAll(t, root)

	var found bool
	for _, f := range report.Findings {
		if f.Check == "docs/instructions-sections" && f.Subject == "Technology Stack" {
			found = true
		}
	}
	assert.True(t, found, "got: %v", report.Findings)
}

func TestBackslashPath(t *testing.T) {
	root := copyFixture(t)
	rewrite(t, root, ".github/copilot-instructions.md",
		"- `Config/` — agent and tool configuration",
		`- Config\agents.yaml on some/path`)

	report := runAll(t, root)

	var found bool
	for _, f := range report.Findings {
		if f.Check == "docs/path-separators" {
			found = true
		}
	}
	assert.True(t, found, "got: %v", report.Findings)
}

func TestRunGroup(t *testing.T) {
	runner := NewRunner(DefaultRegistry(), config.NewLayout(fixtureRepo))

	report, err := runner.RunGroup("agents")
	require.NoError(t, err)
	assert.True(t, report.OK())
	for _, name := range report.ChecksRun {
		assert.True(t, strings.HasPrefix(name, "agents/"), name)
	}

	_, err = runner.RunGroup("nonexistent")
	assert.Error(t, err)
}

func TestRunNamed(t *testing.T) {
	runner := NewRunner(DefaultRegistry(), config.NewLayout(fixtureRepo))

	report, err := runner.RunNamed([]string{"tools/shapes"})
	require.NoError(t, err)
	assert.Equal(t, []string{"tools/shapes"}, report.ChecksRun)

	_, err = runner.RunNamed([]string{"tools/bogus"})
	assert.Error(t, err)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register(Check{Name: "a/x", Group: "a"})
	r.Register(Check{Name: "a/y", Group: "a"})
	r.Register(Check{Name: "b/z", Group: "b"})

	assert.Len(t, r.All(), 3)
	assert.Len(t, r.ByGroup("a"), 2)
	assert.Equal(t, []string{"a", "b"}, r.Groups())

	_, ok := r.ByName("a/x")
	assert.True(t, ok)
	_, ok = r.ByName("missing")
	assert.False(t, ok)

	assert.Panics(t, func() {
		r.Register(Check{Name: "a/x", Group: "a"})
	})
}

// failFS refuses every read.
type failFS struct{}

func (failFS) Open(name string) (fs.File, error) {
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrPermission}
}

func TestPlaceholderScanFailure(t *testing.T) {
	findings := placeholderFindings(failFS{})

	require.Len(t, findings, 1)
	assert.Equal(t, KindSchema, findings[0].Kind)
	assert.Contains(t, findings[0].Message, "scan placeholder markers")
}

func TestReportCounts(t *testing.T) {
	report := &Report{
		Findings: []Finding{
			{Check: "a", Kind: KindParse},
			{Check: "b", Kind: KindSchema},
			{Check: "b", Kind: KindSchema},
			{Check: "c", Kind: KindReference},
		},
	}

	counts := report.Counts()
	assert.Equal(t, 1, counts[KindParse])
	assert.Equal(t, 2, counts[KindSchema])
	assert.Equal(t, 1, counts[KindReference])

	order, grouped := report.ByCheck()
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Len(t, grouped["b"], 2)
}
