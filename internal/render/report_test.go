package render

import (
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/devos-project/devosctl/internal/validator"
)

func init() {
	// Deterministic output in tests
	color.NoColor = true
}

func cleanReport() *validator.Report {
	return &validator.Report{
		ID:        "01TEST",
		Root:      "/repo",
		StartedAt: time.Now(),
		Duration:  5 * time.Millisecond,
		ChecksRun: []string{"agents/syntax", "agents/required", "tools/syntax"},
	}
}

func failedReport() *validator.Report {
	r := cleanReport()
	r.Findings = []validator.Finding{
		{
			Check:   "consistency/tool-refs",
			Kind:    validator.KindReference,
			File:    "Config/Tool-schema.json",
			Subject: "summarize_diff",
			Message: "tool \"summarize_diff\" used by agent \"code_consultant\" is not defined in the tool schema",
		},
		{
			Check:   "agents/required",
			Kind:    validator.KindSchema,
			File:    "Config/agents.yaml",
			Subject: "supervisor",
			Message: "agent \"supervisor\" must be defined",
		},
	}
	return r
}

func TestReportPlainClean(t *testing.T) {
	out := New(false).Report(cleanReport())

	assert.Contains(t, out, "3 checks, 0 findings")
	assert.Contains(t, out, "Status: PASSED")
	assert.NotContains(t, out, "FAILED")
}

func TestReportPlainFailed(t *testing.T) {
	out := New(false).Report(failedReport())

	assert.Contains(t, out, "Status: FAILED")
	assert.Contains(t, out, "0 parse, 1 schema, 1 reference")
	assert.Contains(t, out, "consistency/tool-refs")
	assert.Contains(t, out, "subject: summarize_diff")
	assert.Contains(t, out, "file: Config/Tool-schema.json")
}

func TestReportPrettyFailed(t *testing.T) {
	out := New(true).Report(failedReport())

	assert.Contains(t, out, "DevOS Configuration Validation")
	assert.Contains(t, out, "Status: FAILED")
	// Summary table lists groups derived from check names
	assert.Contains(t, out, "agents")
	assert.Contains(t, out, "tools")
}

func TestFindingsQuietClean(t *testing.T) {
	assert.Empty(t, New(false).Findings(cleanReport()))
}

func TestFindingsQuietFailed(t *testing.T) {
	out := New(false).Findings(failedReport())

	assert.Contains(t, out, "Status: FAILED")
	assert.Contains(t, out, "agents/required")
}

func TestCheckGroup(t *testing.T) {
	assert.Equal(t, "agents", checkGroup("agents/syntax"))
	assert.Equal(t, "plain", checkGroup("plain"))
}

func TestWriterHelpers(t *testing.T) {
	var sb strings.Builder
	w := NewWriter(&sb)

	w.Header("validation history")
	w.Section("agents")
	w.Item("%s ok", "agents/syntax")
	w.SubItem("detail")
	w.Line()

	out := sb.String()
	assert.Contains(t, out, "VALIDATION HISTORY")
	assert.Contains(t, out, "AGENTS:")
	assert.Contains(t, out, "  agents/syntax ok")
	assert.Contains(t, out, "    detail")
}

func TestIcons(t *testing.T) {
	assert.Equal(t, "✓", BoolIcon(true))
	assert.Equal(t, "✗", BoolIcon(false))
	assert.NotEmpty(t, KindIcon("parse"))
	assert.NotEmpty(t, KindIcon("schema"))
	assert.NotEmpty(t, KindIcon("reference"))
	assert.Equal(t, "•", KindIcon("other"))
}
