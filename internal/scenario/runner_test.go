package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const domain = "@starnav.com.br"

func writeScenario(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun(t *testing.T) {
	s := &Scenario{
		Name: "mixed",
		Cases: []Case{
			{Name: "crew creates", Identity: Identity{Role: "CHIEF_ENGINEER", Sector: "CREW", Email: "c@starnav.com.br"}, Operation: "create", Expect: "allowed"},
			{Name: "wrong expectation", Identity: Identity{Role: "COMMON", Sector: "HR", Email: "h@starnav.com.br"}, Operation: "view", Expect: "ALLOWED"},
			{Name: "reason mismatch", Identity: Identity{Role: "ADMIN", Sector: "IT", Email: "a@starnav.com.br"}, Operation: "transition", Status: "PENDING", Requested: "COMPLETED", Expect: "denied", Reason: "something else"},
			{Name: "bad operation", Operation: "launch", Expect: "invalid"},
		},
	}

	r := Run(s, domain)
	assert.Equal(t, 4, r.Total)
	assert.Equal(t, 2, r.Passed)
	assert.Equal(t, 2, r.Failed)
	assert.True(t, r.Cases[0].Passed)
	assert.Equal(t, "allowed", r.Cases[1].Expected)
	assert.Equal(t, "denied", r.Cases[1].Actual)
	assert.Equal(t, "illegal transition", r.Cases[2].Reason)
	assert.True(t, r.Cases[3].Passed)
}

func TestRun_ScenarioDomainOverride(t *testing.T) {
	s := &Scenario{
		Domain: "@fleet.example",
		Cases: []Case{
			{Identity: Identity{Role: "ADMIN", Sector: "IT", Email: "root@fleet.example"}, Operation: "delete", Expect: "allowed"},
			{Identity: Identity{Role: "ADMIN", Sector: "IT", Email: "root@starnav.com.br"}, Operation: "delete", Expect: "denied"},
		},
	}
	assert.Zero(t, Run(s, domain).Failed)
}

func TestRunGlob(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "a.yaml", `
name: passes
cases:
  - identity: {role: MANAGER, sector: OPERATIONS, email: m@starnav.com.br}
    operation: view
    expect: allowed
`)
	writeScenario(t, dir, "b.yaml", `
cases:
  - identity: {role: BUYER_MID, sector: PROCUREMENT, email: b@starnav.com.br}
    operation: create
    expect: allowed
`)

	results, err := RunGlob(filepath.Join(dir, "*.yaml"), domain)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "passes", results[0].Name)
	assert.Equal(t, "b.yaml", results[1].Name)
	assert.True(t, AnyFailed(results))

	text := FormatText(results)
	assert.Contains(t, text, "Checking 2 scenario files")
	assert.Contains(t, text, "PASS  passes (1/1)")
	assert.Contains(t, text, "FAIL  b.yaml (0/1)")
	assert.Contains(t, text, "1 of 2 cases passed. 1 of 2 scenarios failed.")

	out, err := FormatJSON(results)
	require.NoError(t, err)
	assert.Contains(t, out, `"failed": 1`)

	_, err = RunGlob(filepath.Join(dir, "*.yml"), domain)
	require.Error(t, err)

	writeScenario(t, dir, "broken.yaml", "cases: [")
	_, err = RunGlob(filepath.Join(dir, "*.yaml"), domain)
	require.Error(t, err)
}

func TestShippedScenarios(t *testing.T) {
	results, err := RunGlob("../../scenarios/*.yaml", domain)
	require.NoError(t, err)
	assert.False(t, AnyFailed(results), FormatText(results))
}
