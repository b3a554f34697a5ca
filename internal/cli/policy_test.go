package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"vessel-orders/internal/authz"
)

func TestWriteMatrix_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeMatrix(&buf, authz.Matrix(), "json"))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Contains(t, decoded, "sectors")
	graph := decoded["graph"].(map[string]interface{})
	assert.Contains(t, graph, "PENDING")
	assert.ElementsMatch(t, []interface{}{"APPROVED", "CANCELLED"}, graph["COMPLETED"])
}

func TestWriteMatrix_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeMatrix(&buf, authz.Matrix(), "yaml"))

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Contains(t, decoded, "fields")
}

func TestWriteMatrix_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeMatrix(&buf, authz.Matrix(), "text"))

	out := buf.String()
	assert.Contains(t, out, "WORKFLOW GRAPH")
	assert.Contains(t, out, "MAINTENANCE")
	assert.Contains(t, out, "PENDING")
}

func TestWriteMatrix_UnknownFormat(t *testing.T) {
	assert.Error(t, writeMatrix(&bytes.Buffer{}, authz.Matrix(), "toml"))
}

func TestPolicyCheckCommand(t *testing.T) {
	dir := t.TempDir()
	content := `name: smoke
cases:
  - name: crew creates
    identity: {role: CHIEF_ENGINEER, sector: CREW, email: carla@starnav.com.br}
    operation: create
    expect: allowed
  - name: foreign domain
    identity: {role: CHIEF_ENGINEER, sector: CREW, email: carla@gmail.com}
    operation: view
    expect: denied
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "smoke.yaml"), []byte(content), 0o644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"policy", "check", "--scenario", filepath.Join(dir, "*.yaml"), "--domain", "@starnav.com.br"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "PASS  smoke (2/2)")
}

func TestPolicyCheckCommand_NoMatches(t *testing.T) {
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"policy", "check", "--scenario", filepath.Join(t.TempDir(), "*.yaml")})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	assert.Error(t, rootCmd.Execute())
}
