package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JA3G3R/lintzard/types"
)

func execute(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&errOut)
	code := run(context.Background(), root, append(args, "--log-level", "error"))
	return out.String(), errOut.String(), code
}

func project(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"app.js":  "var total = 0;\nfunction add(n) { total += n; }\nfunction get() { return total == '0'; }\n",
		"safe.js": "export const answer = 42;\n",
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

func TestScanJSON(t *testing.T) {
	dir := project(t)
	out, stderr, code := execute(t, "scan", "--format", "json", "-f", dir)
	require.Equal(t, 0, code, stderr)

	var rep types.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	require.Len(t, rep.Files, 2)
	assert.Equal(t, 1, rep.Summary.ByRule["global-state"])
	assert.Equal(t, 1, rep.Summary.ByRule["eqeqeq"])
	assert.Empty(t, rep.Files[1].Findings)
}

func TestScanFailOn(t *testing.T) {
	dir := project(t)
	_, _, code := execute(t, "scan", dir, "--fail-on", "warning")
	assert.Equal(t, ExitFindings, code)

	_, _, code = execute(t, "scan", dir, "--fail-on", "error")
	assert.Equal(t, 0, code)

	_, stderr, code := execute(t, "scan", dir, "--fail-on", "fatal")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "--fail-on")
}

func TestScanRejectsBadConfig(t *testing.T) {
	dir := project(t)
	cfg := filepath.Join(t.TempDir(), "lintzard.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("rules:\n  no-goto:\n    enabled: true\n"), 0o644))

	out, stderr, code := execute(t, "scan", dir, "-c", cfg)
	assert.Equal(t, 1, code)
	assert.Empty(t, out)
	assert.Contains(t, stderr, "no-goto")
}

func TestRulesCommand(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "lintzard.hcl")
	require.NoError(t, os.WriteFile(cfg, []byte("rule \"no-var\" {\n  enabled = true\n}\n"), 0o644))

	out, stderr, code := execute(t, "rules", "--format", "json", "-c", cfg)
	require.Equal(t, 0, code, stderr)
	var descs []types.RuleDescriptor
	require.NoError(t, json.Unmarshal([]byte(out), &descs))
	require.Len(t, descs, 18)
	for _, d := range descs {
		if d.ID == "no-var" {
			assert.True(t, d.Enabled)
		}
	}
}

func TestCompareCommand(t *testing.T) {
	dir := project(t)
	before, _, code := execute(t, "scan", dir, "--format", "json")
	require.Equal(t, 0, code)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("export const total = 0;\n"), 0o644))
	after, _, code := execute(t, "scan", dir, "--format", "json")
	require.Equal(t, 0, code)

	reports := t.TempDir()
	b, a := filepath.Join(reports, "before.json"), filepath.Join(reports, "after.json")
	require.NoError(t, os.WriteFile(b, []byte(before), 0o644))
	require.NoError(t, os.WriteFile(a, []byte(after), 0o644))

	out, stderr, code := execute(t, "compare", b, a, "--format", "json")
	require.Equal(t, 0, code, stderr)
	var cmp struct {
		Before int `json:"before"`
		After  int `json:"after"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &cmp))
	assert.Equal(t, 2, cmp.Before)
	assert.Equal(t, 0, cmp.After)
}
