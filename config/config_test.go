package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JA3G3R/lintzard/rules"
	"github.com/JA3G3R/lintzard/types"
)

func write(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Positive(t, c.Workers)
	assert.Equal(t, 5*time.Second, c.ParseTimeout)
	assert.Equal(t, types.SeverityInfo, c.Severity())
	assert.Equal(t, []string{"browser", "node"}, c.Environments)
	assert.Equal(t, "console", c.Logging.Format)
}

func TestLoadHCL(t *testing.T) {
	path := write(t, "lintzard.hcl", `
workers       = 3
parse_timeout = "250ms"
min_severity  = "warning"
environments  = ["browser"]
globals       = ["jQuery"]

logging {
  level  = "debug"
  format = "json"
}

rule "eqeqeq" {
  severity = "error"
  options  = { allow_null = "true" }
}

rule "no-var" {
  enabled = true
}
`)
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Workers)
	assert.Equal(t, 250*time.Millisecond, c.ParseTimeout)
	assert.Equal(t, types.SeverityWarning, c.Severity())
	assert.Equal(t, []string{"browser"}, c.Environments)
	assert.Equal(t, []string{"jQuery"}, c.Globals)
	assert.Equal(t, Logging{Level: "debug", Format: "json"}, c.Logging)

	require.Contains(t, c.Rules, "eqeqeq")
	assert.Equal(t, "error", c.Rules["eqeqeq"].Severity)
	assert.Equal(t, map[string]string{"allow_null": "true"}, c.Rules["eqeqeq"].Options)
	require.NotNil(t, c.Rules["no-var"].Enabled)
	assert.True(t, *c.Rules["no-var"].Enabled)

	configured, err := rules.Default().Configure(c.RuleSettings())
	require.NoError(t, err)
	ids := map[string]types.Severity{}
	for _, r := range configured {
		ids[r.Descriptor().ID] = r.Descriptor().Severity
	}
	assert.Equal(t, types.SeverityError, ids["eqeqeq"])
	assert.Contains(t, ids, "no-var")
}

func TestLoadYAML(t *testing.T) {
	path := write(t, "lintzard.yaml", `
workers: 2
parse_timeout: 1s
environments: [node]
rules:
  radix:
    enabled: false
  no-unused-vars:
    options:
      check_params: "true"
`)
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Workers)
	assert.Equal(t, time.Second, c.ParseTimeout)
	assert.Equal(t, []string{"node"}, c.Environments)
	require.NotNil(t, c.Rules["radix"].Enabled)
	assert.False(t, *c.Rules["radix"].Enabled)
	assert.Equal(t, "true", c.Rules["no-unused-vars"].Options["check_params"])
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("LINTZARD_WORKERS", "7")
	t.Setenv("LINTZARD_PARSE_TIMEOUT", "3s")
	t.Setenv("LINTZARD_MIN_SEVERITY", "high")
	t.Setenv("LINTZARD_LOG_FORMAT", "json")

	c, err := Load(write(t, "c.yml", "workers: 2\n"))
	require.NoError(t, err)
	assert.Equal(t, 7, c.Workers)
	assert.Equal(t, 3*time.Second, c.ParseTimeout)
	assert.Equal(t, types.SeverityError, c.Severity())
	assert.Equal(t, "json", c.Logging.Format)
}

func TestLoadErrors(t *testing.T) {
	cases := map[string]struct {
		path  func(t *testing.T) string
		env   map[string]string
		field string
	}{
		"missing file": {
			path:  func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.hcl") },
			field: "file",
		},
		"unknown extension": {
			path:  func(t *testing.T) string { return write(t, "c.toml", "") },
			field: "file",
		},
		"bad hcl": {
			path:  func(t *testing.T) string { return write(t, "c.hcl", "workers = \n") },
			field: "file",
		},
		"bad duration": {
			path:  func(t *testing.T) string { return write(t, "c.hcl", `parse_timeout = "soon"`) },
			field: "file",
		},
		"zero workers": {
			path:  func(t *testing.T) string { return write(t, "c.yaml", "workers: 0\n") },
			field: "workers",
		},
		"bad severity": {
			path:  func(t *testing.T) string { return write(t, "c.yaml", "min_severity: critical\n") },
			field: "min_severity",
		},
		"bad rule severity": {
			path:  func(t *testing.T) string { return write(t, "c.yaml", "rules:\n  radix:\n    severity: loud\n") },
			field: "severity",
		},
		"bad env": {
			path:  func(t *testing.T) string { return "" },
			env:   map[string]string{"LINTZARD_WORKERS": "many"},
			field: "LINTZARD_WORKERS",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load(tc.path(t))
			var cerr *types.ConfigError
			require.True(t, errors.As(err, &cerr), "got %v", err)
			assert.Equal(t, tc.field, cerr.Field)
		})
	}
}
