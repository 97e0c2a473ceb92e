package config

import (
	"fmt"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

type hclFile struct {
	Workers      *int         `hcl:"workers,optional"`
	ParseTimeout *string      `hcl:"parse_timeout,optional"`
	MinSeverity  *string      `hcl:"min_severity,optional"`
	Environments *[]string    `hcl:"environments,optional"`
	Globals      *[]string    `hcl:"globals,optional"`
	Rules        []hclRule    `hcl:"rule,block"`
	Logging      []hclLogging `hcl:"logging,block"`
}

type hclRule struct {
	ID       string            `hcl:"id,label"`
	Enabled  *bool             `hcl:"enabled,optional"`
	Severity *string           `hcl:"severity,optional"`
	Options  map[string]string `hcl:"options,optional"`
}

type hclLogging struct {
	Level  *string `hcl:"level,optional"`
	Format *string `hcl:"format,optional"`
}

// decodeHCL merges an HCL config file into c:
//
//	workers       = 8
//	parse_timeout = "2s"
//	environments  = ["browser"]
//
//	rule "eqeqeq" {
//	  severity = "error"
//	  options  = { allow_null = "true" }
//	}
func decodeHCL(path string, src []byte, c *Config) error {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, path)
	if diags.HasErrors() {
		return diags
	}
	var raw hclFile
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return diags
	}

	if raw.Workers != nil {
		c.Workers = *raw.Workers
	}
	if raw.ParseTimeout != nil {
		d, err := time.ParseDuration(*raw.ParseTimeout)
		if err != nil {
			return fmt.Errorf("parse_timeout: %w", err)
		}
		c.ParseTimeout = d
	}
	if raw.MinSeverity != nil {
		c.MinSeverity = *raw.MinSeverity
	}
	if raw.Environments != nil {
		c.Environments = *raw.Environments
	}
	if raw.Globals != nil {
		c.Globals = *raw.Globals
	}
	for _, l := range raw.Logging {
		if l.Level != nil {
			c.Logging.Level = *l.Level
		}
		if l.Format != nil {
			c.Logging.Format = *l.Format
		}
	}
	for _, r := range raw.Rules {
		if _, dup := c.Rules[r.ID]; dup {
			return fmt.Errorf("rule %q configured twice", r.ID)
		}
		rc := RuleConfig{Enabled: r.Enabled, Options: r.Options}
		if r.Severity != nil {
			rc.Severity = *r.Severity
		}
		c.Rules[r.ID] = rc
	}
	return nil
}
