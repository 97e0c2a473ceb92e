// Package config loads run configuration from HCL or YAML files and
// LINTZARD_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/JA3G3R/lintzard/rules"
	"github.com/JA3G3R/lintzard/types"
)

type RuleConfig struct {
	Enabled  *bool             `yaml:"enabled"`
	Severity string            `yaml:"severity"`
	Options  map[string]string `yaml:"options"`
}

type Logging struct {
	Level  string `yaml:"level"`  // debug|info|warn|error
	Format string `yaml:"format"` // console|json
}

type Config struct {
	Workers      int                   `yaml:"workers"`
	ParseTimeout time.Duration         `yaml:"parse_timeout"`
	MinSeverity  string                `yaml:"min_severity"`
	Environments []string              `yaml:"environments"`
	Globals      []string              `yaml:"globals"`
	Rules        map[string]RuleConfig `yaml:"rules"`
	Logging      Logging               `yaml:"logging"`
}

func Default() Config {
	return Config{
		Workers:      runtime.GOMAXPROCS(0),
		ParseTimeout: 5 * time.Second,
		MinSeverity:  string(types.SeverityInfo),
		Environments: []string{"browser", "node"},
		Rules:        map[string]RuleConfig{},
		Logging:      Logging{Level: "info", Format: "console"},
	}
}

// Load reads path (when set) over the defaults, applies environment
// overrides and validates the result. Every failure is a *types.ConfigError.
func Load(path string) (Config, error) {
	c := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return c, &types.ConfigError{Field: "file", Cause: err}
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".hcl":
			err = decodeHCL(path, b, &c)
		case ".yaml", ".yml":
			err = decodeYAML(b, &c)
		default:
			err = fmt.Errorf("unsupported config format %q", filepath.Ext(path))
		}
		if err != nil {
			return c, &types.ConfigError{Field: "file", Cause: fmt.Errorf("%s: %w", path, err)}
		}
	}
	if err := c.applyEnv(); err != nil {
		return c, err
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

func decodeYAML(b []byte, c *Config) error {
	if err := yaml.Unmarshal(b, c); err != nil {
		return err
	}
	if c.Rules == nil {
		c.Rules = map[string]RuleConfig{}
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv("LINTZARD_WORKERS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return &types.ConfigError{Field: "LINTZARD_WORKERS", Cause: err}
		}
		c.Workers = n
	}
	if v, ok := os.LookupEnv("LINTZARD_PARSE_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return &types.ConfigError{Field: "LINTZARD_PARSE_TIMEOUT", Cause: err}
		}
		c.ParseTimeout = d
	}
	if v := os.Getenv("LINTZARD_MIN_SEVERITY"); v != "" {
		c.MinSeverity = v
	}
	if v := os.Getenv("LINTZARD_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("LINTZARD_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	return nil
}

// Validate checks values that do not depend on the rule registry.
func (c Config) Validate() error {
	if c.Workers <= 0 {
		return &types.ConfigError{Field: "workers", Cause: fmt.Errorf("must be positive, got %d", c.Workers)}
	}
	if c.ParseTimeout <= 0 {
		return &types.ConfigError{Field: "parse_timeout", Cause: fmt.Errorf("must be positive, got %s", c.ParseTimeout)}
	}
	if _, err := types.ParseSeverity(c.MinSeverity); err != nil {
		return &types.ConfigError{Field: "min_severity", Cause: err}
	}
	switch strings.ToLower(c.Logging.Format) {
	case "console", "json":
	default:
		return &types.ConfigError{Field: "logging.format", Cause: errors.New("must be console or json")}
	}
	for id, rc := range c.Rules {
		if rc.Severity == "" {
			continue
		}
		if _, err := types.ParseSeverity(rc.Severity); err != nil {
			return &types.ConfigError{Rule: id, Field: "severity", Cause: err}
		}
	}
	return nil
}

// Severity returns the validated minimum severity.
func (c Config) Severity() types.Severity {
	s, err := types.ParseSeverity(c.MinSeverity)
	if err != nil {
		return types.SeverityInfo
	}
	return s
}

// RuleSettings converts the rule part of c for the registry.
func (c Config) RuleSettings() rules.Settings {
	s := rules.Settings{
		Rules:        make(map[string]rules.RuleSettings, len(c.Rules)),
		Environments: c.Environments,
		Globals:      c.Globals,
	}
	for id, rc := range c.Rules {
		s.Rules[id] = rules.RuleSettings{Enabled: rc.Enabled, Severity: rc.Severity, Options: rc.Options}
	}
	return s
}
