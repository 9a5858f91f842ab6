// Package config loads the labeler configuration file: matcher flags at
// the top level plus the ordered rule list.
//
// Unknown keys are rejected rather than ignored: a typo'd flag silently
// doing nothing would change which labels land on a pull request.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/prlabel/pkg/errors"
	"github.com/arthur-debert/prlabel/pkg/glob"
	"github.com/arthur-debert/prlabel/pkg/rules"
)

// DefaultPath is where the configuration lives unless overridden.
const DefaultPath = ".github/labeler.yml"

// Config is the parsed configuration file. All flags default to false.
type Config struct {
	BraceExpansion  bool         `yaml:"brace_expansion"`
	ExtendedGlob    bool         `yaml:"extended_glob"`
	CaseInsensitive bool         `yaml:"case_insensitive"`
	Rules           []rules.Rule `yaml:"rules"`
}

// Load reads and parses the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "reading config file %s", path)
	}
	return Parse(data)
}

// Parse decodes and validates configuration data.
func Parse(data []byte) (*Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		if err == io.EOF {
			return nil, errors.New(errors.ErrConfigParse, "empty configuration")
		}
		return nil, errors.Wrap(err, errors.ErrConfigParse, "decoding configuration")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// GlobFlags returns the matcher flag set the configuration selects.
func (c *Config) GlobFlags() glob.Flags {
	return glob.Flags{
		BraceExpansion:  c.BraceExpansion,
		ExtendedGlob:    c.ExtendedGlob,
		CaseInsensitive: c.CaseInsensitive,
	}
}

func (c *Config) validate() error {
	if len(c.Rules) == 0 {
		return errors.New(errors.ErrConfigInvalid, "configuration has no rules")
	}

	for i, rule := range c.Rules {
		if len(rule.Labels) == 0 {
			return ruleErr(i, "no labels")
		}
		if len(rule.Patterns) == 0 {
			return ruleErr(i, "no patterns")
		}

		seen := make(map[string]bool)
		for _, label := range rule.Labels {
			if strings.TrimSpace(label) == "" {
				return ruleErr(i, "empty label name")
			}
			folded := strings.ToLower(label)
			if seen[folded] {
				return ruleErr(i, fmt.Sprintf("duplicate label %q", label))
			}
			seen[folded] = true
		}

		for _, pattern := range rule.Patterns {
			if pattern == "" {
				return ruleErr(i, "empty pattern entry")
			}
		}
	}
	return nil
}

func ruleErr(index int, reason string) error {
	return errors.Newf(errors.ErrConfigInvalid, "rule %d: %s", index, reason).
		WithDetail("rule", index)
}
