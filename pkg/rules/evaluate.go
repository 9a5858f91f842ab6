package rules

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/prlabel/pkg/errors"
	"github.com/arthur-debert/prlabel/pkg/glob"
	"github.com/arthur-debert/prlabel/pkg/logging"
)

// compiledRule is one rule with every entry compiled.
type compiledRule struct {
	labels  []string
	entries []compiledEntry
}

// CompiledRules is a configuration's rule list, compiled once up front so
// a syntax error anywhere aborts before any path is evaluated.
type CompiledRules struct {
	rules  []compiledRule
	logger zerolog.Logger
}

// Compile compiles every pattern entry of every rule. A malformed pattern
// fails the whole compilation with a PATTERN_SYNTAX error naming the
// pattern and the rule index.
func Compile(ruleList []Rule, flags glob.Flags) (*CompiledRules, error) {
	compiled := make([]compiledRule, 0, len(ruleList))

	for i, rule := range ruleList {
		cr := compiledRule{labels: lowered(rule.Labels)}

		for _, entry := range rule.Patterns {
			ce, err := compileEntry(entry, flags)
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrPatternSyntax,
					"rule %d: invalid pattern %q", i, entry).
					WithDetail("rule", i).
					WithDetail("pattern", entry)
			}
			cr.entries = append(cr.entries, ce)
		}

		compiled = append(compiled, cr)
	}

	return &CompiledRules{
		rules:  compiled,
		logger: logging.GetLogger("rules"),
	}, nil
}

// Evaluate folds the changed-path list through every rule. The result
// maps every configured label to whether its rule triggered; an empty
// path list yields all-false, not an error. Evaluation is pure and
// deterministic, all rules are always fully evaluated.
func (c *CompiledRules) Evaluate(paths []string) Result {
	res := make(Result)
	for _, r := range c.rules {
		for _, label := range r.labels {
			if _, ok := res[label]; !ok {
				res[label] = false
			}
		}
	}

	for i, r := range c.rules {
		if !r.triggered(paths) {
			continue
		}
		c.logger.Debug().
			Int("rule", i).
			Strs("labels", r.labels).
			Msg("Rule triggered")
		for _, label := range r.labels {
			res[label] = true
		}
	}

	c.logger.Debug().
		Int("paths", len(paths)).
		Int("labels", len(res)).
		Strs("apply", res.Labels()).
		Msg("Evaluation complete")

	return res
}

// ManagedLabels returns every label mentioned anywhere in the
// configuration, lower case, deduplicated. These are the labels the tool
// owns; anything else on the pull request is left untouched.
func (c *CompiledRules) ManagedLabels() []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range c.rules {
		for _, label := range r.labels {
			if !seen[label] {
				seen[label] = true
				out = append(out, label)
			}
		}
	}
	return out
}

func (r compiledRule) triggered(paths []string) bool {
	for _, e := range r.entries {
		for _, p := range paths {
			if e.matches(p) {
				return true
			}
		}
	}
	return false
}

func lowered(labels []string) []string {
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = strings.ToLower(l)
	}
	return out
}
