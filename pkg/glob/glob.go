package glob

import (
	"errors"
	"fmt"
	"strings"
)

// Flags controls the optional pattern syntax extensions. Splitting on `|`
// and negation markers are handled a level up, in pkg/rules; globstar and
// dot-file matching are unconditionally on.
type Flags struct {
	// BraceExpansion enables `{a,b}` expansion before compilation.
	BraceExpansion bool
	// ExtendedGlob enables `@() !() ?() *() +()` group syntax.
	ExtendedGlob bool
	// CaseInsensitive folds both pattern and path before comparison.
	CaseInsensitive bool
}

// SyntaxError reports a malformed pattern. It always names the original
// pattern string as written in the configuration.
type SyntaxError struct {
	Pattern string
	Reason  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("malformed pattern %q: %s", e.Pattern, e.Reason)
}

// Matcher is a compiled glob pattern.
type Matcher struct {
	source   string
	variants []compiledPattern
	fold     bool
}

// Compile translates a glob pattern into a Matcher. Brace expansion, when
// enabled, happens first: the Matcher is the OR of the matchers for every
// expansion.
func Compile(pattern string, flags Flags) (*Matcher, error) {
	p := pattern
	if flags.CaseInsensitive {
		p = strings.ToLower(p)
	}

	expanded := []string{p}
	if flags.BraceExpansion {
		var err error
		expanded, err = expandBraces(p)
		if err != nil {
			return nil, rewritten(err, pattern)
		}
	}

	variants := make([]compiledPattern, 0, len(expanded))
	for _, v := range expanded {
		cp, err := parsePattern(v, flags.ExtendedGlob)
		if err != nil {
			return nil, rewritten(err, pattern)
		}
		variants = append(variants, cp)
	}

	return &Matcher{
		source:   pattern,
		variants: variants,
		fold:     flags.CaseInsensitive,
	}, nil
}

// Pattern returns the pattern the Matcher was compiled from.
func (m *Matcher) Pattern() string {
	return m.source
}

// Match reports whether path matches the compiled pattern.
func (m *Matcher) Match(path string) bool {
	if m.fold {
		path = strings.ToLower(path)
	}
	parts := strings.Split(path, "/")
	for i := range m.variants {
		if m.variants[i].match(parts) {
			return true
		}
	}
	return false
}

// rewritten pins a SyntaxError to the pattern as the user wrote it, before
// case folding or brace expansion rewrote the string being parsed.
func rewritten(err error, pattern string) error {
	var se *SyntaxError
	if errors.As(err, &se) {
		se.Pattern = pattern
		return se
	}
	return err
}
