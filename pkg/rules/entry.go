package rules

import (
	"github.com/arthur-debert/prlabel/pkg/glob"
)

// compiledEntry is one pattern entry with its sub-patterns compiled and
// sorted by polarity.
type compiledEntry struct {
	source    string
	positives []*glob.Matcher
	negatives []*glob.Matcher
}

// compileEntry splits entry on the separator and compiles every
// sub-pattern. Empty sub-patterns (doubled or trailing separators) are
// skipped.
func compileEntry(entry string, flags glob.Flags) (compiledEntry, error) {
	ce := compiledEntry{source: entry}
	marker := negationMarker(flags)

	for _, sub := range splitEntry(entry, flags.ExtendedGlob) {
		if sub == "" {
			continue
		}

		negative := sub[0] == marker
		if negative {
			sub = sub[1:]
		}

		m, err := glob.Compile(sub, flags)
		if err != nil {
			return compiledEntry{}, err
		}

		if negative {
			ce.negatives = append(ce.negatives, m)
		} else {
			ce.positives = append(ce.positives, m)
		}
	}
	return ce, nil
}

// matches applies the entry's AND-of-(positive-OR, NOT-negative)
// semantics to one path. With zero positive sub-patterns the implicit
// positive `**` applies, which matches every path.
func (e compiledEntry) matches(path string) bool {
	for _, n := range e.negatives {
		if n.Match(path) {
			return false
		}
	}
	if len(e.positives) == 0 {
		return true
	}
	for _, p := range e.positives {
		if p.Match(path) {
			return true
		}
	}
	return false
}

// negationMarker returns the marker byte tagging a sub-pattern as
// negative. Extended glob repurposes `!` for `!(...)` groups, so the
// marker moves to `-`.
func negationMarker(flags glob.Flags) byte {
	if flags.ExtendedGlob {
		return '-'
	}
	return '!'
}

// splitEntry splits a pattern entry on `|`, respecting character classes
// and backslash escapes. With extglob on it also respects group
// parentheses, so `@(a|b)` survives the split intact.
func splitEntry(entry string, extglob bool) []string {
	var subs []string
	depth := 0
	start := 0

	for i := 0; i < len(entry); i++ {
		switch entry[i] {
		case '\\':
			i++
		case '[':
			if end := classEnd(entry, i); end >= 0 {
				i = end
			}
		case '(':
			if extglob {
				depth++
			}
		case ')':
			if depth > 0 {
				depth--
			}
		case '|':
			if depth == 0 {
				subs = append(subs, entry[start:i])
				start = i + 1
			}
		}
	}
	return append(subs, entry[start:])
}

// classEnd mirrors the class scanning done by the glob parser: the index
// of the closing `]`, or -1, with a leading `]` treated as a member.
func classEnd(s string, open int) int {
	i := open + 1
	if i < len(s) && (s[i] == '!' || s[i] == '^') {
		i++
	}
	if i < len(s) && s[i] == ']' {
		i++
	}
	for ; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case ']':
			return i
		}
	}
	return -1
}
