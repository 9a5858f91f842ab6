package glob

// maxBraceExpansions bounds the number of patterns a single entry may
// expand to, so deeply nested alternations cannot blow up compilation.
const maxBraceExpansions = 4096

// expandBraces expands every `{a,b}` group in pattern into the cartesian
// product of its alternatives. Groups nest; a group without a top-level
// comma keeps its braces literally (bash behavior). An unbalanced `{`
// is a syntax error.
func expandBraces(pattern string) ([]string, error) {
	open := -1
	depth := 0

	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '\\':
			i++
		case '{':
			if depth == 0 {
				open = i
			}
			depth++
		case '}':
			if depth == 0 {
				continue // stray '}' stays literal
			}
			depth--
			if depth > 0 {
				continue
			}

			body := pattern[open+1 : i]
			alts := splitBraceAlternatives(body)
			tails, err := expandBraces(pattern[i+1:])
			if err != nil {
				return nil, err
			}

			if len(alts) == 1 {
				// No top-level comma: braces are literal, but the body
				// may still contain expandable groups.
				return combine(pattern[:open]+"{", alts[0], "}", tails)
			}

			var out []string
			for _, alt := range alts {
				expanded, err := combine(pattern[:open], alt, "", tails)
				if err != nil {
					return nil, err
				}
				out = append(out, expanded...)
				if len(out) > maxBraceExpansions {
					return nil, &SyntaxError{Pattern: pattern, Reason: "too many brace expansions"}
				}
			}
			return out, nil
		}
	}

	if depth != 0 {
		return nil, &SyntaxError{Pattern: pattern, Reason: "unbalanced brace"}
	}
	return []string{pattern}, nil
}

// combine expands body and joins prefix + expansion + suffix + tail for
// every (expansion, tail) pair.
func combine(prefix, body, suffix string, tails []string) ([]string, error) {
	heads, err := expandBraces(body)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(heads)*len(tails))
	for _, h := range heads {
		for _, t := range tails {
			out = append(out, prefix+h+suffix+t)
			if len(out) > maxBraceExpansions {
				return nil, &SyntaxError{Pattern: prefix + body + suffix, Reason: "too many brace expansions"}
			}
		}
	}
	return out, nil
}

// splitBraceAlternatives splits a brace body on top-level commas,
// respecting nesting and escapes.
func splitBraceAlternatives(body string) []string {
	var alts []string
	depth := 0
	start := 0

	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				alts = append(alts, body[start:i])
				start = i + 1
			}
		}
	}
	return append(alts, body[start:])
}
