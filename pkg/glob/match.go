package glob

import (
	"strings"
	"unicode/utf8"
)

type memoKey struct {
	a, b int
}

// match walks (pattern segment, path segment) pairs recursively. Globstar
// segments may swallow zero or more path segments, so positions can be
// revisited; memoization keeps adversarial patterns polynomial.
func (c compiledPattern) match(parts []string) bool {
	memo := make(map[memoKey]bool)

	var rec func(si, pi int) bool
	rec = func(si, pi int) bool {
		key := memoKey{si, pi}
		if v, ok := memo[key]; ok {
			return v
		}

		var res bool
		switch {
		case si == len(c.segs):
			res = pi == len(parts)
		case c.segs[si].globstar:
			for k := pi; k <= len(parts); k++ {
				if rec(si+1, k) {
					res = true
					break
				}
			}
		case pi == len(parts):
			res = false
		default:
			res = matchTokens(c.segs[si].tokens, parts[pi]) && rec(si+1, pi+1)
		}

		memo[key] = res
		return res
	}

	return rec(0, 0)
}

// segMatcher matches one token sequence against one path segment, with
// memoization on (token index, byte offset) pairs.
type segMatcher struct {
	tokens []token
	s      string
	memo   map[memoKey]bool
}

func matchTokens(tokens []token, s string) bool {
	m := &segMatcher{tokens: tokens, s: s, memo: make(map[memoKey]bool)}
	return m.match(0, 0)
}

func (m *segMatcher) match(ti, si int) bool {
	key := memoKey{ti, si}
	if v, ok := m.memo[key]; ok {
		return v
	}
	res := m.eval(ti, si)
	m.memo[key] = res
	return res
}

func (m *segMatcher) eval(ti, si int) bool {
	if ti == len(m.tokens) {
		return si == len(m.s)
	}

	switch t := m.tokens[ti].(type) {
	case litToken:
		if strings.HasPrefix(m.s[si:], string(t)) {
			return m.match(ti+1, si+len(t))
		}
		return false

	case anyCharToken:
		if si >= len(m.s) {
			return false
		}
		_, size := utf8.DecodeRuneInString(m.s[si:])
		return m.match(ti+1, si+size)

	case anyRunToken:
		for j := si; ; {
			if m.match(ti+1, j) {
				return true
			}
			if j >= len(m.s) {
				return false
			}
			_, size := utf8.DecodeRuneInString(m.s[j:])
			j += size
		}

	case classToken:
		if si >= len(m.s) {
			return false
		}
		r, size := utf8.DecodeRuneInString(m.s[si:])
		if t.matches(r) {
			return m.match(ti+1, si+size)
		}
		return false

	case groupToken:
		return m.matchGroup(t, ti, si)
	}

	return false
}

func (m *segMatcher) matchGroup(g groupToken, ti, si int) bool {
	switch g.kind {
	case '@':
		return m.matchOne(g, ti, si)

	case '?':
		if m.match(ti+1, si) {
			return true
		}
		return m.matchOne(g, ti, si)

	case '!':
		// Any span not exactly matched by an alternative, provided the
		// rest of the tokens match what follows the span.
		for j := si; ; {
			if m.match(ti+1, j) && !m.anyAltMatches(g, si, j) {
				return true
			}
			if j >= len(m.s) {
				return false
			}
			_, size := utf8.DecodeRuneInString(m.s[j:])
			j += size
		}

	case '*':
		return m.matchRepeat(g, ti, si, 0)

	case '+':
		return m.matchRepeat(g, ti, si, 1)
	}

	return false
}

// matchOne consumes exactly one alternative match, then the rest.
func (m *segMatcher) matchOne(g groupToken, ti, si int) bool {
	for j := si; ; {
		if m.anyAltMatches(g, si, j) && m.match(ti+1, j) {
			return true
		}
		if j >= len(m.s) {
			return false
		}
		_, size := utf8.DecodeRuneInString(m.s[j:])
		j += size
	}
}

// matchRepeat consumes minReps or more consecutive alternative matches,
// then the rest. Breadth-first over reachable offsets; every accepted
// repetition must make progress, so the frontier is finite.
func (m *segMatcher) matchRepeat(g groupToken, ti, si int, minReps int) bool {
	if minReps == 0 && m.match(ti+1, si) {
		return true
	}
	// A single empty-width repetition satisfies `+()`.
	if minReps == 1 && m.anyAltMatches(g, si, si) && m.match(ti+1, si) {
		return true
	}

	seen := map[int]bool{si: true}
	frontier := []int{si}
	reps := 0

	for len(frontier) > 0 {
		reps++
		var next []int

		for _, start := range frontier {
			for j := start; ; {
				if j > start && !seen[j] && m.anyAltMatches(g, start, j) {
					seen[j] = true
					next = append(next, j)
				}
				if j >= len(m.s) {
					break
				}
				_, size := utf8.DecodeRuneInString(m.s[j:])
				j += size
			}
		}

		if reps >= minReps {
			for _, j := range next {
				if m.match(ti+1, j) {
					return true
				}
			}
		}
		frontier = next
	}

	return false
}

// anyAltMatches reports whether any group alternative fully matches
// s[lo:hi].
func (m *segMatcher) anyAltMatches(g groupToken, lo, hi int) bool {
	sub := m.s[lo:hi]
	for _, alt := range g.alts {
		if matchTokens(alt, sub) {
			return true
		}
	}
	return false
}
