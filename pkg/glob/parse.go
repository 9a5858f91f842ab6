package glob

import (
	"fmt"
	"unicode/utf8"
)

// compiledPattern is one brace-expansion variant, split into slash
// separated segments.
type compiledPattern struct {
	segs []segment
}

// segment is one path segment of a pattern. A bare `**` segment is marked
// globstar and matches zero or more whole path segments; every other
// segment carries a token sequence matched against exactly one segment.
type segment struct {
	globstar bool
	tokens   []token
}

// token is the tagged-variant AST for within-segment matching.
type token interface {
	isToken()
}

// litToken matches its text byte for byte.
type litToken string

// anyCharToken matches exactly one character (`?`).
type anyCharToken struct{}

// anyRunToken matches any run of characters within the segment (`*`).
type anyRunToken struct{}

// classToken matches one character against a `[...]` class.
type classToken struct {
	negated bool
	ranges  []charRange
}

// charRange is one class member; single characters have lo == hi.
type charRange struct {
	lo, hi rune
}

// groupToken is an extended-glob group. kind is the prefix character:
// '@' exactly one, '!' none of, '?' zero or one, '*' zero or more,
// '+' one or more.
type groupToken struct {
	kind byte
	alts [][]token
}

func (litToken) isToken()     {}
func (anyCharToken) isToken() {}
func (anyRunToken) isToken()  {}
func (classToken) isToken()   {}
func (groupToken) isToken()   {}

func (c classToken) matches(r rune) bool {
	for _, cr := range c.ranges {
		if r >= cr.lo && r <= cr.hi {
			return !c.negated
		}
	}
	return c.negated
}

// parsePattern splits pattern into segments and parses each one.
func parsePattern(pattern string, extglob bool) (compiledPattern, error) {
	raw := splitSegments(pattern, extglob)
	segs := make([]segment, 0, len(raw))

	for _, r := range raw {
		if r == "**" {
			segs = append(segs, segment{globstar: true})
			continue
		}
		toks, err := parseSegment(r, extglob)
		if err != nil {
			return compiledPattern{}, err
		}
		segs = append(segs, segment{tokens: toks})
	}
	return compiledPattern{segs: segs}, nil
}

// splitSegments splits on `/` outside character classes, escapes, and,
// when extglob is on, group parentheses. Without extglob, parentheses are
// ordinary characters and never suppress a separator.
func splitSegments(pattern string, extglob bool) []string {
	var out []string
	depth := 0
	start := 0

	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '\\':
			i++
		case '[':
			if end := findClassEnd(pattern, i); end >= 0 {
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
		case '/':
			if depth == 0 {
				out = append(out, pattern[start:i])
				start = i + 1
			}
		}
	}
	return append(out, pattern[start:])
}

// findClassEnd returns the index of the `]` closing the class opened at
// open, or -1. A `]` directly after `[`, `[!` or `[^` is a literal member.
func findClassEnd(s string, open int) int {
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

type segParser struct {
	src     string
	pos     int
	extglob bool
}

// parseSegment parses one slash-free segment into its token sequence.
func parseSegment(src string, extglob bool) ([]token, error) {
	p := &segParser{src: src, extglob: extglob}
	return p.parseTokens(false)
}

// parseTokens parses tokens until end of input, or until a top-level `|`
// or `)` when inside a group.
func (p *segParser) parseTokens(inGroup bool) ([]token, error) {
	var toks []token
	var lit []rune

	flush := func() {
		if len(lit) > 0 {
			toks = append(toks, litToken(string(lit)))
			lit = nil
		}
	}

	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if inGroup && (c == '|' || c == ')') {
			break
		}

		switch c {
		case '\\':
			p.pos++
			if p.pos < len(p.src) {
				r, size := utf8.DecodeRuneInString(p.src[p.pos:])
				lit = append(lit, r)
				p.pos += size
			} else {
				lit = append(lit, '\\')
			}

		case '*':
			if p.groupFollows() {
				flush()
				g, err := p.parseGroup('*')
				if err != nil {
					return nil, err
				}
				toks = append(toks, g)
				continue
			}
			flush()
			toks = append(toks, anyRunToken{})
			p.pos++
			// Collapse star runs: inside a segment `**` means the same
			// as `*`. Stop if the next star opens an extended group.
			for p.pos < len(p.src) && p.src[p.pos] == '*' && !p.groupFollows() {
				p.pos++
			}

		case '?':
			if p.groupFollows() {
				flush()
				g, err := p.parseGroup('?')
				if err != nil {
					return nil, err
				}
				toks = append(toks, g)
				continue
			}
			flush()
			toks = append(toks, anyCharToken{})
			p.pos++

		case '@', '!', '+':
			if p.groupFollows() {
				flush()
				g, err := p.parseGroup(c)
				if err != nil {
					return nil, err
				}
				toks = append(toks, g)
				continue
			}
			lit = append(lit, rune(c))
			p.pos++

		case '[':
			end := findClassEnd(p.src, p.pos)
			if end < 0 {
				return nil, &SyntaxError{Pattern: p.src, Reason: "unclosed character class"}
			}
			cls, err := parseClass(p.src[p.pos+1 : end])
			if err != nil {
				return nil, err
			}
			flush()
			toks = append(toks, cls)
			p.pos = end + 1

		default:
			r, size := utf8.DecodeRuneInString(p.src[p.pos:])
			lit = append(lit, r)
			p.pos += size
		}
	}

	flush()
	return toks, nil
}

// groupFollows reports whether the character at pos opens an extended
// glob group, i.e. extglob mode is on and a `(` follows.
func (p *segParser) groupFollows() bool {
	return p.extglob && p.pos+1 < len(p.src) && p.src[p.pos+1] == '('
}

// parseGroup parses `<kind>(alt|alt|...)` with pos on the kind character.
func (p *segParser) parseGroup(kind byte) (token, error) {
	p.pos += 2 // kind character and '('
	var alts [][]token

	for {
		alt, err := p.parseTokens(true)
		if err != nil {
			return nil, err
		}
		alts = append(alts, alt)

		if p.pos >= len(p.src) {
			return nil, &SyntaxError{Pattern: p.src, Reason: fmt.Sprintf("unclosed %c( group", kind)}
		}
		if p.src[p.pos] == '|' {
			p.pos++
			continue
		}
		p.pos++ // ')'
		return groupToken{kind: kind, alts: alts}, nil
	}
}

// parseClass parses the body of a `[...]` class, brackets stripped.
func parseClass(body string) (classToken, error) {
	cls := classToken{}
	i := 0
	if i < len(body) && (body[i] == '!' || body[i] == '^') {
		cls.negated = true
		i++
	}

	for i < len(body) {
		lo, size, err := classRune(body, i)
		if err != nil {
			return classToken{}, err
		}
		i += size

		// Range if a '-' follows with a member after it.
		if i+1 < len(body) && body[i] == '-' {
			hi, size, err := classRune(body, i+1)
			if err != nil {
				return classToken{}, err
			}
			i += 1 + size
			if hi < lo {
				return classToken{}, &SyntaxError{Pattern: body, Reason: fmt.Sprintf("invalid range %c-%c in character class", lo, hi)}
			}
			cls.ranges = append(cls.ranges, charRange{lo: lo, hi: hi})
			continue
		}

		cls.ranges = append(cls.ranges, charRange{lo: lo, hi: lo})
	}
	return cls, nil
}

// classRune decodes one class member at i, honoring backslash escapes.
func classRune(body string, i int) (rune, int, error) {
	if body[i] == '\\' {
		if i+1 >= len(body) {
			return 0, 0, &SyntaxError{Pattern: body, Reason: "trailing escape in character class"}
		}
		r, size := utf8.DecodeRuneInString(body[i+1:])
		return r, size + 1, nil
	}
	r, size := utf8.DecodeRuneInString(body[i:])
	return r, size, nil
}
