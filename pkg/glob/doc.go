// Package glob compiles shell-style wildcard patterns into matchers over
// path strings. It never touches the filesystem: a Matcher is a pure
// predicate over the slash-separated paths reported by the VCS API.
//
// # Syntax
//
// The base syntax is the usual shell glob:
//
//   - `*` matches any run of characters within one path segment
//   - `?` matches exactly one character within a segment
//   - `[abc]`, `[a-z]`, `[!a-z]` character classes with ranges and negation
//   - `**` as a full segment matches zero or more whole path segments
//   - `\x` escapes any character
//
// Two extensions are gated by flags:
//
//   - Flags.BraceExpansion: `{a,b}` expands (before compilation) into the
//     union of all substitutions; groups nest; braces without a top-level
//     comma stay literal. With the flag off, braces are ordinary characters.
//   - Flags.ExtendedGlob: bash-style groups `@(a|b)` (exactly one),
//     `!(a|b)` (anything but), `?(a|b)` (zero or one), `*(a|b)` (zero or
//     more), `+(a|b)` (one or more), where each alternative is itself a
//     sub-glob confined to one segment.
//
// Dot-files are always matched: a leading `.` in a segment needs no special
// treatment, unlike traditional shell globbing. Matching is byte-exact
// unless Flags.CaseInsensitive is set, which folds both pattern and path.
//
// Malformed patterns (unbalanced brace, unclosed class, unclosed group)
// fail compilation with a *SyntaxError naming the pattern; they are never
// reported as a silent non-match.
package glob
