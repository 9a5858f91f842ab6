// Package rules maps changed pull-request paths through labeled pattern
// groups to the set of labels that should be present.
//
// # Pattern entries
//
// Each rule carries one or more pattern entries. An entry is a single
// string of `|`-joined sub-patterns (the separator is only recognized
// outside classes, groups and escapes). Every sub-pattern is positive, or
// negative when it starts with the negation marker: `!` normally, `-` when
// extended glob is active, since extglob repurposes `!` for `!(...)`
// groups. The marker is only recognized as the first character of a
// sub-pattern.
//
// A path matches an entry when it matches at least one positive
// sub-pattern and none of the negative ones. An entry with only negative
// sub-patterns assumes the implicit positive `**`: it matches every path
// the negatives do not.
//
// # Rules
//
// A rule is triggered when any of its entries matches any changed path.
// Entries within a rule never filter each other, and rules are evaluated
// independently: the result is the union over all triggered rules, with no
// precedence or short-circuiting.
package rules
