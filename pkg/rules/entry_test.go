package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/prlabel/pkg/glob"
)

func TestSplitEntry(t *testing.T) {
	tests := []struct {
		name    string
		entry   string
		extglob bool
		want    []string
	}{
		{"single", "*.md", false, []string{"*.md"}},
		{"two subs", "*.md|*.html", false, []string{"*.md", "*.html"}},
		{"negative sub", "**/*.py|!tests/**", false, []string{"**/*.py", "!tests/**"}},
		{"escaped pipe", `a\|b`, false, []string{`a\|b`}},
		{"pipe in class", "[|].md|*.txt", false, []string{"[|].md", "*.txt"}},
		{"pipe in group kept", "@(a|b).go|*.md", true, []string{"@(a|b).go", "*.md"}},
		{"group pipes split without extglob", "(a|b)", false, []string{"(a", "b)"}},
		{"trailing separator", "*.md|", false, []string{"*.md", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitEntry(tt.entry, tt.extglob))
		})
	}
}

func TestEntryPolarity(t *testing.T) {
	ce, err := compileEntry("**/*.py|!tests/**", glob.Flags{})
	require.NoError(t, err)
	assert.Len(t, ce.positives, 1)
	assert.Len(t, ce.negatives, 1)

	// Extended glob moves the marker to '-' so '!(...)' groups parse.
	ce, err = compileEntry("!(*.tmp)|-tests/**", glob.Flags{ExtendedGlob: true})
	require.NoError(t, err)
	assert.Len(t, ce.positives, 1, "!(...) is a group, not a negation")
	assert.Len(t, ce.negatives, 1)

	// Without extended glob, '-' is an ordinary character.
	ce, err = compileEntry("-x.md", glob.Flags{})
	require.NoError(t, err)
	assert.Len(t, ce.positives, 1)
	assert.Empty(t, ce.negatives)
	assert.True(t, ce.matches("-x.md"))
}

func TestEntryMatchSemantics(t *testing.T) {
	tests := []struct {
		name  string
		entry string
		path  string
		want  bool
	}{
		{"split OR first", "*.md|*.html", "readme.md", true},
		{"split OR second", "*.md|*.html", "index.html", true},
		{"split OR neither", "*.md|*.html", "app.py", false},
		{"exclusion keeps match", "**/*.py|!tests/**", "pkg/a.py", true},
		{"exclusion drops excluded", "**/*.py|!tests/**", "tests/a.py", false},
		{"exclusion needs positive", "**/*.py|!tests/**", "pkg/a.txt", false},
		{"negation only passes", "!tests/**", "src/a.py", true},
		{"negation only drops", "!tests/**", "tests/a.py", false},
		{"two negatives AND", "!tests/**|!docs/**", "src/a.py", true},
		{"two negatives first", "!tests/**|!docs/**", "tests/a.py", false},
		{"two negatives second", "!tests/**|!docs/**", "docs/a.md", false},
		{"empty sub ignored", "*.md||*.html", "index.html", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ce, err := compileEntry(tt.entry, glob.Flags{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, ce.matches(tt.path))
		})
	}
}
