package glob

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandBraces(t *testing.T) {
	tests := []struct {
		pattern string
		want    []string
	}{
		{"plain", []string{"plain"}},
		{"{a,b}", []string{"a", "b"}},
		{"x{a,b}y", []string{"xay", "xby"}},
		{"{a,b}{1,2}", []string{"a1", "a2", "b1", "b2"}},
		{"a{b,c{d,e}}f", []string{"abf", "acdf", "acef"}},
		{"{single}", []string{"{single}"}},
		{"{a{b,c}}", []string{"{ab}", "{ac}"}},
		{`\{a,b\}`, []string{`\{a,b\}`}},
		{"{a,}", []string{"a", ""}},
		{"a}b", []string{"a}b"}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got, err := expandBraces(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpandBracesUnbalanced(t *testing.T) {
	for _, pattern := range []string{"{a,b", "a{b{c,d}", "{"} {
		t.Run(pattern, func(t *testing.T) {
			_, err := expandBraces(pattern)
			require.Error(t, err)

			var se *SyntaxError
			require.ErrorAs(t, err, &se)
			assert.Contains(t, se.Reason, "unbalanced")
		})
	}
}

func TestExpandBracesBounded(t *testing.T) {
	// 2^16 alternatives: must fail fast instead of materializing them.
	pattern := strings.Repeat("{a,b}", 16)
	start := time.Now()
	_, err := expandBraces(pattern)
	require.Error(t, err)

	var se *SyntaxError
	require.ErrorAs(t, err, &se)
	assert.Contains(t, se.Reason, "too many brace expansions")
	assert.Less(t, time.Since(start), 2*time.Second)
}
