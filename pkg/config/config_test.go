package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/prlabel/pkg/errors"
	"github.com/arthur-debert/prlabel/pkg/glob"
)

func TestParseValid(t *testing.T) {
	cfg, err := Parse([]byte(`
brace_expansion: true
case_insensitive: true
rules:
  - labels: [docs]
    patterns:
      - '**/*.{md,rst}'
  - labels: [python, backend]
    patterns:
      - '**/*.py|!tests/**'
`))
	require.NoError(t, err)

	assert.Equal(t, glob.Flags{BraceExpansion: true, CaseInsensitive: true}, cfg.GlobFlags())
	require.Len(t, cfg.Rules, 2)
	assert.Equal(t, []string{"docs"}, cfg.Rules[0].Labels)
	assert.Equal(t, []string{"**/*.py|!tests/**"}, cfg.Rules[1].Patterns)
}

func TestParseFlagsDefaultFalse(t *testing.T) {
	cfg, err := Parse([]byte(`
rules:
  - labels: [any]
    patterns: ['**']
`))
	require.NoError(t, err)
	assert.Equal(t, glob.Flags{}, cfg.GlobFlags())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		code errors.ErrorCode
	}{
		{"empty file", ``, errors.ErrConfigParse},
		{"unknown top-level key", "typo_flag: true\nrules:\n  - labels: [a]\n    patterns: ['*']\n", errors.ErrConfigParse},
		{"not yaml", `{{{`, errors.ErrConfigParse},
		{"missing rules", `brace_expansion: true`, errors.ErrConfigInvalid},
		{"rule without labels", "rules:\n  - patterns: ['*']\n", errors.ErrConfigInvalid},
		{"rule without patterns", "rules:\n  - labels: [a]\n", errors.ErrConfigInvalid},
		{"empty label", "rules:\n  - labels: ['']\n    patterns: ['*']\n", errors.ErrConfigInvalid},
		{"duplicate label", "rules:\n  - labels: [Docs, docs]\n    patterns: ['*']\n", errors.ErrConfigInvalid},
		{"empty pattern", "rules:\n  - labels: [a]\n    patterns: ['']\n", errors.ErrConfigInvalid},
		{"scalar labels", "rules:\n  - labels: docs\n    patterns: ['*']\n", errors.ErrConfigParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code),
				"want %s, got %s (%v)", tt.code, errors.GetErrorCode(err), err)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "labeler.yml")
	content := "rules:\n  - labels: [go]\n    patterns: ['**/*.go']\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Rules, 1)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}
