package scoring

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRulesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scoring_rules.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileProviderLoadsValidRules(t *testing.T) {
	path := writeRulesFile(t, `{
		"metadata": {"levels": {"university": "University"}},
		"sport": {
			"label": "Sport",
			"competition": {"university": {"1": 4}, "default": 1}
		}
	}`)

	provider := NewFileProvider(path, zerolog.Nop())
	rules := provider.Rules()

	assert.Equal(t, 4, Resolve(rules, "sport", "competition", "university", "1"))
	assert.Equal(t, 1, Resolve(rules, "sport", "competition", "regional", "1"))
}

func TestFileProviderMissingFileDegradesToEmpty(t *testing.T) {
	provider := NewFileProvider(filepath.Join(t.TempDir(), "missing.json"), zerolog.Nop())

	rules := provider.Rules()

	assert.Empty(t, rules)
	assert.Equal(t, 0, Resolve(rules, "sport", "competition", "university", "1"))
}

func TestFileProviderMalformedJSONDegradesToEmpty(t *testing.T) {
	path := writeRulesFile(t, `{"sport": `)
	provider := NewFileProvider(path, zerolog.Nop())

	assert.Empty(t, provider.Rules())
}

func TestFileProviderSchemaViolationDegradesToEmpty(t *testing.T) {
	// Scores must be integers; a string score breaks the grammar.
	path := writeRulesFile(t, `{"sport": {"competition": {"default": "five"}}}`)
	provider := NewFileProvider(path, zerolog.Nop())

	assert.Empty(t, provider.Rules())
}

func TestFileProviderPicksUpEdits(t *testing.T) {
	path := writeRulesFile(t, `{"social": {"volunteer": {"default": 1}}}`)
	provider := NewFileProvider(path, zerolog.Nop())

	assert.Equal(t, 1, Resolve(provider.Rules(), "social", "volunteer", "none", "other"))

	require.NoError(t, os.WriteFile(path, []byte(`{"social": {"volunteer": {"default": 2}}}`), 0o644))

	// No cache: the next lookup sees the new score.
	assert.Equal(t, 2, Resolve(provider.Rules(), "social", "volunteer", "none", "other"))
}

func TestStaticProviderNilTable(t *testing.T) {
	provider := StaticProvider{}
	assert.NotNil(t, provider.Rules())
	assert.Empty(t, provider.Rules())
}
