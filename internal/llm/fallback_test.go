package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackSuggestions(t *testing.T) {
	t.Run("butter rule includes olive oil", func(t *testing.T) {
		out := FallbackSuggestions("butter")
		require.Len(t, out, SuggestionCount)
		assert.Equal(t, "olive oil", out[0].Alt)
	})

	t.Run("matching is case insensitive", func(t *testing.T) {
		out := FallbackSuggestions("Whole Milk")
		require.Len(t, out, SuggestionCount)
		assert.Equal(t, "unsweetened almond milk", out[0].Alt)
	})

	t.Run("for carries the original string", func(t *testing.T) {
		out := FallbackSuggestions("Unsalted BUTTER")
		for _, s := range out {
			assert.Equal(t, "Unsalted BUTTER", s.For)
		}
	})

	t.Run("unknown ingredients get generic advice", func(t *testing.T) {
		out := FallbackSuggestions("dragonfruit")
		require.Len(t, out, SuggestionCount)
		assert.Equal(t, "closest flavor match", out[0].Alt)
		assert.Equal(t, "dragonfruit", out[0].For)
	})

	t.Run("every suggestion has an alt and note", func(t *testing.T) {
		for _, missing := range []string{"milk", "butter", "egg", "heavy cream", "saffron"} {
			for _, s := range FallbackSuggestions(missing) {
				assert.NotEmpty(t, s.Alt, "missing=%s", missing)
				assert.NotEmpty(t, s.Note, "missing=%s", missing)
			}
		}
	})
}
