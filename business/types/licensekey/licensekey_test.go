package licensekey_test

import (
	"testing"

	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/types/licensekey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Parse(t *testing.T) {
	t.Run("wellformed", func(t *testing.T) {
		k, err := licensekey.Parse("PJ-ABC123-DEF456-GHI789")
		require.NoError(t, err)
		assert.Equal(t, "PJ-ABC123-DEF456-GHI789", k.String())
	})

	t.Run("normalized", func(t *testing.T) {
		k, err := licensekey.Parse("  pj-abc123-def456-ghi789 ")
		require.NoError(t, err)
		assert.Equal(t, "PJ-ABC123-DEF456-GHI789", k.String())

		k, err = licensekey.Parse("PJ - ABC123 - DEF456 - GHI789")
		require.NoError(t, err)
		assert.Equal(t, "PJ-ABC123-DEF456-GHI789", k.String())
	})

	t.Run("malformed", func(t *testing.T) {
		tests := []string{
			"",
			"PJ-ABC12-DEF456-GHI789",
			"PJ-ABC123-DEF456-GHI7890",
			"XX-ABC123-DEF456-GHI789",
			"PJ-abc!23-DEF456-GHI789",
			"ABC123-DEF456-GHI789",
		}

		for _, value := range tests {
			_, err := licensekey.Parse(value)
			assert.Error(t, err, "value %q", value)
		}
	})
}

func Test_Generate(t *testing.T) {
	seen := make(map[string]bool)

	for range 50 {
		k, err := licensekey.Generate()
		require.NoError(t, err)

		parsed, err := licensekey.Parse(k.String())
		require.NoError(t, err)
		assert.Equal(t, k.String(), parsed.String())

		assert.False(t, seen[k.String()])
		seen[k.String()] = true
	}
}
