package otp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	for _, length := range []int{1, 4, 6, 10} {
		code, err := Generate(length)
		require.NoError(t, err)
		assert.Len(t, code, length)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', "expected digit, got %q", r)
		}
	}
}

func TestGenerateVaries(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := Generate(6)
		require.NoError(t, err)
		seen[code] = true
	}
	// 50 draws from a million possibilities should not collapse to a handful.
	assert.Greater(t, len(seen), 40)
}
