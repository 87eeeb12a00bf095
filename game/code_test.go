package game

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateCode(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	require.Len(t, CodeAlphabet, 62)

	for i := 0; i < 500; i++ {
		code := GenerateCode(rng)
		require.Len(t, code, CodeLength)

		for _, ch := range code {
			require.True(t, strings.ContainsRune(CodeAlphabet, ch), "unexpected rune %q in %q", ch, code)
		}
	}
}
