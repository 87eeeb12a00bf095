package game

import "math/rand"

const (
	CodeLength   = 6
	CodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// GenerateCode draws CodeLength characters from CodeAlphabet.
// Collisions with live rooms are not checked.
func GenerateCode(rng *rand.Rand) string {
	b := make([]byte, CodeLength)
	for i := range b {
		b[i] = CodeAlphabet[rng.Intn(len(CodeAlphabet))]
	}
	return string(b)
}
