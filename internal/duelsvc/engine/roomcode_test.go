package engine

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRoomCode(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	seen := make(map[string]bool)

	for i := 0; i < 200; i++ {
		code := newRoomCode(rnd)
		assert.Len(t, code, codeLength)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(codeAlphabet, r), "unexpected rune %q in %s", r, code)
		}
		seen[code] = true
	}
	// not a uniqueness guarantee, but 200 identical codes would mean a broken generator
	assert.Greater(t, len(seen), 190)
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "AB23CD", normalizeCode("  ab23cd "))
	assert.Equal(t, "XYZ789", normalizeCode("xyz789"))
}

func TestValidCode(t *testing.T) {
	assert.True(t, validCode("AB23CD"))
	assert.False(t, validCode("AB23C"), "too short")
	assert.False(t, validCode("AB23CDE"), "too long")
	assert.False(t, validCode("AB23C0"), "0 is not in the alphabet")
	assert.False(t, validCode("AB23CI"), "I is not in the alphabet")
	assert.False(t, validCode("ab23cd"), "lowercase must be normalized first")
}
