package content

import (
	"context"
	"strings"
	"testing"

	"github.com/duelhub/duel-services/internal/duelsvc/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChainContinuesFromPreviousRound(t *testing.T) {
	ctx := context.Background()
	chain := NewChain()

	prev, err := chain.Round(ctx, "word-chain", 1, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, prev.Prompt)
	assert.Equal(t, prev.Prompt[len(prev.Prompt)-1:], prev.Answer)

	for n := 2; n <= 10; n++ {
		next, err := chain.Round(ctx, "word-chain", n, &prev)
		require.NoError(t, err)
		if strings.HasPrefix(next.Prompt, prev.Answer) {
			// chained: prompt picks up where the previous round left off
			assert.Equal(t, lastLetter(next.Prompt), next.Answer)
		}
		prev = next
	}
}

func TestPickStartingWithFallsBack(t *testing.T) {
	chain := NewChain()

	// no dictionary word starts with "z"; any word is better than none
	word := chain.pickStartingWith("z")
	assert.NotEmpty(t, word)

	word = chain.pickStartingWith("e")
	assert.True(t, strings.HasPrefix(word, "e"))
}

func TestLastLetter(t *testing.T) {
	assert.Equal(t, "e", lastLetter("orange"))
	assert.Equal(t, "r", lastLetter(" Tiger "))
	assert.Equal(t, "", lastLetter("  "))
}

func TestStaticWrapsAround(t *testing.T) {
	ctx := context.Background()
	s := &Static{Payloads: []models.RoundPayload{
		{Prompt: "one", Answer: "0"},
		{Prompt: "two", Answer: "1"},
	}}

	p, err := s.Round(ctx, "timed-quiz", 1, nil)
	require.NoError(t, err)
	assert.Equal(t, "one", p.Prompt)

	p, err = s.Round(ctx, "timed-quiz", 3, nil)
	require.NoError(t, err)
	assert.Equal(t, "one", p.Prompt)

	empty := &Static{}
	_, err = empty.Round(ctx, "timed-quiz", 1, nil)
	assert.ErrorIs(t, err, ErrNoContent)
}
