package content

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/duelhub/duel-services/internal/duelsvc/models"
)

// small open-class dictionary for chain prompts
var chainWords = []string{
	"orange", "tiger", "river", "stone", "cloud",
	"piano", "garden", "window", "rocket", "silver",
	"eagle", "echo", "needle", "drum", "maple",
	"onion", "nest", "table", "ember", "radio",
}

// Chain produces word-chain rounds. Round 1 opens with a random word; every
// later round's prompt is a word starting with the letter the previous
// round demanded, and Answer carries the letter the player's word must
// start with.
type Chain struct {
	rnd *rand.Rand
}

func NewChain() *Chain {
	return &Chain{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (c *Chain) Round(_ context.Context, _ string, number int, prev *models.RoundPayload) (models.RoundPayload, error) {
	var word string
	if number > 1 && prev != nil && prev.Answer != "" {
		word = c.pickStartingWith(prev.Answer)
	} else {
		word = chainWords[c.rnd.Intn(len(chainWords))]
	}

	return models.RoundPayload{
		Prompt: word,
		Answer: lastLetter(word),
	}, nil
}

func (c *Chain) pickStartingWith(letter string) string {
	var candidates []string
	for _, w := range chainWords {
		if strings.HasPrefix(w, letter) {
			candidates = append(candidates, w)
		}
	}
	if len(candidates) == 0 {
		return chainWords[c.rnd.Intn(len(chainWords))]
	}
	return candidates[c.rnd.Intn(len(candidates))]
}

func lastLetter(word string) string {
	w := strings.ToLower(strings.TrimSpace(word))
	if w == "" {
		return ""
	}
	return w[len(w)-1:]
}
