package engine

import (
	"testing"

	"github.com/duelhub/duel-services/internal/duelsvc/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRulesetForKnownVariants(t *testing.T) {
	for _, v := range []string{VariantTimedQuiz, VariantWordChain} {
		rules, ok := RulesetFor(v)
		require.True(t, ok, v)
		assert.Equal(t, v, rules.Variant)
		assert.Equal(t, 10, rules.TotalRounds)
		assert.Equal(t, 10, rules.RoundSeconds)
	}

	_, ok := RulesetFor("chess")
	assert.False(t, ok)
}

func TestScore(t *testing.T) {
	rules, _ := RulesetFor(VariantTimedQuiz)

	tests := []struct {
		name      string
		correct   bool
		remaining int
		want      int
	}{
		{"wrong answer", false, 10, 0},
		{"wrong answer late", false, 0, 0},
		{"correct with time to spare", true, 6, 15},
		{"correct at the threshold", true, 5, 15},
		{"correct but slow", true, 3, 10},
		{"correct at the buzzer", true, 0, 10},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, rules.Score(tc.correct, tc.remaining))
		})
	}
}

func TestEvaluateTimedQuiz(t *testing.T) {
	rules, _ := RulesetFor(VariantTimedQuiz)
	payload := models.RoundPayload{
		Prompt:  "capital of France?",
		Choices: []string{"Lyon", "Paris", "Nice", "Lille"},
		Answer:  "1",
	}

	assert.True(t, rules.Evaluate(payload, "1", nil))
	assert.True(t, rules.Evaluate(payload, " 1 ", nil))
	assert.False(t, rules.Evaluate(payload, "2", nil))
	assert.False(t, rules.Evaluate(payload, "Paris", nil))
}

func TestEvaluateWordChain(t *testing.T) {
	rules, _ := RulesetFor(VariantWordChain)
	payload := models.RoundPayload{Prompt: "orange", Answer: "e"}
	used := map[string]bool{"orange": true, "engine": true}

	assert.True(t, rules.Evaluate(payload, "elephant", used))
	assert.True(t, rules.Evaluate(payload, "  Echo ", used))
	assert.False(t, rules.Evaluate(payload, "apple", used), "wrong starting letter")
	assert.False(t, rules.Evaluate(payload, "engine", used), "already played")
	assert.False(t, rules.Evaluate(payload, "Engine", used), "repeat check is case-insensitive")
	assert.False(t, rules.Evaluate(payload, "e", used), "single letter is not a word")
}
