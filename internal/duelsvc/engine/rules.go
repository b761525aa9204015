package engine

import (
	"strings"
	"time"

	"github.com/duelhub/duel-services/internal/duelsvc/models"
)

const (
	VariantTimedQuiz = "timed-quiz"
	VariantWordChain = "word-chain"
)

// Ruleset is the per-variant match configuration and scoring rule.
type Ruleset struct {
	Variant           string
	TotalRounds       int
	RoundSeconds      int
	CountdownLead     time.Duration // lead between the start write and round 1
	RevealDelay       time.Duration // pause after a round completes, before advancement
	TickPeriod        time.Duration // countdown recompute period
	BasePoints        int
	SpeedBonus        int
	SpeedThresholdSec int
}

func RulesetFor(variant string) (Ruleset, bool) {
	switch variant {
	case VariantTimedQuiz, VariantWordChain:
		return Ruleset{
			Variant:           variant,
			TotalRounds:       10,
			RoundSeconds:      10,
			CountdownLead:     3 * time.Second,
			RevealDelay:       2 * time.Second,
			TickPeriod:        150 * time.Millisecond,
			BasePoints:        10,
			SpeedBonus:        5,
			SpeedThresholdSec: 5,
		}, true
	}
	return Ruleset{}, false
}

// Score applies the points rule: base for a correct answer, plus the speed
// bonus when enough round time was left at submission.
func (r Ruleset) Score(correct bool, remainingSec int) int {
	if !correct {
		return 0
	}
	points := r.BasePoints
	if remainingSec >= r.SpeedThresholdSec {
		points += r.SpeedBonus
	}
	return points
}

// Evaluate decides correctness of a submitted value against the round
// payload. For timed-quiz the value is the selected option index; for
// word-chain it must start with the demanded letter and not repeat a word
// already played this match.
func (r Ruleset) Evaluate(p models.RoundPayload, value string, used map[string]bool) bool {
	switch r.Variant {
	case VariantWordChain:
		word := normalizeWord(value)
		if len(word) < 2 {
			return false
		}
		if !strings.HasPrefix(word, p.Answer) {
			return false
		}
		return !used[word]
	default:
		return strings.TrimSpace(value) == p.Answer
	}
}

func normalizeWord(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}
