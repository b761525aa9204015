package content

import (
	"context"

	"github.com/duelhub/duel-services/internal/duelsvc/models"
)

// Provider hands the host the payload for the next round. Content
// generation itself is outside the engine; this is the boundary. prev is
// the previously published round, nil for round 1, which the word-chain
// provider needs to continue the chain.
type Provider interface {
	Round(ctx context.Context, variant string, number int, prev *models.RoundPayload) (models.RoundPayload, error)
}

// Static serves rounds from a fixed slice, wrapping around when the match
// is longer than the slice. Used in tests and as a fallback bank.
type Static struct {
	Payloads []models.RoundPayload
}

func (s *Static) Round(_ context.Context, _ string, number int, _ *models.RoundPayload) (models.RoundPayload, error) {
	if len(s.Payloads) == 0 {
		return models.RoundPayload{}, ErrNoContent
	}
	return s.Payloads[(number-1)%len(s.Payloads)], nil
}
