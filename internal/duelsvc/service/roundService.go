package service

import (
	"context"

	"github.com/duelhub/duel-services/internal/duelsvc/feed"
	"github.com/duelhub/duel-services/internal/duelsvc/models"
	"github.com/duelhub/duel-services/internal/duelsvc/store"
)

type RoundService struct {
	roundStore *store.RoundStore
	feed       *feed.Feed
}

func NewRoundService(roundStore *store.RoundStore, f *feed.Feed) *RoundService {
	return &RoundService{roundStore: roundStore, feed: f}
}

func (s *RoundService) InsertRound(ctx context.Context, roomID string, number int, payload models.RoundPayload) (*models.Round, error) {
	round, err := s.roundStore.InsertRound(ctx, roomID, number, payload)
	if err != nil {
		return nil, err
	}
	s.feed.NotifyRound(round)
	return round, nil
}

func (s *RoundService) ListRounds(ctx context.Context, roomID string) ([]*models.Round, error) {
	return s.roundStore.ListRounds(ctx, roomID)
}
