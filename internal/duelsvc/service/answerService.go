package service

import (
	"context"

	"github.com/duelhub/duel-services/internal/duelsvc/feed"
	"github.com/duelhub/duel-services/internal/duelsvc/models"
	"github.com/duelhub/duel-services/internal/duelsvc/store"
)

type AnswerService struct {
	answerStore *store.AnswerStore
	feed        *feed.Feed
}

func NewAnswerService(answerStore *store.AnswerStore, f *feed.Feed) *AnswerService {
	return &AnswerService{answerStore: answerStore, feed: f}
}

func (s *AnswerService) InsertAnswer(ctx context.Context, roomID string, round int, playerID string, payload models.AnswerPayload) (*models.Answer, error) {
	ans, err := s.answerStore.InsertAnswer(ctx, roomID, round, playerID, payload)
	if err != nil {
		return nil, err
	}
	s.feed.NotifyAnswer(ans)
	return ans, nil
}

func (s *AnswerService) ListAnswers(ctx context.Context, roomID string, round int) ([]*models.Answer, error) {
	return s.answerStore.ListAnswers(ctx, roomID, round)
}
