package service

import (
	"context"

	"github.com/duelhub/duel-services/internal/duelsvc/models"
	"github.com/duelhub/duel-services/internal/duelsvc/store"
)

type PlayerService struct {
	playerStore *store.PlayerStore
}

func NewPlayerService(playerStore *store.PlayerStore) *PlayerService {
	return &PlayerService{playerStore: playerStore}
}

func (s *PlayerService) GetOrCreatePlayer(ctx context.Context, playerID, name string) (*models.Player, error) {
	return s.playerStore.GetOrCreatePlayer(ctx, playerID, name)
}
