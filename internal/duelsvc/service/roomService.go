package service

import (
	"context"

	"github.com/duelhub/duel-services/internal/duelsvc/feed"
	"github.com/duelhub/duel-services/internal/duelsvc/models"
	"github.com/duelhub/duel-services/internal/duelsvc/store"
)

// RoomService pairs every room write with a change-feed notification so
// both sides of a duel observe the same row.
type RoomService struct {
	roomStore *store.RoomStore
	feed      *feed.Feed
}

func NewRoomService(roomStore *store.RoomStore, f *feed.Feed) *RoomService {
	return &RoomService{roomStore: roomStore, feed: f}
}

func (s *RoomService) CreateRoom(ctx context.Context, code, hostID, hostName, variant string) (*models.Room, error) {
	room, err := s.roomStore.CreateRoom(ctx, code, hostID, hostName, variant)
	if err != nil {
		return nil, err
	}
	s.feed.NotifyRoom(room)
	return room, nil
}

func (s *RoomService) FindRoomByCode(ctx context.Context, code, variant string) (*models.Room, error) {
	return s.roomStore.FindRoomByCode(ctx, code, variant)
}

func (s *RoomService) GetRoom(ctx context.Context, roomID string) (*models.Room, error) {
	return s.roomStore.GetRoomByID(ctx, roomID)
}

func (s *RoomService) JoinRoom(ctx context.Context, roomID, guestID, guestName string) (*models.Room, error) {
	room, err := s.roomStore.JoinRoom(ctx, roomID, guestID, guestName)
	if err != nil {
		return nil, err
	}
	s.feed.NotifyRoom(room)
	return room, nil
}

func (s *RoomService) UpdateRoom(ctx context.Context, roomID string, patch models.RoomPatch) (*models.Room, error) {
	room, err := s.roomStore.UpdateRoom(ctx, roomID, patch)
	if err != nil {
		return nil, err
	}
	s.feed.NotifyRoom(room)
	return room, nil
}
