package engine

import (
	"context"

	"github.com/duelhub/duel-services/internal/duelsvc/feed"
	"github.com/duelhub/duel-services/internal/duelsvc/models"
)

// RoomStore is the authoritative room record behind a CRUD contract. The
// production implementation is the room service (postgres plus feed
// notification); tests inject an in-memory fake.
type RoomStore interface {
	CreateRoom(ctx context.Context, code, hostID, hostName, variant string) (*models.Room, error)
	FindRoomByCode(ctx context.Context, code, variant string) (*models.Room, error)
	GetRoom(ctx context.Context, roomID string) (*models.Room, error)
	JoinRoom(ctx context.Context, roomID, guestID, guestName string) (*models.Room, error)
	UpdateRoom(ctx context.Context, roomID string, patch models.RoomPatch) (*models.Room, error)
}

type RoundStore interface {
	InsertRound(ctx context.Context, roomID string, number int, payload models.RoundPayload) (*models.Round, error)
}

type AnswerStore interface {
	InsertAnswer(ctx context.Context, roomID string, round int, playerID string, payload models.AnswerPayload) (*models.Answer, error)
}

// Feed delivers change notifications for the room and its per-round tables.
// At-least-once, unordered delivery is assumed; every handler re-derives
// its decision from the full payload.
type Feed interface {
	SubscribeRoom(roomID string, fn func(models.Room)) (feed.Subscription, error)
	SubscribeRounds(roomID string, fn func(models.Round)) (feed.Subscription, error)
	SubscribeAnswers(roomID string, fn func(models.Answer)) (feed.Subscription, error)
}

// AwardSink receives the single award-on-win call once a won match enters
// the finished phase. The losing side reports EndStreak instead.
type AwardSink interface {
	AwardWin(ctx context.Context, playerID string) error
	EndStreak(ctx context.Context, playerID string) error
}
