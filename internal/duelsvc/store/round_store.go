package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/duelhub/duel-services/internal/duelsvc/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RoundStore struct {
	db *pgxpool.Pool
}

func NewRoundStore(db *pgxpool.Pool) *RoundStore {
	return &RoundStore{db: db}
}

// InsertRound appends one immutable round record. The unique_room_round
// constraint on (room_id, number) rejects a second publication of the same
// round, which is surfaced as ErrDuplicateRound.
func (s *RoundStore) InsertRound(ctx context.Context, roomID string, number int, payload models.RoundPayload) (*models.Round, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal round payload: %w", err)
	}

	query := `
		INSERT INTO rounds (room_id, number, payload)
		VALUES ($1, $2, $3)
		RETURNING published_at`

	round := &models.Round{RoomID: roomID, Number: number, Payload: payload}
	err = s.db.QueryRow(ctx, query, roomID, number, raw).Scan(&round.PublishedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, models.ErrDuplicateRound
		}
		return nil, fmt.Errorf("failed to insert round: %w", err)
	}

	return round, nil
}

// ListRounds returns all rounds of a room in publication order, so a late
// subscriber can catch up from stored state.
func (s *RoundStore) ListRounds(ctx context.Context, roomID string) ([]*models.Round, error) {
	query := `
		SELECT room_id, number, payload, published_at
		FROM rounds
		WHERE room_id = $1
		ORDER BY number`

	rows, err := s.db.Query(ctx, query, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rounds: %w", err)
	}
	defer rows.Close()

	var rounds []*models.Round
	for rows.Next() {
		var raw []byte
		r := &models.Round{}
		if err := rows.Scan(&r.RoomID, &r.Number, &raw, &r.PublishedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &r.Payload); err != nil {
			return nil, fmt.Errorf("failed to unmarshal round payload: %w", err)
		}
		rounds = append(rounds, r)
	}

	return rounds, rows.Err()
}
