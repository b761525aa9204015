package store

import (
	"context"
	"fmt"

	"github.com/duelhub/duel-services/internal/duelsvc/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type AnswerStore struct {
	db *pgxpool.Pool
}

func NewAnswerStore(db *pgxpool.Pool) *AnswerStore {
	return &AnswerStore{db: db}
}

// InsertAnswer appends one answer record. Duplicates per (room, round,
// player) are not rejected here; the engine's one-shot submit guard is the
// authority on that.
func (s *AnswerStore) InsertAnswer(ctx context.Context, roomID string, round int, playerID string, payload models.AnswerPayload) (*models.Answer, error) {
	query := `
		INSERT INTO answers (room_id, round, player_id, selected, correct, points, remaining_sec)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING submitted_at`

	ans := &models.Answer{
		RoomID:       roomID,
		Round:        round,
		PlayerID:     playerID,
		Selected:     payload.Selected,
		Correct:      payload.Correct,
		Points:       payload.Points,
		RemainingSec: payload.RemainingSec,
	}

	err := s.db.QueryRow(ctx, query,
		roomID, round, playerID,
		payload.Selected, payload.Correct, payload.Points, payload.RemainingSec,
	).Scan(&ans.SubmittedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert answer: %w", err)
	}

	return ans, nil
}

func (s *AnswerStore) ListAnswers(ctx context.Context, roomID string, round int) ([]*models.Answer, error) {
	query := `
		SELECT room_id, round, player_id, selected, correct, points, remaining_sec, submitted_at
		FROM answers
		WHERE room_id = $1 AND round = $2
		ORDER BY submitted_at`

	rows, err := s.db.Query(ctx, query, roomID, round)
	if err != nil {
		return nil, fmt.Errorf("failed to list answers: %w", err)
	}
	defer rows.Close()

	var answers []*models.Answer
	for rows.Next() {
		a := &models.Answer{}
		err := rows.Scan(
			&a.RoomID,
			&a.Round,
			&a.PlayerID,
			&a.Selected,
			&a.Correct,
			&a.Points,
			&a.RemainingSec,
			&a.SubmittedAt,
		)
		if err != nil {
			return nil, err
		}
		answers = append(answers, a)
	}

	return answers, rows.Err()
}
