package store

import (
	"context"
	"fmt"

	"github.com/duelhub/duel-services/internal/duelsvc/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PlayerStore struct {
	db *pgxpool.Pool
}

func NewPlayerStore(db *pgxpool.Pool) *PlayerStore {
	return &PlayerStore{db: db}
}

// GetOrCreatePlayer registers a player on first init and refreshes the
// display name on later inits. An empty id mints a new one.
func (s *PlayerStore) GetOrCreatePlayer(ctx context.Context, playerID, name string) (*models.Player, error) {
	if playerID == "" {
		playerID = uuid.New().String()
	}

	query := `
		INSERT INTO players (id, name)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET name = $2, updated_at = now()
		RETURNING id, name, win_streak, created_at, updated_at`

	p := &models.Player{}
	err := s.db.QueryRow(ctx, query, playerID, name).Scan(
		&p.ID,
		&p.Name,
		&p.WinStreak,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create player: %w", err)
	}

	return p, nil
}

// IncrementWinStreak bumps the consecutive-win counter and returns the new
// value. Called once per won match, from the award path.
func (s *PlayerStore) IncrementWinStreak(ctx context.Context, playerID string) (int, error) {
	var streak int
	err := s.db.QueryRow(ctx, `
		UPDATE players
		SET win_streak = win_streak + 1, updated_at = now()
		WHERE id = $1
		RETURNING win_streak
	`, playerID).Scan(&streak)
	if err != nil {
		return 0, fmt.Errorf("failed to increment win streak: %w", err)
	}
	return streak, nil
}

// ResetWinStreak zeroes the counter after a lost match.
func (s *PlayerStore) ResetWinStreak(ctx context.Context, playerID string) error {
	_, err := s.db.Exec(ctx, `
		UPDATE players
		SET win_streak = 0, updated_at = now()
		WHERE id = $1
	`, playerID)
	if err != nil {
		return fmt.Errorf("failed to reset win streak: %w", err)
	}
	return nil
}
