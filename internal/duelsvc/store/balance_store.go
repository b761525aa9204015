package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type BalanceStore struct {
	db *pgxpool.Pool
}

func NewBalanceStore(db *pgxpool.Pool) *BalanceStore {
	return &BalanceStore{db: db}
}

func (s *BalanceStore) GetBalanceByPlayerID(ctx context.Context, playerID string) (decimal.Decimal, error) {
	var total decimal.Decimal

	err := s.db.QueryRow(ctx, `
        SELECT COALESCE(SUM(points), 0)
        FROM balances
        WHERE player_id = $1
    `, playerID).Scan(&total)

	if err != nil {
		return decimal.Zero, err
	}

	return total, nil
}

// Credit appends one ledger entry. The win award is the only writer here.
func (s *BalanceStore) Credit(ctx context.Context, playerID string, amount decimal.Decimal, reason string) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO balances (player_id, points, reason)
        VALUES ($1, $2, $3)
    `, playerID, amount, reason)

	return err
}
