package service

import (
	"context"

	"github.com/duelhub/duel-services/internal/duelsvc/store"

	"github.com/shopspring/decimal"
)

const (
	winBonus       = 50
	streakBonus    = 10
	maxStreakBonus = 50
)

// BalanceService owns the points ledger. The engine calls AwardWin exactly
// once per won match; that is the only mutation this service performs.
type BalanceService struct {
	balanceStore *store.BalanceStore
	playerStore  *store.PlayerStore
}

func NewBalanceService(balanceStore *store.BalanceStore, playerStore *store.PlayerStore) *BalanceService {
	return &BalanceService{balanceStore: balanceStore, playerStore: playerStore}
}

func (s *BalanceService) GetPoints(ctx context.Context, playerID string) (decimal.Decimal, error) {
	return s.balanceStore.GetBalanceByPlayerID(ctx, playerID)
}

// AwardWin credits the win bonus plus a streak bonus that grows with
// consecutive wins, capped so a long streak cannot run away.
func (s *BalanceService) AwardWin(ctx context.Context, playerID string) error {
	streak, err := s.playerStore.IncrementWinStreak(ctx, playerID)
	if err != nil {
		return err
	}

	return s.balanceStore.Credit(ctx, playerID, awardAmount(streak), "match-win")
}

// EndStreak records a loss. No ledger entry; the points a player earned
// during the match already landed in the room record.
func (s *BalanceService) EndStreak(ctx context.Context, playerID string) error {
	return s.playerStore.ResetWinStreak(ctx, playerID)
}

// awardAmount is the credit for a win at the given streak length.
func awardAmount(streak int) decimal.Decimal {
	bonus := (streak - 1) * streakBonus
	if bonus > maxStreakBonus {
		bonus = maxStreakBonus
	}
	return decimal.NewFromInt(int64(winBonus + bonus))
}
