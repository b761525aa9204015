package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Balance is a player's points ledger total. The engine touches it exactly
// once per match, on the award-on-win call.
type Balance struct {
	PlayerID  string          `json:"player_id"`
	Points    decimal.Decimal `json:"points"`
	UpdatedAt time.Time       `json:"updated_at"`
}
