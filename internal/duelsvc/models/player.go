package models

import "time"

type Player struct {
	ID        string    `json:"id"` // uuid, minted on first init
	Name      string    `json:"name"`
	WinStreak int       `json:"win_streak"` // consecutive wins, reset on a loss
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
