package models

import "time"

// Answer is one player's submission for one round. Selected nil means the
// round timed out with no answer. At most one answer exists per
// (room, round, player); the engine's local one-shot guard enforces that,
// the store does not.
type Answer struct {
	RoomID       string    `json:"room_id"`
	Round        int       `json:"round"`
	PlayerID     string    `json:"player_id"`
	Selected     *string   `json:"selected"`
	Correct      bool      `json:"correct"`
	Points       int       `json:"points"`
	RemainingSec int       `json:"remaining_sec"` // round time left at submission
	SubmittedAt  time.Time `json:"submitted_at"`
}

// AnswerPayload carries the fields the submitter decides; the store stamps
// the rest.
type AnswerPayload struct {
	Selected     *string `json:"selected"`
	Correct      bool    `json:"correct"`
	Points       int     `json:"points"`
	RemainingSec int     `json:"remaining_sec"`
}
