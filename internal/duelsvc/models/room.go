package models

import "time"

// Room statuses. A room only ever moves forward through these.
const (
	RoomWaiting  = "waiting"
	RoomReady    = "ready"
	RoomPlaying  = "playing"
	RoomFinished = "finished"
)

type Room struct {
	ID         string     `json:"id"`
	Code       string     `json:"code"`    // 6-char join code, unique among active rooms of a variant
	Variant    string     `json:"variant"` // game ruleset tag, e.g. "timed-quiz"
	HostID     string     `json:"host_id"`
	HostName   string     `json:"host_name"`
	GuestID    *string    `json:"guest_id"` // nil until a guest joins, set at most once
	GuestName  *string    `json:"guest_name"`
	Status     string     `json:"status"`
	HostScore  int        `json:"host_score"`
	GuestScore int        `json:"guest_score"`
	HostReady  bool       `json:"host_ready"`
	GuestReady bool       `json:"guest_ready"`
	StartedAt  *time.Time `json:"started_at"` // scheduled start written by the host
	FinishedAt *time.Time `json:"finished_at"`
	WinnerID   *string    `json:"winner_id"` // nil while undecided, and on a draw
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// RoomPatch is a partial update of the mutable room fields. Nil fields are
// left untouched. SetWinner distinguishes "write NULL winner" from "don't
// touch winner", since a draw is stored as NULL.
type RoomPatch struct {
	Status     *string
	HostScore  *int
	GuestScore *int
	HostReady  *bool
	GuestReady *bool
	StartedAt  *time.Time
	FinishedAt *time.Time
	WinnerID   *string
	SetWinner  bool
}

// IsHost reports whether playerID is the host side of the room. Derived on
// every update instead of cached so late or duplicate notifications cannot
// leave a stale role behind.
func (r *Room) IsHost(playerID string) bool {
	return r.HostID == playerID
}

// ScoreFor returns (own, opponent) cumulative scores for the given player.
func (r *Room) ScoreFor(playerID string) (int, int) {
	if r.IsHost(playerID) {
		return r.HostScore, r.GuestScore
	}
	return r.GuestScore, r.HostScore
}

// OpponentID returns the other side's player id, or nil if no guest joined yet.
func (r *Room) OpponentID(playerID string) *string {
	if r.IsHost(playerID) {
		return r.GuestID
	}
	host := r.HostID
	return &host
}
