package models

import "time"

// RoundPayload is the content of one published round. For the timed-quiz
// variant Choices holds the options and Answer the correct option index as a
// string. For word-chain Choices is empty, Prompt is the current chain word
// and Answer the letter the next word must start with.
type RoundPayload struct {
	Prompt      string   `json:"prompt"`
	Choices     []string `json:"choices,omitempty"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation,omitempty"`
}

// Round is one immutable per-round record, keyed by (room, number).
// Numbers are 1..N with no gaps; once inserted a round is never edited.
type Round struct {
	RoomID      string       `json:"room_id"`
	Number      int          `json:"number"`
	Payload     RoundPayload `json:"payload"`
	PublishedAt time.Time    `json:"published_at"`
}
