package comm

import (
	"encoding/json"

	"github.com/duelhub/duel-services/internal/duelsvc/models"
)

// WSMessage is the envelope relayed between the socket gateway and the duel
// service over NATS. SocketId identifies the owning client connection.
type WSMessage struct {
	Type     string          `json:"type"` // e.g. "init", "create-room", "select-answer"
	Data     json.RawMessage `json:"data"`
	SocketId string          `json:"socketid"`
}

// Client -> engine payloads.

type InitRequest struct {
	PlayerId string `json:"player_id,omitempty"` // empty on first connect
	Name     string `json:"name"`
}

type CreateRoomRequest struct {
	Variant string `json:"variant"`
}

type JoinRoomRequest struct {
	Code    string `json:"code"`
	Variant string `json:"variant"`
}

type SelectAnswerRequest struct {
	Value string `json:"value"` // option index for quiz, word for word-chain
}

// Engine -> client payloads.

type PlayerData struct {
	PlayerId string `json:"player_id"`
	Name     string `json:"name"`
	Points   string `json:"points"`
}

type RoomState struct {
	Phase    string       `json:"phase"`
	Room     *models.Room `json:"room,omitempty"`
	IsHost   bool         `json:"is_host"`
	MyScore  int          `json:"my_score"`
	OppScore int          `json:"opp_score"`
}

type CountdownTick struct {
	Seconds int `json:"seconds"`
}

type RoundStart struct {
	Number  int                 `json:"number"`
	Payload models.RoundPayload `json:"payload"`
	Seconds int                 `json:"seconds"` // round time budget
}

type RoundTick struct {
	Number  int `json:"number"`
	Seconds int `json:"seconds"`
}

type AnswerResult struct {
	Number   int  `json:"number"`
	Correct  bool `json:"correct"`
	Points   int  `json:"points"`
	TimedOut bool `json:"timed_out"`
}

type OpponentAnswered struct {
	Number int `json:"number"`
}

type MatchFinished struct {
	WinnerId *string `json:"winner_id"` // nil on draw
	Won      bool    `json:"won"`
	Draw     bool    `json:"draw"`
	MyScore  int     `json:"my_score"`
	OppScore int     `json:"opp_score"`
}

type DuelError struct {
	Action string `json:"action"`
	Reason string `json:"reason"`
}
