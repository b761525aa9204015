package engine

import "github.com/duelhub/duel-services/internal/duelsvc/models"

// Output is what the engine exposes to the UI layer: phase, round payload,
// time remaining, scores, opponent-answered flag, and typed action
// failures. The broker maps these onto socket messages.
type Output interface{ output() }

// Sink receives engine outputs. Called from the controller goroutine; keep
// implementations non-blocking.
type Sink func(Output)

type RoomStateOutput struct {
	Phase    Phase
	Room     *models.Room
	IsHost   bool
	MyScore  int
	OppScore int
}

type CountdownTickOutput struct {
	Seconds int
}

type RoundStartOutput struct {
	Number  int
	Payload models.RoundPayload
	Seconds int
}

type RoundTickOutput struct {
	Number  int
	Seconds int
}

type AnswerResultOutput struct {
	Number   int
	Correct  bool
	Points   int
	TimedOut bool
}

type OpponentAnsweredOutput struct {
	Number int
}

type MatchFinishedOutput struct {
	WinnerID *string
	Won      bool
	Draw     bool
	MyScore  int
	OppScore int
}

type ActionErrorOutput struct {
	Action string
	Err    error
}

func (RoomStateOutput) output()        {}
func (CountdownTickOutput) output()    {}
func (RoundStartOutput) output()       {}
func (RoundTickOutput) output()        {}
func (AnswerResultOutput) output()     {}
func (OpponentAnsweredOutput) output() {}
func (MatchFinishedOutput) output()    {}
func (ActionErrorOutput) output()      {}
