package engine

import "github.com/duelhub/duel-services/internal/duelsvc/models"

// Phase is the local controller phase. Reactive transitions (countdown,
// finished) are driven only by feed observations of the room record,
// never by local action alone.
type Phase string

const (
	PhaseMenu      Phase = "menu"
	PhaseCreating  Phase = "creating"
	PhaseJoining   Phase = "joining"
	PhaseWaiting   Phase = "waiting"
	PhaseReady     Phase = "ready"
	PhaseCountdown Phase = "countdown"
	PhasePlaying   Phase = "playing"
	PhaseFinished  Phase = "finished"
)

// matchState holds all per-match mutable state, including the one-shot
// guards that keep duplicate feed deliveries from re-running effects. It is
// replaced wholesale on reset.
type matchState struct {
	currentRound     int
	payload          models.RoundPayload
	roundRemaining   int
	answeredRound    int // highest round this player submitted
	opponentAnswered int // highest round the opponent was seen answering
	highestAdvanced  int // highest round already advanced (host)
	revealRound      int // highest round a reveal was scheduled for (host)
	autoStartFired   bool
	awardApplied     bool
	lastShownSecond  int // countdown display de-dup
	pendingRound     *models.Round
	usedWords        map[string]bool // word-chain no-repeat rule
}

func newMatchState() *matchState {
	return &matchState{
		lastShownSecond: -1,
		usedWords:       make(map[string]bool),
	}
}
