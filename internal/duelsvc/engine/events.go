package engine

import "github.com/duelhub/duel-services/internal/duelsvc/models"

// Everything enters the controller through its event channel: feed
// notifications, timer fires, and user actions alike. The loop goroutine is
// the only one touching controller state.

type evRoomUpdated struct{ room models.Room }
type evRoundInserted struct{ round models.Round }
type evAnswerInserted struct{ ans models.Answer }
type evCountdownTick struct{}
type evRoundTick struct{}
type evRevealDone struct{ round int }

type cmdCreate struct{ variant string }
type cmdJoin struct{ code, variant string }
type cmdReady struct{}
type cmdSelect struct{ value string }
type cmdForfeit struct{}
type cmdReset struct{}
type cmdStop struct{}
