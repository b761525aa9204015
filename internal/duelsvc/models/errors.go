package models

import "errors"

// Failure taxonomy shared by the stores and the engine. User-initiated
// actions surface exactly one of these; everything else is wrapped as a
// transient store failure.
var (
	ErrNotAuthenticated = errors.New("no player identity for this session")
	ErrValidation       = errors.New("invalid input")
	ErrRoomNotFound     = errors.New("room not found")
	ErrRoomFull         = errors.New("room already has a guest")
	ErrRoomUnavailable  = errors.New("room already playing or finished")
	ErrCodeTaken        = errors.New("room code already in use")
	ErrDuplicateRound   = errors.New("round already published")
	ErrStoreUnavailable = errors.New("store unavailable")
)
