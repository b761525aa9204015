package engine

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/duelhub/duel-services/internal/duelsvc/feed"
	"github.com/duelhub/duel-services/internal/duelsvc/models"

	"github.com/jonboulle/clockwork"
)

// fakeFeed delivers notifications synchronously to every subscriber, the
// way the NATS feed does minus the wire.
type fakeFeed struct {
	mu         sync.Mutex
	roomSubs   map[string][]func(models.Room)
	roundSubs  map[string][]func(models.Round)
	answerSubs map[string][]func(models.Answer)
	active     int
}

func newFakeFeed() *fakeFeed {
	return &fakeFeed{
		roomSubs:   make(map[string][]func(models.Room)),
		roundSubs:  make(map[string][]func(models.Round)),
		answerSubs: make(map[string][]func(models.Answer)),
	}
}

type fakeSub struct{ feed *fakeFeed }

func (s *fakeSub) Unsubscribe() error {
	s.feed.mu.Lock()
	s.feed.active--
	s.feed.mu.Unlock()
	return nil
}

func (f *fakeFeed) SubscribeRoom(roomID string, fn func(models.Room)) (feed.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.roomSubs[roomID] = append(f.roomSubs[roomID], fn)
	f.active++
	return &fakeSub{feed: f}, nil
}

func (f *fakeFeed) SubscribeRounds(roomID string, fn func(models.Round)) (feed.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.roundSubs[roomID] = append(f.roundSubs[roomID], fn)
	f.active++
	return &fakeSub{feed: f}, nil
}

func (f *fakeFeed) SubscribeAnswers(roomID string, fn func(models.Answer)) (feed.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.answerSubs[roomID] = append(f.answerSubs[roomID], fn)
	f.active++
	return &fakeSub{feed: f}, nil
}

func (f *fakeFeed) notifyRoom(room models.Room) {
	f.mu.Lock()
	subs := append([]func(models.Room){}, f.roomSubs[room.ID]...)
	f.mu.Unlock()
	for _, fn := range subs {
		fn(room)
	}
}

func (f *fakeFeed) notifyRound(round models.Round) {
	f.mu.Lock()
	subs := append([]func(models.Round){}, f.roundSubs[round.RoomID]...)
	f.mu.Unlock()
	for _, fn := range subs {
		fn(round)
	}
}

func (f *fakeFeed) notifyAnswer(ans models.Answer) {
	f.mu.Lock()
	subs := append([]func(models.Answer){}, f.answerSubs[ans.RoomID]...)
	f.mu.Unlock()
	for _, fn := range subs {
		fn(ans)
	}
}

// fakeStore is an in-memory room/round/answer store that mirrors the real
// service layer: writes honor context cancellation the way pgx does, and
// every successful write is followed by a feed notification.
type fakeStore struct {
	mu    sync.Mutex
	feed  *fakeFeed
	clock clockwork.Clock

	rooms   map[string]*models.Room
	rounds  map[string]map[int]models.Round
	answers []models.Answer

	nextID       int
	createFails  int // CreateRoom calls to reject with ErrCodeTaken
	createCalls  int
	insertRounds int
	patches      []models.RoomPatch
}

func newFakeStore(f *fakeFeed, clock clockwork.Clock) *fakeStore {
	return &fakeStore{
		feed:   f,
		clock:  clock,
		rooms:  make(map[string]*models.Room),
		rounds: make(map[string]map[int]models.Round),
	}
}

func (s *fakeStore) CreateRoom(ctx context.Context, code, hostID, hostName, variant string) (*models.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.createCalls++
	if s.createFails > 0 {
		s.createFails--
		s.mu.Unlock()
		return nil, models.ErrCodeTaken
	}
	s.nextID++
	now := s.clock.Now()
	room := &models.Room{
		ID:        fmt.Sprintf("room-%d", s.nextID),
		Code:      code,
		Variant:   variant,
		HostID:    hostID,
		HostName:  hostName,
		Status:    models.RoomWaiting,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.rooms[room.ID] = room
	cp := *room
	s.mu.Unlock()

	s.feed.notifyRoom(cp)
	return &cp, nil
}

func (s *fakeStore) FindRoomByCode(_ context.Context, code, variant string) (*models.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.rooms {
		if r.Code == code && r.Variant == variant && r.Status != models.RoomFinished {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) GetRoom(_ context.Context, roomID string) (*models.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[roomID]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (s *fakeStore) JoinRoom(ctx context.Context, roomID, guestID, guestName string) (*models.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	r, ok := s.rooms[roomID]
	switch {
	case !ok:
		s.mu.Unlock()
		return nil, models.ErrRoomNotFound
	case r.GuestID != nil:
		s.mu.Unlock()
		return nil, models.ErrRoomFull
	case r.Status != models.RoomWaiting:
		s.mu.Unlock()
		return nil, models.ErrRoomUnavailable
	}
	r.GuestID = &guestID
	r.GuestName = &guestName
	r.Status = models.RoomReady
	r.UpdatedAt = s.clock.Now()
	cp := *r
	s.mu.Unlock()

	s.feed.notifyRoom(cp)
	return &cp, nil
}

func (s *fakeStore) UpdateRoom(ctx context.Context, roomID string, patch models.RoomPatch) (*models.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	r, ok := s.rooms[roomID]
	if !ok {
		s.mu.Unlock()
		return nil, models.ErrRoomNotFound
	}
	if patch.Status != nil && r.Status == models.RoomFinished {
		s.mu.Unlock()
		return nil, models.ErrRoomUnavailable
	}
	s.patches = append(s.patches, patch)
	if patch.Status != nil {
		r.Status = *patch.Status
	}
	if patch.HostScore != nil {
		r.HostScore = *patch.HostScore
	}
	if patch.GuestScore != nil {
		r.GuestScore = *patch.GuestScore
	}
	if patch.HostReady != nil {
		r.HostReady = *patch.HostReady
	}
	if patch.GuestReady != nil {
		r.GuestReady = *patch.GuestReady
	}
	if patch.StartedAt != nil {
		t := *patch.StartedAt
		r.StartedAt = &t
	}
	if patch.FinishedAt != nil {
		t := *patch.FinishedAt
		r.FinishedAt = &t
	}
	if patch.SetWinner {
		r.WinnerID = patch.WinnerID
	}
	r.UpdatedAt = s.clock.Now()
	cp := *r
	s.mu.Unlock()

	s.feed.notifyRoom(cp)
	return &cp, nil
}

func (s *fakeStore) InsertRound(ctx context.Context, roomID string, number int, payload models.RoundPayload) (*models.Round, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.insertRounds++
	if _, ok := s.rounds[roomID]; !ok {
		s.rounds[roomID] = make(map[int]models.Round)
	}
	if _, dup := s.rounds[roomID][number]; dup {
		s.mu.Unlock()
		return nil, models.ErrDuplicateRound
	}
	round := models.Round{
		RoomID:      roomID,
		Number:      number,
		Payload:     payload,
		PublishedAt: s.clock.Now(),
	}
	s.rounds[roomID][number] = round
	s.mu.Unlock()

	s.feed.notifyRound(round)
	return &round, nil
}

func (s *fakeStore) InsertAnswer(ctx context.Context, roomID string, round int, playerID string, payload models.AnswerPayload) (*models.Answer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	ans := models.Answer{
		RoomID:       roomID,
		Round:        round,
		PlayerID:     playerID,
		Selected:     payload.Selected,
		Correct:      payload.Correct,
		Points:       payload.Points,
		RemainingSec: payload.RemainingSec,
		SubmittedAt:  s.clock.Now(),
	}
	s.answers = append(s.answers, ans)
	s.mu.Unlock()

	s.feed.notifyAnswer(ans)
	return &ans, nil
}

func (s *fakeStore) answersFor(roomID string, round int, playerID string) []models.Answer {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Answer
	for _, a := range s.answers {
		if a.RoomID == roomID && a.Round == round && a.PlayerID == playerID {
			out = append(out, a)
		}
	}
	return out
}

func (s *fakeStore) room(roomID string) models.Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.rooms[roomID]
}

func (s *fakeStore) startWrites() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, p := range s.patches {
		if p.Status != nil && *p.Status == models.RoomPlaying {
			n++
		}
	}
	return n
}

// fakeContent numbers its quiz prompts; option index 2 is always correct.
type fakeContent struct{}

func (fakeContent) Round(_ context.Context, variant string, number int, prev *models.RoundPayload) (models.RoundPayload, error) {
	if variant == VariantWordChain {
		word := "orange"
		if prev != nil {
			word = prev.Prompt + "e" // deterministic chain continuation
		}
		return models.RoundPayload{Prompt: word, Answer: word[len(word)-1:]}, nil
	}
	return models.RoundPayload{
		Prompt:  fmt.Sprintf("question %d", number),
		Choices: []string{"a", "b", "c", "d"},
		Answer:  strconv.Itoa(2),
	}, nil
}

// failingContent makes round publication fail.
type failingContent struct{}

func (failingContent) Round(context.Context, string, int, *models.RoundPayload) (models.RoundPayload, error) {
	return models.RoundPayload{}, fmt.Errorf("bank empty")
}

// sinkRec records engine outputs for assertions.
type sinkRec struct {
	mu   sync.Mutex
	outs []Output
}

func (s *sinkRec) sink(o Output) {
	s.mu.Lock()
	s.outs = append(s.outs, o)
	s.mu.Unlock()
}

func (s *sinkRec) all() []Output {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Output{}, s.outs...)
}

func (s *sinkRec) countdownSeconds() []int {
	var secs []int
	for _, o := range s.all() {
		if t, ok := o.(CountdownTickOutput); ok {
			secs = append(secs, t.Seconds)
		}
	}
	return secs
}

func (s *sinkRec) roundStarts() []RoundStartOutput {
	var out []RoundStartOutput
	for _, o := range s.all() {
		if r, ok := o.(RoundStartOutput); ok {
			out = append(out, r)
		}
	}
	return out
}

func (s *sinkRec) finished() *MatchFinishedOutput {
	for _, o := range s.all() {
		if f, ok := o.(MatchFinishedOutput); ok {
			return &f
		}
	}
	return nil
}

func (s *sinkRec) errs() []ActionErrorOutput {
	var out []ActionErrorOutput
	for _, o := range s.all() {
		if e, ok := o.(ActionErrorOutput); ok {
			out = append(out, e)
		}
	}
	return out
}

func (s *sinkRec) opponentAnswered() []OpponentAnsweredOutput {
	var out []OpponentAnsweredOutput
	for _, o := range s.all() {
		if e, ok := o.(OpponentAnsweredOutput); ok {
			out = append(out, e)
		}
	}
	return out
}

// fakeAward counts win awards and streak resets per player.
type fakeAward struct {
	mu     sync.Mutex
	calls  map[string]int
	resets map[string]int
}

func newFakeAward() *fakeAward {
	return &fakeAward{calls: make(map[string]int), resets: make(map[string]int)}
}

func (a *fakeAward) AwardWin(_ context.Context, playerID string) error {
	a.mu.Lock()
	a.calls[playerID]++
	a.mu.Unlock()
	return nil
}

func (a *fakeAward) EndStreak(_ context.Context, playerID string) error {
	a.mu.Lock()
	a.resets[playerID]++
	a.mu.Unlock()
	return nil
}
