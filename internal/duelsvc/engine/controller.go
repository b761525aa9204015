package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/duelhub/duel-services/internal/duelsvc/feed"
	"github.com/duelhub/duel-services/internal/duelsvc/models"

	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"
)

const createRetries = 5

// Config wires one player's controller. Award and Clock are optional;
// Clock defaults to the wall clock.
type Config struct {
	PlayerID   string
	PlayerName string
	Rooms      RoomStore
	Rounds     RoundStore
	Answers    AnswerStore
	Feed       Feed
	Content    ContentProvider
	Award      AwardSink
	Clock      clockwork.Clock
	Sink       Sink
}

// ContentProvider mirrors content.Provider without importing it, so the
// engine stays free of the mongo dependency.
type ContentProvider interface {
	Round(ctx context.Context, variant string, number int, prev *models.RoundPayload) (models.RoundPayload, error)
}

// Controller is one player's room synchronization state machine. All state
// lives on the loop goroutine; feed callbacks and timers only post events.
type Controller struct {
	playerID   string
	playerName string

	rooms   RoomStore
	rounds  RoundStore
	answers AnswerStore
	feed    Feed
	content ContentProvider
	award   AwardSink
	clock   clockwork.Clock
	sink    Sink
	rnd     *rand.Rand

	events chan any
	done   chan struct{}
	once   sync.Once

	phase Phase
	rules Ruleset
	room  *models.Room
	match *matchState
	subs  []feed.Subscription

	stopCountdown func()
	stopRoundTick func()
	revealTimer   clockwork.Timer
}

func NewController(cfg Config) (*Controller, error) {
	if cfg.PlayerID == "" {
		return nil, models.ErrNotAuthenticated
	}
	if cfg.PlayerName == "" {
		return nil, fmt.Errorf("%w: empty player name", models.ErrValidation)
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.Sink == nil {
		cfg.Sink = func(Output) {}
	}

	return &Controller{
		playerID:   cfg.PlayerID,
		playerName: cfg.PlayerName,
		rooms:      cfg.Rooms,
		rounds:     cfg.Rounds,
		answers:    cfg.Answers,
		feed:       cfg.Feed,
		content:    cfg.Content,
		award:      cfg.Award,
		clock:      cfg.Clock,
		sink:       cfg.Sink,
		rnd:        rand.New(rand.NewSource(time.Now().UnixNano())),
		events:     make(chan any, 64),
		done:       make(chan struct{}),
		phase:      PhaseMenu,
		match:      newMatchState(),
	}, nil
}

// Run consumes the event channel until the context ends or Stop is called.
// Queued events are drained before a cancellation is honored, so a final
// action posted just ahead of session teardown is not dropped.
func (c *Controller) Run(ctx context.Context) {
	for {
		select {
		case ev := <-c.events:
			if c.dispatch(ctx, ev) {
				return
			}
			continue
		default:
		}

		select {
		case <-ctx.Done():
			c.teardownMatch()
			return
		case ev := <-c.events:
			if c.dispatch(ctx, ev) {
				return
			}
		}
	}
}

func (c *Controller) dispatch(ctx context.Context, ev any) (stopped bool) {
	if _, stop := ev.(cmdStop); stop {
		c.teardownMatch()
		return true
	}
	c.handle(ctx, ev)
	return false
}

func (c *Controller) post(ev any) {
	select {
	case c.events <- ev:
	case <-c.done:
	}
}

// User actions. Each just posts into the loop.

func (c *Controller) Create(variant string) { c.post(cmdCreate{variant: variant}) }

func (c *Controller) Join(code, variant string) { c.post(cmdJoin{code: code, variant: variant}) }

func (c *Controller) Ready() { c.post(cmdReady{}) }

func (c *Controller) SelectAnswer(value string) { c.post(cmdSelect{value: value}) }

func (c *Controller) Forfeit() { c.post(cmdForfeit{}) }

func (c *Controller) Reset() { c.post(cmdReset{}) }

// Stop ends the loop. Safe to call more than once.
func (c *Controller) Stop() {
	c.once.Do(func() {
		select {
		case c.events <- cmdStop{}:
		default:
		}
		close(c.done)
	})
}

func (c *Controller) handle(ctx context.Context, ev any) {
	switch e := ev.(type) {
	case cmdCreate:
		c.handleCreate(ctx, e.variant)
	case cmdJoin:
		c.handleJoin(ctx, e.code, e.variant)
	case cmdReady:
		c.handleReady(ctx)
	case cmdSelect:
		c.handleSelect(ctx, e.value)
	case cmdForfeit:
		c.handleForfeit(ctx)
	case cmdReset:
		c.handleReset()
	case evRoomUpdated:
		c.handleRoomUpdated(ctx, e.room)
	case evRoundInserted:
		c.handleRoundInserted(e.round)
	case evAnswerInserted:
		c.handleAnswerInserted(e.ans)
	case evCountdownTick:
		c.handleCountdownTick(ctx)
	case evRoundTick:
		c.handleRoundTick(ctx)
	case evRevealDone:
		c.advance(ctx, e.round)
	default:
		log.Warnf("engine: unknown event %T", ev)
	}
}

func (c *Controller) fail(action string, err error) {
	log.Warnf("engine: %s failed for player %s: %s", action, c.playerID, err)
	c.sink(ActionErrorOutput{Action: action, Err: err})
}

func (c *Controller) emitRoomState() {
	out := RoomStateOutput{Phase: c.phase, Room: c.room}
	if c.room != nil {
		out.IsHost = c.room.IsHost(c.playerID)
		out.MyScore, out.OppScore = c.room.ScoreFor(c.playerID)
	}
	c.sink(out)
}

// ---- create / join / ready ----

func (c *Controller) handleCreate(ctx context.Context, variant string) {
	if c.phase != PhaseMenu {
		c.fail("create", fmt.Errorf("%w: not in menu", models.ErrValidation))
		return
	}
	rules, ok := RulesetFor(variant)
	if !ok {
		c.fail("create", fmt.Errorf("%w: unknown variant %q", models.ErrValidation, variant))
		return
	}

	c.phase = PhaseCreating
	for i := 0; i < createRetries; i++ {
		code := newRoomCode(c.rnd)
		room, err := c.rooms.CreateRoom(ctx, code, c.playerID, c.playerName, variant)
		if errors.Is(err, models.ErrCodeTaken) {
			continue
		}
		if err != nil {
			c.phase = PhaseMenu
			c.fail("create", err)
			return
		}
		if err := c.enterRoom(room, rules, PhaseWaiting); err != nil {
			c.fail("create", err)
			return
		}
		return
	}

	c.phase = PhaseMenu
	c.fail("create", models.ErrCodeTaken)
}

func (c *Controller) handleJoin(ctx context.Context, code, variant string) {
	if c.phase != PhaseMenu {
		c.fail("join", fmt.Errorf("%w: not in menu", models.ErrValidation))
		return
	}
	rules, ok := RulesetFor(variant)
	if !ok {
		c.fail("join", fmt.Errorf("%w: unknown variant %q", models.ErrValidation, variant))
		return
	}
	code = normalizeCode(code)
	if !validCode(code) {
		c.fail("join", fmt.Errorf("%w: malformed room code", models.ErrValidation))
		return
	}

	c.phase = PhaseJoining
	room, err := c.rooms.FindRoomByCode(ctx, code, variant)
	if err != nil {
		c.phase = PhaseMenu
		c.fail("join", err)
		return
	}
	if room == nil {
		c.phase = PhaseMenu
		c.fail("join", models.ErrRoomNotFound)
		return
	}

	joined, err := c.rooms.JoinRoom(ctx, room.ID, c.playerID, c.playerName)
	if err != nil {
		c.phase = PhaseMenu
		c.fail("join", err)
		return
	}

	if err := c.enterRoom(joined, rules, PhaseReady); err != nil {
		c.fail("join", err)
		return
	}
}

// enterRoom installs the room, subscribes its feeds, and moves to the given
// phase. On subscription failure everything is rolled back to menu so the
// player is never left half-joined.
func (c *Controller) enterRoom(room *models.Room, rules Ruleset, phase Phase) error {
	c.room = room
	c.rules = rules
	c.match = newMatchState()

	if err := c.subscribeFeeds(room.ID); err != nil {
		c.unsubscribeAll()
		c.room = nil
		c.phase = PhaseMenu
		return fmt.Errorf("%w: %s", models.ErrStoreUnavailable, err)
	}

	c.phase = phase
	c.emitRoomState()
	return nil
}

func (c *Controller) subscribeFeeds(roomID string) error {
	subRoom, err := c.feed.SubscribeRoom(roomID, func(r models.Room) {
		c.post(evRoomUpdated{room: r})
	})
	if err != nil {
		return err
	}
	c.subs = append(c.subs, subRoom)

	subRounds, err := c.feed.SubscribeRounds(roomID, func(r models.Round) {
		c.post(evRoundInserted{round: r})
	})
	if err != nil {
		return err
	}
	c.subs = append(c.subs, subRounds)

	subAnswers, err := c.feed.SubscribeAnswers(roomID, func(a models.Answer) {
		c.post(evAnswerInserted{ans: a})
	})
	if err != nil {
		return err
	}
	c.subs = append(c.subs, subAnswers)

	return nil
}

func (c *Controller) handleReady(ctx context.Context) {
	if c.room == nil || (c.phase != PhaseWaiting && c.phase != PhaseReady) {
		c.fail("ready", fmt.Errorf("%w: no room to ready up in", models.ErrValidation))
		return
	}

	ready := true
	patch := models.RoomPatch{}
	if c.room.IsHost(c.playerID) {
		patch.HostReady = &ready
	} else {
		patch.GuestReady = &ready
	}

	if _, err := c.rooms.UpdateRoom(ctx, c.room.ID, patch); err != nil {
		c.fail("ready", err)
	}
	// state change arrives via the room feed
}

// ---- room reconciliation ----

func (c *Controller) handleRoomUpdated(ctx context.Context, room models.Room) {
	if c.room == nil || room.ID != c.room.ID {
		return // stale subscription
	}
	c.room = &room

	switch {
	case room.Status == models.RoomFinished && c.phase != PhaseFinished:
		c.enterFinished(ctx)
	case room.Status == models.RoomPlaying &&
		(c.phase == PhaseWaiting || c.phase == PhaseReady):
		c.enterCountdown()
	case room.Status == models.RoomReady && c.phase == PhaseWaiting:
		c.phase = PhaseReady
	}

	c.emitRoomState()
	c.maybeAutoStart(ctx)
}

// maybeAutoStart fires the host's one-shot start action once both ready
// flags are set. The guard keeps a burst of duplicate notifications from
// starting the match twice.
func (c *Controller) maybeAutoStart(ctx context.Context) {
	if c.room == nil || c.match.autoStartFired {
		return
	}
	if !c.room.IsHost(c.playerID) {
		return
	}
	if c.phase != PhaseWaiting && c.phase != PhaseReady {
		return
	}
	if c.room.Status != models.RoomWaiting && c.room.Status != models.RoomReady {
		return
	}
	if !c.room.HostReady || !c.room.GuestReady {
		return
	}

	c.match.autoStartFired = true
	status := models.RoomPlaying
	scheduled := c.clock.Now().Add(c.rules.CountdownLead)
	if _, err := c.rooms.UpdateRoom(ctx, c.room.ID, models.RoomPatch{
		Status:    &status,
		StartedAt: &scheduled,
	}); err != nil {
		// background op: the room stays joinable for a retry via forfeit/reset
		log.Errorf("engine: auto-start write failed for room %s: %s", c.room.ID, err)
	}
	// countdown entry happens when the playing status comes back on the feed
}

// ---- countdown ----

func (c *Controller) enterCountdown() {
	c.phase = PhaseCountdown
	c.match.lastShownSecond = -1
	c.stopCountdownTicker()
	c.stopCountdown = c.startTicker(c.rules.TickPeriod, func() any { return evCountdownTick{} })
}

func (c *Controller) handleCountdownTick(ctx context.Context) {
	if c.phase != PhaseCountdown || c.room == nil || c.room.StartedAt == nil {
		return
	}

	remaining := c.room.StartedAt.Sub(c.clock.Now())
	if remaining <= 0 {
		c.stopCountdownTicker()
		c.enterPlaying(ctx)
		return
	}

	// emit only when the displayed integer changes, not on every firing
	secs := int(math.Ceil(remaining.Seconds()))
	if secs != c.match.lastShownSecond {
		c.match.lastShownSecond = secs
		c.sink(CountdownTickOutput{Seconds: secs})
	}
}

func (c *Controller) enterPlaying(ctx context.Context) {
	c.phase = PhasePlaying
	c.emitRoomState()

	if c.room.IsHost(c.playerID) {
		c.publishRound(ctx, 1)
	}

	if pending := c.match.pendingRound; pending != nil {
		c.match.pendingRound = nil
		c.startRound(*pending)
	}
}

// ---- rounds ----

func (c *Controller) handleRoundInserted(round models.Round) {
	if c.room == nil || round.RoomID != c.room.ID {
		return
	}
	if round.Number <= c.match.currentRound {
		return // duplicate delivery
	}

	// the round feed is not ordered against the room feed, so round 1 can
	// land before this side has seen the playing status or finished its
	// own countdown; hold it until enterPlaying
	if c.phase == PhaseWaiting || c.phase == PhaseReady || c.phase == PhaseCountdown {
		if c.match.pendingRound == nil || round.Number > c.match.pendingRound.Number {
			c.match.pendingRound = &round
		}
		return
	}
	if c.phase != PhasePlaying {
		return
	}

	c.startRound(round)
}

func (c *Controller) startRound(round models.Round) {
	c.match.currentRound = round.Number
	c.match.payload = round.Payload
	c.match.roundRemaining = c.rules.RoundSeconds
	if c.rules.Variant == VariantWordChain {
		c.match.usedWords[round.Payload.Prompt] = true
	}

	c.stopRoundTicker()
	c.stopRoundTick = c.startTicker(time.Second, func() any { return evRoundTick{} })

	c.sink(RoundStartOutput{
		Number:  round.Number,
		Payload: round.Payload,
		Seconds: c.rules.RoundSeconds,
	})
}

func (c *Controller) handleRoundTick(ctx context.Context) {
	if c.phase != PhasePlaying || c.match.currentRound == 0 {
		return
	}

	c.match.roundRemaining--
	if c.match.roundRemaining > 0 {
		c.sink(RoundTickOutput{Number: c.match.currentRound, Seconds: c.match.roundRemaining})
		return
	}

	c.stopRoundTicker()
	c.sink(RoundTickOutput{Number: c.match.currentRound, Seconds: 0})

	// the timeout path always leaves an answer record behind
	if c.match.answeredRound < c.match.currentRound {
		c.submit(ctx, nil, true)
	}
	c.scheduleReveal(c.match.currentRound)
}

// ---- answers ----

func (c *Controller) handleSelect(ctx context.Context, value string) {
	if c.phase != PhasePlaying || c.match.currentRound == 0 {
		c.fail("select-answer", fmt.Errorf("%w: no active round", models.ErrValidation))
		return
	}
	if c.match.answeredRound >= c.match.currentRound {
		return // duplicate submission, suppressed locally
	}
	c.submit(ctx, &value, false)
}

// submit writes this player's answer record for the current round, at most
// once. A user submission that fails the store write is not marked
// answered, so the timeout path can still force the null record.
func (c *Controller) submit(ctx context.Context, value *string, timedOut bool) {
	n := c.match.currentRound

	correct := false
	points := 0
	remaining := c.match.roundRemaining
	if remaining < 0 {
		remaining = 0
	}
	if value != nil {
		correct = c.rules.Evaluate(c.match.payload, *value, c.match.usedWords)
		points = c.rules.Score(correct, remaining)
	}

	_, err := c.answers.InsertAnswer(ctx, c.room.ID, n, c.playerID, models.AnswerPayload{
		Selected:     value,
		Correct:      correct,
		Points:       points,
		RemainingSec: remaining,
	})
	if err != nil {
		if timedOut {
			// best effort on timeout; don't retry forever
			c.match.answeredRound = n
			log.Errorf("engine: timeout answer write failed for room %s round %d: %s", c.room.ID, n, err)
			return
		}
		c.fail("select-answer", err)
		return
	}

	c.match.answeredRound = n
	if value != nil && c.rules.Variant == VariantWordChain {
		c.match.usedWords[normalizeWord(*value)] = true
	}

	c.updateOwnScore(ctx, points)
	c.sink(AnswerResultOutput{Number: n, Correct: correct, Points: points, TimedOut: timedOut})
	c.maybeScheduleReveal()
}

// updateOwnScore is a read-then-write on this side's score field only.
// Single writer per field, so no locking discipline is needed.
func (c *Controller) updateOwnScore(ctx context.Context, points int) {
	mine, _ := c.room.ScoreFor(c.playerID)
	next := mine + points

	patch := models.RoomPatch{}
	if c.room.IsHost(c.playerID) {
		patch.HostScore = &next
	} else {
		patch.GuestScore = &next
	}

	if _, err := c.rooms.UpdateRoom(ctx, c.room.ID, patch); err != nil {
		log.Errorf("engine: score update failed for room %s: %s", c.room.ID, err)
	}
}

func (c *Controller) handleAnswerInserted(ans models.Answer) {
	if c.room == nil || ans.RoomID != c.room.ID {
		return
	}

	if ans.PlayerID == c.playerID {
		// own record echoed back; reconcile the guard, nothing else
		if ans.Round > c.match.answeredRound {
			c.match.answeredRound = ans.Round
		}
		return
	}

	if ans.Round > c.match.opponentAnswered {
		c.match.opponentAnswered = ans.Round
		c.sink(OpponentAnsweredOutput{Number: ans.Round})
	}
	if ans.Selected != nil && c.rules.Variant == VariantWordChain {
		c.match.usedWords[normalizeWord(*ans.Selected)] = true
	}

	c.maybeScheduleReveal()
}

// ---- advancement (host authority) ----

// maybeScheduleReveal schedules the post-round reveal once both sides have
// an answer record for the current round. The round timer expiring forces
// the same path.
func (c *Controller) maybeScheduleReveal() {
	n := c.match.currentRound
	if n == 0 {
		return
	}
	if c.match.answeredRound >= n && c.match.opponentAnswered >= n {
		c.scheduleReveal(n)
	}
}

func (c *Controller) scheduleReveal(n int) {
	if c.room == nil || !c.room.IsHost(c.playerID) {
		return // only the host advances
	}
	if n <= c.match.revealRound {
		return
	}
	c.match.revealRound = n

	c.cancelReveal()
	c.revealTimer = c.clock.AfterFunc(c.rules.RevealDelay, func() {
		c.post(evRevealDone{round: n})
	})
}

// advance runs the publish-or-finalize effect for a completed round exactly
// once, no matter how many completion events fired for it.
func (c *Controller) advance(ctx context.Context, n int) {
	if c.room == nil || !c.room.IsHost(c.playerID) {
		return
	}
	if n <= c.match.highestAdvanced {
		return
	}
	c.match.highestAdvanced = n

	if n >= c.rules.TotalRounds {
		c.finalize(ctx)
		return
	}
	c.publishRound(ctx, n+1)
}

func (c *Controller) publishRound(ctx context.Context, n int) {
	var prev *models.RoundPayload
	if c.match.currentRound > 0 {
		p := c.match.payload
		prev = &p
	}

	payload, err := c.content.Round(ctx, c.rules.Variant, n, prev)
	if err != nil {
		log.Errorf("engine: content for round %d unavailable: %s", n, err)
		return
	}

	if _, err := c.rounds.InsertRound(ctx, c.room.ID, n, payload); err != nil {
		if errors.Is(err, models.ErrDuplicateRound) {
			log.Debugf("engine: round %d already published for room %s", n, c.room.ID)
			return
		}
		log.Errorf("engine: round %d publish failed for room %s: %s", n, c.room.ID, err)
	}
	// both sides pick the round up from the feed
}

// ---- finalization ----

// finalize re-reads the room so the outcome is computed from the latest
// scores, not a stale local copy, then writes the finished status in one
// update. Host only.
func (c *Controller) finalize(ctx context.Context) {
	fresh, err := c.rooms.GetRoom(ctx, c.room.ID)
	if err != nil || fresh == nil {
		log.Errorf("engine: finalize re-read failed for room %s: %v", c.room.ID, err)
		return
	}

	var winner *string
	switch {
	case fresh.HostScore > fresh.GuestScore:
		winner = &fresh.HostID
	case fresh.GuestScore > fresh.HostScore:
		winner = fresh.GuestID
	}

	status := models.RoomFinished
	finishedAt := c.clock.Now()
	if _, err := c.rooms.UpdateRoom(ctx, c.room.ID, models.RoomPatch{
		Status:     &status,
		FinishedAt: &finishedAt,
		WinnerID:   winner,
		SetWinner:  true,
	}); err != nil {
		log.Errorf("engine: finalize write failed for room %s: %s", c.room.ID, err)
	}
	// the finished phase is entered from the feed observation, the same
	// code path the guest takes
}

func (c *Controller) enterFinished(ctx context.Context) {
	c.stopTimers()
	c.phase = PhaseFinished

	mine, opp := c.room.ScoreFor(c.playerID)
	won := c.room.WinnerID != nil && *c.room.WinnerID == c.playerID
	c.sink(MatchFinishedOutput{
		WinnerID: c.room.WinnerID,
		Won:      won,
		Draw:     c.room.WinnerID == nil,
		MyScore:  mine,
		OppScore: opp,
	})

	if c.award == nil || c.match.awardApplied {
		return
	}
	c.match.awardApplied = true
	switch {
	case won:
		if err := c.award.AwardWin(ctx, c.playerID); err != nil {
			log.Errorf("engine: win award failed for player %s: %s", c.playerID, err)
		}
	case c.room.WinnerID != nil:
		// a loss breaks the consecutive-win streak; a draw preserves it
		if err := c.award.EndStreak(ctx, c.playerID); err != nil {
			log.Errorf("engine: streak reset failed for player %s: %s", c.playerID, err)
		}
	}
}

// ---- forfeit / reset / teardown ----

// handleForfeit is the best-effort leave write: finished, opponent wins.
// The session context is typically already cancelled when a socket dies,
// so the write runs on its own short-lived context. No retry; if it never
// reaches the store the room stays playing until the reaper sweeps it.
func (c *Controller) handleForfeit(_ context.Context) {
	if c.room == nil || (c.phase != PhasePlaying && c.phase != PhaseCountdown) {
		return
	}

	opp := c.room.OpponentID(c.playerID)
	if opp == nil {
		return
	}

	status := models.RoomFinished
	finishedAt := c.clock.Now()
	wctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := c.rooms.UpdateRoom(wctx, c.room.ID, models.RoomPatch{
		Status:     &status,
		FinishedAt: &finishedAt,
		WinnerID:   opp,
		SetWinner:  true,
	}); err != nil {
		log.Warnf("engine: forfeit write failed for room %s: %s", c.room.ID, err)
	}
}

func (c *Controller) handleReset() {
	c.teardownMatch()
	c.phase = PhaseMenu
	c.room = nil
	c.match = newMatchState()
	c.emitRoomState()
}

// teardownMatch cancels every live timer and feed subscription so nothing
// fires for a room this controller has left.
func (c *Controller) teardownMatch() {
	c.stopTimers()
	c.unsubscribeAll()
}

func (c *Controller) stopTimers() {
	c.stopCountdownTicker()
	c.stopRoundTicker()
	c.cancelReveal()
}

func (c *Controller) stopCountdownTicker() {
	if c.stopCountdown != nil {
		c.stopCountdown()
		c.stopCountdown = nil
	}
}

func (c *Controller) stopRoundTicker() {
	if c.stopRoundTick != nil {
		c.stopRoundTick()
		c.stopRoundTick = nil
	}
}

func (c *Controller) cancelReveal() {
	if c.revealTimer != nil {
		c.revealTimer.Stop()
		c.revealTimer = nil
	}
}

func (c *Controller) unsubscribeAll() {
	for _, s := range c.subs {
		if err := s.Unsubscribe(); err != nil {
			log.Warnf("engine: unsubscribe failed: %s", err)
		}
	}
	c.subs = nil
}

// startTicker runs a ticker goroutine that posts mk() into the loop until
// the returned cancel func is called.
func (c *Controller) startTicker(period time.Duration, mk func() any) func() {
	t := c.clock.NewTicker(period)
	stop := make(chan struct{})
	go func() {
		defer t.Stop()
		for {
			select {
			case <-t.Chan():
				c.post(mk())
			case <-stop:
				return
			}
		}
	}()

	var once sync.Once
	return func() { once.Do(func() { close(stop) }) }
}
