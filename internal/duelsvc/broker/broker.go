package broker

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/duelhub/duel-services/internal/comm"
	"github.com/duelhub/duel-services/internal/duelsvc/content"
	"github.com/duelhub/duel-services/internal/duelsvc/engine"
	"github.com/duelhub/duel-services/internal/duelsvc/feed"
	"github.com/duelhub/duel-services/internal/duelsvc/models"
	"github.com/duelhub/duel-services/internal/duelsvc/service"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

// Broker owns one engine controller per connected socket and translates
// between socket messages and engine actions/outputs.
type Broker struct {
	Conn           *nats.Conn
	PlayerService  *service.PlayerService
	BalanceService *service.BalanceService
	RoomService    *service.RoomService
	RoundService   *service.RoundService
	AnswerService  *service.AnswerService
	Feed           *feed.Feed
	Content        content.Provider

	sessions sync.Map // socketId -> *session
}

type session struct {
	player *models.Player
	ctrl   *engine.Controller
	cancel context.CancelFunc
}

func NewBroker(nc *nats.Conn, playerService *service.PlayerService,
	balanceService *service.BalanceService, roomService *service.RoomService,
	roundService *service.RoundService, answerService *service.AnswerService,
	f *feed.Feed, provider content.Provider) *Broker {
	return &Broker{
		Conn:           nc,
		PlayerService:  playerService,
		BalanceService: balanceService,
		RoomService:    roomService,
		RoundService:   roundService,
		AnswerService:  answerService,
		Feed:           f,
		Content:        provider,
	}
}

// consume messages coming from the socket gateway
func (b *Broker) SubscribSocketService(topic string) (*nats.Subscription, error) {
	sub, err := b.Conn.Subscribe(topic, b.handleMessage)
	if err != nil {
		return nil, err
	}

	return sub, nil
}

// handles message coming from socket
func (b *Broker) handleMessage(msgNat *nats.Msg) {
	msg := &comm.WSMessage{}
	err := json.Unmarshal(msgNat.Data, &msg)
	if err != nil {
		log.Errorf("Error nats message %s", err)
		return
	}

	switch msg.Type {
	case "init":
		b.handleInit(msg)
	case "create-room":
		var request comm.CreateRoomRequest
		if err := json.Unmarshal(msg.Data, &request); err != nil {
			log.Errorf("Error decoding create-room: %s", err)
			return
		}
		if sess, ok := b.session(msg.SocketId); ok {
			sess.ctrl.Create(request.Variant)
		}
	case "join-room":
		var request comm.JoinRoomRequest
		if err := json.Unmarshal(msg.Data, &request); err != nil {
			log.Errorf("Error decoding join-room: %s", err)
			return
		}
		if sess, ok := b.session(msg.SocketId); ok {
			sess.ctrl.Join(request.Code, request.Variant)
		}
	case "player-ready":
		if sess, ok := b.session(msg.SocketId); ok {
			sess.ctrl.Ready()
		}
	case "select-answer":
		var request comm.SelectAnswerRequest
		if err := json.Unmarshal(msg.Data, &request); err != nil {
			log.Errorf("Error decoding select-answer: %s", err)
			return
		}
		if sess, ok := b.session(msg.SocketId); ok {
			sess.ctrl.SelectAnswer(request.Value)
		}
	case "forfeit":
		if sess, ok := b.session(msg.SocketId); ok {
			sess.ctrl.Forfeit()
		}
	case "reset":
		if sess, ok := b.session(msg.SocketId); ok {
			sess.ctrl.Reset()
		}
	case "client-gone":
		// socket died; forfeit best-effort and drop the session
		if raw, ok := b.sessions.LoadAndDelete(msg.SocketId); ok {
			sess := raw.(*session)
			sess.ctrl.Forfeit()
			sess.ctrl.Stop()
			sess.cancel()
		}
	default:
		log.Error("Unknown message")
		return
	}
}

// session resolves an initialized session; without one the action is
// rejected with the not-authenticated reason.
func (b *Broker) session(socketId string) (*session, bool) {
	raw, ok := b.sessions.Load(socketId)
	if !ok {
		b.PublishDuelError(comm.DuelError{
			Action: "session",
			Reason: models.ErrNotAuthenticated.Error(),
		}, socketId)
		return nil, false
	}
	return raw.(*session), true
}

func (b *Broker) handleInit(msg *comm.WSMessage) {
	var request comm.InitRequest
	if err := json.Unmarshal(msg.Data, &request); err != nil {
		log.Errorf("Error decoding init: %s", err)
		return
	}
	if request.Name == "" {
		b.PublishDuelError(comm.DuelError{
			Action: "init",
			Reason: models.ErrValidation.Error(),
		}, msg.SocketId)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	player, err := b.PlayerService.GetOrCreatePlayer(ctx, request.PlayerId, request.Name)
	if err != nil {
		log.Errorf("Error [PlayerService.GetOrCreatePlayer] %s", err)
		return
	}

	points, err := b.BalanceService.GetPoints(ctx, player.ID)
	if err != nil {
		log.Errorf("Error [BalanceService.GetPoints] %s", err)
		return
	}

	socketId := msg.SocketId
	ctrl, err := engine.NewController(engine.Config{
		PlayerID:   player.ID,
		PlayerName: player.Name,
		Rooms:      b.RoomService,
		Rounds:     b.RoundService,
		Answers:    b.AnswerService,
		Feed:       b.Feed,
		Content:    b.Content,
		Award:      b.BalanceService,
		Sink:       func(out engine.Output) { b.publishOutput(out, socketId) },
	})
	if err != nil {
		log.Errorf("Error creating controller for %s: %s", socketId, err)
		return
	}

	runCtx, runCancel := context.WithCancel(context.Background())
	go ctrl.Run(runCtx)

	// a reconnect on the same socket id replaces the old session
	if old, loaded := b.sessions.Swap(socketId, &session{player: player, ctrl: ctrl, cancel: runCancel}); loaded {
		prev := old.(*session)
		prev.ctrl.Stop()
		prev.cancel()
	}

	b.PublishInitResponse(comm.PlayerData{
		PlayerId: player.ID,
		Name:     player.Name,
		Points:   points.StringFixed(0),
	}, socketId)
}

// publishOutput maps an engine output onto its socket message.
func (b *Broker) publishOutput(out engine.Output, socketId string) {
	switch o := out.(type) {
	case engine.RoomStateOutput:
		b.publish("room-state", comm.RoomState{
			Phase:    string(o.Phase),
			Room:     o.Room,
			IsHost:   o.IsHost,
			MyScore:  o.MyScore,
			OppScore: o.OppScore,
		}, socketId)
	case engine.CountdownTickOutput:
		b.publish("countdown-tick", comm.CountdownTick{Seconds: o.Seconds}, socketId)
	case engine.RoundStartOutput:
		b.publish("round-start", comm.RoundStart{Number: o.Number, Payload: o.Payload, Seconds: o.Seconds}, socketId)
	case engine.RoundTickOutput:
		b.publish("round-tick", comm.RoundTick{Number: o.Number, Seconds: o.Seconds}, socketId)
	case engine.AnswerResultOutput:
		b.publish("answer-result", comm.AnswerResult{Number: o.Number, Correct: o.Correct, Points: o.Points, TimedOut: o.TimedOut}, socketId)
	case engine.OpponentAnsweredOutput:
		b.publish("opponent-answered", comm.OpponentAnswered{Number: o.Number}, socketId)
	case engine.MatchFinishedOutput:
		b.publish("match-finished", comm.MatchFinished{
			WinnerId: o.WinnerID,
			Won:      o.Won,
			Draw:     o.Draw,
			MyScore:  o.MyScore,
			OppScore: o.OppScore,
		}, socketId)
	case engine.ActionErrorOutput:
		b.PublishDuelError(comm.DuelError{Action: o.Action, Reason: o.Err.Error()}, socketId)
	default:
		log.Warnf("unknown engine output %T", out)
	}
}

func (b *Broker) PublishInitResponse(p comm.PlayerData, socketId string) {
	b.publish("init-response", p, socketId)
}

func (b *Broker) PublishDuelError(e comm.DuelError, socketId string) {
	b.publish("duel-error", e, socketId)
}

func (b *Broker) publish(msgType string, v any, socketId string) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Errorf("unable to marshal %s payload: %s", msgType, err)
		return
	}

	msg := &comm.WSMessage{
		Type:     msgType,
		Data:     data,
		SocketId: socketId,
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		log.Errorf("Error %s", err)
		return
	}

	topic := "duel.service"
	if err := b.Conn.Publish(topic, payload); err != nil {
		log.Errorf("Error publishing to topic %s: %s", topic, err)
	}
}
