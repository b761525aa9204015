package feed

import (
	"encoding/json"
	"fmt"

	"github.com/duelhub/duel-services/internal/duelsvc/models"

	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

// Subjects of the per-room change feed. Delivery is NATS core: at least
// once from the subscriber's point of view and with no cross-subject
// ordering, which is exactly the contract the engine is written against.
func roomSubject(roomID string) string    { return fmt.Sprintf("feed.room.%s", roomID) }
func roundsSubject(roomID string) string  { return fmt.Sprintf("feed.room.%s.rounds", roomID) }
func answersSubject(roomID string) string { return fmt.Sprintf("feed.room.%s.answers", roomID) }

type Subscription interface {
	Unsubscribe() error
}

// Feed publishes and delivers room change notifications. Every store write
// in the service layer is followed by a Notify call so both sides of a duel
// observe the same authoritative rows.
type Feed struct {
	Conn *nats.Conn
}

func New(conn *nats.Conn) *Feed {
	return &Feed{Conn: conn}
}

func (f *Feed) publish(subject string, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		log.Errorf("feed: unable to marshal notification for %s: %s", subject, err)
		return
	}
	if err := f.Conn.Publish(subject, payload); err != nil {
		log.Errorf("feed: publish to %s failed: %s", subject, err)
	}
}

// NotifyRoom broadcasts the full latest room row. Subscribers re-derive all
// decisions from the payload, so publishing the whole row keeps duplicate
// and out-of-order delivery harmless.
func (f *Feed) NotifyRoom(room *models.Room) {
	f.publish(roomSubject(room.ID), room)
}

func (f *Feed) NotifyRound(round *models.Round) {
	f.publish(roundsSubject(round.RoomID), round)
}

func (f *Feed) NotifyAnswer(ans *models.Answer) {
	f.publish(answersSubject(ans.RoomID), ans)
}

func (f *Feed) SubscribeRoom(roomID string, fn func(models.Room)) (Subscription, error) {
	return f.Conn.Subscribe(roomSubject(roomID), func(msg *nats.Msg) {
		var room models.Room
		if err := json.Unmarshal(msg.Data, &room); err != nil {
			log.Errorf("feed: invalid room notification: %s", err)
			return
		}
		fn(room)
	})
}

func (f *Feed) SubscribeRounds(roomID string, fn func(models.Round)) (Subscription, error) {
	return f.Conn.Subscribe(roundsSubject(roomID), func(msg *nats.Msg) {
		var round models.Round
		if err := json.Unmarshal(msg.Data, &round); err != nil {
			log.Errorf("feed: invalid round notification: %s", err)
			return
		}
		fn(round)
	})
}

func (f *Feed) SubscribeAnswers(roomID string, fn func(models.Answer)) (Subscription, error) {
	return f.Conn.Subscribe(answersSubject(roomID), func(msg *nats.Msg) {
		var ans models.Answer
		if err := json.Unmarshal(msg.Data, &ans); err != nil {
			log.Errorf("feed: invalid answer notification: %s", err)
			return
		}
		fn(ans)
	})
}
