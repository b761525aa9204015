package ws

import (
	"encoding/json"
	"sync"

	"github.com/duelhub/duel-services/internal/comm"
	"github.com/duelhub/duel-services/internal/socketsvc/broker"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

// message types the gateway is willing to relay to the duel service
var relayedTypes = map[string]bool{
	"init":          true,
	"create-room":   true,
	"join-room":     true,
	"player-ready":  true,
	"select-answer": true,
	"forfeit":       true,
	"reset":         true,
}

type Ws struct {
	connMap sync.Map // to keep track of socket connection with socketId
	Broker  *broker.Broker
}

func NewWs() *Ws {
	return &Ws{}
}

// handle socket message from web clients
func (s *Ws) SocketMessage(socketId string, message *comm.WSMessage) {
	if !relayedTypes[message.Type] {
		log.Warnf("unknown event received: %s", message.Type)
		return
	}

	// Stamp the message with the socket that owns it
	message.SocketId = socketId

	bytes, err := json.Marshal(message)
	if err != nil {
		log.Errorf("Failed to marshal WSMessage for NATS: %v", err)
		return
	}

	topic := "socket.service"
	if err := s.Broker.Publish(topic, bytes); err != nil {
		log.Errorf("Failed to publish to NATS topic %s: %v", topic, err)
		return
	}
}

// HandleDisconnect drops the connection and tells the duel service the
// client is gone, so a mid-match disconnect runs the forfeit path.
func (s *Ws) HandleDisconnect(socketId string) {
	s.connMap.Delete(socketId)

	msg := &comm.WSMessage{
		Type:     "client-gone",
		SocketId: socketId,
	}
	bytes, err := json.Marshal(msg)
	if err != nil {
		log.Errorf("Failed to marshal client-gone for %s: %v", socketId, err)
		return
	}
	if err := s.Broker.Publish("socket.service", bytes); err != nil {
		log.Errorf("Failed to publish client-gone for %s: %v", socketId, err)
	}
}

func (s *Ws) StoreConnection(socketId string, conn *websocket.Conn) {
	s.connMap.Store(socketId, conn)
}

func (s *Ws) GetConnection(socketId string) (*websocket.Conn, bool) {
	conn, ok := s.connMap.Load(socketId)
	if !ok {
		return nil, false
	}
	return conn.(*websocket.Conn), true
}
