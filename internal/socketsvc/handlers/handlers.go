package handlers

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/duelhub/duel-services/internal/comm"
	"github.com/duelhub/duel-services/internal/socketsvc/ws"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

// frames larger than this are never legitimate duel traffic
const maxFrameBytes = 4 << 10

type Handler struct {
	upgrader websocket.Upgrader
	ws       *ws.Ws
}

type Response struct {
	Message string      `json:"message"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Error   string      `json:"error"`
}

func NewHandler(s *ws.Ws) *Handler {
	return &Handler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		ws: s,
	}
}

// HandleWebSocket upgrades the connection, assigns it a socket id and hands
// it to the read loop. The socket id is the session key everywhere else.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Errorf("websocket upgrade failed: %v", err)
		return
	}
	conn.SetReadLimit(maxFrameBytes)

	socketId := uuid.New().String()
	h.ws.StoreConnection(socketId, conn)
	log.Infof("socket %s connected", socketId)

	go h.readLoop(conn, socketId)
}

// readLoop relays client frames until the connection dies, then runs the
// disconnect path so a mid-match drop forfeits the duel.
func (h *Handler) readLoop(conn *websocket.Conn, socketId string) {
	defer func() {
		conn.Close()
		h.ws.HandleDisconnect(socketId)
		log.Infof("socket %s closed", socketId)
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Errorf("socket %s read error: %v", socketId, err)
			}
			return
		}

		message := &comm.WSMessage{}
		if err := json.Unmarshal(raw, &message); err != nil {
			log.Warnf("socket %s sent a malformed frame: %v", socketId, err)
			h.rejectFrame(conn, "malformed message")
			continue
		}

		h.ws.SocketMessage(socketId, message)
	}
}

// rejectFrame tells the client its frame was dropped, using the same
// duel-error shape the engine uses for action failures.
func (h *Handler) rejectFrame(conn *websocket.Conn, reason string) {
	data, err := json.Marshal(comm.DuelError{Action: "frame", Reason: reason})
	if err != nil {
		return
	}
	if err := conn.WriteJSON(&comm.WSMessage{Type: "duel-error", Data: data}); err != nil {
		log.Errorf("unable to reject frame: %v", err)
	}
}

func (h *Handler) CreateResponse(w http.ResponseWriter, rsp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rsp.Code)
	if err := json.NewEncoder(w).Encode(rsp); err != nil {
		log.Errorf("Failed to encode response: %v", err)
	}
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	rsp := Response{
		Message: "socket service is running at port " + os.Getenv("SERVICE_PORT"),
		Code:    200,
	}
	if err := json.NewEncoder(w).Encode(rsp); err != nil {
		log.Errorf("Failed to encode health response: %v", err)
	}
}
