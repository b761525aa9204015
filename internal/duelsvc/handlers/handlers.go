package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"

	"github.com/duelhub/duel-services/internal/duelsvc/models"
	"github.com/duelhub/duel-services/internal/duelsvc/service"

	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	tokenAuth     *jwtauth.JWTAuth
	roomService   *service.RoomService
	roundService  *service.RoundService
	answerService *service.AnswerService
}

func NewHandler(roomService *service.RoomService, roundService *service.RoundService,
	answerService *service.AnswerService) *Handler {
	return &Handler{
		roomService:   roomService,
		roundService:  roundService,
		answerService: answerService,
	}
}

type Response struct {
	Message string      `json:"message"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Error   string      `json:"error"`
}

func (h *Handler) CreateResponse(w http.ResponseWriter, rsp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rsp.Code)

	if err := json.NewEncoder(w).Encode(rsp); err != nil {
		log.Errorf("Error encoding response: %s", err)
	}
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	h.CreateResponse(w, Response{
		Message: "duel service is running at port " + os.Getenv("DUEL_SERVICE_PORT"),
		Code:    200,
	})
}

// RoomLookupHandler lets operators check whether a code currently maps to
// an active room of a variant.
func (h *Handler) RoomLookupHandler(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(chi.URLParam(r, "code"))
	variant := r.URL.Query().Get("variant")

	room, err := h.roomService.FindRoomByCode(r.Context(), code, variant)
	if err != nil {
		log.Errorf("room lookup failed: %s", err)
		h.CreateResponse(w, Response{Code: http.StatusInternalServerError, Error: "lookup failed"})
		return
	}
	if room == nil {
		h.CreateResponse(w, Response{Code: http.StatusNotFound, Message: "no active room for code"})
		return
	}

	h.CreateResponse(w, Response{Code: http.StatusOK, Data: room})
}

type roundTranscript struct {
	Round   *models.Round    `json:"round"`
	Answers []*models.Answer `json:"answers"`
}

type matchTranscript struct {
	Room   *models.Room      `json:"room"`
	Rounds []roundTranscript `json:"rounds"`
}

// MatchTranscriptHandler returns the full stored history of a match: the
// room row plus every published round with both players' answer records.
func (h *Handler) MatchTranscriptHandler(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomID")

	room, err := h.roomService.GetRoom(r.Context(), roomID)
	if err != nil {
		log.Errorf("transcript room read failed: %s", err)
		h.CreateResponse(w, Response{Code: http.StatusInternalServerError, Error: "transcript failed"})
		return
	}
	if room == nil {
		h.CreateResponse(w, Response{Code: http.StatusNotFound, Message: "no such room"})
		return
	}

	rounds, err := h.roundService.ListRounds(r.Context(), room.ID)
	if err != nil {
		log.Errorf("transcript rounds read failed: %s", err)
		h.CreateResponse(w, Response{Code: http.StatusInternalServerError, Error: "transcript failed"})
		return
	}

	out := matchTranscript{Room: room}
	for _, round := range rounds {
		answers, err := h.answerService.ListAnswers(r.Context(), room.ID, round.Number)
		if err != nil {
			log.Errorf("transcript answers read failed: %s", err)
			h.CreateResponse(w, Response{Code: http.StatusInternalServerError, Error: "transcript failed"})
			return
		}
		out.Rounds = append(out.Rounds, roundTranscript{Round: round, Answers: answers})
	}

	h.CreateResponse(w, Response{Code: http.StatusOK, Data: out})
}
