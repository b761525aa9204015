package handlers

import (
	"os"

	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
)

// SetRoutes mounts the read-only HTTP surface. Room lookup and the match
// transcript require a bearer token; health is open for probes.
func (h *Handler) SetRoutes(r *chi.Mux) {
	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", h.HealthHandler)

		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(h.tokenAuth))
			r.Use(jwtauth.Authenticator)

			r.Get("/rooms/{code}", h.RoomLookupHandler)
			r.Get("/matches/{roomID}/transcript", h.MatchTranscriptHandler)
		})
	})
}

func (h *Handler) InitAuth() {
	h.tokenAuth = jwtauth.New("HS256", []byte(os.Getenv("JWT_SECRET_KEY")), nil)
}
