package routes

import (
	"os"

	"github.com/duelhub/duel-services/internal/socketsvc/handlers"
	"github.com/duelhub/duel-services/internal/socketsvc/ws"
	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
)

var tokenAuth *jwtauth.JWTAuth

// SetRoutes mounts the websocket endpoint and the authenticated
// health check under /v1.
func SetRoutes(r *chi.Mux, sock *ws.Ws) {
	h := handlers.NewHandler(sock)

	r.Route("/v1", func(r chi.Router) {
		// the upgrade is open; frames without a player identity are
		// rejected downstream
		r.Get("/ws", h.HandleWebSocket)

		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(tokenAuth))
			r.Use(jwtauth.Authenticator)

			r.Get("/health", h.HealthHandler)
		})
	})
}

func InitAuth() {
	tokenAuth = jwtauth.New("HS256", []byte(os.Getenv("JWT_SECRET_KEY")), nil)
}
