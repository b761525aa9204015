package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"
	log "github.com/sirupsen/logrus"

	config "github.com/duelhub/duel-services/configs"
	"github.com/duelhub/duel-services/internal/nats"
	"github.com/duelhub/duel-services/internal/socketsvc/broker"
	"github.com/duelhub/duel-services/internal/socketsvc/routes"
	"github.com/duelhub/duel-services/internal/socketsvc/ws"
)

const SERVICE_NAME = "socket"

const defaultRateLimit = 120 // requests per minute per IP

func init() {
	config.Logging(SERVICE_NAME + "_service_001")
	config.LoadEnv(SERVICE_NAME)
}

func main() {
	n, err := nats.Connect()
	if err != nil {
		log.Fatalf("unable to connect to NATS server: %v", err)
	}
	defer n.Conn.Close()
	log.Infof("NATS connection established %s", n.Url)

	rateLimit := defaultRateLimit
	if v := os.Getenv("RATE_LIMIT"); v != "" {
		rateLimit, err = strconv.Atoi(v)
		if err != nil {
			log.Fatalf("invalid RATE_LIMIT value: %v", err)
		}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(config.CustomLoggerMiddleware())
	r.Use(config.CORS().Handler)
	r.Use(httprate.LimitByIP(rateLimit, 1*time.Minute))

	sock := ws.NewWs()
	routes.InitAuth()
	routes.SetRoutes(r, sock)

	// the broker relays duel engine output to the right socket; it
	// resolves connections through the ws registry
	b := broker.NewBroker(n.Conn, sock.GetConnection)
	sock.Broker = b

	subDuel, err := b.Subscribe("duel.service")
	if err != nil {
		log.Fatalf("unable to subscribe to duel.service: %v", err)
	}

	server := &http.Server{
		Addr:         ":" + os.Getenv("SOCKET_SERVICE_PORT"),
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()
	log.Infof("%s service running at port %s", SERVICE_NAME, server.Addr)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	subDuel.Unsubscribe()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("%s service shutdown failed: %v", SERVICE_NAME, err)
	}
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}
