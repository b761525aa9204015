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

	config "github.com/duelhub/duel-services/configs"
	mongodb "github.com/duelhub/duel-services/internal/db"
	"github.com/duelhub/duel-services/internal/duelsvc/broker"
	"github.com/duelhub/duel-services/internal/duelsvc/content"
	"github.com/duelhub/duel-services/internal/duelsvc/db"
	"github.com/duelhub/duel-services/internal/duelsvc/feed"
	handlers "github.com/duelhub/duel-services/internal/duelsvc/handlers"
	"github.com/duelhub/duel-services/internal/duelsvc/service"
	"github.com/duelhub/duel-services/internal/duelsvc/store"
	nats "github.com/duelhub/duel-services/internal/nats"
	log "github.com/sirupsen/logrus"
)

const SERVICE_NAME = "duel"

const defaultRateLimit = 120 // requests per minute per IP

func init() {
	config.Logging(SERVICE_NAME + "_service_001")
	config.LoadEnv(SERVICE_NAME)
}

func main() {
	dbpool, err := db.Connect()
	if err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}
	defer db.ClosePool()
	log.Infof("pg connection established")

	// question bank
	bankDB, cancelBank, err := mongodb.ConnectToDB()
	if err != nil {
		log.Fatalf("Failed to connect to question bank: %v", err)
	}
	defer cancelBank()
	mongodb.CreateVariantIndexForCollection(bankDB, "questions")

	n, err := nats.Connect()
	if err != nil {
		log.Fatalf("unable to connect to NATS server: %v", err)
	}
	defer n.Conn.Close()
	log.Infof("NATS connection established %s", n.Url)

	changeFeed := feed.New(n.Conn)

	playerStore := store.NewPlayerStore(dbpool)
	playerService := service.NewPlayerService(playerStore)

	balanceStore := store.NewBalanceStore(dbpool)
	balanceService := service.NewBalanceService(balanceStore, playerStore)

	roomStore := store.NewRoomStore(dbpool)
	roomService := service.NewRoomService(roomStore, changeFeed)

	roundStore := store.NewRoundStore(dbpool)
	roundService := service.NewRoundService(roundStore, changeFeed)

	answerStore := store.NewAnswerStore(dbpool)
	answerService := service.NewAnswerService(answerStore, changeFeed)

	bank := content.NewBank(bankDB)

	// init socket message broker
	broker := broker.NewBroker(n.Conn,
		playerService, balanceService, roomService, roundService, answerService,
		changeFeed, bank)

	// inbound frames from the socket gateway
	sub, err := broker.SubscribSocketService("socket.service")
	if err != nil {
		log.Fatalf("unable to subscribe to socket.service: %v", err)
	}

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
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(config.CORS().Handler)
	r.Use(httprate.LimitByIP(rateLimit, 1*time.Minute))

	h := handlers.NewHandler(roomService, roundService, answerService)
	h.InitAuth()
	h.SetRoutes(r)

	server := &http.Server{
		Addr:         ":" + os.Getenv("DUEL_SERVICE_PORT"),
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

	sub.Unsubscribe()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("%s service shutdown failed: %v", SERVICE_NAME, err)
	}
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}
