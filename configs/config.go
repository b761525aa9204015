package config

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/gofrs/uuid"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

var InstanceId string

// LoadEnv reads ./.env into the process environment. A missing file is fine
// in deployments where the environment is injected from outside.
func LoadEnv(service string) {
	if err := godotenv.Load("./.env"); err != nil {
		log.Warnf("%s: no .env file, relying on the process environment", service)
		return
	}
	log.Infof("%s: .env loaded", service)
}

// CreateUniqueInstance mints the id that distinguishes this process in logs
// when several replicas of the same service run.
func CreateUniqueInstance(service string) string {
	id, err := uuid.NewV4()
	if err != nil {
		log.Fatalf("error generating instanceId: %s", err)
	}
	InstanceId = id.String()
	log.Infof("%s service instance %s is ready", service, InstanceId)
	return InstanceId
}

func CORS() *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins:   []string{"https://duelhub.app", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}

// Logging sends logrus output to ./logs/<service>.log, appending across
// restarts.
func Logging(service string) {
	logFolder := "logs"
	if _, err := os.Stat(logFolder); os.IsNotExist(err) {
		if err := os.Mkdir(logFolder, 0755); err != nil {
			log.Warnf("unable to create log folder: %s", err)
			return
		}
	}

	file, err := os.OpenFile(filepath.Join(logFolder, service+".log"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.Fatalf("failed to open log file: %s", err)
	}

	log.SetOutput(file)
	log.SetFormatter(&log.TextFormatter{})
	log.SetLevel(log.InfoLevel)
	log.Infof("file logging started for service: %s", service)
}

// CustomLoggerMiddleware is a one-line-per-request access log on top of
// chi's response writer wrapper.
func CustomLoggerMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				log.Printf("%s %s %s %d %s %s",
					r.Method,
					r.RequestURI,
					r.RemoteAddr,
					ww.Status(),
					http.StatusText(ww.Status()),
					time.Since(start),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
