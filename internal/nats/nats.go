package nats

import (
	"os"

	"github.com/nats-io/nats.go"
)

const defaultURL = "nats://localhost:4222"

type Nats struct {
	Url  string
	Conn *nats.Conn
}

// Connect dials the broker at NATS_URL, falling back to the local default.
// NATS_TOKEN is applied when set.
func Connect() (*Nats, error) {
	url := os.Getenv("NATS_URL")
	if url == "" {
		url = defaultURL
	}

	opts := []nats.Option{nats.Name("duel-services")}
	if token := os.Getenv("NATS_TOKEN"); token != "" {
		opts = append(opts, nats.Token(token))
	}

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, err
	}

	return &Nats{Url: url, Conn: conn}, nil
}
