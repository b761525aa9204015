package main

import (
	"context"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	config "github.com/duelhub/duel-services/configs"
	"github.com/duelhub/duel-services/internal/duelsvc/db"
	"github.com/duelhub/duel-services/internal/duelsvc/feed"
	"github.com/duelhub/duel-services/internal/duelsvc/store"
	natscli "github.com/duelhub/duel-services/internal/nats"

	"github.com/jackc/pgx/v5/pgxpool"
)

const SERVICE_NAME = "reaper"

// a playing room with no write activity for this long is considered abandoned
const staleAfter = 3 * time.Minute

var instanceId string

func init() {
	instanceId = config.CreateUniqueInstance(SERVICE_NAME)
	config.Logging(SERVICE_NAME + "_service_" + instanceId)
	config.LoadEnv(SERVICE_NAME)
}

func main() {
	// pg connection
	dbpool, err := db.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer db.ClosePool()
	log.Printf("pg connection established successfully")

	// Connect to NATS
	n, err := natscli.Connect()
	if err != nil {
		log.Errorf("Error: unable to connect to NATS server %v", err)
		os.Exit(1)
	}
	defer n.Conn.Close()
	log.Printf("NATS connection established successfully %s", n.Url)

	changeFeed := feed.New(n.Conn)
	roomStore := store.NewRoomStore(dbpool)

	ctx := context.Background()
	ticker := time.NewTicker(60 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		reaped, err := reapStaleRooms(ctx, dbpool)
		if err != nil {
			log.Printf("reapStaleRooms error: %v", err)
			continue
		}

		// notify survivors waiting on these rooms
		for _, id := range reaped {
			room, err := roomStore.GetRoomByID(ctx, id)
			if err != nil || room == nil {
				log.Printf("reaped room %s could not be re-read: %v", id, err)
				continue
			}
			changeFeed.NotifyRoom(room)
			log.Infof("reaped stale room %s (winner: %v)", id, room.WinnerID)
		}
	}
}

// reapStaleRooms force-finishes playing rooms with no write activity past
// the threshold, awarding the side with the higher score. SKIP LOCKED keeps
// concurrent reaper instances from double-finishing a room.
func reapStaleRooms(ctx context.Context, pool *pgxpool.Pool) ([]string, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, `
        SELECT id
        FROM rooms
        WHERE status = 'playing'
          AND updated_at < now() - make_interval(secs => $1)
        FOR UPDATE SKIP LOCKED
    `, staleAfter.Seconds())
	if err != nil {
		return nil, fmt.Errorf("select stale rooms: %w", err)
	}
	defer rows.Close()

	var candidates []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan room row: %w", err)
		}
		candidates = append(candidates, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	var reaped []string
	for _, id := range candidates {
		if _, err := tx.Exec(ctx, `
            UPDATE rooms
            SET status = 'finished',
                winner_id = CASE
                    WHEN host_score > guest_score THEN host_id
                    WHEN guest_score > host_score THEN guest_id
                    ELSE NULL
                END,
                finished_at = now(),
                updated_at = now()
            WHERE id = $1
        `, id); err != nil {
			return nil, fmt.Errorf("finish room %s: %w", id, err)
		}
		reaped = append(reaped, id)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return reaped, nil
}
