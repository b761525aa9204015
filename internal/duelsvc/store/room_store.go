package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/duelhub/duel-services/internal/duelsvc/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const roomColumns = `id, code, variant, host_id, host_name, guest_id, guest_name, status,
       host_score, guest_score, host_ready, guest_ready,
       started_at, finished_at, winner_id, created_at, updated_at`

type RoomStore struct {
	db *pgxpool.Pool
}

func NewRoomStore(db *pgxpool.Pool) *RoomStore {
	return &RoomStore{db: db}
}

func scanRoom(row pgx.Row) (*models.Room, error) {
	r := &models.Room{}
	err := row.Scan(
		&r.ID,
		&r.Code,
		&r.Variant,
		&r.HostID,
		&r.HostName,
		&r.GuestID,
		&r.GuestName,
		&r.Status,
		&r.HostScore,
		&r.GuestScore,
		&r.HostReady,
		&r.GuestReady,
		&r.StartedAt,
		&r.FinishedAt,
		&r.WinnerID,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// CreateRoom inserts a fresh waiting room. The partial unique index
// unique_active_room_code on (code, variant) for non-finished rooms turns a
// code collision into ErrCodeTaken so the caller can retry with a new code.
func (s *RoomStore) CreateRoom(ctx context.Context, code, hostID, hostName, variant string) (*models.Room, error) {
	query := `
		INSERT INTO rooms (code, variant, host_id, host_name, status)
		VALUES ($1, $2, $3, $4, 'waiting')
		RETURNING ` + roomColumns

	room, err := scanRoom(s.db.QueryRow(ctx, query, code, variant, hostID, hostName))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, models.ErrCodeTaken
		}
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	return room, nil
}

func (s *RoomStore) GetRoomByID(ctx context.Context, roomID string) (*models.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = $1`

	room, err := scanRoom(s.db.QueryRow(ctx, query, roomID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // room not found
		}
		return nil, fmt.Errorf("failed to get room by ID: %w", err)
	}

	return room, nil
}

// FindRoomByCode looks a joinable room up by its 6-char code. Finished rooms
// are excluded so codes can be reused once a match ends.
func (s *RoomStore) FindRoomByCode(ctx context.Context, code, variant string) (*models.Room, error) {
	query := `
		SELECT ` + roomColumns + `
		FROM rooms
		WHERE code = $1 AND variant = $2 AND status != 'finished'
		LIMIT 1`

	room, err := scanRoom(s.db.QueryRow(ctx, query, code, variant))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find room by code: %w", err)
	}

	return room, nil
}

// JoinRoom seats the guest. The CTE locks the room row and only matches a
// waiting room with no guest yet, so the guest side is set at most once even
// if two joins race on the same code.
func (s *RoomStore) JoinRoom(ctx context.Context, roomID, guestID, guestName string) (*models.Room, error) {
	const query = `
WITH open_room AS (
  SELECT id
  FROM rooms
  WHERE id = $1
    AND status = 'waiting'
    AND guest_id IS NULL
  FOR UPDATE
)
UPDATE rooms r
SET guest_id = $2, guest_name = $3, status = 'ready', updated_at = now()
FROM open_room o
WHERE r.id = o.id
RETURNING ` + roomColumns

	room, err := scanRoom(s.db.QueryRow(ctx, query, roomID, guestID, guestName))
	if err == nil {
		return room, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to join room: %w", err)
	}

	// zero rows: figure out which precondition failed
	existing, gerr := s.GetRoomByID(ctx, roomID)
	if gerr != nil {
		return nil, gerr
	}
	switch {
	case existing == nil:
		return nil, models.ErrRoomNotFound
	case existing.GuestID != nil:
		return nil, models.ErrRoomFull
	default:
		return nil, models.ErrRoomUnavailable
	}
}

// UpdateRoom applies a partial update and returns the fresh row. When the
// patch moves status it refuses to touch a finished room, keeping the
// lifecycle forward-only.
func (s *RoomStore) UpdateRoom(ctx context.Context, roomID string, patch models.RoomPatch) (*models.Room, error) {
	set, args := buildRoomPatch(patch)
	if len(set) == 0 {
		return s.GetRoomByID(ctx, roomID)
	}

	args = append(args, roomID)
	query := fmt.Sprintf(
		"UPDATE rooms SET %s, updated_at = now() WHERE id = $%d",
		strings.Join(set, ", "), len(args),
	)
	if patch.Status != nil {
		query += " AND status != 'finished'"
	}
	query += " RETURNING " + roomColumns

	room, err := scanRoom(s.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrRoomUnavailable
		}
		return nil, fmt.Errorf("failed to update room: %w", err)
	}

	return room, nil
}

// buildRoomPatch turns the non-nil patch fields into SET fragments with
// positional args. Winner is special: SetWinner with a nil WinnerID writes
// NULL, which is how a draw is stored.
func buildRoomPatch(patch models.RoomPatch) ([]string, []any) {
	var set []string
	var args []any

	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Status != nil {
		add("status", *patch.Status)
	}
	if patch.HostScore != nil {
		add("host_score", *patch.HostScore)
	}
	if patch.GuestScore != nil {
		add("guest_score", *patch.GuestScore)
	}
	if patch.HostReady != nil {
		add("host_ready", *patch.HostReady)
	}
	if patch.GuestReady != nil {
		add("guest_ready", *patch.GuestReady)
	}
	if patch.StartedAt != nil {
		add("started_at", *patch.StartedAt)
	}
	if patch.FinishedAt != nil {
		add("finished_at", *patch.FinishedAt)
	}
	if patch.SetWinner {
		add("winner_id", patch.WinnerID)
	}

	return set, args
}
