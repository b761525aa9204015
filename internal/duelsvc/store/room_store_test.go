package store

import (
	"testing"
	"time"

	"github.com/duelhub/duel-services/internal/duelsvc/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRoomPatchEmpty(t *testing.T) {
	set, args := buildRoomPatch(models.RoomPatch{})
	assert.Empty(t, set)
	assert.Empty(t, args)
}

func TestBuildRoomPatchNumbersPlaceholders(t *testing.T) {
	status := models.RoomPlaying
	score := 25
	startedAt := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	set, args := buildRoomPatch(models.RoomPatch{
		Status:    &status,
		HostScore: &score,
		StartedAt: &startedAt,
	})

	require.Equal(t, []string{"status = $1", "host_score = $2", "started_at = $3"}, set)
	require.Len(t, args, 3)
	assert.Equal(t, models.RoomPlaying, args[0])
	assert.Equal(t, 25, args[1])
	assert.Equal(t, startedAt, args[2])
}

func TestBuildRoomPatchWinner(t *testing.T) {
	winner := "p-host"
	set, args := buildRoomPatch(models.RoomPatch{WinnerID: &winner, SetWinner: true})
	require.Equal(t, []string{"winner_id = $1"}, set)
	assert.Equal(t, &winner, args[0])

	// SetWinner with a nil id writes NULL, recording a draw
	set, args = buildRoomPatch(models.RoomPatch{SetWinner: true})
	require.Equal(t, []string{"winner_id = $1"}, set)
	assert.Nil(t, args[0])

	// without the flag, winner is untouched
	set, _ = buildRoomPatch(models.RoomPatch{WinnerID: &winner})
	assert.Empty(t, set)
}

func TestBuildRoomPatchReadyFlags(t *testing.T) {
	ready := true
	set, args := buildRoomPatch(models.RoomPatch{HostReady: &ready, GuestReady: &ready})
	assert.Equal(t, []string{"host_ready = $1", "guest_ready = $2"}, set)
	assert.Equal(t, []any{true, true}, args)
}
