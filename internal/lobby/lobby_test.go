package lobby

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryCreateSeatsHostImmediately(t *testing.T) {
	r := NewRegistry()
	l := r.Create("lobby-1", "ROOM1", "host-1", "Alice", 2, 5)

	require.Len(t, l.Seats, 1)
	assert.Equal(t, "host-1", l.Seats[0].PlayerID)
	assert.Equal(t, "waiting", l.Status)
}

func TestRegistryCreateClampsPlayerBounds(t *testing.T) {
	r := NewRegistry()
	l := r.Create("lobby-1", "ROOM1", "host-1", "Alice", 0, 0)
	assert.Equal(t, 2, l.MinPlayers)
	assert.Equal(t, 5, l.MaxPlayers)

	l2 := r.Create("lobby-2", "ROOM2", "host-2", "Bob", 3, 99)
	assert.Equal(t, 3, l2.MinPlayers)
	assert.Equal(t, 5, l2.MaxPlayers, "max players never exceeds the 5-seat table limit")
}

func TestRegistryGetByRoomCode(t *testing.T) {
	r := NewRegistry()
	r.Create("lobby-1", "ROOM1", "host-1", "Alice", 2, 5)

	l, err := r.GetByRoomCode("ROOM1")
	require.NoError(t, err)
	assert.Equal(t, "lobby-1", l.ID)

	_, err = r.GetByRoomCode("NOPE")
	assert.ErrorIs(t, err, ErrLobbyNotFound)
}

func TestRegistryJoinSeatsNewPlayer(t *testing.T) {
	r := NewRegistry()
	r.Create("lobby-1", "ROOM1", "host-1", "Alice", 2, 5)

	l, err := r.Join("lobby-1", "p2", "Bob")
	require.NoError(t, err)
	assert.Len(t, l.Seats, 2)
}

func TestRegistryJoinRejectsDuplicateSeat(t *testing.T) {
	r := NewRegistry()
	r.Create("lobby-1", "ROOM1", "host-1", "Alice", 2, 5)

	_, err := r.Join("lobby-1", "host-1", "Alice")
	assert.ErrorIs(t, err, ErrAlreadySeated)
}

func TestRegistryJoinRejectsWhenFull(t *testing.T) {
	r := NewRegistry()
	r.Create("lobby-1", "ROOM1", "host-1", "Alice", 2, 2)
	_, err := r.Join("lobby-1", "p2", "Bob")
	require.NoError(t, err)

	_, err = r.Join("lobby-1", "p3", "Carol")
	assert.ErrorIs(t, err, ErrLobbyFull)
}

func TestRegistryJoinRejectsUnknownLobby(t *testing.T) {
	r := NewRegistry()
	_, err := r.Join("ghost", "p1", "Alice")
	assert.ErrorIs(t, err, ErrLobbyNotFound)
}

func TestRegistryLeaveRemovesSeatButKeepsLobby(t *testing.T) {
	r := NewRegistry()
	r.Create("lobby-1", "ROOM1", "host-1", "Alice", 2, 5)
	r.Join("lobby-1", "p2", "Bob")

	l, err := r.Leave("lobby-1", "host-1")
	require.NoError(t, err)
	require.Len(t, l.Seats, 1)
	assert.Equal(t, "p2", l.Seats[0].PlayerID, "the host leaving does not dissolve the lobby")
}

func TestRegistryMarkStartedRequiresHost(t *testing.T) {
	r := NewRegistry()
	r.Create("lobby-1", "ROOM1", "host-1", "Alice", 2, 5)
	r.Join("lobby-1", "p2", "Bob")

	_, err := r.MarkStarted("lobby-1", "p2")
	assert.ErrorIs(t, err, ErrNotHost)
}

func TestRegistryMarkStartedRequiresMinPlayers(t *testing.T) {
	r := NewRegistry()
	r.Create("lobby-1", "ROOM1", "host-1", "Alice", 2, 5)

	_, err := r.MarkStarted("lobby-1", "host-1")
	assert.ErrorIs(t, err, ErrTooFewPlayers)
}

func TestRegistryMarkStartedSucceeds(t *testing.T) {
	r := NewRegistry()
	r.Create("lobby-1", "ROOM1", "host-1", "Alice", 2, 5)
	r.Join("lobby-1", "p2", "Bob")

	l, err := r.MarkStarted("lobby-1", "host-1")
	require.NoError(t, err)
	assert.Equal(t, "started", l.Status)
}
