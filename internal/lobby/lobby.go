// Package lobby seats 2-5 players into a room before a game starts. It is
// intentionally separate from internal/engine: a lobby has no rules engine
// of its own, just a roster and a room code, until StartGame hands off to
// the pipeline.
package lobby

import (
	"errors"
	"fmt"
	"sync"
)

var (
	ErrLobbyNotFound = errors.New("lobby-not-found")
	ErrLobbyFull     = errors.New("lobby-full")
	ErrAlreadySeated = errors.New("already-seated")
	ErrNotHost       = errors.New("not-host")
	ErrTooFewPlayers = errors.New("too-few-players")
)

// Seat is one claimed spot at the table, before the game's Player records
// exist.
type Seat struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
}

// Lobby is a room waiting to become a game. MaxPlayers defaults to 5 and
// MinPlayers to 2 (engine.DefaultConfig's bounds) but can be narrowed by the
// host at creation time.
type Lobby struct {
	ID         string `json:"id"`
	RoomCode   string `json:"roomCode"`
	HostID     string `json:"hostId"`
	MaxPlayers int    `json:"maxPlayers"`
	MinPlayers int    `json:"minPlayers"`
	Status     string `json:"status"` // waiting|started
	Seats      []Seat `json:"seats"`
}

// Registry tracks every open lobby, keyed by ID and by room code for
// join-by-code.
type Registry struct {
	mu        sync.Mutex
	byID      map[string]*Lobby
	byRoomCode map[string]string
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:       map[string]*Lobby{},
		byRoomCode: map[string]string{},
	}
}

// Create opens a new lobby hosted by hostID/hostName, seating the host
// immediately.
func (r *Registry) Create(id, roomCode, hostID, hostName string, minPlayers, maxPlayers int) *Lobby {
	if minPlayers <= 0 {
		minPlayers = 2
	}
	if maxPlayers <= 0 || maxPlayers > 5 {
		maxPlayers = 5
	}
	l := &Lobby{
		ID:         id,
		RoomCode:   roomCode,
		HostID:     hostID,
		MaxPlayers: maxPlayers,
		MinPlayers: minPlayers,
		Status:     "waiting",
		Seats:      []Seat{{PlayerID: hostID, Name: hostName}},
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[id] = l
	r.byRoomCode[roomCode] = id
	return l
}

// Get returns the lobby by ID, or ErrLobbyNotFound.
func (r *Registry) Get(id string) (*Lobby, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.byID[id]
	if !ok {
		return nil, ErrLobbyNotFound
	}
	return l, nil
}

// GetByRoomCode resolves a room code to its lobby.
func (r *Registry) GetByRoomCode(roomCode string) (*Lobby, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byRoomCode[roomCode]
	if !ok {
		return nil, ErrLobbyNotFound
	}
	return r.byID[id], nil
}

// Join seats playerID/name into lobbyID, failing if the lobby is full,
// already started, or the player already holds a seat.
func (r *Registry) Join(lobbyID, playerID, name string) (*Lobby, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.byID[lobbyID]
	if !ok {
		return nil, ErrLobbyNotFound
	}
	if l.Status != "waiting" {
		return nil, fmt.Errorf("lobby already started")
	}
	for _, s := range l.Seats {
		if s.PlayerID == playerID {
			return nil, ErrAlreadySeated
		}
	}
	if len(l.Seats) >= l.MaxPlayers {
		return nil, ErrLobbyFull
	}
	l.Seats = append(l.Seats, Seat{PlayerID: playerID, Name: name})
	return l, nil
}

// Leave removes playerID's seat, if any. The host leaving does not
// dissolve the lobby; the next-seated player simply plays on under the old
// host's room code.
func (r *Registry) Leave(lobbyID, playerID string) (*Lobby, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.byID[lobbyID]
	if !ok {
		return nil, ErrLobbyNotFound
	}
	for i, s := range l.Seats {
		if s.PlayerID == playerID {
			l.Seats = append(l.Seats[:i:i], l.Seats[i+1:]...)
			break
		}
	}
	return l, nil
}

// MarkStarted flips the lobby to started; the start handler calls it before
// seating players and submitting StartGame to the pipeline. Returns ErrTooFewPlayers if fewer than
// MinPlayers are seated, and ErrNotHost if requesterID isn't the host.
func (r *Registry) MarkStarted(lobbyID, requesterID string) (*Lobby, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.byID[lobbyID]
	if !ok {
		return nil, ErrLobbyNotFound
	}
	if l.HostID != requesterID {
		return nil, ErrNotHost
	}
	if len(l.Seats) < l.MinPlayers {
		return nil, ErrTooFewPlayers
	}
	l.Status = "started"
	return l, nil
}
