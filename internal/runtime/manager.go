// Package runtime holds the in-process supervisor for live games: a
// per-game single-writer lock around the pipeline, and the defense-window
// scheduler that resolves a pending Knight/Potion attack once its deadline
// passes without a defense.
package runtime

import (
	"context"
	"sync"
	"time"

	"sleeping-queens-engine/internal/engine"
	"sleeping-queens-engine/internal/pipeline"
)

// GameManager serializes move submission per game: each entry in games owns
// a mutex so two concurrent submissions for the same game block on each
// other instead of racing the pipeline's load-apply-CAS cycle, enforcing a
// single writer per game. Different games proceed fully in parallel.
type GameManager struct {
	pipeline *pipeline.Pipeline
	sched    *Scheduler

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewGameManager wires a GameManager around p, starting its defense-window
// scheduler.
func NewGameManager(p *pipeline.Pipeline) *GameManager {
	m := &GameManager{
		pipeline: p,
		locks:    map[string]*sync.Mutex{},
	}
	m.sched = NewScheduler(p)
	return m
}

func (m *GameManager) lockFor(gameID string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.locks[gameID]
	if !ok {
		l = &sync.Mutex{}
		m.locks[gameID] = l
	}
	return l
}

// Submit runs mv for gameID under that game's single-writer lock, then
// re-arms the defense-window timer if the commit opened (or closed) a
// pending Knight/Potion attack.
func (m *GameManager) Submit(ctx context.Context, gameID string, mv engine.Move) (*pipeline.Result, error) {
	l := m.lockFor(gameID)
	l.Lock()
	defer l.Unlock()

	res, err := m.pipeline.Submit(ctx, gameID, mv)
	if err != nil {
		return nil, err
	}
	m.sched.Rearm(gameID, res.State)
	return res, nil
}

// CreateGame delegates to the underlying pipeline.
func (m *GameManager) CreateGame(ctx context.Context, gameID, roomCode string) (*engine.GameState, error) {
	return m.pipeline.CreateGame(ctx, gameID, roomCode)
}

// Load reads gameID's current state straight from the store. It does not
// take the per-game lock: a read racing a concurrent Submit just sees either
// the state before or after that commit, never a torn write, since the store
// itself only ever exposes whole versions.
func (m *GameManager) Load(ctx context.Context, gameID string) (*engine.GameState, error) {
	return m.pipeline.Store.Load(ctx, gameID)
}

// SeatPlayers delegates to the underlying pipeline, under gameID's
// single-writer lock so it can never race a concurrent StartGame submission.
func (m *GameManager) SeatPlayers(ctx context.Context, gameID string, players []engine.Player) (*engine.GameState, error) {
	l := m.lockFor(gameID)
	l.Lock()
	defer l.Unlock()
	return m.pipeline.SeatPlayers(ctx, gameID, players)
}

// Forget drops gameID's lock and any armed timer, once a game has ended and
// its room has emptied. Safe to call even if gameID was never tracked.
func (m *GameManager) Forget(gameID string) {
	m.mu.Lock()
	delete(m.locks, gameID)
	m.mu.Unlock()
	m.sched.Cancel(gameID)
}

// Now is exposed so callers building deadlines elsewhere stay consistent
// with the pipeline's clock.
func (m *GameManager) Now() time.Time { return m.pipeline.Now() }
