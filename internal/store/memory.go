package store

import (
	"context"
	"encoding/json"
	"sync"

	"sleeping-queens-engine/internal/engine"
)

// MemoryStore is an in-process Store backed by a mutex-guarded map. It
// round-trips every GameState through JSON on both Create and
// CompareAndSwap so callers can never hold a pointer into the store's
// internal copy, the same isolation a real database row gives for free.
type MemoryStore struct {
	mu    sync.Mutex
	rows  map[string][]byte
	moves map[string][]engine.Move
}

// NewMemoryStore returns an empty MemoryStore, ready to use.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rows:  map[string][]byte{},
		moves: map[string][]engine.Move{},
	}
}

func (m *MemoryStore) Load(ctx context.Context, gameID string) (*engine.GameState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.rows[gameID]
	if !ok {
		return nil, ErrNotFound
	}
	var s engine.GameState
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (m *MemoryStore) Create(ctx context.Context, s *engine.GameState) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[s.ID] = raw
	return nil
}

func (m *MemoryStore) CompareAndSwap(ctx context.Context, s *engine.GameState, expectedVersion int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.rows[s.ID]
	if !ok {
		return ErrNotFound
	}
	var cur engine.GameState
	if err := json.Unmarshal(raw, &cur); err != nil {
		return err
	}
	if cur.Version != expectedVersion {
		return ErrConflict
	}
	s.Version = expectedVersion + 1
	next, err := json.Marshal(s)
	if err != nil {
		return err
	}
	m.rows[s.ID] = next
	return nil
}

func (m *MemoryStore) AppendMove(ctx context.Context, gameID string, mv engine.Move) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.moves[gameID] = append(m.moves[gameID], mv)
	return nil
}

// MovesFor returns the recorded move log for gameID, for tests that want to
// assert on the audit trail.
func (m *MemoryStore) MovesFor(gameID string) []engine.Move {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]engine.Move(nil), m.moves[gameID]...)
}

func (m *MemoryStore) HasMove(ctx context.Context, gameID, moveID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, mv := range m.moves[gameID] {
		if mv.ID == moveID {
			return true, nil
		}
	}
	return false, nil
}
