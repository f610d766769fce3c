// Package store defines the versioned, optimistic-concurrency persistence
// contract the move pipeline commits through, plus an in-memory adapter for
// tests and a sqlite-backed adapter for production.
package store

import (
	"context"
	"errors"

	"sleeping-queens-engine/internal/engine"
)

// ErrConflict is returned by CompareAndSwap when the stored version no
// longer matches expectedVersion: another writer committed first.
var ErrConflict = errors.New("state-conflict")

// ErrNotFound is returned by Load when gameID has no stored row.
var ErrNotFound = errors.New("game-not-found")

// Store is the durable half of a game: one row per game, versioned so
// concurrent writers can detect and retry lost races instead of silently
// clobbering each other. The move pipeline (internal/pipeline) is the only
// code that writes through it.
type Store interface {
	// Load fetches the current state for gameID. Returns ErrNotFound if
	// gameID has never been created.
	Load(ctx context.Context, gameID string) (*engine.GameState, error)

	// Create inserts the initial row for a brand-new game at version 0.
	Create(ctx context.Context, s *engine.GameState) error

	// CompareAndSwap persists s only if the stored version still equals
	// expectedVersion, then increments it. Returns ErrConflict on mismatch,
	// ErrNotFound if the row is gone entirely.
	CompareAndSwap(ctx context.Context, s *engine.GameState, expectedVersion int) error

	// AppendMove records mv in the durable move log for gameID, for replay
	// and audit. It is best-effort relative to CompareAndSwap: a move log
	// entry without a matching state commit is an audit-trail artifact, not a
	// correctness problem, since GameState itself is the source of truth.
	AppendMove(ctx context.Context, gameID string, mv engine.Move) error

	// HasMove reports whether moveID was already recorded for gameID, used
	// by the move pipeline's dedupe step so a client retry after a dropped
	// response never double-applies.
	HasMove(ctx context.Context, gameID, moveID string) (bool, error)
}
