package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"sleeping-queens-engine/internal/engine"
)

// SQLiteStore persists games in a single table keyed by game ID, using a
// state_version counter for optimistic concurrency (the same CAS-by-WHERE
// pattern as a versioned row update anywhere else in the stack).
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore wraps an already-opened, already-migrated *sql.DB.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Load(ctx context.Context, gameID string) (*engine.GameState, error) {
	var raw string
	var version int
	err := s.db.QueryRowContext(ctx, `SELECT state_json, state_version FROM games WHERE id = ?`, gameID).Scan(&raw, &version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var state engine.GameState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, fmt.Errorf("decode state_json: %w", err)
	}
	state.Version = version
	return &state, nil
}

func (s *SQLiteStore) Create(ctx context.Context, state *engine.GameState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO games(id, state_json, state_version) VALUES (?, ?, 0)`,
		state.ID, string(raw))
	return err
}

func (s *SQLiteStore) CompareAndSwap(ctx context.Context, state *engine.GameState, expectedVersion int) error {
	state.Version = expectedVersion + 1
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE games
		 SET state_json = ?, state_version = state_version + 1, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND state_version = ?`,
		string(raw), state.ID, expectedVersion)
	if err != nil {
		return err
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if ra == 0 {
		// Disambiguate "no rows updated": row missing vs. version already moved on.
		var one int
		if err := s.db.QueryRowContext(ctx, `SELECT 1 FROM games WHERE id = ?`, state.ID).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}
		return ErrConflict
	}
	return nil
}

func (s *SQLiteStore) AppendMove(ctx context.Context, gameID string, mv engine.Move) error {
	raw, err := json.Marshal(mv)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO game_moves(game_id, move_id, player_id, kind, move_json) VALUES (?, ?, ?, ?, ?)`,
		gameID, mv.ID, mv.PlayerID, string(mv.Kind), string(raw))
	return err
}

// HasMove reports whether moveID has already been recorded for gameID, for
// the pipeline's dedupe step.
func (s *SQLiteStore) HasMove(ctx context.Context, gameID, moveID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM game_moves WHERE game_id = ? AND move_id = ?`, gameID, moveID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
