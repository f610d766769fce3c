// Package pipeline implements the single entry point every move, whether
// submitted by a client or synthesized by the defense-window scheduler, must
// pass through: dedupe, load, authorize, apply, win-check, invariant-check,
// persist, project.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sleeping-queens-engine/internal/catalog"
	"sleeping-queens-engine/internal/engine"
	"sleeping-queens-engine/internal/store"
)

// Shuffler is the randomness source the pipeline threads through to the
// engine. Production wiring passes catalog.SecureShuffler{}; tests pass a
// seeded *math/rand.Rand for reproducibility.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Result is everything a caller needs after a move commits: the new full
// (unprojected) state plus any cards privately drawn, keyed by the player
// who drew them.
type Result struct {
	State  *engine.GameState
	Draws  []engine.DrawEvent
}

// Pipeline ties a Store to the engine's pure rule functions. One Pipeline is
// shared across every game; per-game serialization is the caller's job (see
// internal/runtime), since Store.CompareAndSwap alone only prevents a lost
// write, not a wasted round-trip under contention.
type Pipeline struct {
	Store  store.Store
	Rng    Shuffler
	Config engine.Config
	Now    func() time.Time
}

// New builds a Pipeline with the given store and shuffler, defaulting
// Config to engine.DefaultConfig() and Now to time.Now.
func New(st store.Store, rng Shuffler) *Pipeline {
	return &Pipeline{
		Store:  st,
		Rng:    rng,
		Config: engine.DefaultConfig(),
		Now:    time.Now,
	}
}

// Submit runs mv through the full pipeline against gameID, retrying the
// load-apply-CAS cycle up to Config.CASRetries times on a version conflict.
func (p *Pipeline) Submit(ctx context.Context, gameID string, mv engine.Move) (*Result, error) {
	if mv.GameID == "" {
		mv.GameID = gameID
	}

	seen, err := p.Store.HasMove(ctx, gameID, mv.ID)
	if err != nil {
		return nil, fmt.Errorf("dedupe check: %w", err)
	}
	if seen {
		// Already committed: re-load current state and report it without
		// re-applying, so a client retry after a dropped response is a no-op.
		s, err := p.Store.Load(ctx, gameID)
		if err != nil {
			return nil, err
		}
		return &Result{State: s}, nil
	}

	deadline := p.Now().Add(p.Config.MoveDeadline)
	var lastErr error
	for attempt := 0; attempt < p.Config.CASRetries; attempt++ {
		if !p.Now().Before(deadline) {
			return nil, engine.ErrTimeout
		}
		s, err := p.Store.Load(ctx, gameID)
		if errors.Is(err, store.ErrNotFound) {
			return nil, engine.ErrGameNotFound
		}
		if err != nil {
			return nil, err
		}
		if s.Phase == engine.PhaseEnded {
			return nil, engine.ErrGameEnded
		}

		if !engine.MayAct(s, mv.PlayerID, mv.Kind) {
			return nil, engine.ErrNotYourTurn
		}

		now := p.Now()
		expectedVersion := s.Version
		draws, err := engine.Apply(s, mv, now, p.Rng, p.Config)
		if err != nil {
			return nil, err
		}
		engine.CheckWin(s)
		if err := engine.CheckInvariants(s, catalog.UniverseSize); err != nil {
			// A bug, not a client error: the attempted commit is discarded
			// rather than persisted, so a corrupted state never reaches Store.
			return nil, fmt.Errorf("commit aborted, invariant check failed: %w", err)
		}
		s.LastMoveID = mv.ID
		s.LastAction = &engine.LastAction{
			ActorID:         mv.PlayerID,
			Kind:            string(mv.Kind),
			Message:         describeMove(mv),
			SubmittedAtUnix: now.Unix(),
		}

		if err := p.Store.CompareAndSwap(ctx, s, expectedVersion); err != nil {
			if errors.Is(err, store.ErrConflict) {
				lastErr = engine.ErrStaleVersion
				continue
			}
			return nil, err
		}
		if err := p.Store.AppendMove(ctx, gameID, mv); err != nil {
			return nil, err
		}
		return &Result{State: s, Draws: draws}, nil
	}
	if !p.Now().Before(deadline) {
		return nil, engine.ErrTimeout
	}
	return nil, lastErr
}

// describeMove renders a short human-readable summary of mv for
// GameState.LastAction.Message, the way a spectator feed would narrate it.
func describeMove(mv engine.Move) string {
	switch mv.Kind {
	case engine.MovePlayKing:
		return fmt.Sprintf("%s played a King", mv.PlayerID)
	case engine.MovePlayKnight:
		return fmt.Sprintf("%s played a Knight against %s", mv.PlayerID, mv.TargetPlayerID)
	case engine.MovePlayPotion:
		return fmt.Sprintf("%s played a Potion against %s", mv.PlayerID, mv.TargetPlayerID)
	case engine.MovePlayDragon:
		return fmt.Sprintf("%s played a Dragon", mv.PlayerID)
	case engine.MovePlayWand:
		return fmt.Sprintf("%s played a Wand", mv.PlayerID)
	case engine.MoveAllowKnightAttack:
		return fmt.Sprintf("%s allowed the Knight attack", mv.PlayerID)
	case engine.MoveAllowPotionAttack:
		return fmt.Sprintf("%s allowed the Potion attack", mv.PlayerID)
	case engine.MovePlayJester:
		return fmt.Sprintf("%s played a Jester", mv.PlayerID)
	case engine.MoveSelectQueenForJester:
		return fmt.Sprintf("%s chose a queen", mv.PlayerID)
	case engine.MovePlayMathEquation:
		return fmt.Sprintf("%s played a math equation", mv.PlayerID)
	case engine.MoveDiscardSingle:
		return fmt.Sprintf("%s discarded a card", mv.PlayerID)
	case engine.MoveDiscardPair:
		return fmt.Sprintf("%s discarded a matching pair", mv.PlayerID)
	case engine.MoveStageCards:
		return fmt.Sprintf("%s staged cards", mv.PlayerID)
	case engine.MoveClearStaged:
		return fmt.Sprintf("%s cleared their staged cards", mv.PlayerID)
	case engine.MoveRoseQueenBonus:
		return fmt.Sprintf("%s claimed the Rose Queen bonus", mv.PlayerID)
	case engine.MoveStartGame:
		return fmt.Sprintf("%s started the game", mv.PlayerID)
	default:
		return fmt.Sprintf("%s played %s", mv.PlayerID, mv.Kind)
	}
}

// CreateGame seeds a brand-new waiting-phase game row with no players yet;
// callers seat players with SeatPlayers before submitting StartGame.
func (p *Pipeline) CreateGame(ctx context.Context, gameID, roomCode string) (*engine.GameState, error) {
	s := &engine.GameState{
		ID:       gameID,
		RoomCode: roomCode,
		Phase:    engine.PhaseWaiting,
		Version:  0,
	}
	if err := p.Store.Create(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// SeatPlayers overwrites the waiting-phase player roster for gameID with
// players, in order. It is lobby bookkeeping, not a move: lobby and
// matchmaking are treated as an external collaborator to the engine, so
// seating happens outside the move pipeline and only StartGame itself goes
// through Apply.
func (p *Pipeline) SeatPlayers(ctx context.Context, gameID string, players []engine.Player) (*engine.GameState, error) {
	s, err := p.Store.Load(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if s.Phase != engine.PhaseWaiting {
		return nil, fmt.Errorf("%w: game already started", engine.ErrIllegalMove)
	}
	expectedVersion := s.Version
	s.Players = players
	if err := p.Store.CompareAndSwap(ctx, s, expectedVersion); err != nil {
		return nil, err
	}
	return s, nil
}
