package engine

import "errors"

// Sentinel errors surfaced to clients via the move pipeline. Kinds map
// 1:1 onto the error-kind taxonomy in the engine's external contract:
// not-your-turn, illegal-move, stale-version, timeout, game-not-found,
// game-ended. Validators and appliers wrap these with fmt.Errorf("...: %w")
// when a human sub-reason is useful; callers match with errors.Is.
var (
	ErrNotYourTurn     = errors.New("not-your-turn")
	ErrIllegalMove     = errors.New("illegal-move")
	ErrStaleVersion    = errors.New("stale-version")
	ErrTimeout         = errors.New("timeout")
	ErrGameNotFound    = errors.New("game-not-found")
	ErrGameEnded       = errors.New("game-ended")
	ErrUnknownMoveKind = errors.New("unknown move kind")
	ErrInvariant       = errors.New("invariant violation")
)
