package engine

import "sleeping-queens-engine/internal/catalog"

// Equation is the set of card IDs a PlayMathEquation move claims sum
// correctly, plus the claimed sum (used only to pick a human-readable
// message; validity is recomputed server-side by ValidEquation).
type Equation struct {
	CardIDs []string `json:"cardIds"`
	Sum     int      `json:"sum"`
}

// Move is the ingress envelope a client submits. Cards/TargetCardID/
// TargetPlayerID/Equation are populated according to Kind; unused fields are
// simply left zero.
type Move struct {
	ID             string    `json:"id"`
	GameID         string    `json:"gameId"`
	PlayerID       string    `json:"playerId"`
	Kind           MoveKind  `json:"kind"`
	Cards          []string  `json:"cards,omitempty"`
	TargetCardID   string    `json:"targetCardId,omitempty"`
	TargetPlayerID string    `json:"targetPlayerId,omitempty"`
	Equation       *Equation `json:"equation,omitempty"`
	SubmittedAt    int64     `json:"submittedAt"`
}

// DrawEvent is emitted whenever a move draws cards for a player; the move
// pipeline turns these into a private per-player projection and never
// includes them in the public broadcast.
type DrawEvent struct {
	PlayerID string         `json:"playerId"`
	Cards    []catalog.Card `json:"cards"`
}
