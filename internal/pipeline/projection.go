package pipeline

import (
	"sleeping-queens-engine/internal/catalog"
	"sleeping-queens-engine/internal/engine"
)

// PublicPlayer mirrors engine.Player but replaces hand contents with a bare
// count, so the broadcast projection never leaks another player's cards.
type PublicPlayer struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Position  int             `json:"position"`
	HandCount int             `json:"handCount"`
	Queens    []PublicCard    `json:"queens"`
	Connected bool            `json:"connected"`
	Score     int             `json:"score"`
}

// PublicCard is engine card data safe to broadcast, identical to
// catalog.Card today, but kept distinct so projection shape changes never
// ripple back into the engine's internal model.
type PublicCard struct {
	ID     string `json:"id"`
	Kind   string `json:"kind"`
	Name   string `json:"name,omitempty"`
	Value  int    `json:"value,omitempty"`
	Points int    `json:"points,omitempty"`
}

// PublicState is the broadcast projection: every field of GameState except
// LastMoveID, every player's hand contents and drawPile's face-down order;
// hands and drawPile become bare counts.
type PublicState struct {
	ID                 string         `json:"id"`
	RoomCode           string         `json:"roomCode"`
	Players            []PublicPlayer `json:"players"`
	CurrentPlayerIndex int            `json:"currentPlayerIndex"`
	SleepingQueens     []PublicCard   `json:"sleepingQueens"`
	DrawCount          int            `json:"drawCount"`
	DiscardPile        []PublicCard   `json:"discardPile"`
	Phase              string         `json:"phase"`
	WinnerID           string         `json:"winnerId,omitempty"`
	Version            int            `json:"version"`

	PendingKnightAttack *engine.PendingAttack  `json:"pendingKnightAttack,omitempty"`
	PendingPotionAttack *engine.PendingAttack  `json:"pendingPotionAttack,omitempty"`
	JesterReveal        *engine.JesterReveal   `json:"jesterReveal,omitempty"`
	RoseQueenBonus      *engine.RoseQueenBonus `json:"roseQueenBonus,omitempty"`
	LastAction          *engine.LastAction     `json:"lastAction,omitempty"`

	// StagedCards mirrors GameState.StagedCards by identity, not just count:
	// a staged card is a visible intent signal to the table, not a secret
	// the way the rest of a player's hand is.
	StagedCards map[string][]PublicCard `json:"stagedCards,omitempty"`
}

// PrivateEvent is pushed to exactly one player whenever they drew cards
// during the just-committed move.
type PrivateEvent struct {
	GameID     string         `json:"gameId"`
	Version    int            `json:"version"`
	Recipient  string         `json:"recipient"`
	DrawnCards []PublicCard   `json:"drawnCards"`
}

// Project builds the public broadcast projection for s. The sleeping
// queens' identities stay visible: face-down rendering is a UI concern,
// not something the engine hides.
func Project(s *engine.GameState) PublicState {
	players := make([]PublicPlayer, 0, len(s.Players))
	for _, p := range s.Players {
		players = append(players, PublicPlayer{
			ID:        p.ID,
			Name:      p.Name,
			Position:  p.Position,
			HandCount: len(p.Hand),
			Queens:    cardsToPublicSlice(p.Queens),
			Connected: p.Connected,
			Score:     engine.ScoreOf(p),
		})
	}
	var staged map[string][]PublicCard
	if len(s.StagedCards) > 0 {
		staged = make(map[string][]PublicCard, len(s.StagedCards))
		for playerID, cards := range s.StagedCards {
			staged[playerID] = cardsToPublicSlice(cards)
		}
	}
	return PublicState{
		ID:                  s.ID,
		RoomCode:            s.RoomCode,
		Players:             players,
		CurrentPlayerIndex:  s.CurrentPlayerIndex,
		SleepingQueens:      cardsToPublicSlice(s.SleepingQueens),
		DrawCount:           len(s.DrawPile),
		DiscardPile:         cardsToPublicSlice(s.DiscardPile),
		Phase:               string(s.Phase),
		WinnerID:            s.WinnerID,
		Version:             s.Version,
		PendingKnightAttack: s.PendingKnightAttack,
		PendingPotionAttack: s.PendingPotionAttack,
		JesterReveal:        s.JesterReveal,
		RoseQueenBonus:      s.RoseQueenBonus,
		LastAction:          s.LastAction,
		StagedCards:         staged,
	}
}

// PrivateEventsFor turns the draw events produced by a commit into the wire
// private-event shape, scoped to gameID/version.
func PrivateEventsFor(gameID string, version int, draws []engine.DrawEvent) []PrivateEvent {
	out := make([]PrivateEvent, 0, len(draws))
	for _, d := range draws {
		out = append(out, PrivateEvent{
			GameID:     gameID,
			Version:    version,
			Recipient:  d.PlayerID,
			DrawnCards: cardsToPublicSlice(d.Cards),
		})
	}
	return out
}

func cardsToPublicSlice(cards []catalog.Card) []PublicCard {
	out := make([]PublicCard, 0, len(cards))
	for _, c := range cards {
		out = append(out, PublicCard{
			ID:     c.ID,
			Kind:   string(c.Kind),
			Name:   c.Name,
			Value:  c.Value,
			Points: c.Points,
		})
	}
	return out
}
