package engine

import (
	"fmt"
	"time"

	"sleeping-queens-engine/internal/catalog"
)

// applyStartGame deals 5 cards to each seated player, picks a random
// starting seat, and transitions phase waiting -> playing. Only legal once,
// with at least MinPlayers seated, while still in the waiting phase.
func applyStartGame(s *GameState, mv Move, now time.Time, rng shuffler, cfg Config) ([]DrawEvent, error) {
	if s.Phase != PhaseWaiting {
		return nil, fmt.Errorf("%w: game already started", ErrIllegalMove)
	}
	if len(s.Players) < cfg.MinPlayers {
		return nil, fmt.Errorf("%w: need at least %d players", ErrIllegalMove, cfg.MinPlayers)
	}
	queens, deck, err := catalog.BuildInitialDeck(s.ID, false)
	if err != nil {
		return nil, fmt.Errorf("%w: deck build failed: %v", ErrIllegalMove, err)
	}
	s.SleepingQueens = queens
	s.DrawPile = deck
	s.DiscardPile = nil

	var events []DrawEvent
	for i := range s.Players {
		s.Players[i].Hand = nil
		drawn := RefillHand(s, s.Players[i].ID, cfg.HandSize, rng)
		events = append(events, DrawEvent{PlayerID: s.Players[i].ID, Cards: drawn})
	}

	order := make([]int, len(s.Players))
	for i := range order {
		order[i] = i
	}
	rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	s.CurrentPlayerIndex = order[0]
	s.Phase = PhasePlaying
	return events, nil
}

// applyStageCards records the current player's intention signal; staged
// cards remain in hand until the actual play move commits, and never
// advance the turn.
func applyStageCards(s *GameState, mv Move, now time.Time, rng shuffler, cfg Config) ([]DrawEvent, error) {
	p := s.PlayerByID(mv.PlayerID)
	if p == nil {
		return nil, fmt.Errorf("%w: unknown player", ErrIllegalMove)
	}
	staged := make([]catalog.Card, 0, len(mv.Cards))
	for _, cardID := range mv.Cards {
		idx := s.FindCardInHand(mv.PlayerID, cardID)
		if idx < 0 {
			return nil, fmt.Errorf("%w: staged card not in hand", ErrIllegalMove)
		}
		staged = append(staged, p.Hand[idx])
	}
	if s.StagedCards == nil {
		s.StagedCards = map[string][]catalog.Card{}
	}
	s.StagedCards[mv.PlayerID] = staged
	return nil, nil
}

// applyClearStaged lets any player withdraw their own staged-card signal.
func applyClearStaged(s *GameState, mv Move, now time.Time, rng shuffler, cfg Config) ([]DrawEvent, error) {
	if s.PlayerByID(mv.PlayerID) == nil {
		return nil, fmt.Errorf("%w: unknown player", ErrIllegalMove)
	}
	if s.StagedCards != nil {
		delete(s.StagedCards, mv.PlayerID)
	}
	return nil, nil
}
