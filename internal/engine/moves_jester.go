package engine

import (
	"fmt"
	"time"

	"sleeping-queens-engine/internal/catalog"
)

// applyPlayJester discards a Jester and reveals the top of the deck. A
// number card counts clockwise from the current player (count=1 lands on
// the current player themselves for value 1) to pick who must choose a
// sleeping queen; an action/power card instead goes face-up into the
// current player's hand and grants them an extra turn.
func applyPlayJester(s *GameState, mv Move, now time.Time, rng shuffler, cfg Config) ([]DrawEvent, error) {
	if s.HasPendingRecord() {
		return nil, fmt.Errorf("%w: a pending interaction is active", ErrIllegalMove)
	}
	p := s.PlayerByID(mv.PlayerID)
	if p == nil {
		return nil, fmt.Errorf("%w: unknown player", ErrIllegalMove)
	}
	if len(mv.Cards) != 1 {
		return nil, fmt.Errorf("%w: PlayJester requires exactly one card", ErrIllegalMove)
	}
	idx := s.FindCardInHand(mv.PlayerID, mv.Cards[0])
	if idx < 0 || p.Hand[idx].Kind != catalog.KindJester {
		return nil, fmt.Errorf("%w: card is not a Jester in hand", ErrIllegalMove)
	}

	jester, _ := removeCardFromHand(p, mv.Cards[0])
	s.DiscardPile = append(s.DiscardPile, jester)

	card, ok := DrawOne(s, rng)
	if !ok {
		// Deck and discard jointly empty: nothing to reveal, turn ends normally.
		drawn := RefillHand(s, p.ID, cfg.HandSize, rng)
		AdvanceTurn(s)
		return wrapDraw(p.ID, drawn), nil
	}

	if card.Kind == catalog.KindNumber {
		s.DiscardPile = append(s.DiscardPile, card)
		n := len(s.Players)
		targetIdx := (s.CurrentPlayerIndex + card.Value - 1) % n
		s.JesterReveal = &JesterReveal{
			OriginalPlayerID:       p.ID,
			RevealedCard:           card,
			TargetPlayerID:         s.Players[targetIdx].ID,
			AwaitingQueenSelection: true,
		}
		return nil, nil
	}

	// Action/power card: revealed face-up into the jester player's hand;
	// they get an extra turn, so the turn does not advance.
	p.Hand = append(p.Hand, card)
	s.JesterReveal = nil
	return nil, nil
}

// applySelectQueenForJester lets the player a Jester reveal landed on
// choose a sleeping queen. The Rose Queen bonus is never granted here, even
// when the reveal landed on the original jester player themselves, since
// the bonus is reserved for queens woken by a King play (see
// applyPlayKing).
func applySelectQueenForJester(s *GameState, mv Move, now time.Time, rng shuffler, cfg Config) ([]DrawEvent, error) {
	jr := s.JesterReveal
	if jr == nil || !jr.AwaitingQueenSelection || jr.TargetPlayerID != mv.PlayerID {
		return nil, fmt.Errorf("%w: no Jester queen selection pending for this player", ErrIllegalMove)
	}
	target := s.PlayerByID(mv.PlayerID)
	if target == nil {
		return nil, fmt.Errorf("%w: unknown player", ErrIllegalMove)
	}
	queenFound := false
	for _, q := range s.SleepingQueens {
		if q.ID == mv.TargetCardID {
			queenFound = true
			break
		}
	}
	if !queenFound {
		return nil, fmt.Errorf("%w: target queen is not asleep", ErrIllegalMove)
	}

	queen, _ := removeQueenFromSleeping(s, mv.TargetCardID)
	conflict := (queen.ID == catalog.CatQueenID && target.HasQueen(catalog.DogQueenID)) ||
		(queen.ID == catalog.DogQueenID && target.HasQueen(catalog.CatQueenID))
	if conflict {
		s.SleepingQueens = append(s.SleepingQueens, queen)
	} else {
		target.Queens = append(target.Queens, queen)
	}

	originalID := jr.OriginalPlayerID
	s.JesterReveal = nil

	drawn := RefillHand(s, originalID, cfg.HandSize, rng)
	AdvanceTurn(s)
	return wrapDraw(originalID, drawn), nil
}
