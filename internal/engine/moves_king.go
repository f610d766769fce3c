package engine

import (
	"fmt"
	"time"

	"sleeping-queens-engine/internal/catalog"
)

// applyPlayKing discards a King and wakes the targeted sleeping queen. Waking
// the Rose Queen opens a RoseQueenBonus instead of ending the turn. Waking a
// queen that conflicts with one the player already owns (Cat+Dog, invariant
// 5) sends the newly chosen queen straight back to sleep, the King is still
// spent, but no queen changes hands.
func applyPlayKing(s *GameState, mv Move, now time.Time, rng shuffler, cfg Config) ([]DrawEvent, error) {
	if s.HasPendingRecord() {
		return nil, fmt.Errorf("%w: a pending interaction is active", ErrIllegalMove)
	}
	p := s.PlayerByID(mv.PlayerID)
	if p == nil {
		return nil, fmt.Errorf("%w: unknown player", ErrIllegalMove)
	}
	if len(mv.Cards) != 1 {
		return nil, fmt.Errorf("%w: PlayKing requires exactly one card", ErrIllegalMove)
	}
	kingIdx := s.FindCardInHand(mv.PlayerID, mv.Cards[0])
	if kingIdx < 0 || p.Hand[kingIdx].Kind != catalog.KindKing {
		return nil, fmt.Errorf("%w: card is not a King in hand", ErrIllegalMove)
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

	king, _ := removeCardFromHand(p, mv.Cards[0])
	s.DiscardPile = append(s.DiscardPile, king)

	queen, _ := removeQueenFromSleeping(s, mv.TargetCardID)

	conflict := (queen.ID == catalog.CatQueenID && p.HasQueen(catalog.DogQueenID)) ||
		(queen.ID == catalog.DogQueenID && p.HasQueen(catalog.CatQueenID))
	if conflict {
		s.SleepingQueens = append(s.SleepingQueens, queen)
		drawn := RefillHand(s, p.ID, cfg.HandSize, rng)
		AdvanceTurn(s)
		return wrapDraw(p.ID, drawn), nil
	}

	p.Queens = append(p.Queens, queen)

	if queen.ID == catalog.RoseQueenID {
		s.RoseQueenBonus = &RoseQueenBonus{PlayerID: p.ID, Pending: true}
		return nil, nil
	}

	drawn := RefillHand(s, p.ID, cfg.HandSize, rng)
	AdvanceTurn(s)
	return wrapDraw(p.ID, drawn), nil
}

// applyRoseQueenBonus wakes one more sleeping queen for the player holding a
// pending Rose Queen bonus, without spending a King. Discarding instead
// (DiscardSingle, while the bonus is pending) cancels the bonus via its own
// handler, MayAct is what routes that case away from here.
func applyRoseQueenBonus(s *GameState, mv Move, now time.Time, rng shuffler, cfg Config) ([]DrawEvent, error) {
	if s.RoseQueenBonus == nil || !s.RoseQueenBonus.Pending || s.RoseQueenBonus.PlayerID != mv.PlayerID {
		return nil, fmt.Errorf("%w: no Rose Queen bonus pending for this player", ErrIllegalMove)
	}
	p := s.PlayerByID(mv.PlayerID)
	if p == nil {
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
	conflict := (queen.ID == catalog.CatQueenID && p.HasQueen(catalog.DogQueenID)) ||
		(queen.ID == catalog.DogQueenID && p.HasQueen(catalog.CatQueenID))
	if conflict {
		s.SleepingQueens = append(s.SleepingQueens, queen)
	} else {
		p.Queens = append(p.Queens, queen)
	}

	s.RoseQueenBonus = nil
	drawn := RefillHand(s, p.ID, cfg.HandSize, rng)
	AdvanceTurn(s)
	return wrapDraw(p.ID, drawn), nil
}

func wrapDraw(playerID string, cards []catalog.Card) []DrawEvent {
	if len(cards) == 0 {
		return nil
	}
	return []DrawEvent{{PlayerID: playerID, Cards: cards}}
}
