package engine

import (
	"fmt"
	"time"

	"sleeping-queens-engine/internal/catalog"
)

// applyPlayMathEquation discards every card in a valid addition-only
// equation, a non-empty subset of the selected values summing to one other
// selected value, and refills the hand.
func applyPlayMathEquation(s *GameState, mv Move, now time.Time, rng shuffler, cfg Config) ([]DrawEvent, error) {
	if s.HasPendingRecord() {
		return nil, fmt.Errorf("%w: a pending interaction is active", ErrIllegalMove)
	}
	p := s.PlayerByID(mv.PlayerID)
	if p == nil {
		return nil, fmt.Errorf("%w: unknown player", ErrIllegalMove)
	}
	if mv.Equation == nil || len(mv.Equation.CardIDs) < 3 {
		return nil, fmt.Errorf("%w: math equation requires at least 3 cards", ErrIllegalMove)
	}

	cards := make([]catalog.Card, 0, len(mv.Equation.CardIDs))
	for _, cardID := range mv.Equation.CardIDs {
		idx := s.FindCardInHand(mv.PlayerID, cardID)
		if idx < 0 || p.Hand[idx].Kind != catalog.KindNumber {
			return nil, fmt.Errorf("%w: equation card not a number card in hand", ErrIllegalMove)
		}
		cards = append(cards, p.Hand[idx])
	}

	values := make([]int, len(cards))
	for i, c := range cards {
		values[i] = c.Value
	}
	if !ValidEquation(values) {
		return nil, fmt.Errorf("%w: equation does not sum correctly", ErrIllegalMove)
	}

	for _, c := range cards {
		discarded, _ := removeCardFromHand(p, c.ID)
		s.DiscardPile = append(s.DiscardPile, discarded)
	}

	drawn := RefillHand(s, p.ID, cfg.HandSize, rng)
	AdvanceTurn(s)
	return wrapDraw(p.ID, drawn), nil
}

// applyDiscardSingle discards one card and refills to HandSize. While a
// Rose Queen bonus is pending for this player, MayAct also routes here
// (instead of to RoseQueenBonus) to let them decline the bonus; in that
// case this handler clears the bonus too.
func applyDiscardSingle(s *GameState, mv Move, now time.Time, rng shuffler, cfg Config) ([]DrawEvent, error) {
	p := s.PlayerByID(mv.PlayerID)
	if p == nil {
		return nil, fmt.Errorf("%w: unknown player", ErrIllegalMove)
	}
	if s.PendingKnightAttack != nil || s.PendingPotionAttack != nil || (s.JesterReveal != nil && s.JesterReveal.AwaitingQueenSelection) {
		return nil, fmt.Errorf("%w: a pending interaction is active", ErrIllegalMove)
	}
	if len(mv.Cards) != 1 {
		return nil, fmt.Errorf("%w: DiscardSingle requires exactly one card", ErrIllegalMove)
	}
	idx := s.FindCardInHand(mv.PlayerID, mv.Cards[0])
	if idx < 0 {
		return nil, fmt.Errorf("%w: card not in hand", ErrIllegalMove)
	}

	card, _ := removeCardFromHand(p, mv.Cards[0])
	s.DiscardPile = append(s.DiscardPile, card)

	if s.RoseQueenBonus != nil && s.RoseQueenBonus.Pending && s.RoseQueenBonus.PlayerID == mv.PlayerID {
		s.RoseQueenBonus = nil
	}

	drawn := RefillHand(s, p.ID, cfg.HandSize, rng)
	AdvanceTurn(s)
	return wrapDraw(p.ID, drawn), nil
}

// applyDiscardPair discards exactly two number cards of equal value.
func applyDiscardPair(s *GameState, mv Move, now time.Time, rng shuffler, cfg Config) ([]DrawEvent, error) {
	if s.HasPendingRecord() {
		return nil, fmt.Errorf("%w: a pending interaction is active", ErrIllegalMove)
	}
	p := s.PlayerByID(mv.PlayerID)
	if p == nil {
		return nil, fmt.Errorf("%w: unknown player", ErrIllegalMove)
	}
	if len(mv.Cards) != 2 {
		return nil, fmt.Errorf("%w: DiscardPair requires exactly two cards", ErrIllegalMove)
	}
	var picked []catalog.Card
	for _, cardID := range mv.Cards {
		idx := s.FindCardInHand(mv.PlayerID, cardID)
		if idx < 0 || p.Hand[idx].Kind != catalog.KindNumber {
			return nil, fmt.Errorf("%w: pair card not a number card in hand", ErrIllegalMove)
		}
		picked = append(picked, p.Hand[idx])
	}
	if picked[0].Value != picked[1].Value {
		return nil, fmt.Errorf("%w: pair values must match", ErrIllegalMove)
	}

	for _, c := range picked {
		discarded, _ := removeCardFromHand(p, c.ID)
		s.DiscardPile = append(s.DiscardPile, discarded)
	}

	drawn := RefillHand(s, p.ID, cfg.HandSize, rng)
	AdvanceTurn(s)
	return wrapDraw(p.ID, drawn), nil
}
