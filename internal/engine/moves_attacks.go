package engine

import (
	"fmt"
	"time"

	"sleeping-queens-engine/internal/catalog"
)

func playerHoldsKind(p *Player, kind catalog.Kind) bool {
	for _, c := range p.Hand {
		if c.Kind == kind {
			return true
		}
	}
	return false
}

// applyPlayKnight discards a Knight aimed at another player's queen. If the
// target holds any Dragon, a defense window opens instead of resolving
// immediately, the target may play it within cfg.DefenseWindow.
func applyPlayKnight(s *GameState, mv Move, now time.Time, rng shuffler, cfg Config) ([]DrawEvent, error) {
	if s.HasPendingRecord() {
		return nil, fmt.Errorf("%w: a pending interaction is active", ErrIllegalMove)
	}
	attacker := s.PlayerByID(mv.PlayerID)
	if attacker == nil {
		return nil, fmt.Errorf("%w: unknown player", ErrIllegalMove)
	}
	target := s.PlayerByID(mv.TargetPlayerID)
	if target == nil || target.ID == attacker.ID {
		return nil, fmt.Errorf("%w: target must be another player", ErrIllegalMove)
	}
	if !target.HasQueen(mv.TargetCardID) {
		return nil, fmt.Errorf("%w: target does not own that queen", ErrIllegalMove)
	}
	if len(mv.Cards) != 1 {
		return nil, fmt.Errorf("%w: PlayKnight requires exactly one card", ErrIllegalMove)
	}
	knightIdx := s.FindCardInHand(mv.PlayerID, mv.Cards[0])
	if knightIdx < 0 || attacker.Hand[knightIdx].Kind != catalog.KindKnight {
		return nil, fmt.Errorf("%w: card is not a Knight in hand", ErrIllegalMove)
	}

	knight, _ := removeCardFromHand(attacker, mv.Cards[0])
	s.DiscardPile = append(s.DiscardPile, knight)

	if playerHoldsKind(target, catalog.KindDragon) {
		s.PendingKnightAttack = &PendingAttack{
			AttackerID:       attacker.ID,
			TargetID:         target.ID,
			TargetQueenID:    mv.TargetCardID,
			DeadlineUnixNano: now.Add(cfg.DefenseWindow).UnixNano(),
		}
		return nil, nil
	}

	transferQueen(s, target, attacker, mv.TargetCardID)
	drawn := RefillHand(s, attacker.ID, cfg.HandSize, rng)
	AdvanceTurn(s)
	return wrapDraw(attacker.ID, drawn), nil
}

// applyPlayPotion is PlayKnight's symmetric twin: the defense card is Wand,
// and a resolved steal sends the queen back to sleep rather than to the
// attacker.
func applyPlayPotion(s *GameState, mv Move, now time.Time, rng shuffler, cfg Config) ([]DrawEvent, error) {
	if s.HasPendingRecord() {
		return nil, fmt.Errorf("%w: a pending interaction is active", ErrIllegalMove)
	}
	attacker := s.PlayerByID(mv.PlayerID)
	if attacker == nil {
		return nil, fmt.Errorf("%w: unknown player", ErrIllegalMove)
	}
	target := s.PlayerByID(mv.TargetPlayerID)
	if target == nil || target.ID == attacker.ID {
		return nil, fmt.Errorf("%w: target must be another player", ErrIllegalMove)
	}
	if !target.HasQueen(mv.TargetCardID) {
		return nil, fmt.Errorf("%w: target does not own that queen", ErrIllegalMove)
	}
	if len(mv.Cards) != 1 {
		return nil, fmt.Errorf("%w: PlayPotion requires exactly one card", ErrIllegalMove)
	}
	potionIdx := s.FindCardInHand(mv.PlayerID, mv.Cards[0])
	if potionIdx < 0 || attacker.Hand[potionIdx].Kind != catalog.KindPotion {
		return nil, fmt.Errorf("%w: card is not a Potion in hand", ErrIllegalMove)
	}

	potion, _ := removeCardFromHand(attacker, mv.Cards[0])
	s.DiscardPile = append(s.DiscardPile, potion)

	if playerHoldsKind(target, catalog.KindWand) {
		s.PendingPotionAttack = &PendingAttack{
			AttackerID:       attacker.ID,
			TargetID:         target.ID,
			TargetQueenID:    mv.TargetCardID,
			DeadlineUnixNano: now.Add(cfg.DefenseWindow).UnixNano(),
		}
		return nil, nil
	}

	putQueenToSleep(s, target, mv.TargetCardID)
	drawn := RefillHand(s, attacker.ID, cfg.HandSize, rng)
	AdvanceTurn(s)
	return wrapDraw(attacker.ID, drawn), nil
}

// applyPlayDragon defends against a pending Knight attack: the target
// discards a Dragon, keeps the queen, and the attacker's turn completes
// (refill + advance) as if the Knight had simply failed.
func applyPlayDragon(s *GameState, mv Move, now time.Time, rng shuffler, cfg Config) ([]DrawEvent, error) {
	pa := s.PendingKnightAttack
	if pa == nil || pa.TargetID != mv.PlayerID {
		return nil, fmt.Errorf("%w: no pending Knight attack to defend", ErrIllegalMove)
	}
	target := s.PlayerByID(mv.PlayerID)
	if target == nil {
		return nil, fmt.Errorf("%w: unknown player", ErrIllegalMove)
	}
	if len(mv.Cards) != 1 {
		return nil, fmt.Errorf("%w: PlayDragon requires exactly one card", ErrIllegalMove)
	}
	idx := s.FindCardInHand(mv.PlayerID, mv.Cards[0])
	if idx < 0 || target.Hand[idx].Kind != catalog.KindDragon {
		return nil, fmt.Errorf("%w: card is not a Dragon in hand", ErrIllegalMove)
	}

	dragon, _ := removeCardFromHand(target, mv.Cards[0])
	s.DiscardPile = append(s.DiscardPile, dragon)

	attackerID := pa.AttackerID
	s.PendingKnightAttack = nil

	drawn := RefillHand(s, attackerID, cfg.HandSize, rng)
	AdvanceTurn(s)
	return wrapDraw(attackerID, drawn), nil
}

// applyPlayWand is applyPlayDragon's symmetric twin for a pending Potion
// attack.
func applyPlayWand(s *GameState, mv Move, now time.Time, rng shuffler, cfg Config) ([]DrawEvent, error) {
	pa := s.PendingPotionAttack
	if pa == nil || pa.TargetID != mv.PlayerID {
		return nil, fmt.Errorf("%w: no pending Potion attack to defend", ErrIllegalMove)
	}
	target := s.PlayerByID(mv.PlayerID)
	if target == nil {
		return nil, fmt.Errorf("%w: unknown player", ErrIllegalMove)
	}
	if len(mv.Cards) != 1 {
		return nil, fmt.Errorf("%w: PlayWand requires exactly one card", ErrIllegalMove)
	}
	idx := s.FindCardInHand(mv.PlayerID, mv.Cards[0])
	if idx < 0 || target.Hand[idx].Kind != catalog.KindWand {
		return nil, fmt.Errorf("%w: card is not a Wand in hand", ErrIllegalMove)
	}

	wand, _ := removeCardFromHand(target, mv.Cards[0])
	s.DiscardPile = append(s.DiscardPile, wand)

	attackerID := pa.AttackerID
	s.PendingPotionAttack = nil

	drawn := RefillHand(s, attackerID, cfg.HandSize, rng)
	AdvanceTurn(s)
	return wrapDraw(attackerID, drawn), nil
}

// applyAllowKnightAttack lets the target resolve a pending Knight attack
// immediately instead of waiting out the defense window, used both by a
// target who holds no Dragon and wants to skip ahead, and by the
// defense-window scheduler's synthesized move on deadline expiry.
func applyAllowKnightAttack(s *GameState, mv Move, now time.Time, rng shuffler, cfg Config) ([]DrawEvent, error) {
	pa := s.PendingKnightAttack
	if pa == nil || pa.TargetID != mv.PlayerID {
		return nil, fmt.Errorf("%w: no pending Knight attack to allow", ErrIllegalMove)
	}
	attacker := s.PlayerByID(pa.AttackerID)
	target := s.PlayerByID(pa.TargetID)
	if attacker == nil || target == nil {
		return nil, fmt.Errorf("%w: attacker or target missing", ErrIllegalMove)
	}

	transferQueen(s, target, attacker, pa.TargetQueenID)
	s.PendingKnightAttack = nil

	drawn := RefillHand(s, attacker.ID, cfg.HandSize, rng)
	AdvanceTurn(s)
	return wrapDraw(attacker.ID, drawn), nil
}

// applyAllowPotionAttack is applyAllowKnightAttack's symmetric twin: the
// stolen queen returns to sleep rather than transferring to the attacker.
func applyAllowPotionAttack(s *GameState, mv Move, now time.Time, rng shuffler, cfg Config) ([]DrawEvent, error) {
	pa := s.PendingPotionAttack
	if pa == nil || pa.TargetID != mv.PlayerID {
		return nil, fmt.Errorf("%w: no pending Potion attack to allow", ErrIllegalMove)
	}
	attacker := s.PlayerByID(pa.AttackerID)
	target := s.PlayerByID(pa.TargetID)
	if attacker == nil || target == nil {
		return nil, fmt.Errorf("%w: attacker or target missing", ErrIllegalMove)
	}

	putQueenToSleep(s, target, pa.TargetQueenID)
	s.PendingPotionAttack = nil

	drawn := RefillHand(s, attacker.ID, cfg.HandSize, rng)
	AdvanceTurn(s)
	return wrapDraw(attacker.ID, drawn), nil
}

func transferQueen(s *GameState, from, to *Player, queenID string) {
	for i, q := range from.Queens {
		if q.ID == queenID {
			card := q
			from.Queens = append(from.Queens[:i:i], from.Queens[i+1:]...)
			to.Queens = append(to.Queens, card)
			return
		}
	}
}

func putQueenToSleep(s *GameState, from *Player, queenID string) {
	for i, q := range from.Queens {
		if q.ID == queenID {
			card := q
			from.Queens = append(from.Queens[:i:i], from.Queens[i+1:]...)
			s.SleepingQueens = append(s.SleepingQueens, card)
			return
		}
	}
}
