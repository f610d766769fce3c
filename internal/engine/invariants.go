package engine

import "fmt"

// CheckInvariants re-verifies the structural invariants that must hold after
// every committed move: card conservation, hand cap, at-most-one pending
// interaction, Cat/Dog queen exclusion, and phase/winner consistency. It
// runs once per commit, after Apply and CheckWin; a violation is a bug, not
// a client error, so the pipeline discards the attempted commit and returns
// the error rather than surfacing it as illegal-move. The game is not
// frozen: the last committed state stays in place and later moves are
// still accepted against it.
func CheckInvariants(s *GameState, universeSize int) error {
	if err := checkCardConservation(s, universeSize); err != nil {
		return err
	}
	if err := checkHandCap(s); err != nil {
		return err
	}
	if err := checkAtMostOnePending(s); err != nil {
		return err
	}
	if err := checkQueenExclusion(s); err != nil {
		return err
	}
	if err := checkPhaseWinnerConsistency(s); err != nil {
		return err
	}
	if s.CurrentPlayerIndex < 0 || (len(s.Players) > 0 && s.CurrentPlayerIndex >= len(s.Players)) {
		return fmt.Errorf("%w: currentPlayerIndex %d out of range for %d players", ErrInvariant, s.CurrentPlayerIndex, len(s.Players))
	}
	return nil
}

func checkCardConservation(s *GameState, universeSize int) error {
	seen := map[string]int{}
	add := func(id string) { seen[id]++ }
	for _, p := range s.Players {
		for _, c := range p.Hand {
			add(c.ID)
		}
		for _, c := range p.Queens {
			add(c.ID)
		}
	}
	for _, c := range s.SleepingQueens {
		add(c.ID)
	}
	for _, c := range s.DrawPile {
		add(c.ID)
	}
	for _, c := range s.DiscardPile {
		add(c.ID)
	}
	// StagedCards holds copies of cards that stay in their owner's hand, so
	// they are already counted via Hand and are not a location of their own.
	if s.PendingKnightAttack != nil {
		// The targeted queen is still counted via the target's Queens slice;
		// nothing additional lives solely in the pending record.
	}
	// JesterReveal.RevealedCard is a copy of the number card applyPlayJester
	// puts on the discard pile, so it is already counted there.
	total := 0
	dup := 0
	for _, n := range seen {
		total++
		if n > 1 {
			dup++
		}
	}
	if dup > 0 {
		return fmt.Errorf("%w: %d card id(s) appear in more than one location", ErrInvariant, dup)
	}
	if universeSize > 0 && total != universeSize {
		return fmt.Errorf("%w: card universe size mismatch: have %d, want %d", ErrInvariant, total, universeSize)
	}
	return nil
}

func checkHandCap(s *GameState) error {
	for _, p := range s.Players {
		if len(p.Hand) > 5 {
			return fmt.Errorf("%w: player %s hand exceeds 5 cards", ErrInvariant, p.ID)
		}
	}
	return nil
}

func checkAtMostOnePending(s *GameState) error {
	n := 0
	if s.PendingKnightAttack != nil {
		n++
	}
	if s.PendingPotionAttack != nil {
		n++
	}
	if s.JesterReveal != nil && s.JesterReveal.AwaitingQueenSelection {
		n++
	}
	if s.RoseQueenBonus != nil && s.RoseQueenBonus.Pending {
		n++
	}
	if n > 1 {
		return fmt.Errorf("%w: more than one pending interaction active", ErrInvariant)
	}
	return nil
}

func checkQueenExclusion(s *GameState) error {
	for _, p := range s.Players {
		if p.HasQueen("queen-cat") && p.HasQueen("queen-dog") {
			return fmt.Errorf("%w: player %s owns both Cat and Dog queens", ErrInvariant, p.ID)
		}
	}
	return nil
}

func checkPhaseWinnerConsistency(s *GameState) error {
	if (s.Phase == PhaseEnded) != (s.WinnerID != "") {
		return fmt.Errorf("%w: phase=ended must hold iff winnerId is set", ErrInvariant)
	}
	return nil
}
