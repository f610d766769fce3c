package engine

import "sleeping-queens-engine/internal/catalog"

// DrawOne pops the top of the draw pile. If the draw pile is empty it
// reshuffles the discard pile into the draw pile first, excluding the top
// discarded card, which stays behind as the face-up discard marker, and
// tries again. If both piles are empty it returns ok=false.
func DrawOne(s *GameState, rng shuffler) (card catalog.Card, ok bool) {
	if len(s.DrawPile) == 0 {
		if !reshuffleDiscardIntoDraw(s, rng) {
			return catalog.Card{}, false
		}
	}
	if len(s.DrawPile) == 0 {
		return catalog.Card{}, false
	}
	card = s.DrawPile[0]
	s.DrawPile = s.DrawPile[1:]
	return card, true
}

// shuffler is the minimal interface DrawOne needs to reshuffle the discard
// pile; it is satisfied by *mathrand.Rand (deterministic) and by
// catalog.SecureShuffler (production). Kept as an interface so
// engine tests can supply a fixed, inspectable order.
type shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

func reshuffleDiscardIntoDraw(s *GameState, rng shuffler) bool {
	if len(s.DiscardPile) <= 1 {
		// Nothing to reshuffle beyond the face-up marker card (if any).
		return false
	}
	marker := s.DiscardPile[len(s.DiscardPile)-1]
	toShuffle := append([]catalog.Card(nil), s.DiscardPile[:len(s.DiscardPile)-1]...)
	rng.Shuffle(len(toShuffle), func(i, j int) { toShuffle[i], toShuffle[j] = toShuffle[j], toShuffle[i] })
	s.DrawPile = toShuffle
	s.DiscardPile = []catalog.Card{marker}
	return true
}

// RefillHand draws until playerID's hand reaches HandSize (5), stopping early
// if the deck is jointly drained (draw+discard both empty). It returns the
// cards actually drawn, which the move pipeline surfaces as a private event
// to playerID only, opponents must never see another player's drawn cards.
func RefillHand(s *GameState, playerID string, handSize int, rng shuffler) []catalog.Card {
	p := s.PlayerByID(playerID)
	if p == nil {
		return nil
	}
	var drawn []catalog.Card
	for len(p.Hand) < handSize {
		c, ok := DrawOne(s, rng)
		if !ok {
			break
		}
		p.Hand = append(p.Hand, c)
		drawn = append(drawn, c)
	}
	return drawn
}
