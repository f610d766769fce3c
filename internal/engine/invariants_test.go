package engine

import (
	"testing"

	"sleeping-queens-engine/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseInvariantState() *GameState {
	return &GameState{
		Phase: PhasePlaying,
		Players: []Player{
			{ID: "p1", Hand: []catalog.Card{{ID: "c1"}, {ID: "c2"}}},
			{ID: "p2", Hand: []catalog.Card{{ID: "c3"}}},
		},
		DrawPile:    []catalog.Card{{ID: "c4"}},
		DiscardPile: []catalog.Card{{ID: "c5"}},
	}
}

func TestCheckInvariantsPassesOnCleanState(t *testing.T) {
	s := baseInvariantState()
	require.NoError(t, CheckInvariants(s, 5))
}

func TestCheckInvariantsDetectsDuplicateCard(t *testing.T) {
	s := baseInvariantState()
	s.Players[1].Hand = append(s.Players[1].Hand, catalog.Card{ID: "c1"})
	err := CheckInvariants(s, 6)
	assert.ErrorIs(t, err, ErrInvariant)
}

func TestCheckInvariantsDetectsUniverseMismatch(t *testing.T) {
	s := baseInvariantState()
	err := CheckInvariants(s, 99)
	assert.ErrorIs(t, err, ErrInvariant)
}

func TestCheckInvariantsDetectsHandCapViolation(t *testing.T) {
	s := baseInvariantState()
	for i := 0; i < 6; i++ {
		s.Players[0].Hand = append(s.Players[0].Hand, catalog.Card{ID: "x" + string(rune('a'+i))})
	}
	err := CheckInvariants(s, 0)
	assert.ErrorIs(t, err, ErrInvariant)
}

func TestCheckInvariantsDetectsMultiplePending(t *testing.T) {
	s := baseInvariantState()
	s.PendingKnightAttack = &PendingAttack{AttackerID: "p1", TargetID: "p2"}
	s.PendingPotionAttack = &PendingAttack{AttackerID: "p2", TargetID: "p1"}
	err := CheckInvariants(s, 0)
	assert.ErrorIs(t, err, ErrInvariant)
}

func TestCheckInvariantsDetectsCatDogConflict(t *testing.T) {
	s := baseInvariantState()
	s.Players[0].Queens = []catalog.Card{
		{ID: catalog.CatQueenID, Kind: catalog.KindQueen},
		{ID: catalog.DogQueenID, Kind: catalog.KindQueen},
	}
	err := CheckInvariants(s, 0)
	assert.ErrorIs(t, err, ErrInvariant)
}

func TestCheckInvariantsDetectsPhaseWinnerMismatch(t *testing.T) {
	s := baseInvariantState()
	s.Phase = PhaseEnded
	s.WinnerID = ""
	err := CheckInvariants(s, 0)
	assert.ErrorIs(t, err, ErrInvariant)
}

func TestCheckInvariantsDetectsCurrentPlayerIndexOutOfRange(t *testing.T) {
	s := baseInvariantState()
	s.CurrentPlayerIndex = 5
	err := CheckInvariants(s, 0)
	assert.ErrorIs(t, err, ErrInvariant)
}
