package engine

import (
	"testing"
	"time"

	"sleeping-queens-engine/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyPlayKnightResolvesImmediatelyWithoutDragon(t *testing.T) {
	s := &GameState{
		Phase: PhasePlaying,
		Players: []Player{
			{ID: "p1", Hand: []catalog.Card{{ID: "knight-1", Kind: catalog.KindKnight}}},
			{ID: "p2", Queens: []catalog.Card{{ID: "queen-sun", Kind: catalog.KindQueen, Points: 20}}},
		},
		DrawPile: drawPileOf(10),
	}
	mv := Move{PlayerID: "p1", Kind: MovePlayKnight, Cards: []string{"knight-1"}, TargetPlayerID: "p2", TargetCardID: "queen-sun"}

	_, err := applyPlayKnight(s, mv, time.Now(), testRng(), DefaultConfig())
	require.NoError(t, err)

	assert.Nil(t, s.PendingKnightAttack)
	assert.Empty(t, s.PlayerByID("p2").Queens)
	require.Len(t, s.PlayerByID("p1").Queens, 1)
	assert.Equal(t, "queen-sun", s.PlayerByID("p1").Queens[0].ID)
	assert.Equal(t, 1, s.CurrentPlayerIndex)
}

func TestApplyPlayKnightOpensDefenseWindowWhenTargetHoldsDragon(t *testing.T) {
	s := &GameState{
		Phase: PhasePlaying,
		Players: []Player{
			{ID: "p1", Hand: []catalog.Card{{ID: "knight-1", Kind: catalog.KindKnight}}},
			{ID: "p2", Hand: []catalog.Card{{ID: "dragon-1", Kind: catalog.KindDragon}}, Queens: []catalog.Card{{ID: "queen-sun", Kind: catalog.KindQueen, Points: 20}}},
		},
	}
	now := time.Now()
	mv := Move{PlayerID: "p1", Kind: MovePlayKnight, Cards: []string{"knight-1"}, TargetPlayerID: "p2", TargetCardID: "queen-sun"}

	_, err := applyPlayKnight(s, mv, now, testRng(), DefaultConfig())
	require.NoError(t, err)

	require.NotNil(t, s.PendingKnightAttack)
	assert.Equal(t, "p1", s.PendingKnightAttack.AttackerID)
	assert.Equal(t, "p2", s.PendingKnightAttack.TargetID)
	assert.Equal(t, "queen-sun", s.PendingKnightAttack.TargetQueenID)
	assert.Equal(t, 0, s.CurrentPlayerIndex, "turn stays open while the defense window is active")
	assert.Len(t, s.PlayerByID("p2").Queens, 1, "the queen has not moved yet")
}

func TestApplyPlayKnightRejectsTargetingSelf(t *testing.T) {
	s := &GameState{
		Phase: PhasePlaying,
		Players: []Player{
			{ID: "p1", Hand: []catalog.Card{{ID: "knight-1", Kind: catalog.KindKnight}}, Queens: []catalog.Card{{ID: "queen-sun", Kind: catalog.KindQueen}}},
		},
	}
	mv := Move{PlayerID: "p1", Kind: MovePlayKnight, Cards: []string{"knight-1"}, TargetPlayerID: "p1", TargetCardID: "queen-sun"}

	_, err := applyPlayKnight(s, mv, time.Now(), testRng(), DefaultConfig())
	assert.ErrorIs(t, err, ErrIllegalMove)
}

func TestApplyPlayDragonDefendsAgainstPendingKnightAttack(t *testing.T) {
	s := &GameState{
		Phase: PhasePlaying,
		Players: []Player{
			{ID: "p1"},
			{ID: "p2", Hand: []catalog.Card{{ID: "dragon-1", Kind: catalog.KindDragon}}, Queens: []catalog.Card{{ID: "queen-sun", Kind: catalog.KindQueen, Points: 20}}},
		},
		PendingKnightAttack: &PendingAttack{AttackerID: "p1", TargetID: "p2", TargetQueenID: "queen-sun"},
		DrawPile:            drawPileOf(10),
	}
	mv := Move{PlayerID: "p2", Kind: MovePlayDragon, Cards: []string{"dragon-1"}}

	_, err := applyPlayDragon(s, mv, time.Now(), testRng(), DefaultConfig())
	require.NoError(t, err)

	assert.Nil(t, s.PendingKnightAttack)
	require.Len(t, s.PlayerByID("p2").Queens, 1, "the defended queen stays with the target")
	assert.Equal(t, 1, s.CurrentPlayerIndex, "the attacker's turn still completes")
}

func TestApplyPlayDragonRejectsWithoutPendingAttack(t *testing.T) {
	s := &GameState{
		Phase: PhasePlaying,
		Players: []Player{
			{ID: "p2", Hand: []catalog.Card{{ID: "dragon-1", Kind: catalog.KindDragon}}},
		},
	}
	mv := Move{PlayerID: "p2", Kind: MovePlayDragon, Cards: []string{"dragon-1"}}

	_, err := applyPlayDragon(s, mv, time.Now(), testRng(), DefaultConfig())
	assert.ErrorIs(t, err, ErrIllegalMove)
}

func TestApplyAllowKnightAttackTransfersQueenToAttacker(t *testing.T) {
	s := &GameState{
		Phase: PhasePlaying,
		Players: []Player{
			{ID: "p1"},
			{ID: "p2", Queens: []catalog.Card{{ID: "queen-sun", Kind: catalog.KindQueen, Points: 20}}},
		},
		PendingKnightAttack: &PendingAttack{AttackerID: "p1", TargetID: "p2", TargetQueenID: "queen-sun"},
		DrawPile:            drawPileOf(10),
	}
	mv := Move{PlayerID: "p2", Kind: MoveAllowKnightAttack}

	_, err := applyAllowKnightAttack(s, mv, time.Now(), testRng(), DefaultConfig())
	require.NoError(t, err)

	assert.Nil(t, s.PendingKnightAttack)
	assert.Empty(t, s.PlayerByID("p2").Queens)
	require.Len(t, s.PlayerByID("p1").Queens, 1)
}

func TestApplyPlayPotionSendsQueenToSleepOnResolve(t *testing.T) {
	s := &GameState{
		Phase: PhasePlaying,
		Players: []Player{
			{ID: "p1", Hand: []catalog.Card{{ID: "potion-1", Kind: catalog.KindPotion}}},
			{ID: "p2", Queens: []catalog.Card{{ID: "queen-moon", Kind: catalog.KindQueen, Points: 5}}},
		},
		DrawPile: drawPileOf(10),
	}
	mv := Move{PlayerID: "p1", Kind: MovePlayPotion, Cards: []string{"potion-1"}, TargetPlayerID: "p2", TargetCardID: "queen-moon"}

	_, err := applyPlayPotion(s, mv, time.Now(), testRng(), DefaultConfig())
	require.NoError(t, err)

	assert.Empty(t, s.PlayerByID("p1").Queens, "the Potion never gives the attacker a queen")
	assert.Empty(t, s.PlayerByID("p2").Queens)
	require.Len(t, s.SleepingQueens, 1)
	assert.Equal(t, "queen-moon", s.SleepingQueens[0].ID)
}

func TestApplyAllowPotionAttackSendsQueenToSleep(t *testing.T) {
	s := &GameState{
		Phase: PhasePlaying,
		Players: []Player{
			{ID: "p1"},
			{ID: "p2", Queens: []catalog.Card{{ID: "queen-moon", Kind: catalog.KindQueen, Points: 5}}},
		},
		PendingPotionAttack: &PendingAttack{AttackerID: "p1", TargetID: "p2", TargetQueenID: "queen-moon"},
		DrawPile:            drawPileOf(10),
	}
	mv := Move{PlayerID: "p2", Kind: MoveAllowPotionAttack}

	_, err := applyAllowPotionAttack(s, mv, time.Now(), testRng(), DefaultConfig())
	require.NoError(t, err)

	assert.Nil(t, s.PendingPotionAttack)
	require.Len(t, s.SleepingQueens, 1)
	assert.Empty(t, s.PlayerByID("p1").Queens)
}

func TestApplyPlayWandDefendsAgainstPendingPotionAttack(t *testing.T) {
	s := &GameState{
		Phase: PhasePlaying,
		Players: []Player{
			{ID: "p1"},
			{ID: "p2", Hand: []catalog.Card{{ID: "wand-1", Kind: catalog.KindWand}}, Queens: []catalog.Card{{ID: "queen-moon", Kind: catalog.KindQueen, Points: 5}}},
		},
		PendingPotionAttack: &PendingAttack{AttackerID: "p1", TargetID: "p2", TargetQueenID: "queen-moon"},
		DrawPile:            drawPileOf(10),
	}
	mv := Move{PlayerID: "p2", Kind: MovePlayWand, Cards: []string{"wand-1"}}

	_, err := applyPlayWand(s, mv, time.Now(), testRng(), DefaultConfig())
	require.NoError(t, err)

	assert.Nil(t, s.PendingPotionAttack)
	require.Len(t, s.PlayerByID("p2").Queens, 1, "the defended queen stays put")
}
