package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func threePlayerState() *GameState {
	return &GameState{
		ID:    "g1",
		Phase: PhasePlaying,
		Players: []Player{
			{ID: "p1", Position: 0, Connected: true},
			{ID: "p2", Position: 1, Connected: true},
			{ID: "p3", Position: 2, Connected: true},
		},
		CurrentPlayerIndex: 0,
	}
}

func TestMayActDefaultsToCurrentPlayer(t *testing.T) {
	s := threePlayerState()
	assert.True(t, MayAct(s, "p1", MovePlayKing))
	assert.False(t, MayAct(s, "p2", MovePlayKing))
}

func TestMayActAnyoneMayStartGame(t *testing.T) {
	s := threePlayerState()
	s.Phase = PhaseWaiting
	assert.True(t, MayAct(s, "p2", MoveStartGame))
	assert.False(t, MayAct(s, "unknown", MoveStartGame))
}

func TestMayActPendingKnightAttackRestrictsToTarget(t *testing.T) {
	s := threePlayerState()
	s.PendingKnightAttack = &PendingAttack{AttackerID: "p1", TargetID: "p2"}

	assert.True(t, MayAct(s, "p2", MovePlayDragon))
	assert.True(t, MayAct(s, "p2", MoveAllowKnightAttack))
	assert.False(t, MayAct(s, "p2", MovePlayKing), "target may only play Dragon or allow the attack")
	assert.False(t, MayAct(s, "p1", MovePlayDragon), "attacker is not the defender")
}

func TestMayActPendingPotionAttackRestrictsToTarget(t *testing.T) {
	s := threePlayerState()
	s.PendingPotionAttack = &PendingAttack{AttackerID: "p1", TargetID: "p3"}

	assert.True(t, MayAct(s, "p3", MovePlayWand))
	assert.True(t, MayAct(s, "p3", MoveAllowPotionAttack))
	assert.False(t, MayAct(s, "p2", MovePlayWand))
}

func TestMayActJesterRevealRestrictsToTarget(t *testing.T) {
	s := threePlayerState()
	s.JesterReveal = &JesterReveal{TargetPlayerID: "p3", AwaitingQueenSelection: true}

	assert.True(t, MayAct(s, "p3", MoveSelectQueenForJester))
	assert.False(t, MayAct(s, "p1", MoveSelectQueenForJester))
	assert.False(t, MayAct(s, "p3", MovePlayKing))
}

func TestMayActRoseQueenBonusAllowsPlayOrDecline(t *testing.T) {
	s := threePlayerState()
	s.RoseQueenBonus = &RoseQueenBonus{PlayerID: "p1", Pending: true}

	assert.True(t, MayAct(s, "p1", MoveRoseQueenBonus))
	assert.True(t, MayAct(s, "p1", MoveDiscardSingle))
	assert.False(t, MayAct(s, "p2", MoveRoseQueenBonus))
}

func TestMayActClearStagedIsOpenToAnySeatedPlayer(t *testing.T) {
	s := threePlayerState()
	assert.True(t, MayAct(s, "p3", MoveClearStaged))
	assert.False(t, MayAct(s, "intruder", MoveClearStaged))
}

func TestAdvanceTurnWrapsAround(t *testing.T) {
	s := threePlayerState()
	s.CurrentPlayerIndex = 2
	AdvanceTurn(s)
	assert.Equal(t, 0, s.CurrentPlayerIndex)
}

func TestAdvanceTurnNoPlayersIsNoop(t *testing.T) {
	s := &GameState{CurrentPlayerIndex: 0}
	AdvanceTurn(s)
	assert.Equal(t, 0, s.CurrentPlayerIndex)
}

func TestConnectedCount(t *testing.T) {
	s := threePlayerState()
	s.Players[1].Connected = false
	assert.Equal(t, 2, ConnectedCount(s))
}
