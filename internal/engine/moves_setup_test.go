package engine

import (
	"testing"
	"time"

	"sleeping-queens-engine/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyStartGameDealsHandsAndTransitionsPhase(t *testing.T) {
	s := &GameState{
		ID:    "g1",
		Phase: PhaseWaiting,
		Players: []Player{
			{ID: "p1"}, {ID: "p2"}, {ID: "p3"},
		},
	}
	mv := Move{PlayerID: "p2", Kind: MoveStartGame}

	events, err := applyStartGame(s, mv, time.Now(), testRng(), DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, PhasePlaying, s.Phase)
	assert.Len(t, events, 3)
	for _, p := range s.Players {
		assert.Len(t, p.Hand, 5)
	}
	assert.NotEmpty(t, s.SleepingQueens)
	assert.True(t, s.CurrentPlayerIndex >= 0 && s.CurrentPlayerIndex < len(s.Players))

	totalCards := len(s.DrawPile)
	for _, p := range s.Players {
		totalCards += len(p.Hand)
	}
	assert.Equal(t, 67, totalCards, "the full deck is conserved across the draw pile and dealt hands")
}

func TestApplyStartGameRejectsTooFewPlayers(t *testing.T) {
	s := &GameState{
		ID:      "g1",
		Phase:   PhaseWaiting,
		Players: []Player{{ID: "p1"}},
	}
	mv := Move{PlayerID: "p1", Kind: MoveStartGame}

	_, err := applyStartGame(s, mv, time.Now(), testRng(), DefaultConfig())
	assert.ErrorIs(t, err, ErrIllegalMove)
}

func TestApplyStartGameRejectsWhenAlreadyStarted(t *testing.T) {
	s := &GameState{
		ID:      "g1",
		Phase:   PhasePlaying,
		Players: []Player{{ID: "p1"}, {ID: "p2"}},
	}
	mv := Move{PlayerID: "p1", Kind: MoveStartGame}

	_, err := applyStartGame(s, mv, time.Now(), testRng(), DefaultConfig())
	assert.ErrorIs(t, err, ErrIllegalMove)
}

func TestApplyStageCardsRecordsWithoutAdvancingTurn(t *testing.T) {
	s := &GameState{
		Phase: PhasePlaying,
		Players: []Player{
			{ID: "p1", Hand: []catalog.Card{{ID: "n1", Kind: catalog.KindNumber, Value: 4}}},
		},
	}
	mv := Move{PlayerID: "p1", Kind: MoveStageCards, Cards: []string{"n1"}}

	_, err := applyStageCards(s, mv, time.Now(), testRng(), DefaultConfig())
	require.NoError(t, err)

	require.Contains(t, s.StagedCards, "p1")
	assert.Len(t, s.StagedCards["p1"], 1)
	assert.Equal(t, 0, s.CurrentPlayerIndex)
}

func TestApplyClearStagedRemovesOwnSignalOnly(t *testing.T) {
	s := &GameState{
		Phase: PhasePlaying,
		Players: []Player{
			{ID: "p1"}, {ID: "p2"},
		},
		StagedCards: map[string][]catalog.Card{
			"p1": {},
			"p2": {},
		},
	}
	mv := Move{PlayerID: "p1", Kind: MoveClearStaged}

	_, err := applyClearStaged(s, mv, time.Now(), testRng(), DefaultConfig())
	require.NoError(t, err)

	assert.NotContains(t, s.StagedCards, "p1")
	assert.Contains(t, s.StagedCards, "p2")
}

func TestApplyRoutesByMoveKind(t *testing.T) {
	s := &GameState{
		Phase:   PhaseWaiting,
		Players: []Player{{ID: "p1"}, {ID: "p2"}},
	}
	mv := Move{PlayerID: "p1", Kind: MoveStartGame}

	_, err := Apply(s, mv, time.Now(), testRng(), DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, PhasePlaying, s.Phase)
}

func TestApplyRejectsUnknownMoveKind(t *testing.T) {
	s := &GameState{Phase: PhasePlaying, Players: []Player{{ID: "p1"}}}
	mv := Move{PlayerID: "p1", Kind: MoveKind("not-a-real-move")}

	_, err := Apply(s, mv, time.Now(), testRng(), DefaultConfig())
	assert.ErrorIs(t, err, ErrUnknownMoveKind)
}
