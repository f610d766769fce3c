package pipeline

import (
	"testing"

	"sleeping-queens-engine/internal/catalog"
	"sleeping-queens-engine/internal/engine"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectHidesOtherPlayersHandsBehindACount(t *testing.T) {
	s := &engine.GameState{
		ID: "g1",
		Players: []engine.Player{
			{ID: "p1", Hand: []catalog.Card{{ID: "n1"}, {ID: "n2"}}},
		},
		DrawPile: []catalog.Card{{ID: "d1"}, {ID: "d2"}, {ID: "d3"}},
	}

	pub := Project(s)
	require.Len(t, pub.Players, 1)
	assert.Equal(t, 2, pub.Players[0].HandCount)
	assert.Equal(t, 3, pub.DrawCount)
}

func TestProjectExposesStagedCardsByIdentity(t *testing.T) {
	s := &engine.GameState{
		ID: "g1",
		Players: []engine.Player{
			{ID: "p1", Hand: []catalog.Card{{ID: "n1", Kind: catalog.KindNumber, Value: 4}}},
		},
		StagedCards: map[string][]catalog.Card{
			"p1": {{ID: "n1", Kind: catalog.KindNumber, Value: 4}},
		},
	}

	pub := Project(s)
	require.Contains(t, pub.StagedCards, "p1")
	require.Len(t, pub.StagedCards["p1"], 1)
	assert.Equal(t, "n1", pub.StagedCards["p1"][0].ID, "staged cards are a visible intent signal, not masked like the rest of a hand")
}

func TestProjectOmitsStagedCardsWhenNoneStaged(t *testing.T) {
	s := &engine.GameState{ID: "g1", Players: []engine.Player{{ID: "p1"}}}
	pub := Project(s)
	assert.Nil(t, pub.StagedCards)
}

func TestPrivateEventsForScopesDrawsToRecipient(t *testing.T) {
	events := PrivateEventsFor("g1", 4, []engine.DrawEvent{
		{PlayerID: "p1", Cards: []catalog.Card{{ID: "n1"}}},
	})

	require.Len(t, events, 1)
	assert.Equal(t, "p1", events[0].Recipient)
	assert.Equal(t, "g1", events[0].GameID)
	assert.Equal(t, 4, events[0].Version)
	require.Len(t, events[0].DrawnCards, 1)
	assert.Equal(t, "n1", events[0].DrawnCards[0].ID)
}
