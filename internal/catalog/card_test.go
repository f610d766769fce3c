package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildQueens(t *testing.T) {
	queens := BuildQueens()
	require.Len(t, queens, 12)

	byPoints := map[int]int{}
	total := 0
	seenIDs := map[string]bool{}
	for _, q := range queens {
		assert.Equal(t, KindQueen, q.Kind)
		assert.NotEmpty(t, q.Name)
		assert.False(t, seenIDs[q.ID], "duplicate queen id %s", q.ID)
		seenIDs[q.ID] = true
		byPoints[q.Points]++
		total += q.Points
	}

	assert.Equal(t, 3, byPoints[5])
	assert.Equal(t, 3, byPoints[10])
	assert.Equal(t, 4, byPoints[15])
	assert.Equal(t, 2, byPoints[20])
	assert.Equal(t, 145, total)

	assert.True(t, seenIDs[RoseQueenID])
	assert.True(t, seenIDs[CatQueenID])
	assert.True(t, seenIDs[DogQueenID])
}

func TestBuildDeck(t *testing.T) {
	deck := BuildDeck()
	require.Len(t, deck, 67)

	counts := map[Kind]int{}
	kingNames := map[string]bool{}
	numberValues := map[int]int{}
	seenIDs := map[string]bool{}
	for _, c := range deck {
		assert.False(t, seenIDs[c.ID], "duplicate card id %s", c.ID)
		seenIDs[c.ID] = true
		counts[c.Kind]++
		if c.Kind == KindKing {
			kingNames[c.Name] = true
		}
		if c.Kind == KindNumber {
			numberValues[c.Value]++
		}
	}

	assert.Equal(t, 8, counts[KindKing])
	assert.Len(t, kingNames, 8, "all 8 kings must have distinct names")
	assert.Equal(t, 4, counts[KindKnight])
	assert.Equal(t, 3, counts[KindDragon])
	assert.Equal(t, 3, counts[KindWand])
	assert.Equal(t, 4, counts[KindPotion])
	assert.Equal(t, 5, counts[KindJester])
	assert.Equal(t, 40, counts[KindNumber])

	for v := 1; v <= 10; v++ {
		assert.Equal(t, 4, numberValues[v], "value %d should appear 4 times", v)
	}
}

func TestCardString(t *testing.T) {
	q := Card{Kind: KindQueen, Name: "Rose Queen", Points: 5}
	assert.Contains(t, q.String(), "Rose Queen")

	n := Card{Kind: KindNumber, Value: 7}
	assert.Contains(t, n.String(), "7")

	k := Card{Kind: KindKing, Name: "Fire King"}
	assert.Contains(t, k.String(), "Fire King")
}

func TestCardIsQueen(t *testing.T) {
	assert.True(t, Card{Kind: KindQueen}.IsQueen())
	assert.False(t, Card{Kind: KindNumber}.IsQueen())
}
