package catalog

import (
	mathrand "math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShuffleIsDeterministicForSameSeed(t *testing.T) {
	a := BuildDeck()
	b := BuildDeck()

	Shuffle(a, mathrand.New(mathrand.NewSource(42)))
	Shuffle(b, mathrand.New(mathrand.NewSource(42)))

	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].ID, b[i].ID)
	}
}

func TestShuffleChangesOrderForDifferentSeeds(t *testing.T) {
	a := BuildDeck()
	b := BuildDeck()

	Shuffle(a, mathrand.New(mathrand.NewSource(1)))
	Shuffle(b, mathrand.New(mathrand.NewSource(2)))

	differ := false
	for i := range a {
		if a[i].ID != b[i].ID {
			differ = true
			break
		}
	}
	assert.True(t, differ, "two different seeds should almost never produce the same order")
}

func TestShufflePreservesMultiset(t *testing.T) {
	deck := BuildDeck()
	before := map[string]bool{}
	for _, c := range deck {
		before[c.ID] = true
	}
	Shuffle(deck, mathrand.New(mathrand.NewSource(7)))
	after := map[string]bool{}
	for _, c := range deck {
		after[c.ID] = true
	}
	assert.Equal(t, before, after)
}

func TestSeedForIsDeterministic(t *testing.T) {
	s1 := SeedFor("game-1", 3)
	s2 := SeedFor("game-1", 3)
	assert.Equal(t, s1, s2)

	s3 := SeedFor("game-1", 4)
	assert.NotEqual(t, s1, s3)

	s4 := SeedFor("game-2", 3)
	assert.NotEqual(t, s1, s4)
}

func TestBuildInitialDeckDeterministic(t *testing.T) {
	queens1, deck1, err := BuildInitialDeck("game-x", true)
	require.NoError(t, err)
	queens2, deck2, err := BuildInitialDeck("game-x", true)
	require.NoError(t, err)

	require.Len(t, queens1, 12)
	require.Len(t, deck1, 67)
	for i := range deck1 {
		assert.Equal(t, deck1[i].ID, deck2[i].ID)
	}
	for i := range queens1 {
		assert.Equal(t, queens1[i].ID, queens2[i].ID)
	}
}

func TestBuildInitialDeckSecurePreservesCardSet(t *testing.T) {
	_, deck, err := BuildInitialDeck("game-y", false)
	require.NoError(t, err)
	require.Len(t, deck, 67)

	seen := map[string]bool{}
	for _, c := range deck {
		seen[c.ID] = true
	}
	assert.Len(t, seen, 67)
}

func TestSecureShufflerPreservesMultiset(t *testing.T) {
	deck := BuildDeck()
	before := map[string]bool{}
	for _, c := range deck {
		before[c.ID] = true
	}
	SecureShuffler{}.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
	after := map[string]bool{}
	for _, c := range deck {
		after[c.ID] = true
	}
	assert.Equal(t, before, after)
}
