// Package catalog defines the immutable card universe for Sleeping Queens:
// queens, number cards, and action cards. Cards are created once here and
// only ever moved between locations by the engine; nothing in this package
// mutates a Card after construction.
package catalog

import "fmt"

// Kind tags the closed variant set a Card belongs to.
type Kind string

const (
	KindQueen  Kind = "queen"
	KindNumber Kind = "number"
	KindKing   Kind = "king"
	KindKnight Kind = "knight"
	KindDragon Kind = "dragon"
	KindWand   Kind = "wand"
	KindPotion Kind = "potion"
	KindJester Kind = "jester"
)

// ActionKinds are the non-queen, non-number cards; they are interchangeable
// within a kind except for Kings, which carry distinct display names.
var ActionKinds = []Kind{KindKing, KindKnight, KindDragon, KindWand, KindPotion, KindJester}

// Card is an immutable, tagged-variant card. Not every field is meaningful
// for every Kind: Points applies only to KindQueen, Value only to
// KindNumber. Name is set for queens and action cards (Kings carry one of 8
// distinct display names; other action kinds share a generic name).
type Card struct {
	ID     string `json:"id"`
	Kind   Kind   `json:"kind"`
	Name   string `json:"name,omitempty"`
	Value  int    `json:"value,omitempty"`  // NumberCard value, 1..10
	Points int    `json:"points,omitempty"` // Queen point value
}

func (c Card) String() string {
	switch c.Kind {
	case KindQueen:
		return fmt.Sprintf("Queen(%s,%dpts)", c.Name, c.Points)
	case KindNumber:
		return fmt.Sprintf("Number(%d)", c.Value)
	case KindKing:
		return fmt.Sprintf("King(%s)", c.Name)
	default:
		return string(c.Kind)
	}
}

// IsQueen reports whether the card is a queen, regardless of sleeping/awake
// state (the catalog does not track ownership, that's GameState's job).
func (c Card) IsQueen() bool { return c.Kind == KindQueen }

// RoseQueenID and CatQueenID/DogQueenID identify the queens with special
// rules: the Rose Queen grants a waking bonus, and Cat/Dog are mutually
// exclusive per owner.
const (
	RoseQueenID = "queen-rose"
	CatQueenID  = "queen-cat"
	DogQueenID  = "queen-dog"
)

// QueenSpec describes one of the 12 fixed queen definitions.
type QueenSpec struct {
	ID     string
	Name   string
	Points int
}

// Queens is the fixed 12-queen roster: point distribution 5x3, 10x3, 15x4,
// 20x2, totaling 145. Order is stable so tests can reference queens by index.
var Queens = []QueenSpec{
	{ID: RoseQueenID, Name: "Rose Queen", Points: 5},
	{ID: "queen-moon", Name: "Moon Queen", Points: 5},
	{ID: "queen-starfish", Name: "Starfish Queen", Points: 5},
	{ID: "queen-sunflower", Name: "Sunflower Queen", Points: 10},
	{ID: "queen-peacock", Name: "Peacock Queen", Points: 10},
	{ID: "queen-ladybug", Name: "Ladybug Queen", Points: 10},
	{ID: CatQueenID, Name: "Cat Queen", Points: 15},
	{ID: DogQueenID, Name: "Dog Queen", Points: 15},
	{ID: "queen-rainbow", Name: "Rainbow Queen", Points: 15},
	{ID: "queen-pancake", Name: "Pancake Queen", Points: 15},
	{ID: "queen-heart", Name: "Heart Queen", Points: 20},
	{ID: "queen-star", Name: "Star Queen", Points: 20},
}

// KingNames are the 8 distinct King display names.
var KingNames = []string{
	"Fire King", "Cockerel King", "Sea King", "Pie King",
	"Hat King", "Bubblegum King", "Chess King", "Time King",
}

// deckCounts gives the multiplicity of each non-King action kind in the
// 67-card deck; the 8 Kings come from KingNames instead (8 Kings + 4 Knights
// + 3 Dragons + 3 Wands + 4 Potions + 5 Jesters = 27, plus 40 number cards
// = 67).
var deckCounts = map[Kind]int{
	KindKnight: 4,
	KindDragon: 3,
	KindWand:   3,
	KindPotion: 4,
	KindJester: 5,
}

// BuildQueens returns the 12 sleeping queens, freshly constructed and
// face-down (ownership/awake state lives in GameState, not here).
func BuildQueens() []Card {
	out := make([]Card, 0, len(Queens))
	for _, q := range Queens {
		out = append(out, Card{ID: q.ID, Kind: KindQueen, Name: q.Name, Points: q.Points})
	}
	return out
}

// UniverseSize is the total card count across the deck and queen roster: 67
// from BuildDeck plus 12 from BuildQueens. CheckInvariants uses it to confirm
// card conservation holds at every commit.
const UniverseSize = 67 + 12

// BuildDeck returns the unshuffled 67-card action+number deck: 8 Kings (each
// with a distinct name), 4 Knights, 3 Dragons, 3 Wands, 4 Potions, 5 Jesters,
// and 40 number cards (values 1..10, four of each).
func BuildDeck() []Card {
	out := make([]Card, 0, 67)
	for i, name := range KingNames {
		out = append(out, Card{ID: fmt.Sprintf("king-%d", i+1), Kind: KindKing, Name: name})
	}
	for _, kind := range []Kind{KindKnight, KindDragon, KindWand, KindPotion, KindJester} {
		n := deckCounts[kind]
		for i := 0; i < n; i++ {
			out = append(out, Card{ID: fmt.Sprintf("%s-%d", kind, i+1), Kind: kind, Name: string(kind)})
		}
	}
	for v := 1; v <= 10; v++ {
		for i := 0; i < 4; i++ {
			out = append(out, Card{ID: fmt.Sprintf("number-%d-%d", v, i+1), Kind: KindNumber, Value: v})
		}
	}
	return out
}
