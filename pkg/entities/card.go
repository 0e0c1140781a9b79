package entities

import "fmt"

// DeckSize is the number of cards in a standard deck
const DeckSize = 52

// Suit represents a card suit
type Suit string

const (
	Clubs    Suit = "clubs"
	Diamonds Suit = "diamonds"
	Hearts   Suit = "hearts"
	Spades   Suit = "spades"
)

// Suits lists every suit in a fixed order
var Suits = []Suit{Clubs, Diamonds, Hearts, Spades}

// Value represents a card face value
type Value string

const (
	Two   Value = "2"
	Three Value = "3"
	Four  Value = "4"
	Five  Value = "5"
	Six   Value = "6"
	Seven Value = "7"
	Eight Value = "8"
	Nine  Value = "9"
	Ten   Value = "10"
	Jack  Value = "jack"
	Queen Value = "queen"
	King  Value = "king"
	Ace   Value = "ace"
)

// Values lists every value from lowest to highest
var Values = []Value{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

// Rank is the position of a value in Values: 0 for two up to 12 for ace
type Rank int

const (
	RankTwo  Rank = 0
	RankFive Rank = 3
	RankAce  Rank = 12
)

// Value returns the face value for the rank
func (r Rank) Value() (Value, error) {
	if r < 0 || int(r) >= len(Values) {
		return "", fmt.Errorf("invalid rank %d", r)
	}
	return Values[r], nil
}

// Rank returns the rank of the value
func (v Value) Rank() (Rank, error) {
	for i, candidate := range Values {
		if candidate == v {
			return Rank(i), nil
		}
	}
	return 0, fmt.Errorf("invalid card value %q", string(v))
}

// Index returns the position of the suit in Suits
func (s Suit) Index() (int, error) {
	for i, candidate := range Suits {
		if candidate == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("invalid card suit %q", string(s))
}

// Card represents a real playing card
type Card struct {
	Suit  Suit  `json:"suit"`
	Value Value `json:"value"`
}

// NewCard creates a new card
func NewCard(suit Suit, value Value) Card {
	return Card{Suit: suit, Value: value}
}

// Validate checks that suit and value belong to the standard deck
func (c Card) Validate() error {
	if _, err := c.Suit.Index(); err != nil {
		return err
	}
	if _, err := c.Value.Rank(); err != nil {
		return err
	}
	return nil
}

// Index returns the card's position in the canonical (unshuffled) deck
func (c Card) Index() (int, error) {
	s, err := c.Suit.Index()
	if err != nil {
		return 0, err
	}
	r, err := c.Value.Rank()
	if err != nil {
		return 0, err
	}
	return s*len(Values) + int(r), nil
}

// String returns the string representation of the card
func (c Card) String() string {
	return fmt.Sprintf("%s of %s", c.Value, c.Suit)
}

// CardID is the identifier the ledger assigns to a dealt card. It says nothing
// about the real card until it is looked up in the game's mapping.
type CardID int

// Validate reports whether the identifier names a deck slot
func (id CardID) Validate() error {
	if id < 0 || id >= DeckSize {
		return fmt.Errorf("card identifier %d out of range [0, %d)", id, DeckSize)
	}
	return nil
}
