package entities

import (
	"fmt"
	"strings"
)

var notationValues = map[string]Value{
	"2": Two, "3": Three, "4": Four, "5": Five, "6": Six, "7": Seven, "8": Eight, "9": Nine,
	"10": Ten, "t": Ten, "j": Jack, "q": Queen, "k": King, "a": Ace,
}

var notationSuits = map[byte]Suit{
	'c': Clubs,
	'd': Diamonds,
	'h': Hearts,
	's': Spades,
}

// ParseCard reads short card notation such as "As", "Td", "10h" or "7C"
func ParseCard(notation string) (Card, error) {
	text := strings.ToLower(strings.TrimSpace(notation))
	if len(text) < 2 {
		return Card{}, fmt.Errorf("invalid card %q", notation)
	}

	suit, ok := notationSuits[text[len(text)-1]]
	if !ok {
		return Card{}, fmt.Errorf("invalid suit in card %q", notation)
	}
	value, ok := notationValues[text[:len(text)-1]]
	if !ok {
		return Card{}, fmt.Errorf("invalid value in card %q", notation)
	}

	return NewCard(suit, value), nil
}

// ParseCards reads several cards in short notation
func ParseCards(notations ...string) ([]Card, error) {
	cards := make([]Card, 0, len(notations))
	for _, n := range notations {
		card, err := ParseCard(n)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}
