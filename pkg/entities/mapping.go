package entities

import (
	"fmt"
	"time"
)

// CardMapping binds the 52 ledger card identifiers of one game to real cards.
// Cards[id] is the real card behind identifier id.
type CardMapping struct {
	GameID    uint64         `json:"game_id"`
	Cards     [DeckSize]Card `json:"cards"`
	CreatedAt time.Time      `json:"created_at"`
}

// Reveal returns the real card behind an identifier
func (m *CardMapping) Reveal(id CardID) (Card, error) {
	if err := id.Validate(); err != nil {
		return Card{}, err
	}
	return m.Cards[id], nil
}

// Validate checks that the mapping is a bijection over the standard deck
func (m *CardMapping) Validate() error {
	var seen [DeckSize]bool
	for id, card := range m.Cards {
		idx, err := card.Index()
		if err != nil {
			return fmt.Errorf("mapping for game %d, identifier %d: %w", m.GameID, id, err)
		}
		if seen[idx] {
			return fmt.Errorf("mapping for game %d repeats %s", m.GameID, card)
		}
		seen[idx] = true
	}
	return nil
}
