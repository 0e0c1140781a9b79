// Package cards generates the secret per-game binding between ledger card
// identifiers and real cards.
package cards

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/fadedpez/cardvault/pkg/entities"
)

// Generator produces card mappings from a cryptographically secure source
type Generator struct {
	rand io.Reader
}

// NewGenerator creates a generator backed by crypto/rand
func NewGenerator() *Generator {
	return &Generator{rand: rand.Reader}
}

// NewGeneratorWithReader creates a generator drawing randomness from r
func NewGeneratorWithReader(r io.Reader) *Generator {
	return &Generator{rand: r}
}

// Generate returns a fresh permutation of all 52 cards; entry i is the real
// card behind ledger identifier i. Values and suits are shuffled independently
// before their cross product is shuffled again, so the position of a card says
// nothing about either its value or its suit.
func (g *Generator) Generate() ([entities.DeckSize]entities.Card, error) {
	var mapping [entities.DeckSize]entities.Card

	values := append([]entities.Value(nil), entities.Values...)
	if err := shuffle(g.rand, len(values), func(i, j int) { values[i], values[j] = values[j], values[i] }); err != nil {
		return mapping, fmt.Errorf("shuffling values: %w", err)
	}

	suits := append([]entities.Suit(nil), entities.Suits...)
	if err := shuffle(g.rand, len(suits), func(i, j int) { suits[i], suits[j] = suits[j], suits[i] }); err != nil {
		return mapping, fmt.Errorf("shuffling suits: %w", err)
	}

	pairs := make([]int, 0, entities.DeckSize)
	for suitIndex := range suits {
		for valueIndex := range values {
			pairs = append(pairs, suitIndex*len(values)+valueIndex)
		}
	}
	if err := shuffle(g.rand, len(pairs), func(i, j int) { pairs[i], pairs[j] = pairs[j], pairs[i] }); err != nil {
		return mapping, fmt.Errorf("shuffling deck: %w", err)
	}

	for id, pair := range pairs {
		mapping[id] = entities.NewCard(suits[pair/len(values)], values[pair%len(values)])
	}
	return mapping, nil
}

// shuffle is a Fisher-Yates shuffle drawing j uniformly from [0, i]
func shuffle(r io.Reader, n int, swap func(i, j int)) error {
	for i := n - 1; i > 0; i-- {
		j, err := RandInt(r, i)
		if err != nil {
			return err
		}
		swap(i, j)
	}
	return nil
}

// RandInt returns a uniform integer in [0, max] read from r
func RandInt(r io.Reader, max int) (int, error) {
	if max < 0 {
		return 0, fmt.Errorf("invalid bound %d", max)
	}
	n, err := rand.Int(r, big.NewInt(int64(max)+1))
	if err != nil {
		return 0, err
	}
	return int(n.Int64()), nil
}
