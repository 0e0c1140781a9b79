// Package holdem ranks Texas Hold'em hands. Evaluation is pure: the same cards
// always produce the same category and tiebreak keys.
package holdem

import (
	"fmt"

	"github.com/fadedpez/cardvault/pkg/entities"
)

// Category is the class of a five-card hand, ordered from weakest to strongest
type Category int

const (
	HighCard Category = iota + 1
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

var categoryNames = map[Category]string{
	HighCard:      "High Card",
	OnePair:       "One Pair",
	TwoPair:       "Two Pair",
	ThreeOfAKind:  "Three of a Kind",
	Straight:      "Straight",
	Flush:         "Flush",
	FullHouse:     "Full House",
	FourOfAKind:   "Four of a Kind",
	StraightFlush: "Straight Flush",
}

// String returns the display name of the category
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// Bounds on the number of cards Evaluate accepts
const (
	MinCards = 5
	MaxCards = 7
)

// HandEvaluation is the strength of the best five-card hand within a set of
// cards. Two evaluations compare by Category, then Tiebreak lexicographically.
type HandEvaluation struct {
	Category     Category        `json:"category"`
	Tiebreak     []entities.Rank `json:"tiebreak"`
	BestHighCard entities.Rank   `json:"best_high_card"`
}

// rankSet is a bitmask over ranks, bit r set when rank r is present
type rankSet uint16

func (s rankSet) has(r entities.Rank) bool {
	return s&(1<<uint(r)) != 0
}

// descending lists the present ranks from highest to lowest, skipping the excluded ones
func (s rankSet) descending(limit int, exclude ...entities.Rank) []entities.Rank {
	ranks := make([]entities.Rank, 0, limit)
	for r := entities.RankAce; r >= entities.RankTwo && len(ranks) < limit; r-- {
		if !s.has(r) || containsRank(exclude, r) {
			continue
		}
		ranks = append(ranks, r)
	}
	return ranks
}

// straightHigh returns the top rank of the highest straight in the set. The
// ace also plays below the two, making five the top of the wheel.
func (s rankSet) straightHigh() (entities.Rank, bool) {
	for high := entities.RankAce; high >= entities.RankFive; high-- {
		complete := true
		for r := high; r > high-5; r-- {
			present := s.has(r)
			if r < entities.RankTwo {
				present = s.has(entities.RankAce)
			}
			if !present {
				complete = false
				break
			}
		}
		if complete {
			return high, true
		}
	}
	return 0, false
}

// Evaluate ranks between five and seven distinct cards by their best five-card hand
func Evaluate(cards []entities.Card) (HandEvaluation, error) {
	if len(cards) < MinCards || len(cards) > MaxCards {
		return HandEvaluation{}, fmt.Errorf("hand evaluation needs %d to %d cards, got %d", MinCards, MaxCards, len(cards))
	}

	var (
		seen       [entities.DeckSize]bool
		rankCounts [13]int
		present    rankSet
		bySuit     [4]rankSet
		suitCounts [4]int
	)

	for _, card := range cards {
		idx, err := card.Index()
		if err != nil {
			return HandEvaluation{}, err
		}
		if seen[idx] {
			return HandEvaluation{}, fmt.Errorf("duplicate card %s", card)
		}
		seen[idx] = true

		rank, _ := card.Value.Rank()
		suit, _ := card.Suit.Index()
		rankCounts[rank]++
		present |= 1 << uint(rank)
		bySuit[suit] |= 1 << uint(rank)
		suitCounts[suit]++
	}

	eval := HandEvaluation{BestHighCard: present.descending(1)[0]}

	flushSuit := -1
	for suit, count := range suitCounts {
		if count >= 5 {
			flushSuit = suit
		}
	}

	if flushSuit >= 0 {
		if high, ok := bySuit[flushSuit].straightHigh(); ok {
			eval.Category = StraightFlush
			eval.Tiebreak = []entities.Rank{high}
			return eval, nil
		}
	}

	// Rank groups, each ordered high to low
	var quads, trips, pairs []entities.Rank
	for r := entities.RankAce; r >= entities.RankTwo; r-- {
		switch rankCounts[r] {
		case 4:
			quads = append(quads, r)
		case 3:
			trips = append(trips, r)
		case 2:
			pairs = append(pairs, r)
		}
	}

	switch {
	case len(quads) > 0:
		eval.Category = FourOfAKind
		eval.Tiebreak = append([]entities.Rank{quads[0]}, present.descending(1, quads[0])...)

	case len(trips) > 0 && (len(trips) > 1 || len(pairs) > 0):
		// A second set of trips plays as the pair
		pair := entities.Rank(-1)
		if len(trips) > 1 {
			pair = trips[1]
		}
		if len(pairs) > 0 && pairs[0] > pair {
			pair = pairs[0]
		}
		eval.Category = FullHouse
		eval.Tiebreak = []entities.Rank{trips[0], pair}

	case flushSuit >= 0:
		eval.Category = Flush
		eval.Tiebreak = bySuit[flushSuit].descending(5)

	default:
		if high, ok := present.straightHigh(); ok {
			eval.Category = Straight
			eval.Tiebreak = []entities.Rank{high}
			return eval, nil
		}

		switch {
		case len(trips) > 0:
			eval.Category = ThreeOfAKind
			eval.Tiebreak = append([]entities.Rank{trips[0]}, present.descending(2, trips[0])...)
		case len(pairs) > 1:
			eval.Category = TwoPair
			eval.Tiebreak = append([]entities.Rank{pairs[0], pairs[1]}, present.descending(1, pairs[0], pairs[1])...)
		case len(pairs) == 1:
			eval.Category = OnePair
			eval.Tiebreak = append([]entities.Rank{pairs[0]}, present.descending(3, pairs[0])...)
		default:
			eval.Category = HighCard
			eval.Tiebreak = present.descending(5)
		}
	}

	return eval, nil
}

// EvaluateHand ranks two hole cards together with the community cards dealt so far
func EvaluateHand(hole []entities.Card, community []entities.Card) (HandEvaluation, error) {
	cards := make([]entities.Card, 0, len(hole)+len(community))
	cards = append(cards, hole...)
	cards = append(cards, community...)
	return Evaluate(cards)
}

// Compare returns 1 when a beats b, -1 when b beats a and 0 on a tie
func Compare(a, b HandEvaluation) int {
	if a.Category != b.Category {
		if a.Category < b.Category {
			return -1
		}
		return 1
	}
	for i := 0; i < len(a.Tiebreak) && i < len(b.Tiebreak); i++ {
		if a.Tiebreak[i] == b.Tiebreak[i] {
			continue
		}
		if a.Tiebreak[i] < b.Tiebreak[i] {
			return -1
		}
		return 1
	}
	switch {
	case len(a.Tiebreak) < len(b.Tiebreak):
		return -1
	case len(a.Tiebreak) > len(b.Tiebreak):
		return 1
	}
	return 0
}

func containsRank(ranks []entities.Rank, r entities.Rank) bool {
	for _, candidate := range ranks {
		if candidate == r {
			return true
		}
	}
	return false
}
