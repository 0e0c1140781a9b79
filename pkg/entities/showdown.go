package entities

import "time"

// ShowdownHand is one player's revealed and evaluated hand
type ShowdownHand struct {
	AccountID    string       `json:"account_id"`
	Status       PlayerStatus `json:"status"`
	Cards        []Card       `json:"cards"`
	Category     int          `json:"category"`
	CategoryName string       `json:"category_name"`
	Tiebreak     []Rank       `json:"tiebreak"`
}

// ShowdownRecord is the off-chain evaluation of a finished game. Winners is
// informational; the ledger remains authoritative for settlement.
type ShowdownRecord struct {
	ID             string         `json:"id"`
	GameID         uint64         `json:"game_id"`
	RoomID         string         `json:"room_id"`
	CommunityCards []Card         `json:"community_cards"`
	Hands          []ShowdownHand `json:"hands"`
	Winners        []string       `json:"winners"`
	LedgerWinners  []string       `json:"ledger_winners,omitempty"`
	Agrees         bool           `json:"agrees"`
	EvaluatedAt    time.Time      `json:"evaluated_at"`
}

// Disagrees reports whether both sides named winners and they differ.
// Records with too few known cards to evaluate never disagree.
func (r *ShowdownRecord) Disagrees() bool {
	return !r.Agrees && len(r.LedgerWinners) > 0 && len(r.Winners) > 0
}
