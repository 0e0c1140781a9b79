package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/fadedpez/cardvault/pkg/entities"
)

// GameID is a ledger game id. Clients send it either as a JSON number or as
// a decimal string, since u64 values overflow JavaScript numbers.
type GameID uint64

// UnmarshalJSON implements json.Unmarshaler
func (g *GameID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		data = []byte(s)
	}
	v, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid game id %q", string(data))
	}
	*g = GameID(v)
	return nil
}

// CommunityRequest asks for board cards
type CommunityRequest struct {
	GameID      *GameID           `json:"gameId"`
	Identifiers []entities.CardID `json:"identifiers"`
}

// PrivateRequest asks for the caller's hole cards
type PrivateRequest struct {
	GameID    *GameID `json:"gameId"`
	PublicKey string  `json:"publicKey"`
	Message   string  `json:"message"`
	Signature string  `json:"signature"`

	// Field names used by older web clients
	UserPubKey        string `json:"userPubKey,omitempty"`
	UserSignedMessage string `json:"userSignedMessage,omitempty"`
}

func (r *PrivateRequest) normalize() {
	if r.PublicKey == "" {
		r.PublicKey = r.UserPubKey
	}
	if r.Signature == "" {
		r.Signature = r.UserSignedMessage
	}
}

// GameRequest names a single game
type GameRequest struct {
	GameID *GameID `json:"gameId"`
}

// CardsResponse carries revealed cards in request order
type CardsResponse struct {
	Cards []entities.Card `json:"cards"`
}

// GenerateResponse reports whether a mapping was created. It never carries cards.
type GenerateResponse struct {
	GameID  uint64 `json:"gameId,string"`
	Created bool   `json:"created"`
}

// HealthResponse is returned by the health check
type HealthResponse struct {
	Status string `json:"status"`
}
