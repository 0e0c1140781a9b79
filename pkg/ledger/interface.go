package ledger

import (
	"context"
	"errors"

	"github.com/fadedpez/cardvault/pkg/entities"
)

var (
	ErrGameNotFound = errors.New("game not found on ledger")
)

//go:generate mockgen -source=$GOFILE -destination=mock/mock.go -package=mock_ledger

// Client reads game state from the ledger. The ledger is authoritative for
// which identifiers were dealt to whom and which game ids exist.
type Client interface {
	// GetGame returns the game with the given id
	GetGame(ctx context.Context, gameID uint64) (*entities.Game, error)

	// GetCurrentGame returns the game currently running in a room
	GetCurrentGame(ctx context.Context, roomID string) (*entities.Game, error)
}
