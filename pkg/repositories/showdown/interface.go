package showdown

import (
	"context"
	"errors"

	"github.com/fadedpez/cardvault/pkg/entities"
)

var (
	ErrShowdownNotFound = errors.New("showdown not found")
)

// Repository archives the off-chain evaluation of finished games, one record per game
type Repository interface {
	// SaveShowdown creates or replaces the record of a game
	SaveShowdown(ctx context.Context, record *entities.ShowdownRecord) error

	// GetShowdown retrieves the record of a game
	GetShowdown(ctx context.Context, gameID uint64) (*entities.ShowdownRecord, error)

	// ListDisagreements returns the most recent records whose computed winners
	// differ from the ledger's
	ListDisagreements(ctx context.Context, limit int) ([]*entities.ShowdownRecord, error)

	// Close closes any resources used by the repository
	Close() error
}
