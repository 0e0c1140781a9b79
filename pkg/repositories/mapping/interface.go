package mapping

import (
	"context"
	"errors"

	"github.com/fadedpez/cardvault/pkg/entities"
)

var (
	ErrMappingNotFound = errors.New("card mapping not found")
	ErrMappingExists   = errors.New("card mapping already exists")
)

// Repository stores one immutable card mapping per game. There is no update or
// delete; the first successful insert for a game wins.
type Repository interface {
	// GetMapping retrieves the mapping for a game
	GetMapping(ctx context.Context, gameID uint64) (*entities.CardMapping, error)

	// InsertMapping stores a mapping unless one already exists for the game,
	// in which case ErrMappingExists is returned and nothing is written
	InsertMapping(ctx context.Context, mapping *entities.CardMapping) error

	// Close closes any resources used by the repository
	Close() error
}
