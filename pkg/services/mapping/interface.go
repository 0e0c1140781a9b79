package mapping

import (
	"context"

	"github.com/fadedpez/cardvault/pkg/entities"
)

//go:generate mockgen -source=$GOFILE -destination=mock/mock.go -package=mock_mapping_service
type MappingService interface {
	GetOrCreate(ctx context.Context, gameID uint64) (*entities.CardMapping, bool, error)
	Get(ctx context.Context, gameID uint64) (*entities.CardMapping, error)
}

var _ MappingService = (*Service)(nil)
