package reveal

import (
	"context"

	"github.com/fadedpez/cardvault/pkg/entities"
)

//go:generate mockgen -source=$GOFILE -destination=mock/mock.go -package=mock_reveal_service
type RevealService interface {
	RevealCommunityCards(ctx context.Context, gameID uint64, ids []entities.CardID) ([]entities.Card, error)
	RevealPlayerHand(ctx context.Context, gameID uint64, publicKeyHex string, proof Proof) ([]entities.Card, error)
	RevealShowdown(ctx context.Context, gameID uint64) (*entities.ShowdownRecord, error)
	GenerateMapping(ctx context.Context, gameID uint64) (bool, error)
}

var _ RevealService = (*Service)(nil)
