package mapping

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fadedpez/cardvault/internal/logging"
	"github.com/fadedpez/cardvault/internal/types"
	"github.com/fadedpez/cardvault/pkg/cards"
	"github.com/fadedpez/cardvault/pkg/entities"
	mappingRepo "github.com/fadedpez/cardvault/pkg/repositories/mapping"
)

// Generator produces a fresh secret deck order
type Generator interface {
	Generate() ([entities.DeckSize]entities.Card, error)
}

// Service owns the lifecycle of per-game card mappings
type Service struct {
	repo      mappingRepo.Repository
	generator Generator
	logger    *logging.Logger
}

// NewService creates a new mapping service backed by the secure card generator
func NewService(repo mappingRepo.Repository) *Service {
	return NewServiceWithGenerator(repo, cards.NewGenerator())
}

// NewServiceWithGenerator creates a mapping service with a custom generator
func NewServiceWithGenerator(repo mappingRepo.Repository, generator Generator) *Service {
	return &Service{
		repo:      repo,
		generator: generator,
		logger:    logging.Default,
	}
}

// SetLogger replaces the service logger
func (s *Service) SetLogger(logger *logging.Logger) {
	s.logger = logger
}

// GetOrCreate returns the mapping for a game, generating and storing one on
// first access. When two callers race, exactly one insert wins and both return
// the stored mapping.
func (s *Service) GetOrCreate(ctx context.Context, gameID uint64) (*entities.CardMapping, bool, error) {
	mapping, err := s.repo.GetMapping(ctx, gameID)
	if err == nil {
		return mapping, false, nil // Mapping exists
	}

	if !errors.Is(err, mappingRepo.ErrMappingNotFound) {
		return nil, false, types.WrapError(types.ErrInternal, fmt.Sprintf("reading mapping for game %d", gameID), err)
	}

	deck, err := s.generator.Generate()
	if err != nil {
		return nil, false, types.WrapError(types.ErrInternal, "generating card mapping", err)
	}

	newMapping := &entities.CardMapping{
		GameID:    gameID,
		Cards:     deck,
		CreatedAt: time.Now().UTC(),
	}

	err = s.repo.InsertMapping(ctx, newMapping)
	if err == nil {
		s.logger.Info("Created card mapping for game %d", gameID)
		return newMapping, true, nil
	}

	if !errors.Is(err, mappingRepo.ErrMappingExists) {
		return nil, false, types.WrapError(types.ErrInternal, fmt.Sprintf("storing mapping for game %d", gameID), err)
	}

	// Lost the race; the stored mapping is authoritative
	s.logger.Debug("Mapping for game %d created concurrently, using stored mapping", gameID)
	mapping, err = s.repo.GetMapping(ctx, gameID)
	if err != nil {
		return nil, false, types.WrapError(types.ErrInternal, fmt.Sprintf("reading mapping for game %d after conflict", gameID), err)
	}
	return mapping, false, nil
}

// Get returns an existing mapping without creating one
func (s *Service) Get(ctx context.Context, gameID uint64) (*entities.CardMapping, error) {
	mapping, err := s.repo.GetMapping(ctx, gameID)
	if err == nil {
		return mapping, nil
	}

	if errors.Is(err, mappingRepo.ErrMappingNotFound) {
		return nil, types.Errorf(types.ErrGameMappingNotFound, "no card mapping for game %d", gameID)
	}
	return nil, types.WrapError(types.ErrInternal, fmt.Sprintf("reading mapping for game %d", gameID), err)
}
