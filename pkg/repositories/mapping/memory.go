package mapping

import (
	"context"
	"sync"
	"time"

	"github.com/fadedpez/cardvault/pkg/entities"
)

// MemoryRepository implements Repository using in-memory storage
type MemoryRepository struct {
	mappings map[uint64]*entities.CardMapping
	mu       sync.RWMutex
}

// NewMemoryRepository creates a new in-memory mapping repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		mappings: make(map[uint64]*entities.CardMapping),
	}
}

// GetMapping retrieves the mapping for a game
func (r *MemoryRepository) GetMapping(ctx context.Context, gameID uint64) (*entities.CardMapping, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	mapping, exists := r.mappings[gameID]
	if !exists {
		return nil, ErrMappingNotFound
	}

	// Return a copy to prevent concurrent modification
	mappingCopy := *mapping
	return &mappingCopy, nil
}

// InsertMapping stores a mapping if the game has none yet
func (r *MemoryRepository) InsertMapping(ctx context.Context, mapping *entities.CardMapping) error {
	if err := mapping.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.mappings[mapping.GameID]; exists {
		return ErrMappingExists
	}

	if mapping.CreatedAt.IsZero() {
		mapping.CreatedAt = time.Now().UTC()
	}

	mappingCopy := *mapping
	r.mappings[mapping.GameID] = &mappingCopy

	return nil
}

// Count returns the number of stored mappings
func (r *MemoryRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.mappings)
}

// Close is a no-op for the memory repository
func (r *MemoryRepository) Close() error {
	return nil
}
