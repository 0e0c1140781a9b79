package mapping

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru"

	"github.com/fadedpez/cardvault/pkg/entities"
)

// CachedRepository keeps recently used mappings in an LRU cache in front of
// another Repository. Mappings never change once stored, so cached entries
// cannot go stale.
type CachedRepository struct {
	base  Repository
	cache *lru.Cache
}

// NewCachedRepository wraps base with an LRU cache holding up to size mappings
func NewCachedRepository(base Repository, size int) (*CachedRepository, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("error creating mapping cache: %w", err)
	}
	return &CachedRepository{
		base:  base,
		cache: cache,
	}, nil
}

// GetMapping returns the cached mapping or reads it through from the base repository
func (r *CachedRepository) GetMapping(ctx context.Context, gameID uint64) (*entities.CardMapping, error) {
	if cached, ok := r.cache.Get(gameID); ok {
		mappingCopy := *cached.(*entities.CardMapping)
		return &mappingCopy, nil
	}

	mapping, err := r.base.GetMapping(ctx, gameID)
	if err != nil {
		return nil, err
	}

	r.store(mapping)
	return mapping, nil
}

// InsertMapping inserts through to the base repository and caches on success
func (r *CachedRepository) InsertMapping(ctx context.Context, mapping *entities.CardMapping) error {
	if err := r.base.InsertMapping(ctx, mapping); err != nil {
		return err
	}

	r.store(mapping)
	return nil
}

// Len returns the number of cached mappings
func (r *CachedRepository) Len() int {
	return r.cache.Len()
}

// Close purges the cache and closes the base repository
func (r *CachedRepository) Close() error {
	r.cache.Purge()
	return r.base.Close()
}

func (r *CachedRepository) store(mapping *entities.CardMapping) {
	mappingCopy := *mapping
	r.cache.Add(mapping.GameID, &mappingCopy)
}
