package showdown

import (
	"context"
	"sort"
	"sync"

	"github.com/fadedpez/cardvault/pkg/entities"
)

// MemoryRepository implements Repository using in-memory storage
type MemoryRepository struct {
	records map[uint64]*entities.ShowdownRecord
	mu      sync.RWMutex
}

// NewMemoryRepository creates a new in-memory showdown repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		records: make(map[uint64]*entities.ShowdownRecord),
	}
}

// SaveShowdown creates or replaces the record of a game
func (r *MemoryRepository) SaveShowdown(ctx context.Context, record *entities.ShowdownRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	recordCopy := *record
	r.records[record.GameID] = &recordCopy
	return nil
}

// GetShowdown retrieves the record of a game
func (r *MemoryRepository) GetShowdown(ctx context.Context, gameID uint64) (*entities.ShowdownRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, exists := r.records[gameID]
	if !exists {
		return nil, ErrShowdownNotFound
	}

	recordCopy := *record
	return &recordCopy, nil
}

// ListDisagreements returns the most recent disagreeing records first
func (r *MemoryRepository) ListDisagreements(ctx context.Context, limit int) ([]*entities.ShowdownRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*entities.ShowdownRecord, 0)
	for _, record := range r.records {
		if !record.Disagrees() {
			continue
		}
		recordCopy := *record
		result = append(result, &recordCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].EvaluatedAt.After(result[j].EvaluatedAt)
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// Close is a no-op for the memory repository
func (r *MemoryRepository) Close() error {
	return nil
}
