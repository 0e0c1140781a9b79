package ledger

import (
	"context"
	"sync"

	"github.com/fadedpez/cardvault/pkg/entities"
)

// MemoryLedger is an in-process ledger used for development and tests
type MemoryLedger struct {
	games   map[uint64]*entities.Game
	current map[string]uint64
	mu      sync.RWMutex
}

// NewMemoryLedger creates an empty in-memory ledger
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		games:   make(map[uint64]*entities.Game),
		current: make(map[string]uint64),
	}
}

// PutGame stores or replaces a game. A game with a room becomes that room's
// current game.
func (l *MemoryLedger) PutGame(game *entities.Game) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.games[game.ID] = cloneGame(game)
	if game.RoomID != "" {
		l.current[game.RoomID] = game.ID
	}
}

// GetGame returns the game with the given id
func (l *MemoryLedger) GetGame(ctx context.Context, gameID uint64) (*entities.Game, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	game, exists := l.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}
	return cloneGame(game), nil
}

// GetCurrentGame returns the most recently stored game of a room
func (l *MemoryLedger) GetCurrentGame(ctx context.Context, roomID string) (*entities.Game, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	gameID, exists := l.current[roomID]
	if !exists {
		return nil, ErrGameNotFound
	}
	return cloneGame(l.games[gameID]), nil
}

func cloneGame(game *entities.Game) *entities.Game {
	clone := *game
	clone.CommunityCards = append([]entities.CardID(nil), game.CommunityCards...)
	clone.Winners = append([]string(nil), game.Winners...)
	clone.Participants = make([]entities.Participant, len(game.Participants))
	for i, p := range game.Participants {
		p.Hole = append([]entities.CardID(nil), p.Hole...)
		clone.Participants[i] = p
	}
	return &clone
}
