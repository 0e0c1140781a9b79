package mapping

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fadedpez/cardvault/pkg/db/migrations"
	"github.com/fadedpez/cardvault/pkg/entities"
	_ "github.com/mattn/go-sqlite3"
)

const sqliteTimeFormat = "2006-01-02 15:04:05"

// SQLiteRepository implements Repository using SQLite
type SQLiteRepository struct {
	db *sql.DB
}

// OpenDatabase opens the SQLite database at dbPath and applies pending migrations
func OpenDatabase(dbPath string) (*sql.DB, error) {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("error creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	// SQLite allows a single writer; one connection serializes concurrent inserts
	db.SetMaxOpenConns(1)

	if _, err := migrations.NewMigrator(db).MigrateUp(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error migrating database: %w", err)
	}

	return db, nil
}

// NewSQLiteRepository creates a new SQLite repository at dbPath
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	db, err := OpenDatabase(dbPath)
	if err != nil {
		return nil, err
	}
	return &SQLiteRepository{db: db}, nil
}

// NewSQLiteRepositoryFromDB creates a repository on an already migrated database
func NewSQLiteRepositoryFromDB(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// GetMapping retrieves the mapping for a game
func (r *SQLiteRepository) GetMapping(ctx context.Context, gameID uint64) (*entities.CardMapping, error) {
	query := `SELECT cards, created_at FROM card_mappings WHERE game_id = ?`

	var cardsJSON string
	var createdAt time.Time

	err := r.db.QueryRowContext(ctx, query, int64(gameID)).Scan(&cardsJSON, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMappingNotFound
		}
		return nil, fmt.Errorf("error getting mapping: %w", err)
	}

	mapping := &entities.CardMapping{
		GameID:    gameID,
		CreatedAt: createdAt.UTC(),
	}
	var cards []entities.Card
	if err := json.Unmarshal([]byte(cardsJSON), &cards); err != nil {
		return nil, fmt.Errorf("error decoding mapping for game %d: %w", gameID, err)
	}
	if len(cards) != entities.DeckSize {
		return nil, fmt.Errorf("stored mapping for game %d has %d cards", gameID, len(cards))
	}
	copy(mapping.Cards[:], cards)

	if err := mapping.Validate(); err != nil {
		return nil, fmt.Errorf("stored mapping is corrupt: %w", err)
	}

	return mapping, nil
}

// InsertMapping stores a mapping if the game has none yet
func (r *SQLiteRepository) InsertMapping(ctx context.Context, mapping *entities.CardMapping) error {
	if err := mapping.Validate(); err != nil {
		return err
	}

	if mapping.CreatedAt.IsZero() {
		mapping.CreatedAt = time.Now().UTC()
	}

	cardsJSON, err := json.Marshal(mapping.Cards[:])
	if err != nil {
		return fmt.Errorf("error encoding mapping: %w", err)
	}

	query := `
		INSERT INTO card_mappings (game_id, cards, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(game_id) DO NOTHING
	`

	result, err := r.db.ExecContext(ctx, query,
		int64(mapping.GameID), string(cardsJSON), mapping.CreatedAt.Format(sqliteTimeFormat),
	)
	if err != nil {
		return fmt.Errorf("error inserting mapping: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrMappingExists
	}

	return nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
