package showdown

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fadedpez/cardvault/pkg/entities"
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteRepository implements Repository on the migrated showdowns table
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository uses an open, migrated database. The caller owns the
// connection; Close does not close it.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// SaveShowdown creates or replaces the record of a game
func (r *SQLiteRepository) SaveShowdown(ctx context.Context, record *entities.ShowdownRecord) error {
	recordJSON, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("error encoding showdown: %w", err)
	}

	flagged := record.Disagrees()

	query := `
		INSERT INTO showdowns (game_id, record, agrees, evaluated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(game_id) DO UPDATE SET
			record = excluded.record,
			agrees = excluded.agrees,
			evaluated_at = excluded.evaluated_at
	`

	_, err = r.db.ExecContext(ctx, query,
		int64(record.GameID), string(recordJSON), !flagged, record.EvaluatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("error saving showdown: %w", err)
	}
	return nil
}

// GetShowdown retrieves the record of a game
func (r *SQLiteRepository) GetShowdown(ctx context.Context, gameID uint64) (*entities.ShowdownRecord, error) {
	var recordJSON string
	err := r.db.QueryRowContext(ctx, `SELECT record FROM showdowns WHERE game_id = ?`, int64(gameID)).Scan(&recordJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShowdownNotFound
		}
		return nil, fmt.Errorf("error getting showdown: %w", err)
	}

	return decodeRecord(recordJSON)
}

// ListDisagreements returns the most recent disagreeing records first
func (r *SQLiteRepository) ListDisagreements(ctx context.Context, limit int) ([]*entities.ShowdownRecord, error) {
	query := `
		SELECT record FROM showdowns
		WHERE agrees = 0
		ORDER BY evaluated_at DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing disagreements: %w", err)
	}
	defer rows.Close()

	records := make([]*entities.ShowdownRecord, 0)
	for rows.Next() {
		var recordJSON string
		if err := rows.Scan(&recordJSON); err != nil {
			return nil, fmt.Errorf("error scanning showdown: %w", err)
		}
		record, err := decodeRecord(recordJSON)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// Close is a no-op; the database belongs to the caller
func (r *SQLiteRepository) Close() error {
	return nil
}

func decodeRecord(recordJSON string) (*entities.ShowdownRecord, error) {
	var record entities.ShowdownRecord
	if err := json.Unmarshal([]byte(recordJSON), &record); err != nil {
		return nil, fmt.Errorf("error decoding showdown: %w", err)
	}
	return &record, nil
}
