package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fadedpez/cardvault/internal/config"
	"github.com/fadedpez/cardvault/pkg/entities"
	"github.com/fadedpez/cardvault/pkg/ledger"
	"github.com/fadedpez/cardvault/pkg/repositories/showdown"
)

func TestNewAppInMemory(t *testing.T) {
	a, err := newApp(&config.Config{StorageType: config.StorageMemory, MappingCacheSize: 8})
	require.NoError(t, err)
	defer a.Close()

	assert.IsType(t, &ledger.MemoryLedger{}, a.ledger)
	assert.IsType(t, &showdown.MemoryRepository{}, a.showdowns)

	created, err := a.reveals.GenerateMapping(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, created)
}

func TestNewAppSQLitePersistsMappings(t *testing.T) {
	cfg := &config.Config{
		StorageType:      config.StorageSQLite,
		DBPath:           filepath.Join(t.TempDir(), "cardvault.db"),
		MappingCacheSize: 8,
	}

	a, err := newApp(cfg)
	require.NoError(t, err)
	first, created, err := a.mappings.GetOrCreate(context.Background(), 5)
	require.NoError(t, err)
	require.True(t, created)
	require.NoError(t, a.showdowns.SaveShowdown(context.Background(), &entities.ShowdownRecord{ID: "r", GameID: 5, Agrees: true}))
	a.Close()

	reopened, err := newApp(cfg)
	require.NoError(t, err)
	defer reopened.Close()

	second, created, err := reopened.mappings.GetOrCreate(context.Background(), 5)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.Cards, second.Cards)

	record, err := reopened.showdowns.GetShowdown(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "r", record.ID)
}

func TestNewAppAptosLedger(t *testing.T) {
	a, err := newApp(&config.Config{
		StorageType:      config.StorageMemory,
		MappingCacheSize: 8,
		LedgerURL:        "http://127.0.0.1:1",
		ContractAddress:  "0x1",
	})
	require.NoError(t, err)
	defer a.Close()

	assert.IsType(t, &ledger.AptosClient{}, a.ledger)
}

func TestMigrateCommand(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "cardvault.db")

	out, err := runRoot(t, "migrate", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Applied 2 migrations")

	out, err = runRoot(t, "migrate", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Applied 0 migrations")
}
