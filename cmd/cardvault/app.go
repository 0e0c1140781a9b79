package main

import (
	"database/sql"
	"fmt"

	"github.com/fadedpez/cardvault/internal/config"
	"github.com/fadedpez/cardvault/internal/logging"
	"github.com/fadedpez/cardvault/pkg/identity"
	"github.com/fadedpez/cardvault/pkg/ledger"
	mappingRepo "github.com/fadedpez/cardvault/pkg/repositories/mapping"
	"github.com/fadedpez/cardvault/pkg/repositories/showdown"
	mappingService "github.com/fadedpez/cardvault/pkg/services/mapping"
	"github.com/fadedpez/cardvault/pkg/services/reveal"
)

// app holds the wired components of a running instance
type app struct {
	cfg       *config.Config
	ledger    ledger.Client
	mappings  *mappingService.Service
	reveals   *reveal.Service
	showdowns showdown.Repository

	mappingStore mappingRepo.Repository
}

// newApp wires storage, ledger access and services from the configuration
func newApp(cfg *config.Config) (*app, error) {
	logger := logging.Default
	a := &app{cfg: cfg}

	var (
		base mappingRepo.Repository
		db   *sql.DB
		err  error
	)
	switch cfg.StorageType {
	case config.StorageSQLite:
		logger.Info("Initializing SQLite storage at %s", cfg.DBPath)
		db, err = mappingRepo.OpenDatabase(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		base = mappingRepo.NewSQLiteRepositoryFromDB(db)
		a.showdowns = showdown.NewSQLiteRepository(db)
	default:
		logger.Warn("Using in-memory storage, mappings are lost on restart")
		base = mappingRepo.NewMemoryRepository()
		a.showdowns = showdown.NewMemoryRepository()
	}

	a.mappingStore, err = mappingRepo.NewCachedRepository(base, cfg.MappingCacheSize)
	if err != nil {
		base.Close()
		return nil, err
	}

	if cfg.ElasticsearchURL != "" {
		esConfig := showdown.DefaultElasticsearchConfig()
		esConfig.URL = cfg.ElasticsearchURL
		esConfig.Username = cfg.ElasticsearchUsername
		esConfig.Password = cfg.ElasticsearchPassword
		esConfig.IndexPrefix = cfg.ElasticsearchIndex

		esRepo, err := showdown.NewElasticsearchRepository(a.showdowns, esConfig)
		if err != nil {
			// The local archive keeps working without search
			logger.Warn("Elasticsearch unavailable, showdowns are stored locally only: %v", err)
		} else {
			a.showdowns = esRepo
			logger.Info("Indexing showdowns in Elasticsearch at %s", cfg.ElasticsearchURL)
		}
	}

	if cfg.LedgerURL == "" {
		logger.Warn("LEDGER_URL not set, using an empty in-memory ledger")
		a.ledger = ledger.NewMemoryLedger()
	} else {
		client, err := ledger.NewAptosClient(ledger.AptosConfig{
			NodeURL:         cfg.LedgerURL,
			ContractAddress: cfg.ContractAddress,
		})
		if err != nil {
			a.Close()
			return nil, err
		}
		a.ledger = client
	}

	a.mappings = mappingService.NewService(a.mappingStore)
	a.reveals = reveal.NewService(a.ledger, a.mappings, identity.NewVerifier(), reveal.Options{
		VerifyCommunityCards: cfg.VerifyCommunityCards,
		AllowFoldedReveal:    cfg.AllowFoldedReveal,
	})
	return a, nil
}

// Close releases storage. The showdown store shares the mapping database, so it goes first.
func (a *app) Close() {
	if a.showdowns != nil {
		if err := a.showdowns.Close(); err != nil {
			logging.Default.Error("Error closing showdown store: %v", err)
		}
	}
	if a.mappingStore != nil {
		if err := a.mappingStore.Close(); err != nil {
			logging.Default.Error("Error closing mapping store: %v", err)
		}
	}
}
