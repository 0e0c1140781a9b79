package showdown

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/fadedpez/cardvault/internal/logging"
	"github.com/fadedpez/cardvault/pkg/entities"
)

const showdownMapping = `{
	"mappings": {
		"properties": {
			"id": { "type": "keyword" },
			"game_id": { "type": "long" },
			"room_id": { "type": "keyword" },
			"evaluated_at": { "type": "date" },
			"agrees": { "type": "boolean" },
			"winners": { "type": "keyword" },
			"ledger_winners": { "type": "keyword" },
			"community_cards": {
				"properties": {
					"suit": { "type": "keyword" },
					"value": { "type": "keyword" }
				}
			},
			"hands": {
				"type": "nested",
				"properties": {
					"account_id": { "type": "keyword" },
					"status": { "type": "keyword" },
					"category": { "type": "integer" },
					"category_name": { "type": "keyword" },
					"tiebreak": { "type": "integer" },
					"cards": {
						"properties": {
							"suit": { "type": "keyword" },
							"value": { "type": "keyword" }
						}
					}
				}
			}
		}
	},
	"settings": {
		"number_of_shards": 1,
		"number_of_replicas": 1,
		"refresh_interval": "1s"
	}
}`

// ElasticsearchConfig holds configuration options for the Elasticsearch repository
type ElasticsearchConfig struct {
	URL         string
	Username    string
	Password    string
	IndexPrefix string
	Transport   http.RoundTripper // Optional; the client default is used when nil
}

// DefaultElasticsearchConfig returns a default configuration for Elasticsearch
func DefaultElasticsearchConfig() *ElasticsearchConfig {
	return &ElasticsearchConfig{
		URL:         "http://localhost:9200",
		IndexPrefix: "cardvault",
	}
}

// ElasticsearchRepository indexes showdowns for search while keeping the base
// repository as the system of record
type ElasticsearchRepository struct {
	baseRepo Repository
	client   *elasticsearch.Client
	index    string
	logger   *logging.Logger
}

// NewElasticsearchRepository creates a new Elasticsearch repository and makes sure its index exists
func NewElasticsearchRepository(baseRepo Repository, config *ElasticsearchConfig) (*ElasticsearchRepository, error) {
	cfg := elasticsearch.Config{
		Addresses: []string{config.URL},
		Transport: config.Transport,
	}

	// Add authentication if provided
	if config.Username != "" && config.Password != "" {
		cfg.Username = config.Username
		cfg.Password = config.Password
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("error creating Elasticsearch client: %w", err)
	}

	prefix := config.IndexPrefix
	if prefix == "" {
		prefix = "cardvault"
	}

	repo := &ElasticsearchRepository{
		baseRepo: baseRepo,
		client:   client,
		index:    prefix + "_showdowns",
		logger:   logging.Default,
	}

	if err := repo.initIndex(context.Background()); err != nil {
		return nil, fmt.Errorf("error initializing index: %w", err)
	}

	return repo, nil
}

// initIndex creates the showdown index if it doesn't exist
func (r *ElasticsearchRepository) initIndex(ctx context.Context) error {
	res, err := r.client.Indices.Exists([]string{r.index}, r.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("error checking if showdown index exists: %w", err)
	}
	res.Body.Close()

	if res.StatusCode != http.StatusNotFound {
		return nil
	}

	req := esapi.IndicesCreateRequest{
		Index: r.index,
		Body:  bytes.NewReader([]byte(showdownMapping)),
	}

	res, err = req.Do(ctx, r.client)
	if err != nil {
		return fmt.Errorf("error creating showdown index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error creating showdown index: %s", res.String())
	}

	r.logger.Info("Created Elasticsearch index %s", r.index)
	return nil
}

// SaveShowdown writes to the base repository, then indexes the record under its game id
func (r *ElasticsearchRepository) SaveShowdown(ctx context.Context, record *entities.ShowdownRecord) error {
	if err := r.baseRepo.SaveShowdown(ctx, record); err != nil {
		return fmt.Errorf("error saving showdown to base repository: %w", err)
	}

	return r.IndexShowdown(ctx, record)
}

// IndexShowdown indexes a record without touching the base repository
func (r *ElasticsearchRepository) IndexShowdown(ctx context.Context, record *entities.ShowdownRecord) error {
	jsonData, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("error marshaling showdown: %w", err)
	}

	req := esapi.IndexRequest{
		Index:      r.index,
		DocumentID: strconv.FormatUint(record.GameID, 10),
		Body:       bytes.NewReader(jsonData),
		Refresh:    "true",
	}

	res, err := req.Do(ctx, r.client)
	if err != nil {
		return fmt.Errorf("error indexing showdown: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error indexing showdown: %s", res.String())
	}

	return nil
}

// GetShowdown reads from the index and falls back to the base repository
func (r *ElasticsearchRepository) GetShowdown(ctx context.Context, gameID uint64) (*entities.ShowdownRecord, error) {
	req := esapi.GetRequest{
		Index:      r.index,
		DocumentID: strconv.FormatUint(gameID, 10),
	}

	res, err := req.Do(ctx, r.client)
	if err != nil {
		r.logger.Warn("Elasticsearch unavailable for showdown %d, using base repository: %v", gameID, err)
		return r.baseRepo.GetShowdown(ctx, gameID)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return r.baseRepo.GetShowdown(ctx, gameID)
	}
	if res.IsError() {
		return nil, fmt.Errorf("error getting showdown: %s", res.String())
	}

	var doc struct {
		Found  bool                    `json:"found"`
		Source entities.ShowdownRecord `json:"_source"`
	}
	if err := json.NewDecoder(res.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("error parsing showdown document: %w", err)
	}
	if !doc.Found {
		return r.baseRepo.GetShowdown(ctx, gameID)
	}

	return &doc.Source, nil
}

// ListDisagreements searches the index for records whose winners differ from the ledger's
func (r *ElasticsearchRepository) ListDisagreements(ctx context.Context, limit int) ([]*entities.ShowdownRecord, error) {
	query := `{
		"query": {
			"bool": {
				"filter": [
					{ "term": { "agrees": false } },
					{ "exists": { "field": "ledger_winners" } },
					{ "exists": { "field": "winners" } }
				]
			}
		},
		"sort": [
			{ "evaluated_at": { "order": "desc" } }
		]
	}`

	res, err := r.client.Search(
		r.client.Search.WithContext(ctx),
		r.client.Search.WithIndex(r.index),
		r.client.Search.WithBody(bytes.NewReader([]byte(query))),
		r.client.Search.WithSize(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("error searching for disagreements: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("error searching for disagreements: %s", res.String())
	}

	var result struct {
		Hits struct {
			Hits []struct {
				Source entities.ShowdownRecord `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("error parsing disagreements: %w", err)
	}

	records := make([]*entities.ShowdownRecord, 0, len(result.Hits.Hits))
	for i := range result.Hits.Hits {
		records = append(records, &result.Hits.Hits[i].Source)
	}
	return records, nil
}

// Close closes the base repository
func (r *ElasticsearchRepository) Close() error {
	return r.baseRepo.Close()
}
