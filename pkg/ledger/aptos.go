package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aptos-labs/aptos-go-sdk"
	"github.com/aptos-labs/aptos-go-sdk/bcs"

	"github.com/fadedpez/cardvault/pkg/entities"
)

const (
	moduleName            = "poker_manager"
	getGameByIDFunction   = "get_game_by_id"
	getRoomGameFunction   = "get_current_game_for_room"
	defaultRequestTimeout = 10 * time.Second
)

// AptosConfig holds the settings of an Aptos fullnode client
type AptosConfig struct {
	// NodeURL is the fullnode REST endpoint, with or without the /v1 suffix
	NodeURL         string
	ContractAddress string
	HTTPClient      *http.Client
}

// AptosClient reads games through the view functions of the poker contract
type AptosClient struct {
	client *aptos.Client
	module aptos.ModuleId
}

// NewAptosClient creates a client for the fullnode REST API at config.NodeURL
func NewAptosClient(config AptosConfig) (*AptosClient, error) {
	if config.NodeURL == "" {
		return nil, fmt.Errorf("aptos node url is required")
	}
	if config.ContractAddress == "" {
		return nil, fmt.Errorf("contract address is required")
	}

	var contract aptos.AccountAddress
	if err := contract.ParseStringRelaxed(config.ContractAddress); err != nil {
		return nil, fmt.Errorf("invalid contract address %q: %w", config.ContractAddress, err)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultRequestTimeout}
	}

	nodeURL := strings.TrimSuffix(config.NodeURL, "/")
	if !strings.HasSuffix(nodeURL, "/v1") {
		nodeURL += "/v1"
	}

	client, err := aptos.NewClient(aptos.NetworkConfig{Name: "custom", NodeUrl: nodeURL}, httpClient)
	if err != nil {
		return nil, fmt.Errorf("error creating aptos client: %w", err)
	}

	return &AptosClient{
		client: client,
		module: aptos.ModuleId{Address: contract, Name: moduleName},
	}, nil
}

// GetGame returns the game with the given id
func (c *AptosClient) GetGame(ctx context.Context, gameID uint64) (*entities.Game, error) {
	return c.viewGame(ctx, getGameByIDFunction, gameID)
}

// GetCurrentGame returns the game currently running in a room
func (c *AptosClient) GetCurrentGame(ctx context.Context, roomID string) (*entities.Game, error) {
	room, err := strconv.ParseUint(roomID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid room id %q: %w", roomID, err)
	}
	return c.viewGame(ctx, getRoomGameFunction, room)
}

type apiError struct {
	Message   string `json:"message"`
	ErrorCode string `json:"error_code"`
}

// viewGame calls a view function taking a single u64. The SDK call takes no
// context, so cancellation is only observed before the request starts and the
// HTTP client timeout bounds the call itself.
func (c *AptosClient) viewGame(ctx context.Context, function string, argument uint64) (*entities.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	arg, err := bcs.SerializeU64(argument)
	if err != nil {
		return nil, fmt.Errorf("error encoding %s argument: %w", function, err)
	}

	values, err := c.client.View(&aptos.ViewPayload{
		Module:   c.module,
		Function: function,
		ArgTypes: []aptos.TypeTag{},
		Args:     [][]byte{arg},
	})
	if err != nil {
		return nil, viewError(function, err)
	}

	payload, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("error re-encoding %s result: %w", function, err)
	}
	return decodeViewResult(payload)
}

// viewError maps fullnode failures onto ErrGameNotFound where the game is missing
func viewError(function string, err error) error {
	var httpErr *aptos.HttpError
	if !errors.As(err, &httpErr) {
		return fmt.Errorf("error calling %s: %w", function, err)
	}

	if httpErr.StatusCode == http.StatusNotFound {
		return ErrGameNotFound
	}

	var apiErr apiError
	if json.Unmarshal(httpErr.Body, &apiErr) == nil && apiErr.Message != "" {
		// Move aborts when the requested game does not exist
		if strings.Contains(apiErr.Message, "ABORTED") || apiErr.ErrorCode == "resource_not_found" {
			return ErrGameNotFound
		}
		return fmt.Errorf("%s failed with status %d: %s", function, httpErr.StatusCode, apiErr.Message)
	}
	return fmt.Errorf("%s failed with status %d", function, httpErr.StatusCode)
}

// decodeViewResult decodes the first return value of a view call. Both a bare
// struct and a Move Option ({"vec": [...]}) are accepted.
func decodeViewResult(payload []byte) (*entities.Game, error) {
	var values []json.RawMessage
	if err := json.Unmarshal(payload, &values); err != nil {
		return nil, fmt.Errorf("error decoding view response: %w", err)
	}
	if len(values) == 0 || string(values[0]) == "null" {
		return nil, ErrGameNotFound
	}

	raw := values[0]
	var option struct {
		Vec []json.RawMessage `json:"vec"`
	}
	if err := json.Unmarshal(raw, &option); err == nil && option.Vec != nil {
		if len(option.Vec) == 0 {
			return nil, ErrGameNotFound
		}
		raw = option.Vec[0]
	}

	var wire wireGame
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("error decoding game: %w", err)
	}
	return wire.toEntity()
}
