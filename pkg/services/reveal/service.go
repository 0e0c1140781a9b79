package reveal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fadedpez/cardvault/internal/logging"
	"github.com/fadedpez/cardvault/internal/types"
	"github.com/fadedpez/cardvault/pkg/entities"
	"github.com/fadedpez/cardvault/pkg/holdem"
	"github.com/fadedpez/cardvault/pkg/identity"
	"github.com/fadedpez/cardvault/pkg/ledger"
	mappingService "github.com/fadedpez/cardvault/pkg/services/mapping"
)

// HoleCards is the number of private cards dealt to each player
const HoleCards = 2

// Options controls reveal policy
type Options struct {
	// VerifyCommunityCards only reveals identifiers the ledger lists as dealt
	// to the board
	VerifyCommunityCards bool
	// AllowFoldedReveal lets players who are no longer Active see their hand
	AllowFoldedReveal bool
}

// DefaultOptions returns the strict reveal policy
func DefaultOptions() Options {
	return Options{
		VerifyCommunityCards: true,
		AllowFoldedReveal:    false,
	}
}

// Proof is a detached signature proving control of a public key
type Proof struct {
	Message   string
	Signature string
}

// Service turns ledger card identifiers into real cards for authorized callers
type Service struct {
	ledger   ledger.Client
	mappings mappingService.MappingService
	verifier identity.Verifier
	options  Options
	logger   *logging.Logger
	now      func() time.Time
}

// NewService creates a new reveal service
func NewService(ledgerClient ledger.Client, mappings mappingService.MappingService, verifier identity.Verifier, options Options) *Service {
	return &Service{
		ledger:   ledgerClient,
		mappings: mappings,
		verifier: verifier,
		options:  options,
		logger:   logging.Default,
		now:      time.Now,
	}
}

// SetLogger replaces the service logger
func (s *Service) SetLogger(logger *logging.Logger) {
	s.logger = logger
}

// RevealCommunityCards returns the real cards behind board identifiers, in
// request order. An empty request reveals every community card dealt so far.
func (s *Service) RevealCommunityCards(ctx context.Context, gameID uint64, ids []entities.CardID) ([]entities.Card, error) {
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, types.WrapError(types.ErrInvalidCardIdentifier, fmt.Sprintf("identifier %d", id), err)
		}
	}

	if s.options.VerifyCommunityCards || len(ids) == 0 {
		game, err := s.getGame(ctx, gameID)
		if err != nil {
			return nil, err
		}

		if len(ids) == 0 {
			ids = game.CommunityCards
			if len(ids) == 0 {
				return []entities.Card{}, nil
			}
		}

		if s.options.VerifyCommunityCards {
			for _, id := range ids {
				if !game.HasCommunityCard(id) {
					return nil, types.Errorf(types.ErrInvalidCardIdentifier, "identifier %d is not a dealt community card of game %d", id, gameID)
				}
			}
		}
	}

	mapping, err := s.mappings.Get(ctx, gameID)
	if err != nil {
		return nil, err
	}

	return reveal(mapping, ids)
}

// RevealPlayerHand returns the caller's two hole cards once the signature
// proves they own a seat in the game. The game's mapping is created on first
// use.
func (s *Service) RevealPlayerHand(ctx context.Context, gameID uint64, publicKeyHex string, proof Proof) ([]entities.Card, error) {
	if !s.verifier.VerifySignature(publicKeyHex, proof.Message, proof.Signature) {
		return nil, types.NewError(types.ErrInvalidSignature, "signature does not verify against the public key")
	}

	accountID, err := s.verifier.DeriveAccountID(publicKeyHex)
	if err != nil {
		return nil, types.WrapError(types.ErrInvalidSignature, "deriving account from public key", err)
	}

	game, err := s.getGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	participant := findParticipant(game, accountID)
	if participant == nil {
		return nil, types.Errorf(types.ErrPlayerNotInGame, "account %s is not seated in game %d", accountID.Short(), gameID)
	}

	if participant.Status != entities.PlayerActive && !s.options.AllowFoldedReveal {
		return nil, types.Errorf(types.ErrPlayerNotActive, "account %s is %s in game %d", accountID.Short(), participant.Status, gameID)
	}

	if err := validateHole(participant.Hole); err != nil {
		return nil, err
	}

	mapping, _, err := s.mappings.GetOrCreate(ctx, gameID)
	if err != nil {
		return nil, err
	}

	return reveal(mapping, participant.Hole)
}

// RevealShowdown reveals and evaluates every hand still live at the end of a
// game. The computed winners are informational; settlement stays on the ledger.
func (s *Service) RevealShowdown(ctx context.Context, gameID uint64) (*entities.ShowdownRecord, error) {
	game, err := s.getGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if !game.AtShowdown() {
		return nil, types.Errorf(types.ErrShowdownNotReached, "game %d is %s at stage %s", gameID, game.Status, game.Stage)
	}

	// A game that reached showdown already had cards revealed, so its mapping must exist
	mapping, err := s.mappings.Get(ctx, gameID)
	if err != nil {
		return nil, err
	}

	for _, id := range game.CommunityCards {
		if err := id.Validate(); err != nil {
			return nil, types.WrapError(types.ErrInvalidCardIdentifier, fmt.Sprintf("community identifier %d", id), err)
		}
	}
	community, err := reveal(mapping, game.CommunityCards)
	if err != nil {
		return nil, err
	}

	record := &entities.ShowdownRecord{
		ID:             uuid.New().String(),
		GameID:         game.ID,
		RoomID:         game.RoomID,
		CommunityCards: community,
		Hands:          []entities.ShowdownHand{},
		LedgerWinners:  game.Winners,
		EvaluatedAt:    s.now().UTC(),
	}

	var contenders []holdem.Contender
	for _, p := range game.Participants {
		if p.Status == entities.PlayerFolded {
			continue
		}
		if err := validateHole(p.Hole); err != nil {
			return nil, err
		}

		hole, err := reveal(mapping, p.Hole)
		if err != nil {
			return nil, err
		}

		hand := entities.ShowdownHand{
			AccountID: displayAccount(p.AccountID),
			Status:    p.Status,
			Cards:     hole,
		}

		// Fewer than five cards happen when everyone else folded before the river
		if len(hole)+len(community) >= holdem.MinCards {
			eval, err := holdem.EvaluateHand(hole, community)
			if err != nil {
				return nil, types.WrapError(types.ErrInternal, fmt.Sprintf("evaluating hand of %s", hand.AccountID), err)
			}
			hand.Category = int(eval.Category)
			hand.CategoryName = eval.Category.String()
			hand.Tiebreak = eval.Tiebreak
			contenders = append(contenders, holdem.Contender{PlayerID: hand.AccountID, Evaluation: eval})
		}

		record.Hands = append(record.Hands, hand)
	}

	switch {
	case len(record.Hands) == 1:
		record.Winners = []string{record.Hands[0].AccountID}
	default:
		record.Winners = holdem.DetermineWinners(contenders)
	}
	if record.Winners == nil {
		record.Winners = []string{}
	}

	// Without a computed winner there is nothing to hold against the ledger
	if len(record.Winners) == 0 {
		s.logger.Info("Showdown for game %d has too few known cards to evaluate", gameID)
		return record, nil
	}

	if len(game.Winners) > 0 {
		record.Agrees = sameAccounts(record.Winners, game.Winners)
		if !record.Agrees {
			s.logger.Warn("Showdown for game %d disagrees with ledger: computed %v, ledger %v", gameID, record.Winners, game.Winners)
		}
	}

	return record, nil
}

// GenerateMapping ensures the game has a mapping and reports whether this call created it
func (s *Service) GenerateMapping(ctx context.Context, gameID uint64) (bool, error) {
	_, created, err := s.mappings.GetOrCreate(ctx, gameID)
	if err != nil {
		return false, err
	}
	return created, nil
}

func (s *Service) getGame(ctx context.Context, gameID uint64) (*entities.Game, error) {
	game, err := s.ledger.GetGame(ctx, gameID)
	if err == nil {
		return game, nil
	}
	if errors.Is(err, ledger.ErrGameNotFound) {
		return nil, types.Errorf(types.ErrGameNotFound, "game %d does not exist on the ledger", gameID)
	}
	return nil, types.WrapError(types.ErrInternal, fmt.Sprintf("reading game %d from ledger", gameID), err)
}

// findParticipant matches by canonical account id. Ledger addresses that do
// not parse never match.
func findParticipant(game *entities.Game, accountID identity.AccountID) *entities.Participant {
	for i := range game.Participants {
		candidate, err := identity.Canonicalize(game.Participants[i].AccountID)
		if err != nil {
			continue
		}
		if candidate == accountID {
			return &game.Participants[i]
		}
	}
	return nil
}

func validateHole(hole []entities.CardID) error {
	if len(hole) != HoleCards {
		return types.Errorf(types.ErrInvalidCardIdentifier, "expected %d hole card identifiers, ledger reports %d", HoleCards, len(hole))
	}
	for _, id := range hole {
		if err := id.Validate(); err != nil {
			return types.WrapError(types.ErrInvalidCardIdentifier, fmt.Sprintf("hole identifier %d", id), err)
		}
	}
	return nil
}

func reveal(mapping *entities.CardMapping, ids []entities.CardID) ([]entities.Card, error) {
	cards := make([]entities.Card, 0, len(ids))
	for _, id := range ids {
		card, err := mapping.Reveal(id)
		if err != nil {
			return nil, types.WrapError(types.ErrInvalidCardIdentifier, fmt.Sprintf("identifier %d", id), err)
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// displayAccount renders an address in canonical form when it parses
func displayAccount(raw string) string {
	id, err := identity.Canonicalize(raw)
	if err != nil {
		return raw
	}
	return id.String()
}

// sameAccounts compares two winner lists as sets of canonical accounts
func sameAccounts(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	matched := make([]bool, len(b))
	for _, x := range a {
		found := false
		for j, y := range b {
			if !matched[j] && identity.SameAccount(x, y) {
				matched[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
