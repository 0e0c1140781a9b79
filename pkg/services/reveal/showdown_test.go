package reveal

import (
	"strings"
	"time"

	"github.com/fadedpez/cardvault/internal/types"
	"github.com/fadedpez/cardvault/pkg/entities"
	"github.com/fadedpez/cardvault/pkg/holdem"
)

// ids returns the identifiers of cards under orderedMapping
func (s *RevealServiceTestSuite) ids(notation string) []entities.CardID {
	parsed, err := entities.ParseCards(strings.Fields(notation)...)
	s.Require().NoError(err)
	out := make([]entities.CardID, len(parsed))
	for i, c := range parsed {
		idx, err := c.Index()
		s.Require().NoError(err)
		out[i] = entities.CardID(idx)
	}
	return out
}

func (s *RevealServiceTestSuite) showdownGame(gameID uint64, winners ...string) *entities.Game {
	carol := newPlayer(&s.Suite)
	return &entities.Game{
		ID:     gameID,
		RoomID: "2",
		Status: entities.GameClosed,
		Stage:  entities.StageShowdown,
		Participants: []entities.Participant{
			{AccountID: s.alice.account.Short(), Status: entities.PlayerActive, Hole: s.ids("5h 5s")},
			{AccountID: s.bob.account.String(), Status: entities.PlayerAllIn, Hole: s.ids("Kc Kd")},
			{AccountID: carol.account.String(), Status: entities.PlayerFolded, Hole: s.ids("As Ah")},
		},
		CommunityCards: s.ids("5c 6d 7h Ks 2d"),
		Winners:        winners,
	}
}

func (s *RevealServiceTestSuite) TestShowdownEvaluatesLiveHands() {
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.service.now = func() time.Time { return fixed }
	s.ledger.PutGame(s.showdownGame(60, "0x"+s.bob.account.Short()))
	s.Require().NoError(s.repo.InsertMapping(s.ctx, orderedMapping(60)))

	record, err := s.service.RevealShowdown(s.ctx, 60)
	s.Require().NoError(err)

	s.NotEmpty(record.ID)
	s.Equal(uint64(60), record.GameID)
	s.Equal("2", record.RoomID)
	s.Equal(fixed, record.EvaluatedAt)
	s.Len(record.CommunityCards, 5)

	s.Require().Len(record.Hands, 2, "folded hands stay hidden")
	s.Equal(s.alice.account.String(), record.Hands[0].AccountID)
	s.Equal(int(holdem.ThreeOfAKind), record.Hands[0].Category)
	s.Equal("Three of a Kind", record.Hands[0].CategoryName)
	s.Equal(s.bob.account.String(), record.Hands[1].AccountID)
	s.Equal(entities.PlayerAllIn, record.Hands[1].Status)

	s.Equal([]string{s.bob.account.String()}, record.Winners)
	s.True(record.Agrees)
}

func (s *RevealServiceTestSuite) TestShowdownReportsLedgerDisagreement() {
	s.ledger.PutGame(s.showdownGame(61, s.alice.account.String()))
	s.Require().NoError(s.repo.InsertMapping(s.ctx, orderedMapping(61)))

	record, err := s.service.RevealShowdown(s.ctx, 61)
	s.Require().NoError(err)
	s.Equal([]string{s.bob.account.String()}, record.Winners)
	s.False(record.Agrees)
	s.Equal([]string{s.alice.account.String()}, record.LedgerWinners)
}

func (s *RevealServiceTestSuite) TestShowdownNotReached() {
	s.Require().NoError(s.repo.InsertMapping(s.ctx, orderedMapping(42)))

	_, err := s.service.RevealShowdown(s.ctx, 42)
	s.True(types.Is(err, types.ErrShowdownNotReached), "got %v", err)
}

func (s *RevealServiceTestSuite) TestShowdownNeedsExistingMapping() {
	s.ledger.PutGame(s.showdownGame(62))

	_, err := s.service.RevealShowdown(s.ctx, 62)
	s.True(types.Is(err, types.ErrGameMappingNotFound))
	s.Zero(s.repo.Count())
}

func (s *RevealServiceTestSuite) TestShowdownAfterEveryoneElseFolds() {
	s.ledger.PutGame(&entities.Game{
		ID:     63,
		Status: entities.GameClosed,
		Stage:  entities.StagePreFlop,
		Participants: []entities.Participant{
			{AccountID: s.alice.account.String(), Status: entities.PlayerFolded, Hole: s.ids("2c 7d")},
			{AccountID: s.bob.account.String(), Status: entities.PlayerActive, Hole: s.ids("Ac Kc")},
		},
		Winners: []string{s.bob.account.Short()},
	})
	s.Require().NoError(s.repo.InsertMapping(s.ctx, orderedMapping(63)))

	record, err := s.service.RevealShowdown(s.ctx, 63)
	s.Require().NoError(err)
	s.Require().Len(record.Hands, 1)
	s.Zero(record.Hands[0].Category, "two cards cannot be ranked")
	s.Equal([]string{s.bob.account.String()}, record.Winners)
	s.True(record.Agrees)
}

func (s *RevealServiceTestSuite) TestShowdownWithTooFewCardsIsNotADisagreement() {
	s.ledger.PutGame(&entities.Game{
		ID:     65,
		Status: entities.GameClosed,
		Stage:  entities.StagePreFlop,
		Participants: []entities.Participant{
			{AccountID: s.alice.account.String(), Status: entities.PlayerActive, Hole: s.ids("2c 7d")},
			{AccountID: s.bob.account.String(), Status: entities.PlayerAllIn, Hole: s.ids("Ac Kc")},
		},
		Winners: []string{s.bob.account.String()},
	})
	s.Require().NoError(s.repo.InsertMapping(s.ctx, orderedMapping(65)))

	record, err := s.service.RevealShowdown(s.ctx, 65)
	s.Require().NoError(err)
	s.Require().Len(record.Hands, 2)
	s.Zero(record.Hands[0].Category)
	s.Zero(record.Hands[1].Category)
	s.Empty(record.Winners)
	s.Equal([]string{s.bob.account.String()}, record.LedgerWinners)
	s.False(record.Agrees)
	s.False(record.Disagrees(), "missing cards are not a conflicting result")
}

func (s *RevealServiceTestSuite) TestShowdownSplitPot() {
	s.ledger.PutGame(&entities.Game{
		ID:     64,
		Status: entities.GameClosed,
		Stage:  entities.StageShowdown,
		Participants: []entities.Participant{
			{AccountID: s.alice.account.String(), Status: entities.PlayerActive, Hole: s.ids("2h 3h")},
			{AccountID: s.bob.account.String(), Status: entities.PlayerActive, Hole: s.ids("2s 3s")},
		},
		CommunityCards: s.ids("Tc Jd Qh Ks Ad"),
	})
	s.Require().NoError(s.repo.InsertMapping(s.ctx, orderedMapping(64)))

	record, err := s.service.RevealShowdown(s.ctx, 64)
	s.Require().NoError(err)
	s.Equal([]string{s.alice.account.String(), s.bob.account.String()}, record.Winners)
	s.False(record.Agrees, "no ledger winners to agree with")
}
