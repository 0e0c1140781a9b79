package mapping

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fadedpez/cardvault/internal/types"
	"github.com/fadedpez/cardvault/pkg/cards"
	"github.com/fadedpez/cardvault/pkg/entities"
	mappingRepo "github.com/fadedpez/cardvault/pkg/repositories/mapping"
)

// MockRepository is a mock implementation of the mapping Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetMapping(ctx context.Context, gameID uint64) (*entities.CardMapping, error) {
	args := m.Called(ctx, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.CardMapping), args.Error(1)
}

func (m *MockRepository) InsertMapping(ctx context.Context, mapping *entities.CardMapping) error {
	args := m.Called(ctx, mapping)
	return args.Error(0)
}

func (m *MockRepository) Close() error {
	return m.Called().Error(0)
}

type failingGenerator struct{}

func (failingGenerator) Generate() ([entities.DeckSize]entities.Card, error) {
	return [entities.DeckSize]entities.Card{}, errors.New("entropy exhausted")
}

type ServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	repo    *mappingRepo.MemoryRepository
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func (s *ServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = mappingRepo.NewMemoryRepository()
	s.service = NewService(s.repo)
}

func (s *ServiceTestSuite) TestGetOrCreateIsIdempotent() {
	first, created, err := s.service.GetOrCreate(s.ctx, 42)
	s.Require().NoError(err)
	s.True(created)
	s.NoError(first.Validate())

	for i := 0; i < 5; i++ {
		again, created, err := s.service.GetOrCreate(s.ctx, 42)
		s.Require().NoError(err)
		s.False(created)
		s.Equal(first.Cards, again.Cards)
	}
	s.Equal(1, s.repo.Count())
}

func (s *ServiceTestSuite) TestGamesGetIndependentMappings() {
	a, _, err := s.service.GetOrCreate(s.ctx, 1)
	s.Require().NoError(err)
	b, _, err := s.service.GetOrCreate(s.ctx, 2)
	s.Require().NoError(err)

	s.NotEqual(a.Cards, b.Cards)
}

func (s *ServiceTestSuite) TestConcurrentFirstAccessConverges() {
	const callers = 16
	var wg sync.WaitGroup
	mappings := make([]*entities.CardMapping, callers)
	createdFlags := make([]bool, callers)
	errs := make([]error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			mappings[i], createdFlags[i], errs[i] = s.service.GetOrCreate(s.ctx, 7)
		}(i)
	}
	wg.Wait()

	created := 0
	for i := 0; i < callers; i++ {
		s.Require().NoError(errs[i])
		s.Equal(mappings[0].Cards, mappings[i].Cards)
		if createdFlags[i] {
			created++
		}
	}
	s.Equal(1, created)
}

func (s *ServiceTestSuite) TestLostRaceReturnsStoredMapping() {
	repo := new(MockRepository)
	deck, err := cards.NewGenerator().Generate()
	s.Require().NoError(err)
	winner := &entities.CardMapping{GameID: 9, Cards: deck}

	repo.On("GetMapping", s.ctx, uint64(9)).Return(nil, mappingRepo.ErrMappingNotFound).Once()
	repo.On("InsertMapping", s.ctx, mock.AnythingOfType("*entities.CardMapping")).Return(mappingRepo.ErrMappingExists).Once()
	repo.On("GetMapping", s.ctx, uint64(9)).Return(winner, nil).Once()

	mapping, created, err := NewService(repo).GetOrCreate(s.ctx, 9)
	s.Require().NoError(err)
	s.False(created)
	s.Equal(winner.Cards, mapping.Cards)
	repo.AssertExpectations(s.T())
}

func (s *ServiceTestSuite) TestStorageFailureIsInternal() {
	repo := new(MockRepository)
	repo.On("GetMapping", s.ctx, uint64(3)).Return(nil, errors.New("disk unreadable"))

	_, _, err := NewService(repo).GetOrCreate(s.ctx, 3)
	s.Error(err)
	s.Equal(types.ErrInternal, types.KindOf(err))

	_, err = NewService(repo).Get(s.ctx, 3)
	s.Equal(types.ErrInternal, types.KindOf(err))
}

func (s *ServiceTestSuite) TestGeneratorFailureStoresNothing() {
	service := NewServiceWithGenerator(s.repo, failingGenerator{})

	_, _, err := service.GetOrCreate(s.ctx, 4)
	s.Error(err)
	s.Equal(types.ErrInternal, types.KindOf(err))
	s.Zero(s.repo.Count())
}

func (s *ServiceTestSuite) TestGetDoesNotCreate() {
	_, err := s.service.Get(s.ctx, 11)
	s.True(types.Is(err, types.ErrGameMappingNotFound))
	s.Zero(s.repo.Count())

	created, _, err := s.service.GetOrCreate(s.ctx, 11)
	s.Require().NoError(err)

	got, err := s.service.Get(s.ctx, 11)
	s.Require().NoError(err)
	s.Equal(created.Cards, got.Cards)
}
