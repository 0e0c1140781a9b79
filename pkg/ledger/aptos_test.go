package ledger

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/fadedpez/cardvault/pkg/entities"
)

const testContract = "0x7436bbe16422c873f3d81bf1668b96ef50f2c6624a851c1a991c92de1b253b29"

// viewCall is a view request as received by the fullnode
type viewCall struct {
	contentType string
	body        []byte
}

// hasArgument reports whether the BCS payload ends with no type arguments and
// the single u64 argument v
func (c viewCall) hasArgument(v uint64) bool {
	suffix := []byte{0x00, 0x01, 0x08}
	suffix = binary.LittleEndian.AppendUint64(suffix, v)
	return bytes.HasSuffix(c.body, suffix)
}

func (c viewCall) calls(function string) bool {
	contract, _ := hex.DecodeString(testContract[2:])
	name := append([]byte{byte(len(moduleName))}, moduleName...)
	name = append(name, byte(len(function)))
	name = append(name, function...)
	return bytes.HasPrefix(c.body, append(contract, name...))
}

type AptosClientTestSuite struct {
	suite.Suite
	server   *httptest.Server
	client   *AptosClient
	mu       sync.Mutex
	requests []viewCall
	respond  func(w http.ResponseWriter, req viewCall)
}

func TestAptosClientSuite(t *testing.T) {
	suite.Run(t, new(AptosClientTestSuite))
}

func (s *AptosClientTestSuite) SetupTest() {
	s.requests = nil
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/view" {
			http.Error(w, "unexpected request", http.StatusMethodNotAllowed)
			return
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		req := viewCall{contentType: r.Header.Get("Content-Type"), body: body}

		s.mu.Lock()
		s.requests = append(s.requests, req)
		respond := s.respond
		s.mu.Unlock()
		respond(w, req)
	}))

	client, err := NewAptosClient(AptosConfig{
		NodeURL:         s.server.URL + "/",
		ContractAddress: testContract,
	})
	s.Require().NoError(err)
	s.client = client
}

func (s *AptosClientTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *AptosClientTestSuite) lastRequest() viewCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Require().NotEmpty(s.requests)
	return s.requests[len(s.requests)-1]
}

func (s *AptosClientTestSuite) setResponder(respond func(w http.ResponseWriter, req viewCall)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.respond = respond
}

func (s *AptosClientTestSuite) respondJSON(body string) {
	s.setResponder(func(w http.ResponseWriter, _ viewCall) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	})
}

func (s *AptosClientTestSuite) TestGetGameDecodesWireGame() {
	s.respondJSON(`[{
		"id": "42",
		"room_id": "3",
		"state": 2,
		"stage": "4",
		"players": [
			{"addr": "0x0a", "status": 0, "hole_cards": ["5", "17"]},
			{"addr": "0x0b", "status": 1, "hole_cards": [8, 9]},
			{"addr": "0x0c", "status": 2, "hole_cards": ["30", "31"]}
		],
		"community_cards": ["1", "2", "3", "4", "6"],
		"winners": ["0x0a"]
	}]`)

	game, err := s.client.GetGame(context.Background(), 42)
	s.Require().NoError(err)

	req := s.lastRequest()
	s.Contains(req.contentType, "bcs")
	s.True(req.calls("get_game_by_id"), "module and function of the contract")
	s.True(req.hasArgument(42))

	s.Equal(uint64(42), game.ID)
	s.Equal("3", game.RoomID)
	s.Equal(entities.GameClosed, game.Status)
	s.Equal(entities.StageShowdown, game.Stage)
	s.Equal([]entities.CardID{1, 2, 3, 4, 6}, game.CommunityCards)
	s.Equal([]string{"0x0a"}, game.Winners)
	s.Require().Len(game.Participants, 3)
	s.Equal(entities.Participant{AccountID: "0x0a", Status: entities.PlayerActive, Hole: []entities.CardID{5, 17}}, game.Participants[0])
	s.Equal(entities.PlayerFolded, game.Participants[1].Status)
	s.Equal([]entities.CardID{8, 9}, game.Participants[1].Hole)
	s.Equal(entities.PlayerAllIn, game.Participants[2].Status)
}

func (s *AptosClientTestSuite) TestGetCurrentGameUsesRoomFunction() {
	s.respondJSON(`[{"vec": [{"id": "7", "room_id": "12", "state": 1, "stage": 1, "players": [], "community_cards": ["0", "1", "2"], "winners": []}]}]`)

	game, err := s.client.GetCurrentGame(context.Background(), "12")
	s.Require().NoError(err)

	req := s.lastRequest()
	s.True(req.calls("get_current_game_for_room"))
	s.True(req.hasArgument(12))
	s.Equal(uint64(7), game.ID)
	s.Equal(entities.GameInProgress, game.Status)
	s.Equal(entities.StageFlop, game.Stage)
}

func (s *AptosClientTestSuite) TestMissingGame() {
	cases := map[string]func(w http.ResponseWriter, req viewCall){
		"empty result": func(w http.ResponseWriter, _ viewCall) {
			w.Write([]byte(`[]`))
		},
		"empty option": func(w http.ResponseWriter, _ viewCall) {
			w.Write([]byte(`[{"vec": []}]`))
		},
		"not found status": func(w http.ResponseWriter, _ viewCall) {
			w.WriteHeader(http.StatusNotFound)
		},
		"move abort": func(w http.ResponseWriter, _ viewCall) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"message": "Move abort: ABORTED 0x1", "error_code": "invalid_input"}`))
		},
	}

	for name, respond := range cases {
		s.Run(name, func() {
			s.setResponder(respond)
			_, err := s.client.GetGame(context.Background(), 404)
			s.ErrorIs(err, ErrGameNotFound)
		})
	}
}

func (s *AptosClientTestSuite) TestServerErrorIsNotGameNotFound() {
	s.setResponder(func(w http.ResponseWriter, _ viewCall) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message": "internal error", "error_code": "internal_error"}`))
	})

	_, err := s.client.GetGame(context.Background(), 1)
	s.Error(err)
	s.NotErrorIs(err, ErrGameNotFound)
	s.Contains(err.Error(), "internal error")
}

func (s *AptosClientTestSuite) TestUnknownEnumValuesFail() {
	s.respondJSON(`[{"id": "1", "room_id": "1", "state": 9, "stage": 0, "players": [], "community_cards": [], "winners": []}]`)
	_, err := s.client.GetGame(context.Background(), 1)
	s.Error(err)

	s.respondJSON(`[{"id": "1", "room_id": "1", "state": 1, "stage": 0, "players": [{"addr": "0x1", "status": 7, "hole_cards": []}], "community_cards": [], "winners": []}]`)
	_, err = s.client.GetGame(context.Background(), 1)
	s.Error(err)
}

func (s *AptosClientTestSuite) TestMalformedResponse() {
	s.respondJSON(`{"not": "an array"}`)
	_, err := s.client.GetGame(context.Background(), 1)
	s.Error(err)
	s.NotErrorIs(err, ErrGameNotFound)
}

func (s *AptosClientTestSuite) TestRoomIDMustBeNumeric() {
	s.respondJSON(`[]`)
	_, err := s.client.GetCurrentGame(context.Background(), "lobby")
	s.Error(err)
	s.NotErrorIs(err, ErrGameNotFound)
}

func (s *AptosClientTestSuite) TestCancelledContextSkipsCall() {
	s.respondJSON(`[]`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.client.GetGame(ctx, 1)
	s.ErrorIs(err, context.Canceled)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Empty(s.requests)
}

func TestNewAptosClientRequiresSettings(t *testing.T) {
	_, err := NewAptosClient(AptosConfig{ContractAddress: testContract})
	if err == nil {
		t.Fatal("expected error without node url")
	}
	_, err = NewAptosClient(AptosConfig{NodeURL: "http://localhost:8080"})
	if err == nil {
		t.Fatal("expected error without contract address")
	}
	_, err = NewAptosClient(AptosConfig{NodeURL: "http://localhost:8080", ContractAddress: "0xnothex"})
	if err == nil {
		t.Fatal("expected error for malformed contract address")
	}
}

func TestFlexUintRoundTrip(t *testing.T) {
	data, err := json.Marshal(flexUint(18446744073709551615))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"18446744073709551615"` {
		t.Fatalf("unexpected encoding %s", data)
	}

	var decoded flexUint
	if err := json.Unmarshal([]byte(`12`), &decoded); err != nil || decoded != 12 {
		t.Fatalf("decoding number: %v %d", err, decoded)
	}
	if err := json.Unmarshal([]byte(`"-1"`), &decoded); err == nil {
		t.Fatal("expected negative value to fail")
	}
}
