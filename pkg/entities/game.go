package entities

import "fmt"

// GameStatus is the ledger's lifecycle state of a game
type GameStatus int

const (
	GameOpen GameStatus = iota
	GameInProgress
	GameClosed
)

var gameStatusNames = map[GameStatus]string{
	GameOpen:       "Open",
	GameInProgress: "InProgress",
	GameClosed:     "Closed",
}

// String returns the status name
func (s GameStatus) String() string {
	if name, ok := gameStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("GameStatus(%d)", int(s))
}

// GameStage is the betting street the ledger has reached
type GameStage int

const (
	StagePreFlop GameStage = iota
	StageFlop
	StageTurn
	StageRiver
	StageShowdown
)

var gameStageNames = map[GameStage]string{
	StagePreFlop:  "PreFlop",
	StageFlop:     "Flop",
	StageTurn:     "Turn",
	StageRiver:    "River",
	StageShowdown: "Showdown",
}

// String returns the stage name
func (s GameStage) String() string {
	if name, ok := gameStageNames[s]; ok {
		return name
	}
	return fmt.Sprintf("GameStage(%d)", int(s))
}

// PlayerStatus is a participant's standing in the current hand
type PlayerStatus int

const (
	PlayerActive PlayerStatus = iota
	PlayerFolded
	PlayerAllIn
)

var playerStatusNames = map[PlayerStatus]string{
	PlayerActive: "Active",
	PlayerFolded: "Folded",
	PlayerAllIn:  "AllIn",
}

// String returns the status name
func (s PlayerStatus) String() string {
	if name, ok := playerStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("PlayerStatus(%d)", int(s))
}

// MarshalText lets statuses render by name in JSON documents
func (s PlayerStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a status name
func (s *PlayerStatus) UnmarshalText(text []byte) error {
	for status, name := range playerStatusNames {
		if name == string(text) {
			*s = status
			return nil
		}
	}
	return fmt.Errorf("unknown player status %q", string(text))
}

// Participant is one seat of a game as reported by the ledger. AccountID is the
// raw address string of whichever producer reported it and must be
// canonicalized before comparison.
type Participant struct {
	AccountID string       `json:"account_id"`
	Status    PlayerStatus `json:"status"`
	Hole      []CardID     `json:"hole"`
}

// Game is the ledger's read model of one game
type Game struct {
	ID             uint64        `json:"id"`
	RoomID         string        `json:"room_id"`
	Status         GameStatus    `json:"status"`
	Stage          GameStage     `json:"stage"`
	Participants   []Participant `json:"participants"`
	CommunityCards []CardID      `json:"community_cards"`
	Winners        []string      `json:"winners"`
}

// HasCommunityCard reports whether the identifier has been dealt to the board
func (g *Game) HasCommunityCard(id CardID) bool {
	for _, dealt := range g.CommunityCards {
		if dealt == id {
			return true
		}
	}
	return false
}

// AtShowdown reports whether hole cards of remaining players may be made public
func (g *Game) AtShowdown() bool {
	return g.Stage == StageShowdown || g.Status == GameClosed
}
