package ledger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/fadedpez/cardvault/pkg/entities"
)

// flexUint decodes Move integers, which the REST API renders as strings for
// u64 and wider but as numbers for u8.
type flexUint uint64

func (f *flexUint) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	value, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid integer %s: %w", data, err)
	}
	*f = flexUint(value)
	return nil
}

type wirePlayer struct {
	Address   string     `json:"addr"`
	Status    flexUint   `json:"status"`
	HoleCards []flexUint `json:"hole_cards"`
}

type wireGame struct {
	ID             flexUint     `json:"id"`
	RoomID         flexUint     `json:"room_id"`
	State          flexUint     `json:"state"`
	Stage          flexUint     `json:"stage"`
	Players        []wirePlayer `json:"players"`
	CommunityCards []flexUint   `json:"community_cards"`
	Winners        []string     `json:"winners"`
}

var wireStatuses = map[flexUint]entities.GameStatus{
	0: entities.GameOpen,
	1: entities.GameInProgress,
	2: entities.GameClosed,
}

var wireStages = map[flexUint]entities.GameStage{
	0: entities.StagePreFlop,
	1: entities.StageFlop,
	2: entities.StageTurn,
	3: entities.StageRiver,
	4: entities.StageShowdown,
}

var wirePlayerStatuses = map[flexUint]entities.PlayerStatus{
	0: entities.PlayerActive,
	1: entities.PlayerFolded,
	2: entities.PlayerAllIn,
}

func (w wireGame) toEntity() (*entities.Game, error) {
	status, ok := wireStatuses[w.State]
	if !ok {
		return nil, fmt.Errorf("game %d has unknown state %d", w.ID, w.State)
	}
	stage, ok := wireStages[w.Stage]
	if !ok {
		return nil, fmt.Errorf("game %d has unknown stage %d", w.ID, w.Stage)
	}

	game := &entities.Game{
		ID:             uint64(w.ID),
		RoomID:         strconv.FormatUint(uint64(w.RoomID), 10),
		Status:         status,
		Stage:          stage,
		Participants:   make([]entities.Participant, 0, len(w.Players)),
		CommunityCards: toCardIDs(w.CommunityCards),
		Winners:        w.Winners,
	}

	for _, p := range w.Players {
		playerStatus, ok := wirePlayerStatuses[p.Status]
		if !ok {
			return nil, fmt.Errorf("player %s in game %d has unknown status %d", p.Address, w.ID, p.Status)
		}
		game.Participants = append(game.Participants, entities.Participant{
			AccountID: p.Address,
			Status:    playerStatus,
			Hole:      toCardIDs(p.HoleCards),
		})
	}

	return game, nil
}

// toCardIDs converts without range checks; identifiers are validated where
// they are revealed.
func toCardIDs(values []flexUint) []entities.CardID {
	ids := make([]entities.CardID, len(values))
	for i, v := range values {
		ids[i] = entities.CardID(v)
	}
	return ids
}

// MarshalJSON renders integers the way the fullnode does, as decimal strings
func (f flexUint) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatUint(uint64(f), 10))
}
