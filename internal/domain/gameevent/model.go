package gameevent

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Type string

const (
	TypeGoal       Type = "goal"
	TypeYellowCard Type = "yellow_card"
	TypeRedCard    Type = "red_card"
)

var ErrInvalidType = errors.New("invalid game event type")

// ErrFeatureUnavailable is returned by a Repository whose backing store has
// no event table. Callers degrade to "no events" instead of failing.
var ErrFeatureUnavailable = errors.New("game events are not available")

func ParseType(raw string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(raw)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidType, raw)
	}
	return t, nil
}

func (t Type) Valid() bool {
	switch t {
	case TypeGoal, TypeYellowCard, TypeRedCard:
		return true
	default:
		return false
	}
}

// Event is one occurrence of a goal or card in a game.
type Event struct {
	ID        string
	GameID    string
	PlayerID  string
	Type      Type
	CreatedAt time.Time
}

func (e Event) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("event id is required")
	}
	if strings.TrimSpace(e.GameID) == "" {
		return fmt.Errorf("event game id is required")
	}
	if strings.TrimSpace(e.PlayerID) == "" {
		return fmt.Errorf("event player id is required")
	}
	if !e.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidType, e.Type)
	}
	return nil
}
