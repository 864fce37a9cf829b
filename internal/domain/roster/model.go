package roster

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrDuplicateJersey = errors.New("jersey number already taken on this team")

// Entry is one player registered to a team. Counters are derived from
// game events, except Assists which no event type records.
type Entry struct {
	ID           string
	TeamID       string
	PlayerName   string
	JerseyNumber *int
	Counters     Counters
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Counters struct {
	Goals       int
	Assists     int
	YellowCards int
	RedCards    int
}

func (e Entry) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("roster entry id is required")
	}
	if strings.TrimSpace(e.TeamID) == "" {
		return fmt.Errorf("roster entry team id is required")
	}
	if strings.TrimSpace(e.PlayerName) == "" {
		return fmt.Errorf("player name is required")
	}
	if e.JerseyNumber != nil && (*e.JerseyNumber < 0 || *e.JerseyNumber > 99) {
		return fmt.Errorf("jersey number must be between 0 and 99")
	}

	return nil
}

// JerseyConflict reports whether candidate would reuse a jersey number already
// held by another entry of the same team.
func JerseyConflict(existing []Entry, candidate Entry) bool {
	if candidate.JerseyNumber == nil {
		return false
	}
	for _, e := range existing {
		if e.ID == candidate.ID || e.TeamID != candidate.TeamID || e.JerseyNumber == nil {
			continue
		}
		if *e.JerseyNumber == *candidate.JerseyNumber {
			return true
		}
	}
	return false
}
