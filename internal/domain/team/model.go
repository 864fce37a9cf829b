package team

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrReferenced is returned by a Repository that refuses to delete a team
// games or roster entries still point at.
var ErrReferenced = errors.New("team is still referenced")

// Team is a club entered in the league. Stats is a cache of values derived
// from completed games and is overwritten on every recompute.
type Team struct {
	ID           string
	Name         string
	Organization string
	Stats        Stats
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Stats holds the derived league-table fields for one team.
type Stats struct {
	Points         int
	GamesPlayed    int
	Wins           int
	Draws          int
	Losses         int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
}

func (t Team) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("team id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}

// Consistent reports whether the derived fields agree with each other.
func (s Stats) Consistent() bool {
	return s.Points == s.Wins*3+s.Draws &&
		s.GoalDifference == s.GoalsFor-s.GoalsAgainst &&
		s.GamesPlayed == s.Wins+s.Draws+s.Losses
}
