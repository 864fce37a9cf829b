package game

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// KickoffLayout is the wall-clock format stored in Game.Time.
const KickoffLayout = "15:04"

var (
	ErrInvalidStatus = errors.New("invalid game status")
	ErrSameTeam      = errors.New("home and away team must differ")
)

func ParseStatus(raw string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(raw)))
	if status == "" {
		return StatusScheduled, nil
	}
	if !status.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	return status, nil
}

func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// Upcoming reports whether the game has not finished yet.
func (s Status) Upcoming() bool {
	return s == StatusScheduled || s == StatusInProgress
}

// Game is one scheduled or played match between two league teams.
// Scores are only meaningful when Status is completed.
type Game struct {
	ID          string
	MatchLabel  string
	Week        int
	Date        time.Time
	Time        string
	Location    string
	HomeTeamID  string
	AwayTeamID  string
	HomeScore   *int
	AwayScore   *int
	Status      Status
	IsPlayoff   bool
	IsPublished bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (g Game) Validate() error {
	if strings.TrimSpace(g.ID) == "" {
		return fmt.Errorf("game id is required")
	}
	if g.Week < 1 {
		return fmt.Errorf("game week must be >= 1")
	}
	if strings.TrimSpace(g.HomeTeamID) == "" || strings.TrimSpace(g.AwayTeamID) == "" {
		return fmt.Errorf("home and away team are required")
	}
	if g.HomeTeamID == g.AwayTeamID {
		return ErrSameTeam
	}
	if !g.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, g.Status)
	}
	if g.Time != "" {
		if _, err := time.Parse(KickoffLayout, g.Time); err != nil {
			return fmt.Errorf("game time must use HH:MM: %q", g.Time)
		}
	}
	if (g.HomeScore != nil && *g.HomeScore < 0) || (g.AwayScore != nil && *g.AwayScore < 0) {
		return fmt.Errorf("scores cannot be negative")
	}

	return nil
}

// HasFinalScore reports whether the game is completed with both scores present.
func (g Game) HasFinalScore() bool {
	return g.Status == StatusCompleted && g.HomeScore != nil && g.AwayScore != nil
}

func (g Game) Involves(teamID string) bool {
	return g.HomeTeamID == teamID || g.AwayTeamID == teamID
}

// PubliclyVisible hides playoff games until an admin publishes them.
func (g Game) PubliclyVisible() bool {
	return !g.IsPlayoff || g.IsPublished
}

// KickoffAt combines Date and Time in the date's location. A missing or
// unparsable time resolves to midnight.
func (g Game) KickoffAt() time.Time {
	day := time.Date(g.Date.Year(), g.Date.Month(), g.Date.Day(), 0, 0, 0, 0, g.Date.Location())
	clock, err := time.Parse(KickoffLayout, g.Time)
	if err != nil {
		return day
	}
	return day.Add(time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute)
}

// Before orders games chronologically by week, then date, then time.
func Before(a, b Game) bool {
	if a.Week != b.Week {
		return a.Week < b.Week
	}
	ka, kb := a.KickoffAt(), b.KickoffAt()
	if !ka.Equal(kb) {
		return ka.Before(kb)
	}
	return a.ID < b.ID
}

func IntPtr(v int) *int {
	return &v
}
