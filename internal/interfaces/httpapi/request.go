package httpapi

import (
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/community-league/internal/usecase"
)

type teamRequest struct {
	Name         string `json:"name" validate:"required,max=100"`
	Organization string `json:"organization" validate:"omitempty,max=100"`
}

type gameRequest struct {
	MatchLabel  string `json:"match_label" validate:"omitempty,max=100"`
	Week        int    `json:"week" validate:"required,min=1"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string `json:"time" validate:"omitempty,datetime=15:04"`
	Location    string `json:"location" validate:"omitempty,max=200"`
	HomeTeamID  string `json:"home_team_id" validate:"required"`
	AwayTeamID  string `json:"away_team_id" validate:"required,nefield=HomeTeamID"`
	Status      string `json:"status" validate:"omitempty,oneof=scheduled in_progress completed cancelled"`
	HomeScore   *int   `json:"home_score" validate:"omitempty,min=0"`
	AwayScore   *int   `json:"away_score" validate:"omitempty,min=0"`
	IsPlayoff   bool   `json:"is_playoff"`
	IsPublished bool   `json:"is_published"`
}

type gameResultRequest struct {
	Status    string `json:"status" validate:"required,oneof=scheduled in_progress completed cancelled"`
	HomeScore *int   `json:"home_score" validate:"omitempty,min=0"`
	AwayScore *int   `json:"away_score" validate:"omitempty,min=0"`
}

type rosterRequest struct {
	TeamID       string `json:"team_id" validate:"required"`
	PlayerName   string `json:"player_name" validate:"required,max=100"`
	JerseyNumber *int   `json:"jersey_number" validate:"omitempty,min=0,max=999"`
	Assists      *int   `json:"assists" validate:"omitempty,min=0"`
}

type gameEventRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
	Type     string `json:"type" validate:"required,oneof=goal yellow_card red_card"`
}

type replaceGameEventsRequest struct {
	Items []gameEventRequest `json:"items" validate:"required,dive"`
}

func (req teamRequest) toInput() usecase.TeamInput {
	return usecase.TeamInput{
		Name:         req.Name,
		Organization: req.Organization,
	}
}

func (req gameRequest) toInput() (usecase.GameInput, error) {
	date, err := time.Parse(dateLayout, strings.TrimSpace(req.Date))
	if err != nil {
		return usecase.GameInput{}, fmt.Errorf("%w: date must be YYYY-MM-DD", usecase.ErrInvalidInput)
	}

	return usecase.GameInput{
		MatchLabel:  req.MatchLabel,
		Week:        req.Week,
		Date:        date,
		Time:        req.Time,
		Location:    req.Location,
		HomeTeamID:  req.HomeTeamID,
		AwayTeamID:  req.AwayTeamID,
		Status:      req.Status,
		HomeScore:   req.HomeScore,
		AwayScore:   req.AwayScore,
		IsPlayoff:   req.IsPlayoff,
		IsPublished: req.IsPublished,
	}, nil
}

func (req gameResultRequest) toInput() usecase.GameResultInput {
	return usecase.GameResultInput{
		Status:    req.Status,
		HomeScore: req.HomeScore,
		AwayScore: req.AwayScore,
	}
}

func (req rosterRequest) toInput() usecase.RosterInput {
	return usecase.RosterInput{
		TeamID:       req.TeamID,
		PlayerName:   req.PlayerName,
		JerseyNumber: req.JerseyNumber,
		Assists:      req.Assists,
	}
}

func (req gameEventRequest) toInput() usecase.GameEventInput {
	return usecase.GameEventInput{
		PlayerID: req.PlayerID,
		Type:     req.Type,
	}
}
