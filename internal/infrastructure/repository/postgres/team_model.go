package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/community-league/internal/domain/team"
)

type teamTableModel struct {
	ID             int64          `db:"id"`
	PublicID       string         `db:"public_id"`
	Name           string         `db:"name"`
	Organization   sql.NullString `db:"organization"`
	Points         int            `db:"points"`
	GamesPlayed    int            `db:"games_played"`
	Wins           int            `db:"wins"`
	Draws          int            `db:"draws"`
	Losses         int            `db:"losses"`
	GoalsFor       int            `db:"goals_for"`
	GoalsAgainst   int            `db:"goals_against"`
	GoalDifference int            `db:"goal_difference"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

type teamInsertModel struct {
	PublicID     string         `db:"public_id"`
	Name         string         `db:"name"`
	Organization sql.NullString `db:"organization"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

func teamFromRow(row teamTableModel) team.Team {
	return team.Team{
		ID:           row.PublicID,
		Name:         row.Name,
		Organization: row.Organization.String,
		Stats: team.Stats{
			Points:         row.Points,
			GamesPlayed:    row.GamesPlayed,
			Wins:           row.Wins,
			Draws:          row.Draws,
			Losses:         row.Losses,
			GoalsFor:       row.GoalsFor,
			GoalsAgainst:   row.GoalsAgainst,
			GoalDifference: row.GoalDifference,
		},
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
