package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/community-league/internal/domain/game"
)

type gameTableModel struct {
	ID               int64          `db:"id"`
	PublicID         string         `db:"public_id"`
	MatchLabel       string         `db:"match_label"`
	Week             int            `db:"week"`
	GameDate         time.Time      `db:"game_date"`
	GameTime         sql.NullString `db:"game_time"`
	Location         sql.NullString `db:"location"`
	HomeTeamPublicID string         `db:"home_team_public_id"`
	AwayTeamPublicID string         `db:"away_team_public_id"`
	HomeScore        sql.NullInt64  `db:"home_score"`
	AwayScore        sql.NullInt64  `db:"away_score"`
	Status           string         `db:"status"`
	IsPlayoff        bool           `db:"is_playoff"`
	IsPublished      bool           `db:"is_published"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
}

type gameInsertModel struct {
	PublicID         string         `db:"public_id"`
	MatchLabel       string         `db:"match_label"`
	Week             int            `db:"week"`
	GameDate         time.Time      `db:"game_date"`
	GameTime         sql.NullString `db:"game_time"`
	Location         sql.NullString `db:"location"`
	HomeTeamPublicID string         `db:"home_team_public_id"`
	AwayTeamPublicID string         `db:"away_team_public_id"`
	HomeScore        sql.NullInt64  `db:"home_score"`
	AwayScore        sql.NullInt64  `db:"away_score"`
	Status           string         `db:"status"`
	IsPlayoff        bool           `db:"is_playoff"`
	IsPublished      bool           `db:"is_published"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
}

func gameInsertFromDomain(item game.Game) gameInsertModel {
	return gameInsertModel{
		PublicID:         item.ID,
		MatchLabel:       item.MatchLabel,
		Week:             item.Week,
		GameDate:         item.Date,
		GameTime:         nullString(item.Time),
		Location:         nullString(item.Location),
		HomeTeamPublicID: item.HomeTeamID,
		AwayTeamPublicID: item.AwayTeamID,
		HomeScore:        nullInt(item.HomeScore),
		AwayScore:        nullInt(item.AwayScore),
		Status:           string(item.Status),
		IsPlayoff:        item.IsPlayoff,
		IsPublished:      item.IsPublished,
		CreatedAt:        item.CreatedAt,
		UpdatedAt:        item.UpdatedAt,
	}
}

// gameFromRow keeps the stored status as-is; an unknown value surfaces later
// as a malformed record instead of failing the whole listing.
func gameFromRow(row gameTableModel) game.Game {
	return game.Game{
		ID:          row.PublicID,
		MatchLabel:  row.MatchLabel,
		Week:        row.Week,
		Date:        row.GameDate,
		Time:        row.GameTime.String,
		Location:    row.Location.String,
		HomeTeamID:  row.HomeTeamPublicID,
		AwayTeamID:  row.AwayTeamPublicID,
		HomeScore:   intFromNull(row.HomeScore),
		AwayScore:   intFromNull(row.AwayScore),
		Status:      game.Status(row.Status),
		IsPlayoff:   row.IsPlayoff,
		IsPublished: row.IsPublished,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
