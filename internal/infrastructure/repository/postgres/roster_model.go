package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/community-league/internal/domain/roster"
)

type rosterTableModel struct {
	ID           int64         `db:"id"`
	PublicID     string        `db:"public_id"`
	TeamPublicID string        `db:"team_public_id"`
	PlayerName   string        `db:"player_name"`
	JerseyNumber sql.NullInt64 `db:"jersey_number"`
	Goals        int           `db:"goals"`
	Assists      int           `db:"assists"`
	YellowCards  int           `db:"yellow_cards"`
	RedCards     int           `db:"red_cards"`
	CreatedAt    time.Time     `db:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at"`
}

type rosterInsertModel struct {
	PublicID     string        `db:"public_id"`
	TeamPublicID string        `db:"team_public_id"`
	PlayerName   string        `db:"player_name"`
	JerseyNumber sql.NullInt64 `db:"jersey_number"`
	Goals        int           `db:"goals"`
	Assists      int           `db:"assists"`
	YellowCards  int           `db:"yellow_cards"`
	RedCards     int           `db:"red_cards"`
	CreatedAt    time.Time     `db:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at"`
}

func rosterFromRow(row rosterTableModel) roster.Entry {
	return roster.Entry{
		ID:           row.PublicID,
		TeamID:       row.TeamPublicID,
		PlayerName:   row.PlayerName,
		JerseyNumber: intFromNull(row.JerseyNumber),
		Counters: roster.Counters{
			Goals:       row.Goals,
			Assists:     row.Assists,
			YellowCards: row.YellowCards,
			RedCards:    row.RedCards,
		},
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
