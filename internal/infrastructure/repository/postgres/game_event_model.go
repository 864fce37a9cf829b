package postgres

import (
	"time"

	"github.com/riskibarqy/community-league/internal/domain/gameevent"
)

type gameEventTableModel struct {
	ID             int64     `db:"id"`
	PublicID       string    `db:"public_id"`
	GamePublicID   string    `db:"game_public_id"`
	PlayerPublicID string    `db:"player_public_id"`
	EventType      string    `db:"event_type"`
	CreatedAt      time.Time `db:"created_at"`
}

type gameEventInsertModel struct {
	PublicID       string    `db:"public_id"`
	GamePublicID   string    `db:"game_public_id"`
	PlayerPublicID string    `db:"player_public_id"`
	EventType      string    `db:"event_type"`
	CreatedAt      time.Time `db:"created_at"`
}

func gameEventFromRow(row gameEventTableModel) gameevent.Event {
	return gameevent.Event{
		ID:        row.PublicID,
		GameID:    row.GamePublicID,
		PlayerID:  row.PlayerPublicID,
		Type:      gameevent.Type(row.EventType),
		CreatedAt: row.CreatedAt,
	}
}

func gameEventInsertFromDomain(item gameevent.Event) gameEventInsertModel {
	return gameEventInsertModel{
		PublicID:       item.ID,
		GamePublicID:   item.GameID,
		PlayerPublicID: item.PlayerID,
		EventType:      string(item.Type),
		CreatedAt:      item.CreatedAt,
	}
}
