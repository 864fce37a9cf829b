package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/community-league/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads data into an empty database. It is a no-op once any
// team exists. Events go in a second transaction so a database without the
// optional events table still receives the rest of the league.
func BootstrapSeed(ctx context.Context, db *sqlx.DB, data memory.Dataset) (bool, error) {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM teams`); err != nil {
		return false, fmt.Errorf("count teams for bootstrap seed: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	if err := seedLeague(ctx, db, data); err != nil {
		return false, err
	}

	if len(data.Events) == 0 {
		return true, nil
	}
	if err := seedEvents(ctx, db, data); err != nil {
		if isUndefinedTable(err) {
			return true, nil
		}
		return true, err
	}

	return true, nil
}

func seedLeague(ctx context.Context, db *sqlx.DB, data memory.Dataset) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := time.Now().UTC()

	for _, t := range data.Teams {
		if err := namedExec(ctx, tx, `
INSERT INTO teams (public_id, name, organization, created_at, updated_at)
VALUES (:public_id, :name, :organization, :now, :now)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":    t.ID,
			"name":         t.Name,
			"organization": nullString(t.Organization),
			"now":          now,
		}); err != nil {
			return fmt.Errorf("seed team %s: %w", t.ID, err)
		}
	}

	for _, p := range data.Roster {
		if err := namedExec(ctx, tx, `
INSERT INTO roster (public_id, team_public_id, player_name, jersey_number, assists, created_at, updated_at)
VALUES (:public_id, :team_public_id, :player_name, :jersey_number, :assists, :now, :now)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":      p.ID,
			"team_public_id": p.TeamID,
			"player_name":    p.PlayerName,
			"jersey_number":  nullInt(p.JerseyNumber),
			"assists":        p.Counters.Assists,
			"now":            now,
		}); err != nil {
			return fmt.Errorf("seed roster entry %s: %w", p.ID, err)
		}
	}

	for _, g := range data.Games {
		if err := namedExec(ctx, tx, `
INSERT INTO games (public_id, match_label, week, game_date, game_time, location, home_team_public_id,
	away_team_public_id, home_score, away_score, status, is_playoff, is_published, created_at, updated_at)
VALUES (:public_id, :match_label, :week, :game_date, :game_time, :location, :home_team_public_id,
	:away_team_public_id, :home_score, :away_score, :status, :is_playoff, :is_published, :now, :now)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":           g.ID,
			"match_label":         g.MatchLabel,
			"week":                g.Week,
			"game_date":           g.Date,
			"game_time":           nullString(g.Time),
			"location":            nullString(g.Location),
			"home_team_public_id": g.HomeTeamID,
			"away_team_public_id": g.AwayTeamID,
			"home_score":          nullInt(g.HomeScore),
			"away_score":          nullInt(g.AwayScore),
			"status":              string(g.Status),
			"is_playoff":          g.IsPlayoff,
			"is_published":        g.IsPublished,
			"now":                 now,
		}); err != nil {
			return fmt.Errorf("seed game %s: %w", g.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}

func seedEvents(ctx context.Context, db *sqlx.DB, data memory.Dataset) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed events tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, e := range data.Events {
		if err := namedExec(ctx, tx, `
INSERT INTO game_goals (public_id, game_public_id, player_public_id, event_type, created_at)
VALUES (:public_id, :game_public_id, :player_public_id, :event_type, :created_at)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":        e.ID,
			"game_public_id":   e.GameID,
			"player_public_id": e.PlayerID,
			"event_type":       string(e.Type),
			"created_at":       e.CreatedAt.UTC(),
		}); err != nil {
			return fmt.Errorf("seed game event %s: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed events tx: %w", err)
	}
	return nil
}

func namedExec(ctx context.Context, tx *sqlx.Tx, query string, arg map[string]any) error {
	sqlQuery, args, err := sqlx.Named(query, arg)
	if err != nil {
		return fmt.Errorf("bind query: %w", err)
	}
	_, err = tx.ExecContext(ctx, tx.Rebind(sqlQuery), args...)
	return err
}
