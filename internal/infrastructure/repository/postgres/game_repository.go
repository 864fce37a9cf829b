package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/community-league/internal/domain/game"
	qb "github.com/riskibarqy/community-league/internal/platform/querybuilder"
)

type GameRepository struct {
	db *sqlx.DB
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) List(ctx context.Context, filter game.Filter) ([]game.Game, error) {
	query, args, err := qb.Select("*").From("games").
		Where(gameFilterConditions(filter)...).
		OrderBy("week ASC", "game_date ASC", "game_time ASC NULLS FIRST", "public_id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select games query: %w", err)
	}

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select games: %w", err)
	}

	out := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, gameFromRow(row))
	}

	return out, nil
}

func gameFilterConditions(filter game.Filter) []qb.Condition {
	conds := make([]qb.Condition, 0, 6)
	if filter.Week > 0 {
		conds = append(conds, qb.Eq("week", filter.Week))
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]any, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, string(s))
		}
		conds = append(conds, qb.In("status", statuses))
	}
	if filter.PlayoffOnly {
		conds = append(conds, qb.Eq("is_playoff", true))
	}
	if filter.ExcludePlayoff {
		conds = append(conds, qb.Eq("is_playoff", false))
	}
	if filter.PublishedOnly {
		conds = append(conds, qb.Or(qb.Eq("is_playoff", false), qb.Eq("is_published", true)))
	}
	if filter.TeamID != "" {
		conds = append(conds, qb.Or(
			qb.Eq("home_team_public_id", filter.TeamID),
			qb.Eq("away_team_public_id", filter.TeamID),
		))
	}
	return conds
}

func (r *GameRepository) GetByID(ctx context.Context, gameID string) (game.Game, bool, error) {
	query, args, err := qb.Select("*").From("games").
		Where(qb.Eq("public_id", gameID)).
		ToSQL()
	if err != nil {
		return game.Game{}, false, fmt.Errorf("build get game by id query: %w", err)
	}

	var row gameTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return game.Game{}, false, nil
		}
		return game.Game{}, false, fmt.Errorf("get game by id: %w", err)
	}

	return gameFromRow(row), true, nil
}

func (r *GameRepository) ListLabelsByWeek(ctx context.Context, week int) ([]string, error) {
	query, args, err := qb.Select("match_label").From("games").
		Where(qb.Eq("week", week)).
		OrderBy("id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select game labels query: %w", err)
	}

	var labels []string
	if err := r.db.SelectContext(ctx, &labels, query, args...); err != nil {
		return nil, fmt.Errorf("select game labels: %w", err)
	}
	return labels, nil
}

func (r *GameRepository) Create(ctx context.Context, item game.Game) error {
	query, args, err := qb.InsertModel("games", gameInsertFromDomain(item))
	if err != nil {
		return fmt.Errorf("build insert game query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert game: %w", err)
	}
	return nil
}

func (r *GameRepository) Update(ctx context.Context, item game.Game) error {
	model := gameInsertFromDomain(item)
	query, args, err := qb.Update("games").
		Set("match_label", model.MatchLabel).
		Set("week", model.Week).
		Set("game_date", model.GameDate).
		Set("game_time", model.GameTime).
		Set("location", model.Location).
		Set("home_team_public_id", model.HomeTeamPublicID).
		Set("away_team_public_id", model.AwayTeamPublicID).
		Set("home_score", model.HomeScore).
		Set("away_score", model.AwayScore).
		Set("status", model.Status).
		Set("is_playoff", model.IsPlayoff).
		Set("is_published", model.IsPublished).
		Set("updated_at", model.UpdatedAt).
		Where(qb.Eq("public_id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update game query: %w", err)
	}

	return execOne(ctx, r.db, "update game", query, args)
}

func (r *GameRepository) Delete(ctx context.Context, gameID string) error {
	query, args, err := qb.DeleteFrom("games").
		Where(qb.Eq("public_id", gameID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete game query: %w", err)
	}

	return execOne(ctx, r.db, "delete game", query, args)
}
