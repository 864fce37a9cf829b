package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/community-league/internal/domain/team"
	qb "github.com/riskibarqy/community-league/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("teams").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}

	return out, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.Eq("public_id", teamID)).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team by id query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team by id: %w", err)
	}

	return teamFromRow(row), true, nil
}

func (r *TeamRepository) Create(ctx context.Context, item team.Team) error {
	insertModel := teamInsertModel{
		PublicID:     item.ID,
		Name:         item.Name,
		Organization: nullString(item.Organization),
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}

	query, args, err := qb.InsertModel("teams", insertModel)
	if err != nil {
		return fmt.Errorf("build insert team query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert team: %w", err)
	}

	return nil
}

func (r *TeamRepository) Update(ctx context.Context, item team.Team) error {
	query, args, err := qb.Update("teams").
		Set("name", item.Name).
		Set("organization", nullString(item.Organization)).
		Set("updated_at", item.UpdatedAt).
		Where(qb.Eq("public_id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update team query: %w", err)
	}

	return execOne(ctx, r.db, "update team", query, args)
}

func (r *TeamRepository) Delete(ctx context.Context, teamID string) error {
	query, args, err := qb.DeleteFrom("teams").
		Where(qb.Eq("public_id", teamID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete team query: %w", err)
	}

	if err := execOne(ctx, r.db, "delete team", query, args); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("delete team %s: %w", teamID, team.ErrReferenced)
		}
		return err
	}
	return nil
}

// UpdateStats overwrites the derived columns of one team.
func (r *TeamRepository) UpdateStats(ctx context.Context, teamID string, stats team.Stats) error {
	query, args, err := qb.Update("teams").
		Set("points", stats.Points).
		Set("games_played", stats.GamesPlayed).
		Set("wins", stats.Wins).
		Set("draws", stats.Draws).
		Set("losses", stats.Losses).
		Set("goals_for", stats.GoalsFor).
		Set("goals_against", stats.GoalsAgainst).
		Set("goal_difference", stats.GoalDifference).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", teamID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update team stats query: %w", err)
	}

	return execOne(ctx, r.db, "update team stats", query, args)
}

// execOne runs a statement that must touch exactly one row.
func execOne(ctx context.Context, db sqlx.ExecerContext, action, query string, args []any) error {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected %s: %w", action, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: not found", action)
	}
	return nil
}
