package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/community-league/internal/domain/roster"
	qb "github.com/riskibarqy/community-league/internal/platform/querybuilder"
)

type RosterRepository struct {
	db *sqlx.DB
}

func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

func (r *RosterRepository) List(ctx context.Context, teamID string) ([]roster.Entry, error) {
	builder := qb.Select("*").From("roster").OrderBy("team_public_id ASC", "player_name ASC")
	if teamID != "" {
		builder = builder.Where(qb.Eq("team_public_id", teamID))
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select roster query: %w", err)
	}

	var rows []rosterTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select roster: %w", err)
	}

	out := make([]roster.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, rosterFromRow(row))
	}
	return out, nil
}

func (r *RosterRepository) GetByID(ctx context.Context, entryID string) (roster.Entry, bool, error) {
	query, args, err := qb.Select("*").From("roster").
		Where(qb.Eq("public_id", entryID)).
		ToSQL()
	if err != nil {
		return roster.Entry{}, false, fmt.Errorf("build get roster entry query: %w", err)
	}

	var row rosterTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return roster.Entry{}, false, nil
		}
		return roster.Entry{}, false, fmt.Errorf("get roster entry: %w", err)
	}
	return rosterFromRow(row), true, nil
}

func (r *RosterRepository) Create(ctx context.Context, item roster.Entry) error {
	insertModel := rosterInsertModel{
		PublicID:     item.ID,
		TeamPublicID: item.TeamID,
		PlayerName:   item.PlayerName,
		JerseyNumber: nullInt(item.JerseyNumber),
		Goals:        item.Counters.Goals,
		Assists:      item.Counters.Assists,
		YellowCards:  item.Counters.YellowCards,
		RedCards:     item.Counters.RedCards,
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}

	query, args, err := qb.InsertModel("roster", insertModel)
	if err != nil {
		return fmt.Errorf("build insert roster entry query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return rosterWriteError("insert roster entry", err)
	}
	return nil
}

// Update writes the editable fields. Event-derived counters are left to
// UpdateCounters; assists are entered by hand and saved here.
func (r *RosterRepository) Update(ctx context.Context, item roster.Entry) error {
	query, args, err := qb.Update("roster").
		Set("team_public_id", item.TeamID).
		Set("player_name", item.PlayerName).
		Set("jersey_number", nullInt(item.JerseyNumber)).
		Set("assists", item.Counters.Assists).
		Set("updated_at", item.UpdatedAt).
		Where(qb.Eq("public_id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update roster entry query: %w", err)
	}

	if err := execOne(ctx, r.db, "update roster entry", query, args); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("update roster entry: %w", roster.ErrDuplicateJersey)
		}
		return err
	}
	return nil
}

func (r *RosterRepository) Delete(ctx context.Context, entryID string) error {
	query, args, err := qb.DeleteFrom("roster").
		Where(qb.Eq("public_id", entryID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete roster entry query: %w", err)
	}
	return execOne(ctx, r.db, "delete roster entry", query, args)
}

func (r *RosterRepository) UpdateCounters(ctx context.Context, entryID string, counters roster.Counters) error {
	query, args, err := qb.Update("roster").
		Set("goals", counters.Goals).
		Set("assists", counters.Assists).
		Set("yellow_cards", counters.YellowCards).
		Set("red_cards", counters.RedCards).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", entryID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update roster counters query: %w", err)
	}
	return execOne(ctx, r.db, "update roster counters", query, args)
}

func rosterWriteError(action string, err error) error {
	if isUniqueViolation(err) {
		return fmt.Errorf("%s: %w", action, roster.ErrDuplicateJersey)
	}
	return fmt.Errorf("%s: %w", action, err)
}
