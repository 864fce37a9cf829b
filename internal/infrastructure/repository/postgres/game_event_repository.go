package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/community-league/internal/domain/gameevent"
	qb "github.com/riskibarqy/community-league/internal/platform/querybuilder"
)

// gameEventsTable lives in an optional migration. Deployments without it get
// gameevent.ErrFeatureUnavailable from every method.
const gameEventsTable = "game_goals"

type GameEventRepository struct {
	db *sqlx.DB
}

func NewGameEventRepository(db *sqlx.DB) *GameEventRepository {
	return &GameEventRepository{db: db}
}

func (r *GameEventRepository) ListAll(ctx context.Context) ([]gameevent.Event, error) {
	return r.list(ctx, "select game events")
}

func (r *GameEventRepository) ListByGames(ctx context.Context, gameIDs []string) ([]gameevent.Event, error) {
	if len(gameIDs) == 0 {
		return []gameevent.Event{}, nil
	}
	ids := make([]any, 0, len(gameIDs))
	for _, id := range gameIDs {
		ids = append(ids, id)
	}
	return r.list(ctx, "select game events by games", qb.In("game_public_id", ids))
}

func (r *GameEventRepository) list(ctx context.Context, action string, conds ...qb.Condition) ([]gameevent.Event, error) {
	query, args, err := qb.Select("*").From(gameEventsTable).
		Where(conds...).
		OrderBy("created_at ASC", "id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", action, err)
	}

	var rows []gameEventTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, eventStoreError(action, err)
	}

	out := make([]gameevent.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, gameEventFromRow(row))
	}
	return out, nil
}

func (r *GameEventRepository) GetByID(ctx context.Context, eventID string) (gameevent.Event, bool, error) {
	query, args, err := qb.Select("*").From(gameEventsTable).
		Where(qb.Eq("public_id", eventID)).
		ToSQL()
	if err != nil {
		return gameevent.Event{}, false, fmt.Errorf("build get game event query: %w", err)
	}

	var row gameEventTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return gameevent.Event{}, false, nil
		}
		return gameevent.Event{}, false, eventStoreError("get game event", err)
	}
	return gameEventFromRow(row), true, nil
}

func (r *GameEventRepository) Create(ctx context.Context, item gameevent.Event) error {
	query, args, err := qb.InsertModel(gameEventsTable, gameEventInsertFromDomain(item))
	if err != nil {
		return fmt.Errorf("build insert game event query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return eventStoreError("insert game event", err)
	}
	return nil
}

func (r *GameEventRepository) Delete(ctx context.Context, eventID string) error {
	query, args, err := qb.DeleteFrom(gameEventsTable).
		Where(qb.Eq("public_id", eventID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete game event query: %w", err)
	}
	if err := execOne(ctx, r.db, "delete game event", query, args); err != nil {
		return eventStoreError("delete game event", err)
	}
	return nil
}

// ReplaceForGame swaps every event of gameID for items in one transaction.
func (r *GameEventRepository) ReplaceForGame(ctx context.Context, gameID string, items []gameevent.Event) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace game events tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	deleteQuery, deleteArgs, err := qb.DeleteFrom(gameEventsTable).
		Where(qb.Eq("game_public_id", gameID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete game events query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return eventStoreError("delete game events", err)
	}

	for _, item := range items {
		query, args, err := qb.InsertModel(gameEventsTable, gameEventInsertFromDomain(item))
		if err != nil {
			return fmt.Errorf("build insert game event query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return eventStoreError("insert game event", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace game events tx: %w", err)
	}
	return nil
}

func eventStoreError(action string, err error) error {
	if isUndefinedTable(err) {
		return fmt.Errorf("%s: %w", action, gameevent.ErrFeatureUnavailable)
	}
	return fmt.Errorf("%s: %w", action, err)
}
