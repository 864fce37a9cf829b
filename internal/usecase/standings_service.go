package usecase

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/riskibarqy/community-league/internal/domain/game"
	"github.com/riskibarqy/community-league/internal/domain/standings"
	"github.com/riskibarqy/community-league/internal/domain/team"
	"github.com/riskibarqy/community-league/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

const defaultWriteWorkers = 4

// LeagueDataSource is everything the standings computation reads.
type LeagueDataSource interface {
	ListTeams(ctx context.Context) ([]team.Team, error)
	ListCompletedGames(ctx context.Context) ([]game.Game, error)
}

// TeamStatsWriter persists derived team stats.
type TeamStatsWriter interface {
	UpdateStats(ctx context.Context, teamID string, stats team.Stats) error
}

// RepositoryDataSource adapts the team and game repositories to LeagueDataSource.
type RepositoryDataSource struct {
	teams team.Repository
	games game.Repository
}

func NewRepositoryDataSource(teams team.Repository, games game.Repository) *RepositoryDataSource {
	return &RepositoryDataSource{teams: teams, games: games}
}

func (d *RepositoryDataSource) ListTeams(ctx context.Context) ([]team.Team, error) {
	return d.teams.List(ctx)
}

// ListCompletedGames returns completed regular-season games. Playoff results
// never feed the table that seeds the bracket.
func (d *RepositoryDataSource) ListCompletedGames(ctx context.Context) ([]game.Game, error) {
	return d.games.List(ctx, game.Filter{
		Statuses:       []game.Status{game.StatusCompleted},
		ExcludePlayoff: true,
	})
}

type StandingsRecomputeResult struct {
	Table     standings.Table
	Updated   int
	Unchanged int
	Failed    int
}

type StandingsService struct {
	source  LeagueDataSource
	writer  TeamStatsWriter
	workers int
	logger  *logging.Logger
}

func NewStandingsService(source LeagueDataSource, writer TeamStatsWriter, workers int, logger *logging.Logger) *StandingsService {
	if workers <= 0 {
		workers = defaultWriteWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &StandingsService{
		source:  source,
		writer:  writer,
		workers: workers,
		logger:  logger,
	}
}

// Compute builds the current table without writing anything.
func (s *StandingsService) Compute(ctx context.Context) (standings.Table, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.Compute")
	defer span.End()

	table, _, err := s.compute(ctx)
	return table, err
}

// Recompute builds the table and writes every team whose stored stats differ.
// Writes are per team and independent: a failed write is logged and counted
// and does not stop the others, so a partial run can leave some teams stale
// until the next recompute.
func (s *StandingsService) Recompute(ctx context.Context) (StandingsRecomputeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.Recompute")
	defer span.End()

	table, stored, err := s.compute(ctx)
	if err != nil {
		return StandingsRecomputeResult{}, err
	}

	result := StandingsRecomputeResult{Table: table}
	if s.writer == nil {
		return result, nil
	}

	var updated, unchanged, failed atomic.Int32
	p := pool.New().WithMaxGoroutines(s.workers)
	for _, record := range table.Records {
		record := record
		if current, ok := stored[record.TeamID]; ok && current == record.Stats {
			unchanged.Add(1)
			continue
		}
		p.Go(func() {
			if err := s.writer.UpdateStats(ctx, record.TeamID, record.Stats); err != nil {
				failed.Add(1)
				s.logger.WarnContext(ctx, "persist team stats failed", "team_id", record.TeamID, "error", err)
				return
			}
			updated.Add(1)
		})
	}
	p.Wait()

	result.Updated = int(updated.Load())
	result.Unchanged = int(unchanged.Load())
	result.Failed = int(failed.Load())
	if result.Failed > 0 {
		s.logger.WarnContext(ctx, "standings recompute finished with failures",
			"updated", result.Updated,
			"failed", result.Failed,
		)
	}

	return result, nil
}

// Table is the read path: the table is always recomputed from games and any
// stale stored stats are refreshed on the way.
func (s *StandingsService) Table(ctx context.Context) (standings.Table, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.Table")
	defer span.End()

	result, err := s.Recompute(ctx)
	if err != nil {
		return standings.Table{}, err
	}
	return result.Table, nil
}

func (s *StandingsService) compute(ctx context.Context) (standings.Table, map[string]team.Stats, error) {
	teams, err := s.source.ListTeams(ctx)
	if err != nil {
		return standings.Table{}, nil, fmt.Errorf("list teams: %w", err)
	}
	games, err := s.source.ListCompletedGames(ctx)
	if err != nil {
		return standings.Table{}, nil, fmt.Errorf("list completed games: %w", err)
	}

	table := standings.Compute(teams, games)
	for _, skipped := range table.Skipped {
		s.logger.WarnContext(ctx, "skip malformed game in standings",
			"game_id", skipped.GameID,
			"reason", string(skipped.Reason),
		)
	}

	stored := make(map[string]team.Stats, len(teams))
	for _, t := range teams {
		stored[t.ID] = t.Stats
	}
	return table, stored, nil
}
