package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/community-league/internal/domain/game"
	"github.com/riskibarqy/community-league/internal/domain/roster"
	"github.com/riskibarqy/community-league/internal/domain/standings"
	"github.com/riskibarqy/community-league/internal/domain/team"
)

type AdminDashboard struct {
	Teams     []team.Team
	Games     []game.Game
	Roster    []roster.Entry
	Standings standings.Table
	// EventsUnavailable mirrors RosterRecomputeResult.FeatureUnavailable.
	EventsUnavailable bool
	StatsWriteFailed  int
}

// AdminDashboardService refreshes every derived field and returns the full
// league state for the admin screen.
type AdminDashboardService struct {
	teamRepo   team.Repository
	gameRepo   game.Repository
	standings  standingsRecomputer
	rosterStat rosterRecomputer
}

func NewAdminDashboardService(
	teamRepo team.Repository,
	gameRepo game.Repository,
	standings standingsRecomputer,
	rosterStat rosterRecomputer,
) *AdminDashboardService {
	return &AdminDashboardService{
		teamRepo:   teamRepo,
		gameRepo:   gameRepo,
		standings:  standings,
		rosterStat: rosterStat,
	}
}

func (s *AdminDashboardService) Load(ctx context.Context) (AdminDashboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminDashboardService.Load")
	defer span.End()

	table, err := s.standings.Recompute(ctx)
	if err != nil {
		return AdminDashboard{}, fmt.Errorf("recompute standings: %w", err)
	}
	counters, err := s.rosterStat.Recompute(ctx)
	if err != nil {
		return AdminDashboard{}, fmt.Errorf("recompute roster counters: %w", err)
	}

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return AdminDashboard{}, fmt.Errorf("list teams: %w", err)
	}
	games, err := s.gameRepo.List(ctx, game.Filter{})
	if err != nil {
		return AdminDashboard{}, fmt.Errorf("list games: %w", err)
	}
	sortGames(games)

	return AdminDashboard{
		Teams:             teams,
		Games:             games,
		Roster:            counters.Entries,
		Standings:         table.Table,
		EventsUnavailable: counters.FeatureUnavailable,
		StatsWriteFailed:  table.Failed + counters.Failed,
	}, nil
}

// RecomputeAll runs both derived-field refreshes, standings first.
func (s *AdminDashboardService) RecomputeAll(ctx context.Context) (StandingsRecomputeResult, RosterRecomputeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminDashboardService.RecomputeAll")
	defer span.End()

	table, err := s.standings.Recompute(ctx)
	if err != nil {
		return StandingsRecomputeResult{}, RosterRecomputeResult{}, fmt.Errorf("recompute standings: %w", err)
	}
	counters, err := s.rosterStat.Recompute(ctx)
	if err != nil {
		return table, RosterRecomputeResult{}, fmt.Errorf("recompute roster counters: %w", err)
	}

	return table, counters, nil
}
