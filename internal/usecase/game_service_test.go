package usecase

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/riskibarqy/community-league/internal/domain/game"
	"github.com/riskibarqy/community-league/internal/domain/team"
	gamemock "github.com/riskibarqy/community-league/internal/mocks/domain/game"
	teammock "github.com/riskibarqy/community-league/internal/mocks/domain/team"
	"github.com/riskibarqy/community-league/internal/platform/logging"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 10, 20, 18, 0, 0, 0, time.UTC)

func newTestGameService(t *testing.T) (*GameService, *gamemock.Repository, *teammock.Repository, *countingRecomputer) {
	t.Helper()

	gameRepo := gamemock.NewRepository(t)
	teamRepo := teammock.NewRepository(t)
	recomputer := &countingRecomputer{}
	service := NewGameService(gameRepo, teamRepo, recomputer.standings(), recomputer.roster(), &sequenceIDGen{prefix: "game"}, logging.NewNop())
	service.now = func() time.Time { return fixedNow }
	return service, gameRepo, teamRepo, recomputer
}

func TestGameService_CreateAssignsNextLabel(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, gameRepo, teamRepo, recomputer := newTestGameService(t)

	teamRepo.On("GetByID", mock.Anything, "t-huda").Return(team.Team{ID: "t-huda"}, true, nil).Once()
	teamRepo.On("GetByID", mock.Anything, "t-noor").Return(team.Team{ID: "t-noor"}, true, nil).Once()
	gameRepo.
		On("ListLabelsByWeek", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), 3).
		Return([]string{"Week 3 - Game 1", "Week 3 - Game 4", "Friendly"}, nil).
		Once()
	gameRepo.
		On("Create", mock.Anything, mock.MatchedBy(func(g game.Game) bool {
			return g.MatchLabel == "Week 3 - Game 5" && g.ID == "game-1" && g.Status == game.StatusScheduled
		})).
		Return(nil).
		Once()

	got, err := service.Create(ctx, GameInput{
		Week:       3,
		Date:       time.Date(2025, 10, 26, 0, 0, 0, 0, time.UTC),
		Time:       "20:30",
		Location:   " Field 1 ",
		HomeTeamID: "t-huda",
		AwayTeamID: "t-noor",
	})
	require.NoError(t, err)
	require.Equal(t, "Week 3 - Game 5", got.MatchLabel)
	require.Equal(t, "Field 1", got.Location)
	require.Equal(t, fixedNow, got.CreatedAt)
	require.Equal(t, 1, recomputer.standingsCalls)
}

func TestGameService_CreateKeepsExplicitLabel(t *testing.T) {
	t.Parallel()

	service, gameRepo, teamRepo, _ := newTestGameService(t)

	teamRepo.On("GetByID", mock.Anything, mock.Anything).Return(team.Team{ID: "x"}, true, nil).Twice()
	gameRepo.On("Create", mock.Anything, mock.MatchedBy(func(g game.Game) bool {
		return g.MatchLabel == "Semi Final 1"
	})).Return(nil).Once()

	got, err := service.Create(context.Background(), GameInput{
		MatchLabel: "Semi Final 1",
		Week:       9,
		Date:       fixedNow,
		HomeTeamID: "a",
		AwayTeamID: "b",
		IsPlayoff:  true,
	})
	require.NoError(t, err)
	require.Equal(t, "Semi Final 1", got.MatchLabel)
	gameRepo.AssertNotCalled(t, "ListLabelsByWeek", mock.Anything, mock.Anything)
}

func TestGameService_CreateValidation(t *testing.T) {
	t.Parallel()

	base := GameInput{Week: 1, Date: fixedNow, HomeTeamID: "a", AwayTeamID: "b"}
	tests := []struct {
		name   string
		mutate func(*GameInput)
	}{
		{name: "same team", mutate: func(in *GameInput) { in.AwayTeamID = "a" }},
		{name: "missing week", mutate: func(in *GameInput) { in.Week = 0 }},
		{name: "missing date", mutate: func(in *GameInput) { in.Date = time.Time{} }},
		{name: "unknown status", mutate: func(in *GameInput) { in.Status = "postponed" }},
		{name: "completed without scores", mutate: func(in *GameInput) { in.Status = "completed" }},
		{name: "scheduled with scores", mutate: func(in *GameInput) {
			in.HomeScore = game.IntPtr(1)
			in.AwayScore = game.IntPtr(0)
		}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			service, _, _, _ := newTestGameService(t)
			input := base
			tt.mutate(&input)

			_, err := service.Create(context.Background(), input)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestGameService_CreateUnknownTeam(t *testing.T) {
	t.Parallel()

	service, _, teamRepo, _ := newTestGameService(t)
	teamRepo.On("GetByID", mock.Anything, "a").Return(team.Team{}, false, nil).Once()

	_, err := service.Create(context.Background(), GameInput{Week: 1, Date: fixedNow, HomeTeamID: "a", AwayTeamID: "b"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGameService_SetResult(t *testing.T) {
	t.Parallel()

	service, gameRepo, _, recomputer := newTestGameService(t)
	current := game.Game{
		ID:         "g1",
		MatchLabel: "Week 1 - Game 1",
		Week:       1,
		Date:       fixedNow,
		Time:       "20:30",
		HomeTeamID: "a",
		AwayTeamID: "b",
		Status:     game.StatusScheduled,
	}
	gameRepo.On("GetByID", mock.Anything, "g1").Return(current, true, nil).Once()
	gameRepo.On("Update", mock.Anything, mock.MatchedBy(func(g game.Game) bool {
		return g.Status == game.StatusCompleted && *g.HomeScore == 2 && *g.AwayScore == 1
	})).Return(nil).Once()

	got, err := service.SetResult(context.Background(), "g1", GameResultInput{
		Status:    "completed",
		HomeScore: game.IntPtr(2),
		AwayScore: game.IntPtr(1),
	})
	require.NoError(t, err)
	require.True(t, got.HasFinalScore())
	require.Equal(t, 1, recomputer.standingsCalls)
}

func TestGameService_UpdateRelabelsOnWeekChange(t *testing.T) {
	t.Parallel()

	service, gameRepo, teamRepo, _ := newTestGameService(t)
	current := game.Game{
		ID:         "g1",
		MatchLabel: "Week 1 - Game 2",
		Week:       1,
		Date:       fixedNow,
		HomeTeamID: "a",
		AwayTeamID: "b",
		Status:     game.StatusScheduled,
	}
	gameRepo.On("GetByID", mock.Anything, "g1").Return(current, true, nil).Once()
	teamRepo.On("GetByID", mock.Anything, mock.Anything).Return(team.Team{ID: "x"}, true, nil).Twice()
	gameRepo.On("ListLabelsByWeek", mock.Anything, 2).Return([]string{"Week 2 - Game 1"}, nil).Once()
	gameRepo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()

	got, err := service.Update(context.Background(), "g1", GameInput{
		Week:       2,
		Date:       fixedNow.AddDate(0, 0, 7),
		HomeTeamID: "a",
		AwayTeamID: "b",
	})
	require.NoError(t, err)
	require.Equal(t, "Week 2 - Game 2", got.MatchLabel)
}

func TestGameService_DeleteLeavesEventsToRepository(t *testing.T) {
	t.Parallel()

	service, gameRepo, _, recomputer := newTestGameService(t)
	gameRepo.On("GetByID", mock.Anything, "g1").Return(game.Game{ID: "g1", Week: 1}, true, nil).Once()
	gameRepo.On("Delete", mock.Anything, "g1").Return(nil).Once()

	require.NoError(t, service.Delete(context.Background(), "g1"))
	require.Equal(t, 1, recomputer.standingsCalls)
	require.Equal(t, 1, recomputer.rosterCalls)
}

func TestGameService_DeleteCascadesEventsInMemory(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newLeagueFixture(t, true)
	service := NewGameService(f.games, f.teams, f.standings, f.rosterSt, &sequenceIDGen{prefix: "game"}, logging.NewNop())
	_, err := f.rosterSt.Recompute(ctx)
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, "g1"))

	left, err := f.events.ListByGames(ctx, []string{"g1"})
	require.NoError(t, err)
	require.Empty(t, left)

	stored, _, err := f.roster.GetByID(ctx, "pA1")
	require.NoError(t, err)
	require.Zero(t, stored.Counters.Goals)
}

func TestGameService_GetNotFound(t *testing.T) {
	t.Parallel()

	service, gameRepo, _, _ := newTestGameService(t)
	gameRepo.On("GetByID", mock.Anything, "missing").Return(game.Game{}, false, nil).Once()

	_, err := service.Get(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGameService_NextLabelRejectsBadWeek(t *testing.T) {
	t.Parallel()

	service, _, _, _ := newTestGameService(t)
	_, err := service.NextLabel(context.Background(), 0)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

type countingRecomputer struct {
	standingsCalls int
	rosterCalls    int
}

func (c *countingRecomputer) standings() standingsRecomputerFunc {
	return func(context.Context) (StandingsRecomputeResult, error) {
		c.standingsCalls++
		return StandingsRecomputeResult{}, nil
	}
}

func (c *countingRecomputer) roster() rosterRecomputerFunc {
	return func(context.Context) (RosterRecomputeResult, error) {
		c.rosterCalls++
		return RosterRecomputeResult{}, nil
	}
}

type standingsRecomputerFunc func(context.Context) (StandingsRecomputeResult, error)

func (f standingsRecomputerFunc) Recompute(ctx context.Context) (StandingsRecomputeResult, error) {
	return f(ctx)
}

type rosterRecomputerFunc func(context.Context) (RosterRecomputeResult, error)

func (f rosterRecomputerFunc) Recompute(ctx context.Context) (RosterRecomputeResult, error) {
	return f(ctx)
}

type sequenceIDGen struct {
	prefix string
	n      int
}

func (g *sequenceIDGen) NewID() (string, error) {
	g.n++
	return g.prefix + "-" + strconv.Itoa(g.n), nil
}
