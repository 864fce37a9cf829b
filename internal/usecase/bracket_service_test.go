package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/community-league/internal/domain/game"
	"github.com/stretchr/testify/require"
)

func TestBracketService_SeedsFromStandings(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newLeagueFixture(t, true)
	service := NewBracketService(f.standings, f.games, 4)

	bracket, err := service.Get(ctx, true)
	require.NoError(t, err)
	require.Equal(t, 4, bracket.Size)
	require.Len(t, bracket.Rounds, 2)

	first := bracket.Rounds[0]
	require.Equal(t, "A", first[0].Home.TeamID)
	require.Equal(t, "B", first[0].Away.TeamID)
	require.Equal(t, "C", first[1].Home.TeamID)
	require.Equal(t, "D", first[1].Away.TeamID)
	require.Empty(t, bracket.ChampionTeamID)
}

func TestBracketService_PublicViewIgnoresUnpublishedResults(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newLeagueFixture(t, true)
	semi := game.Game{
		ID:         "semi-1",
		MatchLabel: "Semi Final 1",
		Week:       3,
		HomeTeamID: "A",
		AwayTeamID: "B",
		Status:     game.StatusCompleted,
		HomeScore:  game.IntPtr(1),
		AwayScore:  game.IntPtr(0),
		IsPlayoff:  true,
	}
	require.NoError(t, f.games.Create(ctx, semi))
	service := NewBracketService(f.standings, f.games, 4)

	public, err := service.Get(ctx, true)
	require.NoError(t, err)
	require.Empty(t, public.Rounds[0][0].WinnerTeamID)

	admin, err := service.Get(ctx, false)
	require.NoError(t, err)
	require.Equal(t, "semi-1", admin.Rounds[0][0].GameID)
	require.Equal(t, "A", admin.Rounds[0][0].WinnerTeamID)
	require.Equal(t, "A", admin.Rounds[1][0].Home.TeamID)
}

func TestBracketService_Errors(t *testing.T) {
	t.Parallel()

	f := newLeagueFixture(t, true)

	_, err := NewBracketService(f.standings, f.games, 8).Get(context.Background(), true)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for too few teams, got %v", err)
	}

	_, err = NewBracketService(f.standings, f.games, 0).Get(context.Background(), true)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("default six-team bracket needs six teams, got %v", err)
	}

	_, err = NewBracketService(f.standings, f.games, 1).Get(context.Background(), true)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for one-team bracket, got %v", err)
	}
}

func TestBracketService_PlayoffResultsDoNotReseed(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newLeagueFixture(t, true)
	upset := game.Game{
		ID:          "semi-1",
		Week:        3,
		HomeTeamID:  "B",
		AwayTeamID:  "A",
		Status:      game.StatusCompleted,
		HomeScore:   game.IntPtr(3),
		AwayScore:   game.IntPtr(0),
		IsPlayoff:   true,
		IsPublished: true,
	}
	require.NoError(t, f.games.Create(ctx, upset))

	table, err := f.standings.Table(ctx)
	require.NoError(t, err)
	require.Equal(t, "A", table.Records[0].TeamID)
	require.Equal(t, "B", table.Records[3].TeamID)
	require.Equal(t, 0, table.Records[3].Stats.Points)

	bracket, err := NewBracketService(f.standings, f.games, 4).Get(ctx, true)
	require.NoError(t, err)
	semi := bracket.Rounds[0][0]
	require.Equal(t, "A", semi.Home.TeamID)
	require.Equal(t, "B", semi.Away.TeamID)
	require.Equal(t, "semi-1", semi.GameID)
	require.Equal(t, "B", semi.WinnerTeamID)
	require.Equal(t, "B", bracket.Rounds[1][0].Home.TeamID)
}
