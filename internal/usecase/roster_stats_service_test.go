package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/community-league/internal/domain/gameevent"
	"github.com/riskibarqy/community-league/internal/domain/roster"
	gameeventmock "github.com/riskibarqy/community-league/internal/mocks/domain/gameevent"
	rostermock "github.com/riskibarqy/community-league/internal/mocks/domain/roster"
	"github.com/riskibarqy/community-league/internal/platform/logging"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRosterStatsService_RecomputeWritesChangedCounters(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	rosterRepo := rostermock.NewRepository(t)
	eventRepo := gameeventmock.NewRepository(t)
	service := NewRosterStatsService(rosterRepo, eventRepo, 2, logging.NewNop())

	entries := []roster.Entry{
		{ID: "P1", TeamID: "A", PlayerName: "Yusuf"},
		{ID: "P2", TeamID: "A", PlayerName: "Omar", Counters: roster.Counters{Goals: 3, Assists: 1}},
		{ID: "P3", TeamID: "B", PlayerName: "Bilal"},
	}
	events := []gameevent.Event{
		{ID: "e1", GameID: "g1", PlayerID: "P1", Type: gameevent.TypeGoal},
		{ID: "e2", GameID: "g1", PlayerID: "P1", Type: gameevent.TypeGoal},
		{ID: "e3", GameID: "g1", PlayerID: "P1", Type: gameevent.TypeYellowCard},
	}

	rosterRepo.
		On("List", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), "").
		Return(entries, nil).
		Once()
	eventRepo.
		On("ListAll", mock.MatchedBy(func(v context.Context) bool { return v == ctx })).
		Return(events, nil).
		Once()
	rosterRepo.
		On("UpdateCounters", mock.Anything, "P1", roster.Counters{Goals: 2, YellowCards: 1}).
		Return(nil).
		Once()
	rosterRepo.
		On("UpdateCounters", mock.Anything, "P2", roster.Counters{Assists: 1}).
		Return(nil).
		Once()

	result, err := service.Recompute(ctx)
	require.NoError(t, err)
	require.False(t, result.FeatureUnavailable)
	require.Equal(t, 2, result.Updated)
	require.Equal(t, 1, result.Unchanged)
	require.Equal(t, 0, result.Failed)
	require.Equal(t, roster.Counters{Goals: 2, YellowCards: 1}, result.Entries[0].Counters)
}

func TestRosterStatsService_FeatureUnavailable(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	rosterRepo := rostermock.NewRepository(t)
	eventRepo := gameeventmock.NewRepository(t)
	service := NewRosterStatsService(rosterRepo, eventRepo, 0, logging.NewNop())

	stored := []roster.Entry{{ID: "P1", TeamID: "A", Counters: roster.Counters{Goals: 4}}}
	rosterRepo.On("List", mock.Anything, "").Return(stored, nil).Once()
	eventRepo.
		On("ListAll", mock.Anything).
		Return(nil, errors.Join(errors.New("relation \"game_goals\" does not exist"), gameevent.ErrFeatureUnavailable)).
		Once()

	result, err := service.Recompute(ctx)
	require.NoError(t, err)
	require.True(t, result.FeatureUnavailable)
	require.Equal(t, stored, result.Entries, "stored counters are kept when events are unavailable")
	rosterRepo.AssertNotCalled(t, "UpdateCounters", mock.Anything, mock.Anything, mock.Anything)
}

func TestRosterStatsService_CountsFailedWrites(t *testing.T) {
	t.Parallel()

	rosterRepo := rostermock.NewRepository(t)
	eventRepo := gameeventmock.NewRepository(t)
	service := NewRosterStatsService(rosterRepo, eventRepo, 1, logging.NewNop())

	rosterRepo.On("List", mock.Anything, "").Return([]roster.Entry{{ID: "P1"}}, nil).Once()
	eventRepo.On("ListAll", mock.Anything).
		Return([]gameevent.Event{{PlayerID: "P1", Type: gameevent.TypeRedCard}}, nil).
		Once()
	rosterRepo.On("UpdateCounters", mock.Anything, "P1", roster.Counters{RedCards: 1}).
		Return(errors.New("timeout")).
		Once()

	result, err := service.Recompute(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, result.Failed)
	require.Equal(t, 0, result.Updated)
}

func TestRosterStatsService_ListErrorFails(t *testing.T) {
	t.Parallel()

	rosterRepo := rostermock.NewRepository(t)
	eventRepo := gameeventmock.NewRepository(t)
	service := NewRosterStatsService(rosterRepo, eventRepo, 1, logging.NewNop())

	eventErr := errors.New("connection reset")
	rosterRepo.On("List", mock.Anything, "").Return([]roster.Entry{}, nil).Once()
	eventRepo.On("ListAll", mock.Anything).Return(nil, eventErr).Once()

	_, err := service.Recompute(context.Background())
	require.ErrorIs(t, err, eventErr)
}
