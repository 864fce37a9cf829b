package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/riskibarqy/community-league/internal/domain/roster"
	"github.com/riskibarqy/community-league/internal/domain/team"
	rostermock "github.com/riskibarqy/community-league/internal/mocks/domain/roster"
	teammock "github.com/riskibarqy/community-league/internal/mocks/domain/team"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRosterService_CreateRejectsDuplicateJersey(t *testing.T) {
	t.Parallel()

	rosterRepo := rostermock.NewRepository(t)
	teamRepo := teammock.NewRepository(t)
	service := NewRosterService(rosterRepo, teamRepo, &sequenceIDGen{prefix: "player"})

	teamRepo.On("GetByID", mock.Anything, "t-huda").Return(team.Team{ID: "t-huda"}, true, nil).Once()
	rosterRepo.On("List", mock.Anything, "t-huda").Return([]roster.Entry{
		{ID: "p-1", TeamID: "t-huda", PlayerName: "Yusuf", JerseyNumber: intPtr(10)},
	}, nil).Once()

	_, err := service.Create(context.Background(), RosterInput{
		TeamID:       "t-huda",
		PlayerName:   "Omar",
		JerseyNumber: intPtr(10),
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	rosterRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRosterService_StoreJerseyConflictIsConflict(t *testing.T) {
	t.Parallel()

	rosterRepo := rostermock.NewRepository(t)
	teamRepo := teammock.NewRepository(t)
	service := NewRosterService(rosterRepo, teamRepo, &sequenceIDGen{prefix: "player"})

	// A teammate took #10 between the check and the insert.
	teamRepo.On("GetByID", mock.Anything, "t-huda").Return(team.Team{ID: "t-huda"}, true, nil).Once()
	rosterRepo.On("List", mock.Anything, "t-huda").Return([]roster.Entry{}, nil).Once()
	rosterRepo.On("Create", mock.Anything, mock.Anything).
		Return(fmt.Errorf("insert roster entry: %w", roster.ErrDuplicateJersey)).Once()

	_, err := service.Create(context.Background(), RosterInput{
		TeamID:       "t-huda",
		PlayerName:   "Omar",
		JerseyNumber: intPtr(10),
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	require.ErrorIs(t, err, roster.ErrDuplicateJersey)
}

func TestRosterService_CreateWithoutJersey(t *testing.T) {
	t.Parallel()

	rosterRepo := rostermock.NewRepository(t)
	teamRepo := teammock.NewRepository(t)
	service := NewRosterService(rosterRepo, teamRepo, &sequenceIDGen{prefix: "player"})

	teamRepo.On("GetByID", mock.Anything, "t-huda").Return(team.Team{ID: "t-huda"}, true, nil).Once()
	rosterRepo.On("Create", mock.Anything, mock.MatchedBy(func(e roster.Entry) bool {
		return e.ID == "player-1" && e.PlayerName == "Omar" && e.JerseyNumber == nil
	})).Return(nil).Once()

	got, err := service.Create(context.Background(), RosterInput{TeamID: " t-huda ", PlayerName: " Omar "})
	require.NoError(t, err)
	require.Equal(t, "t-huda", got.TeamID)
}

func TestRosterService_UpdateKeepsOwnJersey(t *testing.T) {
	t.Parallel()

	rosterRepo := rostermock.NewRepository(t)
	teamRepo := teammock.NewRepository(t)
	service := NewRosterService(rosterRepo, teamRepo, &sequenceIDGen{prefix: "player"})

	current := roster.Entry{
		ID:           "p-1",
		TeamID:       "t-huda",
		PlayerName:   "Yusuf",
		JerseyNumber: intPtr(7),
		Counters:     roster.Counters{Goals: 3},
	}
	rosterRepo.On("GetByID", mock.Anything, "p-1").Return(current, true, nil).Once()
	rosterRepo.On("List", mock.Anything, "t-huda").Return([]roster.Entry{current}, nil).Once()
	rosterRepo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()

	got, err := service.Update(context.Background(), "p-1", RosterInput{
		TeamID:       "t-huda",
		PlayerName:   "Yusuf Ali",
		JerseyNumber: intPtr(7),
		Assists:      intPtr(2),
	})
	require.NoError(t, err)
	require.Equal(t, "Yusuf Ali", got.PlayerName)
	require.Equal(t, roster.Counters{Goals: 3, Assists: 2}, got.Counters)
}

func TestRosterService_Validation(t *testing.T) {
	t.Parallel()

	service := NewRosterService(rostermock.NewRepository(t), teammock.NewRepository(t), &sequenceIDGen{})

	for _, input := range []RosterInput{
		{PlayerName: "No Team"},
		{TeamID: "t-huda"},
		{TeamID: "t-huda", PlayerName: "Neg", JerseyNumber: intPtr(-1)},
	} {
		if _, err := service.Create(context.Background(), input); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("input %+v: expected ErrInvalidInput, got %v", input, err)
		}
	}
}

func TestRosterService_ListUnknownTeam(t *testing.T) {
	t.Parallel()

	teamRepo := teammock.NewRepository(t)
	service := NewRosterService(rostermock.NewRepository(t), teamRepo, &sequenceIDGen{})
	teamRepo.On("GetByID", mock.Anything, "nope").Return(team.Team{}, false, nil).Once()

	_, err := service.List(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func intPtr(v int) *int {
	return &v
}
