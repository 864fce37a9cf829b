package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/community-league/internal/domain/game"
	"github.com/riskibarqy/community-league/internal/domain/roster"
	"github.com/riskibarqy/community-league/internal/domain/team"
	idgen "github.com/riskibarqy/community-league/internal/platform/id"
)

type TeamInput struct {
	Name         string
	Organization string
}

type TeamService struct {
	teamRepo   team.Repository
	gameRepo   game.Repository
	rosterRepo roster.Repository
	idGen      idgen.Generator
	now        func() time.Time
}

func NewTeamService(
	teamRepo team.Repository,
	gameRepo game.Repository,
	rosterRepo roster.Repository,
	idGen idgen.Generator,
) *TeamService {
	return &TeamService{
		teamRepo:   teamRepo,
		gameRepo:   gameRepo,
		rosterRepo: rosterRepo,
		idGen:      idGen,
		now:        time.Now,
	}
}

func (s *TeamService) List(ctx context.Context) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.List")
	defer span.End()

	items, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	return items, nil
}

func (s *TeamService) Get(ctx context.Context, teamID string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Get")
	defer span.End()

	return s.getTeam(ctx, teamID)
}

func (s *TeamService) Create(ctx context.Context, input TeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Create")
	defer span.End()

	input = normalizeTeamInput(input)
	if input.Name == "" {
		return team.Team{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	teamID, err := s.idGen.NewID()
	if err != nil {
		return team.Team{}, fmt.Errorf("generate team id: %w", err)
	}

	now := s.now().UTC()
	item := team.Team{
		ID:           teamID,
		Name:         input.Name,
		Organization: input.Organization,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := item.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.teamRepo.Create(ctx, item); err != nil {
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}

	return item, nil
}

// Update changes a team's descriptive fields. Derived stats are left to the
// standings recompute.
func (s *TeamService) Update(ctx context.Context, teamID string, input TeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Update")
	defer span.End()

	item, err := s.getTeam(ctx, teamID)
	if err != nil {
		return team.Team{}, err
	}

	input = normalizeTeamInput(input)
	if input.Name == "" {
		return team.Team{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	item.Name = input.Name
	item.Organization = input.Organization
	item.UpdatedAt = s.now().UTC()
	if err := s.teamRepo.Update(ctx, item); err != nil {
		return team.Team{}, fmt.Errorf("update team: %w", err)
	}

	return item, nil
}

// Delete removes a team that has no games and no roster entries.
func (s *TeamService) Delete(ctx context.Context, teamID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Delete")
	defer span.End()

	item, err := s.getTeam(ctx, teamID)
	if err != nil {
		return err
	}

	games, err := s.gameRepo.List(ctx, game.Filter{TeamID: item.ID})
	if err != nil {
		return fmt.Errorf("list team games: %w", err)
	}
	if len(games) > 0 {
		return fmt.Errorf("%w: team=%s still has %d games", ErrConflict, item.ID, len(games))
	}

	entries, err := s.rosterRepo.List(ctx, item.ID)
	if err != nil {
		return fmt.Errorf("list team roster: %w", err)
	}
	if len(entries) > 0 {
		return fmt.Errorf("%w: team=%s still has %d players", ErrConflict, item.ID, len(entries))
	}

	if err := s.teamRepo.Delete(ctx, item.ID); err != nil {
		return asConflict(fmt.Errorf("delete team: %w", err))
	}

	return nil
}

func (s *TeamService) getTeam(ctx context.Context, teamID string) (team.Team, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	item, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team by id: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	return item, nil
}

func normalizeTeamInput(input TeamInput) TeamInput {
	input.Name = strings.TrimSpace(input.Name)
	input.Organization = strings.TrimSpace(input.Organization)
	return input
}
