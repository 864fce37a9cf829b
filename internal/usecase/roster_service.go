package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/community-league/internal/domain/roster"
	"github.com/riskibarqy/community-league/internal/domain/team"
	idgen "github.com/riskibarqy/community-league/internal/platform/id"
)

type RosterInput struct {
	TeamID       string
	PlayerName   string
	JerseyNumber *int
	// Assists is entered by hand since no event records it. Nil keeps the
	// stored value.
	Assists *int
}

type RosterService struct {
	rosterRepo roster.Repository
	teamRepo   team.Repository
	idGen      idgen.Generator
	now        func() time.Time
}

func NewRosterService(rosterRepo roster.Repository, teamRepo team.Repository, idGen idgen.Generator) *RosterService {
	return &RosterService{
		rosterRepo: rosterRepo,
		teamRepo:   teamRepo,
		idGen:      idGen,
		now:        time.Now,
	}
}

// List returns the roster of teamID, or every roster entry when teamID is
// empty, ordered by team then player name.
func (s *RosterService) List(ctx context.Context, teamID string) ([]roster.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.List")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID != "" {
		if err := s.ensureTeam(ctx, teamID); err != nil {
			return nil, err
		}
	}

	items, err := s.rosterRepo.List(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("list roster: %w", err)
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].TeamID != items[j].TeamID {
			return items[i].TeamID < items[j].TeamID
		}
		return strings.ToLower(items[i].PlayerName) < strings.ToLower(items[j].PlayerName)
	})

	return items, nil
}

func (s *RosterService) Get(ctx context.Context, entryID string) (roster.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.Get")
	defer span.End()

	return s.getEntry(ctx, entryID)
}

func (s *RosterService) Create(ctx context.Context, input RosterInput) (roster.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.Create")
	defer span.End()

	input = normalizeRosterInput(input)
	if err := validateRosterInput(input); err != nil {
		return roster.Entry{}, err
	}
	if err := s.ensureTeam(ctx, input.TeamID); err != nil {
		return roster.Entry{}, err
	}

	entryID, err := s.idGen.NewID()
	if err != nil {
		return roster.Entry{}, fmt.Errorf("generate roster entry id: %w", err)
	}

	now := s.now().UTC()
	item := roster.Entry{
		ID:           entryID,
		TeamID:       input.TeamID,
		PlayerName:   input.PlayerName,
		JerseyNumber: input.JerseyNumber,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if input.Assists != nil {
		item.Counters.Assists = *input.Assists
	}
	if err := s.checkJersey(ctx, item); err != nil {
		return roster.Entry{}, err
	}
	if err := item.Validate(); err != nil {
		return roster.Entry{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.rosterRepo.Create(ctx, item); err != nil {
		return roster.Entry{}, asConflict(fmt.Errorf("create roster entry: %w", err))
	}

	return item, nil
}

// Update edits the player's team, name, jersey and assists. Event-derived
// counters are left to the roster recompute.
func (s *RosterService) Update(ctx context.Context, entryID string, input RosterInput) (roster.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.Update")
	defer span.End()

	item, err := s.getEntry(ctx, entryID)
	if err != nil {
		return roster.Entry{}, err
	}

	input = normalizeRosterInput(input)
	if err := validateRosterInput(input); err != nil {
		return roster.Entry{}, err
	}
	if input.TeamID != item.TeamID {
		if err := s.ensureTeam(ctx, input.TeamID); err != nil {
			return roster.Entry{}, err
		}
	}

	item.TeamID = input.TeamID
	item.PlayerName = input.PlayerName
	item.JerseyNumber = input.JerseyNumber
	if input.Assists != nil {
		item.Counters.Assists = *input.Assists
	}
	item.UpdatedAt = s.now().UTC()
	if err := s.checkJersey(ctx, item); err != nil {
		return roster.Entry{}, err
	}
	if err := item.Validate(); err != nil {
		return roster.Entry{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.rosterRepo.Update(ctx, item); err != nil {
		return roster.Entry{}, asConflict(fmt.Errorf("update roster entry: %w", err))
	}

	return item, nil
}

func (s *RosterService) Delete(ctx context.Context, entryID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.Delete")
	defer span.End()

	item, err := s.getEntry(ctx, entryID)
	if err != nil {
		return err
	}
	if err := s.rosterRepo.Delete(ctx, item.ID); err != nil {
		return fmt.Errorf("delete roster entry: %w", err)
	}

	return nil
}

func (s *RosterService) checkJersey(ctx context.Context, item roster.Entry) error {
	if item.JerseyNumber == nil {
		return nil
	}
	teammates, err := s.rosterRepo.List(ctx, item.TeamID)
	if err != nil {
		return fmt.Errorf("list team roster: %w", err)
	}
	if roster.JerseyConflict(teammates, item) {
		return fmt.Errorf("%w: %v: team=%s jersey=%d", ErrConflict, roster.ErrDuplicateJersey, item.TeamID, *item.JerseyNumber)
	}
	return nil
}

func (s *RosterService) ensureTeam(ctx context.Context, teamID string) error {
	_, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return fmt.Errorf("get team by id: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}
	return nil
}

func (s *RosterService) getEntry(ctx context.Context, entryID string) (roster.Entry, error) {
	entryID = strings.TrimSpace(entryID)
	if entryID == "" {
		return roster.Entry{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	item, exists, err := s.rosterRepo.GetByID(ctx, entryID)
	if err != nil {
		return roster.Entry{}, fmt.Errorf("get roster entry by id: %w", err)
	}
	if !exists {
		return roster.Entry{}, fmt.Errorf("%w: player=%s", ErrNotFound, entryID)
	}

	return item, nil
}

func normalizeRosterInput(input RosterInput) RosterInput {
	input.TeamID = strings.TrimSpace(input.TeamID)
	input.PlayerName = strings.TrimSpace(input.PlayerName)
	return input
}

func validateRosterInput(input RosterInput) error {
	if input.TeamID == "" {
		return fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	if input.PlayerName == "" {
		return fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}
	if input.JerseyNumber != nil && *input.JerseyNumber < 0 {
		return fmt.Errorf("%w: jersey number cannot be negative", ErrInvalidInput)
	}
	if input.Assists != nil && *input.Assists < 0 {
		return fmt.Errorf("%w: assists cannot be negative", ErrInvalidInput)
	}
	return nil
}
