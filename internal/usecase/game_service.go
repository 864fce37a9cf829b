package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/community-league/internal/domain/game"
	"github.com/riskibarqy/community-league/internal/domain/team"
	idgen "github.com/riskibarqy/community-league/internal/platform/id"
	"github.com/riskibarqy/community-league/internal/platform/logging"
)

type GameInput struct {
	// MatchLabel is generated from Week when left empty.
	MatchLabel  string
	Week        int
	Date        time.Time
	Time        string
	Location    string
	HomeTeamID  string
	AwayTeamID  string
	Status      string
	HomeScore   *int
	AwayScore   *int
	IsPlayoff   bool
	IsPublished bool
}

type GameResultInput struct {
	Status    string
	HomeScore *int
	AwayScore *int
}

type standingsRecomputer interface {
	Recompute(ctx context.Context) (StandingsRecomputeResult, error)
}

type rosterRecomputer interface {
	Recompute(ctx context.Context) (RosterRecomputeResult, error)
}

type GameService struct {
	gameRepo   game.Repository
	teamRepo   team.Repository
	standings  standingsRecomputer
	rosterStat rosterRecomputer
	idGen      idgen.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewGameService(
	gameRepo game.Repository,
	teamRepo team.Repository,
	standings standingsRecomputer,
	rosterStat rosterRecomputer,
	idGen idgen.Generator,
	logger *logging.Logger,
) *GameService {
	if logger == nil {
		logger = logging.Default()
	}
	return &GameService{
		gameRepo:   gameRepo,
		teamRepo:   teamRepo,
		standings:  standings,
		rosterStat: rosterStat,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

// List returns games matching filter in chronological order.
func (s *GameService) List(ctx context.Context, filter game.Filter) ([]game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.List")
	defer span.End()

	if filter.Week < 0 {
		return nil, fmt.Errorf("%w: week must be >= 1", ErrInvalidInput)
	}

	items, err := s.gameRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	sortGames(items)

	return items, nil
}

func (s *GameService) Get(ctx context.Context, gameID string) (game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.Get")
	defer span.End()

	return s.getGame(ctx, gameID)
}

// NextLabel previews the label the next game created for week would get.
func (s *GameService) NextLabel(ctx context.Context, week int) (string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.NextLabel")
	defer span.End()

	if week < 1 {
		return "", fmt.Errorf("%w: week must be >= 1", ErrInvalidInput)
	}

	labels, err := s.gameRepo.ListLabelsByWeek(ctx, week)
	if err != nil {
		return "", fmt.Errorf("list match labels: %w", err)
	}

	return game.NextMatchLabel(week, labels), nil
}

func (s *GameService) Create(ctx context.Context, input GameInput) (game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.Create")
	defer span.End()

	item, err := s.buildGame(ctx, game.Game{}, input)
	if err != nil {
		return game.Game{}, err
	}

	gameID, err := s.idGen.NewID()
	if err != nil {
		return game.Game{}, fmt.Errorf("generate game id: %w", err)
	}
	now := s.now().UTC()
	item.ID = gameID
	item.CreatedAt = now
	item.UpdatedAt = now
	if item.MatchLabel == "" {
		label, err := s.NextLabel(ctx, item.Week)
		if err != nil {
			return game.Game{}, err
		}
		item.MatchLabel = label
	}
	if err := item.Validate(); err != nil {
		return game.Game{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.gameRepo.Create(ctx, item); err != nil {
		return game.Game{}, fmt.Errorf("create game: %w", err)
	}
	s.afterGameChange(ctx, item.ID)

	return item, nil
}

// Update replaces every editable field of a game. An empty label keeps the
// current one unless the week changed, in which case a fresh label is drawn
// for the new week.
func (s *GameService) Update(ctx context.Context, gameID string, input GameInput) (game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.Update")
	defer span.End()

	current, err := s.getGame(ctx, gameID)
	if err != nil {
		return game.Game{}, err
	}

	item, err := s.buildGame(ctx, current, input)
	if err != nil {
		return game.Game{}, err
	}
	if item.MatchLabel == "" {
		item.MatchLabel = current.MatchLabel
		if item.Week != current.Week {
			label, err := s.NextLabel(ctx, item.Week)
			if err != nil {
				return game.Game{}, err
			}
			item.MatchLabel = label
		}
	}
	item.UpdatedAt = s.now().UTC()
	if err := item.Validate(); err != nil {
		return game.Game{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.gameRepo.Update(ctx, item); err != nil {
		return game.Game{}, fmt.Errorf("update game: %w", err)
	}
	s.afterGameChange(ctx, item.ID)

	return item, nil
}

// SetResult records a score and status change without touching the schedule.
func (s *GameService) SetResult(ctx context.Context, gameID string, input GameResultInput) (game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.SetResult")
	defer span.End()

	item, err := s.getGame(ctx, gameID)
	if err != nil {
		return game.Game{}, err
	}

	status := item.Status
	if strings.TrimSpace(input.Status) != "" {
		status, err = game.ParseStatus(input.Status)
		if err != nil {
			return game.Game{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}
	if err := validateScores(status, input.HomeScore, input.AwayScore); err != nil {
		return game.Game{}, err
	}

	item.Status = status
	item.HomeScore = input.HomeScore
	item.AwayScore = input.AwayScore
	item.UpdatedAt = s.now().UTC()
	if err := item.Validate(); err != nil {
		return game.Game{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.gameRepo.Update(ctx, item); err != nil {
		return game.Game{}, fmt.Errorf("update game result: %w", err)
	}
	s.afterGameChange(ctx, item.ID)

	return item, nil
}

// Delete removes a game. The repository drops its recorded events in the
// same write.
func (s *GameService) Delete(ctx context.Context, gameID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.Delete")
	defer span.End()

	item, err := s.getGame(ctx, gameID)
	if err != nil {
		return err
	}

	if err := s.gameRepo.Delete(ctx, item.ID); err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	s.afterGameChange(ctx, item.ID)
	s.recomputeRoster(ctx)

	return nil
}

func (s *GameService) buildGame(ctx context.Context, base game.Game, input GameInput) (game.Game, error) {
	input.MatchLabel = strings.TrimSpace(input.MatchLabel)
	input.Time = strings.TrimSpace(input.Time)
	input.Location = strings.TrimSpace(input.Location)
	input.HomeTeamID = strings.TrimSpace(input.HomeTeamID)
	input.AwayTeamID = strings.TrimSpace(input.AwayTeamID)

	if input.Week < 1 {
		return game.Game{}, fmt.Errorf("%w: week must be >= 1", ErrInvalidInput)
	}
	if input.Date.IsZero() {
		return game.Game{}, fmt.Errorf("%w: game date is required", ErrInvalidInput)
	}
	if input.HomeTeamID == "" || input.AwayTeamID == "" {
		return game.Game{}, fmt.Errorf("%w: home and away team are required", ErrInvalidInput)
	}
	if input.HomeTeamID == input.AwayTeamID {
		return game.Game{}, fmt.Errorf("%w: %v", ErrInvalidInput, game.ErrSameTeam)
	}
	status, err := game.ParseStatus(input.Status)
	if err != nil {
		return game.Game{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := validateScores(status, input.HomeScore, input.AwayScore); err != nil {
		return game.Game{}, err
	}

	for _, teamID := range []string{input.HomeTeamID, input.AwayTeamID} {
		_, exists, err := s.teamRepo.GetByID(ctx, teamID)
		if err != nil {
			return game.Game{}, fmt.Errorf("get team by id: %w", err)
		}
		if !exists {
			return game.Game{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
		}
	}

	base.MatchLabel = input.MatchLabel
	base.Week = input.Week
	base.Date = input.Date.UTC()
	base.Time = input.Time
	base.Location = input.Location
	base.HomeTeamID = input.HomeTeamID
	base.AwayTeamID = input.AwayTeamID
	base.Status = status
	base.HomeScore = input.HomeScore
	base.AwayScore = input.AwayScore
	base.IsPlayoff = input.IsPlayoff
	base.IsPublished = input.IsPublished

	return base, nil
}

// validateScores keeps new records out of the calculator's skip path: a
// completed game needs both scores and a game that has not kicked off has none.
func validateScores(status game.Status, home, away *int) error {
	switch status {
	case game.StatusCompleted:
		if home == nil || away == nil {
			return fmt.Errorf("%w: completed game requires both scores", ErrInvalidInput)
		}
	case game.StatusScheduled, game.StatusCancelled:
		if home != nil || away != nil {
			return fmt.Errorf("%w: scores are only allowed once a game has started", ErrInvalidInput)
		}
	}
	if (home != nil && *home < 0) || (away != nil && *away < 0) {
		return fmt.Errorf("%w: scores cannot be negative", ErrInvalidInput)
	}
	return nil
}

func (s *GameService) getGame(ctx context.Context, gameID string) (game.Game, error) {
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return game.Game{}, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}

	item, exists, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return game.Game{}, fmt.Errorf("get game by id: %w", err)
	}
	if !exists {
		return game.Game{}, fmt.Errorf("%w: game=%s", ErrNotFound, gameID)
	}

	return item, nil
}

// afterGameChange refreshes the stored team stats. The mutation already
// succeeded, so a failure here is only logged; the next recompute repairs it.
func (s *GameService) afterGameChange(ctx context.Context, gameID string) {
	if s.standings == nil {
		return
	}
	if _, err := s.standings.Recompute(ctx); err != nil {
		s.logger.WarnContext(ctx, "recompute standings after game change failed", "game_id", gameID, "error", err)
	}
}

func (s *GameService) recomputeRoster(ctx context.Context) {
	if s.rosterStat == nil {
		return
	}
	if _, err := s.rosterStat.Recompute(ctx); err != nil {
		s.logger.WarnContext(ctx, "recompute roster counters failed", "error", err)
	}
}

func sortGames(items []game.Game) {
	sort.SliceStable(items, func(i, j int) bool {
		return game.Before(items[i], items[j])
	})
}
