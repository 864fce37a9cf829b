package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/community-league/internal/domain/game"
	"github.com/riskibarqy/community-league/internal/domain/gameevent"
	"github.com/riskibarqy/community-league/internal/domain/roster"
	idgen "github.com/riskibarqy/community-league/internal/platform/id"
	"github.com/riskibarqy/community-league/internal/platform/logging"
)

type GameEventInput struct {
	PlayerID string
	Type     string
}

// GameEvents is a game's event log. FeatureUnavailable is set instead of an
// error when the deployment has no event store.
type GameEvents struct {
	GameID             string
	Items              []gameevent.Event
	FeatureUnavailable bool
}

type GameEventService struct {
	eventRepo  gameevent.Repository
	gameRepo   game.Repository
	rosterRepo roster.Repository
	rosterStat rosterRecomputer
	idGen      idgen.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewGameEventService(
	eventRepo gameevent.Repository,
	gameRepo game.Repository,
	rosterRepo roster.Repository,
	rosterStat rosterRecomputer,
	idGen idgen.Generator,
	logger *logging.Logger,
) *GameEventService {
	if logger == nil {
		logger = logging.Default()
	}
	return &GameEventService{
		eventRepo:  eventRepo,
		gameRepo:   gameRepo,
		rosterRepo: rosterRepo,
		rosterStat: rosterStat,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *GameEventService) List(ctx context.Context, gameID string) (GameEvents, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameEventService.List")
	defer span.End()

	item, err := s.getGame(ctx, gameID)
	if err != nil {
		return GameEvents{}, err
	}

	events, err := s.eventRepo.ListByGames(ctx, []string{item.ID})
	if errors.Is(err, gameevent.ErrFeatureUnavailable) {
		return GameEvents{GameID: item.ID, FeatureUnavailable: true}, nil
	}
	if err != nil {
		return GameEvents{}, fmt.Errorf("list game events: %w", err)
	}
	sortEvents(events)

	return GameEvents{GameID: item.ID, Items: events}, nil
}

// Record appends one occurrence to the game's event log.
func (s *GameEventService) Record(ctx context.Context, gameID string, input GameEventInput) (gameevent.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameEventService.Record")
	defer span.End()

	item, err := s.getGame(ctx, gameID)
	if err != nil {
		return gameevent.Event{}, err
	}
	event, err := s.buildEvent(ctx, item, input)
	if err != nil {
		return gameevent.Event{}, err
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return gameevent.Event{}, eventStoreError("create game event", err)
	}
	s.afterEventChange(ctx, item.ID)

	return event, nil
}

// Replace swaps the whole event log of a game for items.
func (s *GameEventService) Replace(ctx context.Context, gameID string, inputs []GameEventInput) ([]gameevent.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameEventService.Replace")
	defer span.End()

	item, err := s.getGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	events := make([]gameevent.Event, 0, len(inputs))
	for _, input := range inputs {
		event, err := s.buildEvent(ctx, item, input)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	if err := s.eventRepo.ReplaceForGame(ctx, item.ID, events); err != nil {
		return nil, eventStoreError("replace game events", err)
	}
	s.afterEventChange(ctx, item.ID)

	return events, nil
}

// Delete removes one occurrence from a game's event log.
func (s *GameEventService) Delete(ctx context.Context, gameID, eventID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameEventService.Delete")
	defer span.End()

	item, err := s.getGame(ctx, gameID)
	if err != nil {
		return err
	}
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}

	event, exists, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return eventStoreError("get game event", err)
	}
	if !exists || event.GameID != item.ID {
		return fmt.Errorf("%w: event=%s game=%s", ErrNotFound, eventID, item.ID)
	}

	if err := s.eventRepo.Delete(ctx, event.ID); err != nil {
		return eventStoreError("delete game event", err)
	}
	s.afterEventChange(ctx, item.ID)

	return nil
}

func (s *GameEventService) buildEvent(ctx context.Context, item game.Game, input GameEventInput) (gameevent.Event, error) {
	playerID := strings.TrimSpace(input.PlayerID)
	if playerID == "" {
		return gameevent.Event{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	eventType, err := gameevent.ParseType(input.Type)
	if err != nil {
		return gameevent.Event{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	player, exists, err := s.rosterRepo.GetByID(ctx, playerID)
	if err != nil {
		return gameevent.Event{}, fmt.Errorf("get roster entry by id: %w", err)
	}
	if !exists {
		return gameevent.Event{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}
	if !item.Involves(player.TeamID) {
		return gameevent.Event{}, fmt.Errorf("%w: player=%s does not play for either team of game=%s", ErrInvalidInput, playerID, item.ID)
	}

	eventID, err := s.idGen.NewID()
	if err != nil {
		return gameevent.Event{}, fmt.Errorf("generate game event id: %w", err)
	}

	event := gameevent.Event{
		ID:        eventID,
		GameID:    item.ID,
		PlayerID:  player.ID,
		Type:      eventType,
		CreatedAt: s.now().UTC(),
	}
	if err := event.Validate(); err != nil {
		return gameevent.Event{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return event, nil
}

func (s *GameEventService) getGame(ctx context.Context, gameID string) (game.Game, error) {
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

func (s *GameEventService) afterEventChange(ctx context.Context, gameID string) {
	if s.rosterStat == nil {
		return
	}
	if _, err := s.rosterStat.Recompute(ctx); err != nil {
		s.logger.WarnContext(ctx, "recompute roster counters after event change failed", "game_id", gameID, "error", err)
	}
}

// eventStoreError turns a missing event store into a 503 for write paths.
func eventStoreError(action string, err error) error {
	if errors.Is(err, gameevent.ErrFeatureUnavailable) {
		return fmt.Errorf("%w: %v", ErrDependencyUnavailable, err)
	}
	return fmt.Errorf("%s: %w", action, err)
}

func sortEvents(items []gameevent.Event) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		}
		return items[i].ID < items[j].ID
	})
}
