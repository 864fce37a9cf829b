package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/riskibarqy/community-league/internal/domain/game"
	"github.com/riskibarqy/community-league/internal/domain/gameevent"
	"github.com/riskibarqy/community-league/internal/domain/roster"
	"github.com/riskibarqy/community-league/internal/domain/standings"
	"github.com/riskibarqy/community-league/internal/domain/team"
	"github.com/riskibarqy/community-league/internal/platform/logging"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultGamesLimit = 20
	MaxGamesLimit     = 100
	HomeGamesLimit    = 6
)

type GoalScorer struct {
	PlayerID   string
	PlayerName string
	TeamID     string
	Goals      int
}

// GameSummary is a game with its team names resolved for display.
type GameSummary struct {
	Game         game.Game
	HomeTeamName string
	AwayTeamName string
	GoalScorers  []GoalScorer
}

type ScheduleWeek struct {
	Week  int
	Games []GameSummary
}

type ScoreBoard struct {
	Games []GameSummary
	// ScorersUnavailable is set when goal scorers could not be attached
	// because the event store is missing.
	ScorersUnavailable bool
}

type Leaders struct {
	TopScorers         []roster.Entry
	CardLeaders        []roster.Entry
	FeatureUnavailable bool
}

type HomeSummary struct {
	Recent    ScoreBoard
	Upcoming  []GameSummary
	Standings standings.Table
}

type standingsTableReader interface {
	Table(ctx context.Context) (standings.Table, error)
}

// PublicService serves the read-only public pages. Playoff games stay hidden
// until published.
type PublicService struct {
	gameRepo   game.Repository
	teamRepo   team.Repository
	rosterRepo roster.Repository
	eventRepo  gameevent.Repository
	standings  standingsTableReader
	rosterStat rosterRecomputer
	logger     *logging.Logger
}

func NewPublicService(
	gameRepo game.Repository,
	teamRepo team.Repository,
	rosterRepo roster.Repository,
	eventRepo gameevent.Repository,
	standings standingsTableReader,
	rosterStat rosterRecomputer,
	logger *logging.Logger,
) *PublicService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PublicService{
		gameRepo:   gameRepo,
		teamRepo:   teamRepo,
		rosterRepo: rosterRepo,
		eventRepo:  eventRepo,
		standings:  standings,
		rosterStat: rosterStat,
		logger:     logger,
	}
}

// Schedule lists every public game grouped by week, weeks ascending.
func (s *PublicService) Schedule(ctx context.Context) ([]ScheduleWeek, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PublicService.Schedule")
	defer span.End()

	games, err := s.gameRepo.List(ctx, game.Filter{PublishedOnly: true})
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	sortGames(games)

	summaries, err := s.summarize(ctx, games)
	if err != nil {
		return nil, err
	}

	out := make([]ScheduleWeek, 0)
	for _, item := range summaries {
		if n := len(out); n == 0 || out[n-1].Week != item.Game.Week {
			out = append(out, ScheduleWeek{Week: item.Game.Week})
		}
		last := &out[len(out)-1]
		last.Games = append(last.Games, item)
	}

	return out, nil
}

// RecentScores lists completed public games with both scores, newest first,
// with goal scorers attached when events are available.
func (s *PublicService) RecentScores(ctx context.Context, limit int) (ScoreBoard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PublicService.RecentScores")
	defer span.End()

	limit, err := normalizeGamesLimit(limit)
	if err != nil {
		return ScoreBoard{}, err
	}

	games, err := s.gameRepo.List(ctx, game.Filter{
		Statuses:      []game.Status{game.StatusCompleted},
		PublishedOnly: true,
	})
	if err != nil {
		return ScoreBoard{}, fmt.Errorf("list completed games: %w", err)
	}

	played := make([]game.Game, 0, len(games))
	for _, g := range games {
		if g.HasFinalScore() {
			played = append(played, g)
		}
	}
	sort.SliceStable(played, func(i, j int) bool {
		return game.Before(played[j], played[i])
	})
	if len(played) > limit {
		played = played[:limit]
	}

	summaries, err := s.summarize(ctx, played)
	if err != nil {
		return ScoreBoard{}, err
	}

	board := ScoreBoard{Games: summaries}
	if err := s.attachScorers(ctx, board.Games); err != nil {
		if !errors.Is(err, gameevent.ErrFeatureUnavailable) {
			return ScoreBoard{}, err
		}
		board.ScorersUnavailable = true
	}

	return board, nil
}

// Upcoming lists scheduled and in-progress public games, soonest first.
func (s *PublicService) Upcoming(ctx context.Context, limit int) ([]GameSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PublicService.Upcoming")
	defer span.End()

	limit, err := normalizeGamesLimit(limit)
	if err != nil {
		return nil, err
	}

	games, err := s.gameRepo.List(ctx, game.Filter{
		Statuses:      []game.Status{game.StatusScheduled, game.StatusInProgress},
		PublishedOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("list upcoming games: %w", err)
	}
	sortGames(games)
	if len(games) > limit {
		games = games[:limit]
	}

	return s.summarize(ctx, games)
}

// GetGame returns one public game. Unpublished playoff games are reported as
// not found.
func (s *PublicService) GetGame(ctx context.Context, gameID string) (GameSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PublicService.GetGame")
	defer span.End()

	item, exists, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return GameSummary{}, fmt.Errorf("get game by id: %w", err)
	}
	if !exists || !item.PubliclyVisible() {
		return GameSummary{}, fmt.Errorf("%w: game=%s", ErrNotFound, gameID)
	}

	summaries, err := s.summarize(ctx, []game.Game{item})
	if err != nil {
		return GameSummary{}, err
	}
	if err := s.attachScorers(ctx, summaries); err != nil && !errors.Is(err, gameevent.ErrFeatureUnavailable) {
		return GameSummary{}, err
	}

	return summaries[0], nil
}

// Leaders recomputes roster counters and ranks top scorers and bookings.
func (s *PublicService) Leaders(ctx context.Context) (Leaders, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PublicService.Leaders")
	defer span.End()

	result, err := s.rosterStat.Recompute(ctx)
	if err != nil {
		return Leaders{}, fmt.Errorf("recompute roster counters: %w", err)
	}

	return Leaders{
		TopScorers:         roster.TopScorers(result.Entries, roster.DefaultLeadersLimit),
		CardLeaders:        roster.CardLeaders(result.Entries, roster.DefaultLeadersLimit),
		FeatureUnavailable: result.FeatureUnavailable,
	}, nil
}

// Home loads the landing page pieces concurrently.
func (s *PublicService) Home(ctx context.Context) (HomeSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PublicService.Home")
	defer span.End()

	var out HomeSummary
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		board, err := s.RecentScores(gctx, HomeGamesLimit)
		if err != nil {
			return err
		}
		out.Recent = board
		return nil
	})
	g.Go(func() error {
		items, err := s.Upcoming(gctx, HomeGamesLimit)
		if err != nil {
			return err
		}
		out.Upcoming = items
		return nil
	})
	g.Go(func() error {
		table, err := s.standings.Table(gctx)
		if err != nil {
			return fmt.Errorf("load standings: %w", err)
		}
		out.Standings = table
		return nil
	})
	if err := g.Wait(); err != nil {
		return HomeSummary{}, err
	}

	return out, nil
}

func (s *PublicService) summarize(ctx context.Context, games []game.Game) ([]GameSummary, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	names := make(map[string]string, len(teams))
	for _, t := range teams {
		names[t.ID] = t.Name
	}

	out := make([]GameSummary, 0, len(games))
	for _, g := range games {
		out = append(out, GameSummary{
			Game:         g,
			HomeTeamName: names[g.HomeTeamID],
			AwayTeamName: names[g.AwayTeamID],
		})
	}
	return out, nil
}

// attachScorers fills GoalScorers in place. It returns
// gameevent.ErrFeatureUnavailable unchanged so callers can degrade.
func (s *PublicService) attachScorers(ctx context.Context, items []GameSummary) error {
	if len(items) == 0 {
		return nil
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.Game.ID)
	}
	events, err := s.eventRepo.ListByGames(ctx, ids)
	if errors.Is(err, gameevent.ErrFeatureUnavailable) {
		s.logger.DebugContext(ctx, "skip goal scorers: game events not available")
		return err
	}
	if err != nil {
		return fmt.Errorf("list game events: %w", err)
	}

	entries, err := s.rosterRepo.List(ctx, "")
	if err != nil {
		return fmt.Errorf("list roster: %w", err)
	}
	players := make(map[string]roster.Entry, len(entries))
	for _, e := range entries {
		players[e.ID] = e
	}

	type key struct{ gameID, playerID string }
	goals := make(map[key]int)
	order := make(map[string][]string)
	for _, e := range events {
		if e.Type != gameevent.TypeGoal {
			continue
		}
		k := key{gameID: e.GameID, playerID: e.PlayerID}
		if goals[k] == 0 {
			order[e.GameID] = append(order[e.GameID], e.PlayerID)
		}
		goals[k]++
	}

	for i := range items {
		gameID := items[i].Game.ID
		for _, playerID := range order[gameID] {
			player := players[playerID]
			items[i].GoalScorers = append(items[i].GoalScorers, GoalScorer{
				PlayerID:   playerID,
				PlayerName: player.PlayerName,
				TeamID:     player.TeamID,
				Goals:      goals[key{gameID: gameID, playerID: playerID}],
			})
		}
	}
	return nil
}

func normalizeGamesLimit(limit int) (int, error) {
	switch {
	case limit < 0:
		return 0, fmt.Errorf("%w: limit must be >= 0", ErrInvalidInput)
	case limit == 0:
		return DefaultGamesLimit, nil
	case limit > MaxGamesLimit:
		return MaxGamesLimit, nil
	default:
		return limit, nil
	}
}
