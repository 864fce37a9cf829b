package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/community-league/internal/domain/game"
)

type GameRepository struct {
	mu     sync.RWMutex
	games  []game.Game
	events *GameEventRepository
}

func NewGameRepository(games []game.Game) *GameRepository {
	items := make([]game.Game, 0, len(games))
	for _, item := range games {
		items = append(items, cloneGame(item))
	}
	return &GameRepository{games: items}
}

// CascadeEvents makes Delete also drop the game's events from events, the way
// the foreign key does in PostgreSQL.
func (r *GameRepository) CascadeEvents(events *GameEventRepository) *GameRepository {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = events
	return r
}

func (r *GameRepository) List(_ context.Context, filter game.Filter) ([]game.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]game.Game, 0, len(r.games))
	for _, item := range r.games {
		if filter.Matches(item) {
			out = append(out, cloneGame(item))
		}
	}
	return out, nil
}

func (r *GameRepository) GetByID(_ context.Context, gameID string) (game.Game, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if idx := r.indexOf(gameID); idx >= 0 {
		return cloneGame(r.games[idx]), true, nil
	}
	return game.Game{}, false, nil
}

func (r *GameRepository) ListLabelsByWeek(_ context.Context, week int) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0)
	for _, item := range r.games {
		if item.Week == week && item.MatchLabel != "" {
			out = append(out, item.MatchLabel)
		}
	}
	return out, nil
}

func (r *GameRepository) Create(_ context.Context, item game.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(item.ID) >= 0 {
		return fmt.Errorf("%w: game=%s", ErrDuplicateID, item.ID)
	}
	r.games = append(r.games, cloneGame(item))
	return nil
}

func (r *GameRepository) Update(_ context.Context, item game.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(item.ID)
	if idx < 0 {
		return fmt.Errorf("%w: game=%s", ErrRecordNotFound, item.ID)
	}
	r.games[idx] = cloneGame(item)
	return nil
}

func (r *GameRepository) Delete(_ context.Context, gameID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(gameID)
	if idx < 0 {
		return fmt.Errorf("%w: game=%s", ErrRecordNotFound, gameID)
	}
	r.games = append(r.games[:idx], r.games[idx+1:]...)
	if r.events != nil {
		r.events.dropGame(gameID)
	}
	return nil
}

func (r *GameRepository) indexOf(gameID string) int {
	for idx := range r.games {
		if r.games[idx].ID == gameID {
			return idx
		}
	}
	return -1
}

func cloneGame(item game.Game) game.Game {
	if item.HomeScore != nil {
		item.HomeScore = game.IntPtr(*item.HomeScore)
	}
	if item.AwayScore != nil {
		item.AwayScore = game.IntPtr(*item.AwayScore)
	}
	return item
}
