package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/community-league/internal/domain/gameevent"
)

// GameEventRepository stores events in insertion order. A repository built
// with NewUnavailableGameEventRepository behaves like a deployment without the
// events table.
type GameEventRepository struct {
	mu          sync.RWMutex
	events      []gameevent.Event
	unavailable bool
}

func NewGameEventRepository(events []gameevent.Event) *GameEventRepository {
	items := make([]gameevent.Event, 0, len(events))
	items = append(items, events...)
	return &GameEventRepository{events: items}
}

func NewUnavailableGameEventRepository() *GameEventRepository {
	return &GameEventRepository{unavailable: true}
}

func (r *GameEventRepository) ListAll(_ context.Context) ([]gameevent.Event, error) {
	if r.unavailable {
		return nil, gameevent.ErrFeatureUnavailable
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]gameevent.Event, 0, len(r.events))
	out = append(out, r.events...)
	return out, nil
}

func (r *GameEventRepository) ListByGames(_ context.Context, gameIDs []string) ([]gameevent.Event, error) {
	if r.unavailable {
		return nil, gameevent.ErrFeatureUnavailable
	}
	wanted := make(map[string]struct{}, len(gameIDs))
	for _, id := range gameIDs {
		wanted[id] = struct{}{}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]gameevent.Event, 0)
	for _, item := range r.events {
		if _, ok := wanted[item.GameID]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *GameEventRepository) GetByID(_ context.Context, eventID string) (gameevent.Event, bool, error) {
	if r.unavailable {
		return gameevent.Event{}, false, gameevent.ErrFeatureUnavailable
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.events {
		if item.ID == eventID {
			return item, true, nil
		}
	}
	return gameevent.Event{}, false, nil
}

func (r *GameEventRepository) Create(_ context.Context, item gameevent.Event) error {
	if r.unavailable {
		return gameevent.ErrFeatureUnavailable
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.events {
		if existing.ID == item.ID {
			return fmt.Errorf("%w: event=%s", ErrDuplicateID, item.ID)
		}
	}
	r.events = append(r.events, item)
	return nil
}

func (r *GameEventRepository) Delete(_ context.Context, eventID string) error {
	if r.unavailable {
		return gameevent.ErrFeatureUnavailable
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for idx := range r.events {
		if r.events[idx].ID == eventID {
			r.events = append(r.events[:idx], r.events[idx+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: event=%s", ErrRecordNotFound, eventID)
}

func (r *GameEventRepository) ReplaceForGame(_ context.Context, gameID string, items []gameevent.Event) error {
	if r.unavailable {
		return gameevent.ErrFeatureUnavailable
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := make([]gameevent.Event, 0, len(r.events)+len(items))
	for _, existing := range r.events {
		if existing.GameID != gameID {
			kept = append(kept, existing)
		}
	}
	for _, item := range items {
		item.GameID = gameID
		kept = append(kept, item)
	}
	r.events = kept
	return nil
}

// dropGame removes every event of gameID. A store without events has nothing
// to drop.
func (r *GameEventRepository) dropGame(gameID string) {
	if r.unavailable {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.events[:0]
	for _, existing := range r.events {
		if existing.GameID != gameID {
			kept = append(kept, existing)
		}
	}
	r.events = kept
}
