package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/community-league/internal/domain/roster"
)

type RosterRepository struct {
	mu      sync.RWMutex
	entries []roster.Entry
}

func NewRosterRepository(entries []roster.Entry) *RosterRepository {
	items := make([]roster.Entry, 0, len(entries))
	for _, item := range entries {
		items = append(items, cloneEntry(item))
	}
	return &RosterRepository{entries: items}
}

func (r *RosterRepository) List(_ context.Context, teamID string) ([]roster.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]roster.Entry, 0, len(r.entries))
	for _, item := range r.entries {
		if teamID == "" || item.TeamID == teamID {
			out = append(out, cloneEntry(item))
		}
	}
	return out, nil
}

func (r *RosterRepository) GetByID(_ context.Context, entryID string) (roster.Entry, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if idx := r.indexOf(entryID); idx >= 0 {
		return cloneEntry(r.entries[idx]), true, nil
	}
	return roster.Entry{}, false, nil
}

func (r *RosterRepository) Create(_ context.Context, item roster.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(item.ID) >= 0 {
		return fmt.Errorf("%w: player=%s", ErrDuplicateID, item.ID)
	}
	if roster.JerseyConflict(r.entries, item) {
		return fmt.Errorf("%w: team=%s", roster.ErrDuplicateJersey, item.TeamID)
	}
	r.entries = append(r.entries, cloneEntry(item))
	return nil
}

func (r *RosterRepository) Update(_ context.Context, item roster.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(item.ID)
	if idx < 0 {
		return fmt.Errorf("%w: player=%s", ErrRecordNotFound, item.ID)
	}
	if roster.JerseyConflict(r.entries, item) {
		return fmt.Errorf("%w: team=%s", roster.ErrDuplicateJersey, item.TeamID)
	}
	// Event-derived counters are owned by the roster recompute.
	assists := item.Counters.Assists
	item.Counters = r.entries[idx].Counters
	item.Counters.Assists = assists
	r.entries[idx] = cloneEntry(item)
	return nil
}

func (r *RosterRepository) Delete(_ context.Context, entryID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(entryID)
	if idx < 0 {
		return fmt.Errorf("%w: player=%s", ErrRecordNotFound, entryID)
	}
	r.entries = append(r.entries[:idx], r.entries[idx+1:]...)
	return nil
}

func (r *RosterRepository) UpdateCounters(_ context.Context, entryID string, counters roster.Counters) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(entryID)
	if idx < 0 {
		return fmt.Errorf("%w: player=%s", ErrRecordNotFound, entryID)
	}
	r.entries[idx].Counters = counters
	return nil
}

func (r *RosterRepository) indexOf(entryID string) int {
	for idx := range r.entries {
		if r.entries[idx].ID == entryID {
			return idx
		}
	}
	return -1
}

func cloneEntry(item roster.Entry) roster.Entry {
	if item.JerseyNumber != nil {
		n := *item.JerseyNumber
		item.JerseyNumber = &n
	}
	return item
}
