package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/community-league/internal/domain/team"
)

// TeamRepository keeps teams in insertion order.
type TeamRepository struct {
	mu    sync.RWMutex
	teams []team.Team
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	items := make([]team.Team, 0, len(teams))
	items = append(items, teams...)
	return &TeamRepository{teams: items}
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.teams))
	out = append(out, r.teams...)
	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if idx := r.indexOf(teamID); idx >= 0 {
		return r.teams[idx], true, nil
	}
	return team.Team{}, false, nil
}

func (r *TeamRepository) Create(_ context.Context, item team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(item.ID) >= 0 {
		return fmt.Errorf("%w: team=%s", ErrDuplicateID, item.ID)
	}
	r.teams = append(r.teams, item)
	return nil
}

func (r *TeamRepository) Update(_ context.Context, item team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(item.ID)
	if idx < 0 {
		return fmt.Errorf("%w: team=%s", ErrRecordNotFound, item.ID)
	}
	// Stats belong to the standings recompute.
	item.Stats = r.teams[idx].Stats
	r.teams[idx] = item
	return nil
}

func (r *TeamRepository) Delete(_ context.Context, teamID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(teamID)
	if idx < 0 {
		return fmt.Errorf("%w: team=%s", ErrRecordNotFound, teamID)
	}
	r.teams = append(r.teams[:idx], r.teams[idx+1:]...)
	return nil
}

func (r *TeamRepository) UpdateStats(_ context.Context, teamID string, stats team.Stats) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(teamID)
	if idx < 0 {
		return fmt.Errorf("%w: team=%s", ErrRecordNotFound, teamID)
	}
	r.teams[idx].Stats = stats
	return nil
}

func (r *TeamRepository) indexOf(teamID string) int {
	for idx := range r.teams {
		if r.teams[idx].ID == teamID {
			return idx
		}
	}
	return -1
}
