package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/community-league/internal/domain/gameevent"
	"github.com/riskibarqy/community-league/internal/domain/roster"
	"github.com/riskibarqy/community-league/internal/domain/standings"
	"github.com/riskibarqy/community-league/internal/platform/logging"
)

type rosterCounterStore interface {
	List(ctx context.Context, teamID string) ([]roster.Entry, error)
	UpdateCounters(ctx context.Context, entryID string, counters roster.Counters) error
}

type eventLister interface {
	ListAll(ctx context.Context) ([]gameevent.Event, error)
}

type RosterRecomputeResult struct {
	Entries []roster.Entry
	// FeatureUnavailable is set when the event store does not exist. Entries
	// then carry their stored counters untouched.
	FeatureUnavailable bool
	Updated            int
	Unchanged          int
	Failed             int
}

type RosterStatsService struct {
	rosterRepo rosterCounterStore
	eventRepo  eventLister
	workers    int
	logger     *logging.Logger
}

func NewRosterStatsService(rosterRepo rosterCounterStore, eventRepo eventLister, workers int, logger *logging.Logger) *RosterStatsService {
	if workers <= 0 {
		workers = defaultWriteWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &RosterStatsService{
		rosterRepo: rosterRepo,
		eventRepo:  eventRepo,
		workers:    workers,
		logger:     logger,
	}
}

// Recompute replays every recorded event into roster counters and writes the
// entries whose counters changed.
func (s *RosterStatsService) Recompute(ctx context.Context) (RosterRecomputeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterStatsService.Recompute")
	defer span.End()

	entries, err := s.rosterRepo.List(ctx, "")
	if err != nil {
		return RosterRecomputeResult{}, fmt.Errorf("list roster: %w", err)
	}

	events, err := s.eventRepo.ListAll(ctx)
	if errors.Is(err, gameevent.ErrFeatureUnavailable) {
		s.logger.DebugContext(ctx, "skip roster counters: game events not available")
		return RosterRecomputeResult{Entries: entries, FeatureUnavailable: true}, nil
	}
	if err != nil {
		return RosterRecomputeResult{}, fmt.Errorf("list game events: %w", err)
	}

	counted := standings.CountEvents(entries, events)
	result := RosterRecomputeResult{Entries: counted}

	changed := make([]roster.Entry, 0, len(counted))
	for i, entry := range counted {
		if entry.Counters == entries[i].Counters {
			continue
		}
		changed = append(changed, entry)
	}
	result.Unchanged = len(counted) - len(changed)
	if len(changed) == 0 {
		return result, nil
	}

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return RosterRecomputeResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var updated, failed atomic.Int32
	var workers sync.WaitGroup
	for _, entry := range changed {
		entry := entry
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			if err := s.rosterRepo.UpdateCounters(ctx, entry.ID, entry.Counters); err != nil {
				failed.Add(1)
				s.logger.WarnContext(ctx, "persist roster counters failed", "player_id", entry.ID, "error", err)
				return
			}
			updated.Add(1)
		}); err != nil {
			workers.Done()
			failed.Add(1)
			s.logger.WarnContext(ctx, "submit roster counter write failed", "player_id", entry.ID, "error", err)
		}
	}
	workers.Wait()

	result.Updated = int(updated.Load())
	result.Failed = int(failed.Load())
	return result, nil
}
