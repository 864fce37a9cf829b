package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/community-league/internal/platform/logging"
	"github.com/riskibarqy/community-league/internal/usecase"
)

const RecomputeJobName = "league-recompute"

type leagueRecomputer interface {
	RecomputeAll(ctx context.Context) (usecase.StandingsRecomputeResult, usecase.RosterRecomputeResult, error)
}

// RecomputeJob persists derived standings and roster counters in the
// background so stored values stay close to the games between admin loads.
type RecomputeJob struct {
	recomputer leagueRecomputer
	timeout    time.Duration
	logger     *logging.Logger
}

func NewRecomputeJob(recomputer leagueRecomputer, timeout time.Duration, logger *logging.Logger) *RecomputeJob {
	if logger == nil {
		logger = logging.Default()
	}
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &RecomputeJob{recomputer: recomputer, timeout: timeout, logger: logger}
}

func (j *RecomputeJob) Run(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	table, counters, err := j.recomputer.RecomputeAll(ctx)
	if err != nil {
		return fmt.Errorf("recompute league: %w", err)
	}

	j.logger.InfoContext(ctx, "league recompute finished",
		"teams_updated", table.Updated,
		"teams_failed", table.Failed,
		"skipped_games", len(table.Table.Skipped),
		"roster_updated", counters.Updated,
		"roster_failed", counters.Failed,
		"events_unavailable", counters.FeatureUnavailable,
	)
	return nil
}

// Register schedules the job on s. The run context is cancelled when ctx is.
func (j *RecomputeJob) Register(ctx context.Context, s *Scheduler, interval time.Duration) error {
	_, err := s.Every(RecomputeJobName, interval, true, func() error {
		return j.Run(ctx)
	})
	if err != nil {
		return fmt.Errorf("register recompute job: %w", err)
	}
	return nil
}
