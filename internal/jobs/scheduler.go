package jobs

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/riskibarqy/community-league/internal/platform/logging"
)

var (
	ErrEmptyJobName    = errors.New("job name is required")
	ErrInvalidInterval = errors.New("job interval must be > 0")
)

// Scheduler wraps a gocron scheduler for background jobs.
type Scheduler struct {
	scheduler gocron.Scheduler
	logger    *logging.Logger
	stopOnce  sync.Once
	stopErr   error
}

func NewScheduler(logger *logging.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = logging.Default()
	}

	sched, err := gocron.NewScheduler(
		gocron.WithGlobalJobOptions(
			gocron.WithEventListeners(
				gocron.AfterJobRunsWithPanic(func(jobID uuid.UUID, jobName string, recoverData any) {
					logger.Error("scheduler job panicked",
						"job_id", jobID.String(),
						"job_name", jobName,
						"panic", recoverData,
					)
				}),
				gocron.AfterJobRunsWithError(func(jobID uuid.UUID, jobName string, err error) {
					logger.Warn("scheduler job failed",
						"job_id", jobID.String(),
						"job_name", jobName,
						"error", err,
					)
				}),
			),
		),
	)
	if err != nil {
		return nil, err
	}

	return &Scheduler{scheduler: sched, logger: logger}, nil
}

// Every registers task to run every interval. Runs never overlap; a run that
// is still busy when the next one is due pushes it back.
func (s *Scheduler) Every(name string, interval time.Duration, startImmediately bool, task func() error) (gocron.Job, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyJobName
	}
	if interval <= 0 {
		return nil, ErrInvalidInterval
	}

	opts := []gocron.JobOption{
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	}
	if startImmediately {
		opts = append(opts, gocron.WithStartAt(gocron.WithStartImmediately()))
	}

	job, err := s.scheduler.NewJob(gocron.DurationJob(interval), gocron.NewTask(task), opts...)
	if err != nil {
		s.logger.Error("register scheduler job failed", "job_name", name, "error", err)
		return nil, err
	}
	s.logger.Info("scheduler job registered", "job_name", name, "interval", interval.String())
	return job, nil
}

func (s *Scheduler) Start() {
	s.logger.Info("scheduler starting")
	s.scheduler.Start()
}

// Stop shuts the scheduler down and waits for running jobs. Safe to call
// more than once.
func (s *Scheduler) Stop() error {
	s.stopOnce.Do(func() {
		s.logger.Info("scheduler stopping")
		s.stopErr = s.scheduler.Shutdown()
	})
	return s.stopErr
}
