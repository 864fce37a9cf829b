package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/riskibarqy/community-league/internal/config"
	"github.com/riskibarqy/community-league/internal/infrastructure/account/authsvc"
	"github.com/riskibarqy/community-league/internal/interfaces/httpapi"
	"github.com/riskibarqy/community-league/internal/jobs"
	idgen "github.com/riskibarqy/community-league/internal/platform/id"
	"github.com/riskibarqy/community-league/internal/platform/logging"
	"github.com/riskibarqy/community-league/internal/platform/resilience"
	"github.com/riskibarqy/community-league/internal/usecase"
	"golang.org/x/sync/errgroup"
)

// App owns the HTTP server, the background recompute job and the database
// handle for one process.
type App struct {
	cfg       config.Config
	logger    *logging.Logger
	server    *http.Server
	scheduler *jobs.Scheduler
	db        *sqlx.DB
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	repos, err := newRepositories(ctx, cfg, registry, logger)
	if err != nil {
		return nil, err
	}

	workers := cfg.StandingsWriteWorkers
	standingsSvc := usecase.NewStandingsService(
		usecase.NewRepositoryDataSource(repos.teams, repos.games),
		repos.teams,
		workers,
		logger,
	)
	rosterStatSvc := usecase.NewRosterStatsService(repos.roster, repos.events, workers, logger)
	ids := idgen.NewUUIDGenerator()

	teamSvc := usecase.NewTeamService(repos.teams, repos.games, repos.roster, ids)
	gameSvc := usecase.NewGameService(repos.games, repos.teams, standingsSvc, rosterStatSvc, ids, logger)
	rosterSvc := usecase.NewRosterService(repos.roster, repos.teams, ids)
	eventSvc := usecase.NewGameEventService(repos.events, repos.games, repos.roster, rosterStatSvc, ids, logger)
	publicSvc := usecase.NewPublicService(repos.games, repos.teams, repos.roster, repos.events, standingsSvc, rosterStatSvc, logger)
	bracketSvc := usecase.NewBracketService(standingsSvc, repos.games, cfg.PlayoffSize)
	dashboardSvc := usecase.NewAdminDashboardService(repos.teams, repos.games, standingsSvc, rosterStatSvc)

	verifier, err := newTokenVerifier(cfg, logger)
	if err != nil {
		closeDB(repos.db, logger)
		return nil, err
	}

	handler := httpapi.NewHandler(teamSvc, gameSvc, rosterSvc, eventSvc, publicSvc, standingsSvc, bracketSvc, dashboardSvc, logger)
	router := httpapi.NewRouter(handler, verifier, httpapi.NewMetrics(registry), logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins)

	a := &App{
		cfg:    cfg,
		logger: logger,
		db:     repos.db,
		server: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
	}

	if cfg.RecomputeEnabled {
		scheduler, err := jobs.NewScheduler(logger)
		if err != nil {
			closeDB(repos.db, logger)
			return nil, fmt.Errorf("create scheduler: %w", err)
		}
		job := jobs.NewRecomputeJob(dashboardSvc, cfg.RecomputeTimeout, logger)
		if err := job.Register(ctx, scheduler, cfg.RecomputeInterval); err != nil {
			_ = scheduler.Stop()
			closeDB(repos.db, logger)
			return nil, err
		}
		a.scheduler = scheduler
	}

	return a, nil
}

func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run serves HTTP and runs background jobs until ctx is cancelled or the
// listener fails, then shuts everything down within ShutdownTimeout.
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	if a.scheduler != nil {
		a.scheduler.Start()
	}

	g.Go(func() error {
		a.logger.Info("http server starting", "addr", a.server.Addr, "storage", a.cfg.Storage)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		return a.shutdown()
	})

	return g.Wait()
}

func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	var errs []error
	if err := a.server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown http server: %w", err))
	}
	if a.scheduler != nil {
		if err := a.scheduler.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stop scheduler: %w", err))
		}
	}
	closeDB(a.db, a.logger)

	a.logger.Info("http server stopped")
	return errors.Join(errs...)
}

func newTokenVerifier(cfg config.Config, logger *logging.Logger) (httpapi.TokenVerifier, error) {
	switch cfg.AuthMode {
	case config.AuthModeIntrospect:
		return authsvc.NewIntrospectClient(
			&http.Client{Timeout: cfg.AuthTimeout},
			authsvc.IntrospectConfig{
				BaseURL:  cfg.AuthBaseURL,
				UserPath: cfg.AuthUserPath,
				APIKey:   cfg.AuthAPIKey,
				Timeout:  cfg.AuthTimeout,
				CircuitBreaker: resilience.BreakerConfig{
					Enabled:          cfg.AuthCircuitEnabled,
					FailureThreshold: cfg.AuthCircuitFailureCount,
					OpenTimeout:      cfg.AuthCircuitOpenTimeout,
					HalfOpenMaxReq:   cfg.AuthCircuitHalfOpenMaxReq,
				},
			},
			logger,
		), nil
	default:
		verifier, err := authsvc.NewJWTVerifier(authsvc.JWTConfig{
			Secret:   cfg.AuthJWTSecret,
			Issuer:   cfg.AuthJWTIssuer,
			Audience: cfg.AuthJWTAudience,
		})
		if err != nil {
			return nil, fmt.Errorf("build jwt verifier: %w", err)
		}
		return verifier, nil
	}
}
