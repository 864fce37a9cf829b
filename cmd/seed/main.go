package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/riskibarqy/community-league/internal/app"
	"github.com/riskibarqy/community-league/internal/config"
	"github.com/riskibarqy/community-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/community-league/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/community-league/internal/platform/logging"
	"github.com/riskibarqy/community-league/internal/usecase"
)

// seed loads a league file into an empty PostgreSQL database, then runs one
// recompute so stored standings and roster counters match the games.
func main() {
	file := flag.String("file", "db/seed/league.yaml", "league file to load")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall deadline")
	flag.Parse()

	if err := run(*file, *timeout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(path string, timeout time.Duration) error {
	cfg, err := config.LoadDatabase()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := logging.NewJSON(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	data, err := readDataset(path)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	db, err := app.OpenDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	seeded, err := postgres.BootstrapSeed(ctx, db, data)
	if err != nil {
		return fmt.Errorf("seed league: %w", err)
	}
	if !seeded {
		logger.Info("database already has teams, seed skipped", "file", path)
	} else {
		logger.Info("league seeded",
			"file", path,
			"teams", len(data.Teams),
			"games", len(data.Games),
			"roster", len(data.Roster),
			"events", len(data.Events),
		)
	}

	teams := postgres.NewTeamRepository(db)
	standingsSvc := usecase.NewStandingsService(
		usecase.NewRepositoryDataSource(teams, postgres.NewGameRepository(db)),
		teams,
		cfg.StandingsWriteWorkers,
		logger,
	)
	rosterStatSvc := usecase.NewRosterStatsService(
		postgres.NewRosterRepository(db),
		postgres.NewGameEventRepository(db),
		cfg.StandingsWriteWorkers,
		logger,
	)

	table, err := standingsSvc.Recompute(ctx)
	if err != nil {
		return fmt.Errorf("recompute standings: %w", err)
	}
	counters, err := rosterStatSvc.Recompute(ctx)
	if err != nil {
		return fmt.Errorf("recompute roster counters: %w", err)
	}

	logger.Info("derived fields written",
		"teams_updated", table.Updated,
		"teams_failed", table.Failed,
		"roster_updated", counters.Updated,
		"events_unavailable", counters.FeatureUnavailable,
	)
	return nil
}

func readDataset(path string) (memory.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return memory.Dataset{}, fmt.Errorf("open league file: %w", err)
	}
	defer f.Close()

	data, err := memory.LoadDataset(f)
	if err != nil {
		return memory.Dataset{}, fmt.Errorf("load %s: %w", path, err)
	}
	return data, nil
}
