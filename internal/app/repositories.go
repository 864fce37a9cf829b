package app

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/riskibarqy/community-league/internal/config"
	"github.com/riskibarqy/community-league/internal/domain/game"
	"github.com/riskibarqy/community-league/internal/domain/gameevent"
	"github.com/riskibarqy/community-league/internal/domain/roster"
	"github.com/riskibarqy/community-league/internal/domain/team"
	"github.com/riskibarqy/community-league/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/community-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/community-league/internal/infrastructure/repository/postgres"
	basecache "github.com/riskibarqy/community-league/internal/platform/cache"
	"github.com/riskibarqy/community-league/internal/platform/logging"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"
)

type repositories struct {
	teams  team.Repository
	games  game.Repository
	roster roster.Repository
	events gameevent.Repository
	db     *sqlx.DB
}

func newRepositories(ctx context.Context, cfg config.Config, registry *prometheus.Registry, logger *logging.Logger) (repositories, error) {
	var repos repositories

	switch cfg.Storage {
	case config.StoragePostgres:
		db, err := OpenDB(ctx, cfg)
		if err != nil {
			return repositories{}, err
		}
		if registry != nil {
			registry.MustRegister(collectors.NewDBStatsCollector(db.DB, databaseName(cfg.DBURL)))
		}
		repos = repositories{
			teams:  postgres.NewTeamRepository(db),
			games:  postgres.NewGameRepository(db),
			roster: postgres.NewRosterRepository(db),
			events: postgres.NewGameEventRepository(db),
			db:     db,
		}
	default:
		data := memory.DefaultDataset()
		repos = repositories{
			teams:  memory.NewTeamRepository(data.Teams),
			roster: memory.NewRosterRepository(data.Roster),
		}
		events := memory.NewGameEventRepository(data.Events)
		repos.games = memory.NewGameRepository(data.Games).CascadeEvents(events)
		repos.events = events
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.teams = cache.NewTeamRepository(repos.teams, store)
		repos.games = cache.NewGameRepository(repos.games, store)
		repos.roster = cache.NewRosterRepository(repos.roster, store)
		repos.events = cache.NewGameEventRepository(repos.events, store)
	}

	logger.Info("repositories ready", "storage", cfg.Storage, "cache_enabled", cfg.CacheEnabled, "cache_ttl", cfg.CacheTTL)
	return repos, nil
}

// OpenDB opens a traced PostgreSQL handle and checks it is reachable.
func OpenDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dbName := databaseName(cfg.DBURL)
	db, err := otelsqlx.Open("postgres", postgresDSN(cfg.DBURL, cfg.DBDisablePreparedBinary),
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbName),
		otelsql.WithQueryFormatter(traceStatement),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres %s: %w", dbName, err)
	}
	return db, nil
}

func closeDB(db *sqlx.DB, logger *logging.Logger) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		logger.Warn("close database failed", "error", err)
	}
}

const (
	preparedBinaryOption = "disable_prepared_binary_result"
	maxTracedStatement   = 512
)

// postgresDSN is the DSN handed to lib/pq. With textResults set, prepared
// statements return text unless the URL already picks a value.
func postgresDSN(raw string, textResults bool) string {
	u, err := url.Parse(raw)
	if !textResults || err != nil || u.Scheme == "" {
		return raw
	}
	q := u.Query()
	if !q.Has(preparedBinaryOption) {
		q.Set(preparedBinaryOption, "yes")
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// databaseName labels spans and pool metrics. URLs go through pq.ParseURL so
// both DSN forms are read the same way.
func databaseName(dsn string) string {
	dsn = strings.TrimSpace(dsn)
	if strings.Contains(dsn, "://") {
		kv, err := pq.ParseURL(dsn)
		if err != nil {
			return ""
		}
		dsn = kv
	}
	for _, field := range strings.Fields(dsn) {
		if name, ok := strings.CutPrefix(field, "dbname="); ok {
			return strings.Trim(name, `'"`)
		}
	}
	return ""
}

// traceStatement puts query on one line and cuts it at maxTracedStatement bytes.
func traceStatement(query string) string {
	s := strings.Join(strings.Fields(query), " ")
	if len(s) > maxTracedStatement {
		return s[:maxTracedStatement] + "..."
	}
	return s
}
