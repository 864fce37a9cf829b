package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// setBaseEnv pins the variables every Load call depends on so tests do not
// pick up values from the developer's shell.
func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("AUTH_MODE", "")
	t.Setenv("AUTH_JWT_SECRET", "test-secret")
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("BETTERSTACK_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "false")
}

func TestLoad_AppEnvValidation(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Storage != StorageMemory {
		t.Fatalf("unexpected storage: %q", cfg.Storage)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected http addr: %q", cfg.HTTPAddr)
	}
	if cfg.StandingsWriteWorkers != 4 {
		t.Fatalf("unexpected standings workers: %d", cfg.StandingsWriteWorkers)
	}
	if cfg.PlayoffSize != 6 {
		t.Fatalf("unexpected playoff size: %d", cfg.PlayoffSize)
	}
	if !cfg.RecomputeEnabled || cfg.RecomputeInterval != 10*time.Minute {
		t.Fatalf("unexpected recompute settings: enabled=%t interval=%s", cfg.RecomputeEnabled, cfg.RecomputeInterval)
	}
	if !cfg.CacheEnabled || cfg.CacheTTL != 30*time.Second {
		t.Fatalf("unexpected cache settings: enabled=%t ttl=%s", cfg.CacheEnabled, cfg.CacheTTL)
	}
	if cfg.ServiceName != "community-league-api" {
		t.Fatalf("unexpected service name: %q", cfg.ServiceName)
	}
}

func TestLoad_StorageDriver(t *testing.T) {
	setBaseEnv(t)

	t.Run("invalid driver", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "sqlite")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for unknown STORAGE_DRIVER")
		}
	})

	t.Run("postgres keeps db url", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "Postgres")
		t.Setenv("DB_URL", "postgres://league:league@db:5432/league?sslmode=disable")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.Storage != StoragePostgres {
			t.Fatalf("unexpected storage: %q", cfg.Storage)
		}
		if cfg.DBURL != "postgres://league:league@db:5432/league?sslmode=disable" {
			t.Fatalf("unexpected db url: %q", cfg.DBURL)
		}
	})

	t.Run("invalid pool size", func(t *testing.T) {
		t.Setenv("DB_MAX_OPEN_CONNS", "0")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for DB_MAX_OPEN_CONNS=0")
		}
	})
}

func TestLoad_AuthMode(t *testing.T) {
	setBaseEnv(t)

	t.Run("jwt requires secret", func(t *testing.T) {
		t.Setenv("AUTH_MODE", AuthModeJWT)
		t.Setenv("AUTH_JWT_SECRET", "")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when AUTH_MODE=jwt without AUTH_JWT_SECRET")
		}
	})

	t.Run("introspect requires base url", func(t *testing.T) {
		t.Setenv("AUTH_MODE", AuthModeIntrospect)
		t.Setenv("AUTH_BASE_URL", "")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when AUTH_MODE=introspect without AUTH_BASE_URL")
		}
	})

	t.Run("introspect with values", func(t *testing.T) {
		t.Setenv("AUTH_MODE", AuthModeIntrospect)
		t.Setenv("AUTH_JWT_SECRET", "")
		t.Setenv("AUTH_BASE_URL", "https://auth.example.org")
		t.Setenv("AUTH_USER_PATH", "")
		t.Setenv("AUTH_CIRCUIT_FAILURE_COUNT", "3")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.AuthUserPath != "/auth/v1/user" {
			t.Fatalf("unexpected default user path: %q", cfg.AuthUserPath)
		}
		if cfg.AuthCircuitFailureCount != 3 {
			t.Fatalf("unexpected failure count: %d", cfg.AuthCircuitFailureCount)
		}
	})

	t.Run("unknown mode", func(t *testing.T) {
		t.Setenv("AUTH_MODE", "basic")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for unknown AUTH_MODE")
		}
	})
}

func TestLoad_LeagueSettings(t *testing.T) {
	setBaseEnv(t)

	tests := []struct {
		name    string
		key     string
		value   string
		wantErr bool
	}{
		{name: "playoff size eight", key: "PLAYOFF_SIZE", value: "8"},
		{name: "playoff size with byes", key: "PLAYOFF_SIZE", value: "6"},
		{name: "playoff size too small", key: "PLAYOFF_SIZE", value: "1", wantErr: true},
		{name: "workers zero", key: "STANDINGS_WRITE_WORKERS", value: "0", wantErr: true},
		{name: "workers not a number", key: "STANDINGS_WRITE_WORKERS", value: "many", wantErr: true},
		{name: "recompute interval negative", key: "RECOMPUTE_INTERVAL", value: "-1m", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			_, err := Load()
			if tc.wantErr && err == nil {
				t.Fatalf("expected error for %s=%s", tc.key, tc.value)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `x-other=1, uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected dsn: %q", cfg.UptraceDSN)
	}
}

func TestLoad_BetterStackConfigParsing(t *testing.T) {
	setBaseEnv(t)

	t.Run("requires endpoint", func(t *testing.T) {
		t.Setenv("BETTERSTACK_ENABLED", "true")
		t.Setenv("BETTERSTACK_ENDPOINT", "")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when BETTERSTACK_ENABLED=true without BETTERSTACK_ENDPOINT")
		}
	})

	t.Run("parses values", func(t *testing.T) {
		t.Setenv("BETTERSTACK_ENABLED", "true")
		t.Setenv("BETTERSTACK_ENDPOINT", "in.logs.betterstack.com")
		t.Setenv("BETTERSTACK_TOKEN", "token-123")
		t.Setenv("BETTERSTACK_TIMEOUT", "4s")
		t.Setenv("BETTERSTACK_MIN_LEVEL", "error")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.BetterStackToken != "token-123" {
			t.Fatalf("unexpected BetterStackToken")
		}
		if cfg.BetterStackTimeout != 4*time.Second {
			t.Fatalf("unexpected BetterStackTimeout: %s", cfg.BetterStackTimeout)
		}
		if cfg.BetterStackMinLevel.String() != "error" {
			t.Fatalf("unexpected BetterStackMinLevel: %s", cfg.BetterStackMinLevel.String())
		}
	})
}

func TestLoad_DefaultsByEnv(t *testing.T) {
	t.Run("prod disables swagger by default", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("APP_ENV", EnvProd)
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=false in prod by default")
		}
	})

	t.Run("dev enables swagger by default", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=true in dev by default")
		}
	})
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("APP_SERVICE_NAME", "community-league-api-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "community-league-api-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CORSOriginsParsing(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://league.example.org, http://localhost:5173 ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Fatalf("unexpected CORS origins length: %d", len(cfg.CORSAllowedOrigins))
	}
	if cfg.CORSAllowedOrigins[0] != "https://league.example.org" || cfg.CORSAllowedOrigins[1] != "http://localhost:5173" {
		t.Fatalf("unexpected CORS origins: %+v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_ReadsDotEnvFile(t *testing.T) {
	setBaseEnv(t)

	path := filepath.Join(t.TempDir(), "league.env")
	content := "PLAYOFF_SIZE=8\nAPP_HTTP_ADDR=:9090\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("ENV_FILE", path)

	// The file only fills variables absent from the process environment.
	t.Setenv("PLAYOFF_SIZE", "")
	if err := os.Unsetenv("PLAYOFF_SIZE"); err != nil {
		t.Fatalf("unset PLAYOFF_SIZE: %v", err)
	}
	t.Setenv("APP_HTTP_ADDR", ":7070")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PlayoffSize != 8 {
		t.Fatalf("expected PLAYOFF_SIZE from env file, got %d", cfg.PlayoffSize)
	}
	if cfg.HTTPAddr != ":7070" {
		t.Fatalf("expected process env to win, got %q", cfg.HTTPAddr)
	}
}

func TestLoadDatabase_IgnoresAuthSettings(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("AUTH_JWT_SECRET", "")
	t.Setenv("DB_URL", "postgres://league@db:5432/league")
	t.Setenv("STANDINGS_WRITE_WORKERS", "8")

	cfg, err := LoadDatabase()
	if err != nil {
		t.Fatalf("load database config: %v", err)
	}
	if cfg.DBURL != "postgres://league@db:5432/league" || cfg.StandingsWriteWorkers != 8 {
		t.Fatalf("unexpected config: url=%q workers=%d", cfg.DBURL, cfg.StandingsWriteWorkers)
	}
}
