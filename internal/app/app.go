package app

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/wolfpack-fantasy/leaguehub/external/jobqueue"
	"github.com/wolfpack-fantasy/leaguehub/external/yahoo"
	"github.com/wolfpack-fantasy/leaguehub/internal/config"
	"github.com/wolfpack-fantasy/leaguehub/internal/domain/history"
	"github.com/wolfpack-fantasy/leaguehub/internal/domain/result"
	"github.com/wolfpack-fantasy/leaguehub/internal/domain/team"
	"github.com/wolfpack-fantasy/leaguehub/internal/domain/token"
	"github.com/wolfpack-fantasy/leaguehub/internal/domain/writeup"
	cacherepo "github.com/wolfpack-fantasy/leaguehub/internal/infrastructure/repository/cache"
	"github.com/wolfpack-fantasy/leaguehub/internal/infrastructure/repository/memory"
	"github.com/wolfpack-fantasy/leaguehub/internal/infrastructure/repository/postgres"
	"github.com/wolfpack-fantasy/leaguehub/internal/interfaces/httpapi"
	basecache "github.com/wolfpack-fantasy/leaguehub/internal/platform/cache"
	idgen "github.com/wolfpack-fantasy/leaguehub/internal/platform/id"
	"github.com/wolfpack-fantasy/leaguehub/internal/platform/logging"
	"github.com/wolfpack-fantasy/leaguehub/internal/platform/resilience"
	"github.com/wolfpack-fantasy/leaguehub/internal/usecase"

	_ "github.com/lib/pq"
)

// App bundles the HTTP server, the background sync scheduler and the
// resources both share.
type App struct {
	Server    *http.Server
	Scheduler *Scheduler

	db     *sqlx.DB
	logger *logging.Logger
}

// New wires repositories, external clients and services into a runnable
// application. With an empty DB_URL the app falls back to seeded in-memory
// repositories, which is the local development mode.
func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	var (
		db          *sqlx.DB
		teamRepo    team.Repository
		resultRepo  result.Repository
		writeupRepo writeup.Repository
		historyRepo history.Repository
		tokenRepo   token.Repository
	)

	if cfg.DBURL != "" {
		dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

		var err error
		db, err = otelsqlx.Connect("postgres", dbURL,
			otelsql.WithDBSystem("postgresql"),
			otelsql.WithDBName(dbNameFromURL(dbURL)),
			otelsql.WithQueryFormatter(formatDBQueryForTrace),
		)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(30 * time.Minute)

		teamRepo = postgres.NewStandingsRepository(db)
		resultRepo = postgres.NewResultRepository(db)
		writeupRepo = postgres.NewWriteupRepository(db)
		historyRepo = postgres.NewHistoryRepository(db)
		tokenRepo = postgres.NewTokenRepository(db)

		logger.Info("storage backend ready", "backend", "postgres", "db", dbNameFromURL(dbURL))
	} else {
		teamRepo = memory.NewTeamRepository(memory.SeedTeams())
		resultRepo = memory.NewResultRepository(memory.SeedResults())
		writeupRepo = memory.NewWriteupRepository(memory.SeedWriteups())
		historyRepo = memory.NewHistoryRepository(memory.SeedHistory())
		tokenRepo = memory.NewTokenRepository()

		logger.Warn("storage backend ready", "backend", "memory", "reason", "DB_URL empty")
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		teamRepo = cacherepo.NewTeamRepository(teamRepo, store)
		resultRepo = cacherepo.NewResultRepository(resultRepo, store)
		writeupRepo = cacherepo.NewWriteupRepository(writeupRepo, store)
		historyRepo = cacherepo.NewHistoryRepository(historyRepo, store)

		logger.Info("read cache enabled", "ttl", cfg.CacheTTL.String())
	}

	var (
		authService *usecase.AuthService
		provider    usecase.LeagueProvider
	)
	if cfg.YahooEnabled {
		auth := yahoo.NewAuth(yahoo.AuthConfig{
			ClientID:     cfg.YahooClientID,
			ClientSecret: cfg.YahooClientSecret,
			AuthURL:      cfg.YahooAuthURL,
			TokenURL:     cfg.YahooTokenURL,
			RedirectURL:  cfg.YahooRedirectURL,
		}, tokenRepo, logger)

		provider = yahoo.NewClient(yahoo.ClientConfig{
			BaseURL:    cfg.YahooBaseURL,
			Tokens:     auth,
			Timeout:    cfg.YahooTimeout,
			MaxRetries: cfg.YahooMaxRetries,
			Logger:     logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.YahooCircuitEnabled,
				FailureThreshold: cfg.YahooCircuitFailureCount,
				OpenTimeout:      cfg.YahooCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.YahooCircuitHalfOpenMaxReq,
			},
		})

		authService = usecase.NewAuthService(auth, tokenRepo, idgen.NewRandomGenerator())
	}

	teamService := usecase.NewTeamService(teamRepo, resultRepo)
	resultService := usecase.NewResultService(resultRepo, teamRepo)
	writeupService := usecase.NewWriteupService(writeupRepo)
	historyService := usecase.NewHistoryService(historyRepo)
	topScoreService := usecase.NewTopScoreService(resultRepo, logger)
	syncService := usecase.NewSyncService(provider, teamRepo, resultRepo, usecase.SyncConfig{
		Enabled:   cfg.YahooEnabled,
		LeagueKey: cfg.YahooLeagueKey,
	}, logger)

	handler := httpapi.NewHandler(
		teamService,
		resultService,
		writeupService,
		historyService,
		authService,
		syncService,
		topScoreService,
		logger,
	)
	router := httpapi.NewRouter(
		handler,
		logger,
		cfg.SwaggerEnabled,
		cfg.CORSAllowedOrigins,
		cfg.CommissionerKey,
		cfg.InternalJobToken,
	)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	var publisher *jobqueue.QStashPublisher
	if cfg.QStashEnabled {
		publisher = jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
			BaseURL:          cfg.QStashBaseURL,
			Token:            cfg.QStashToken,
			TargetBaseURL:    cfg.QStashTargetBaseURL,
			Retries:          cfg.QStashRetries,
			InternalJobToken: cfg.InternalJobToken,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.QStashCircuitEnabled,
				FailureThreshold: cfg.QStashCircuitFailureCount,
				OpenTimeout:      cfg.QStashCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.QStashCircuitHalfOpenMaxReq,
			},
		}, slog.Default())
	}

	scheduler := NewScheduler(SchedulerConfig{
		Enabled:  cfg.SyncEnabled && cfg.YahooEnabled,
		Interval: cfg.SyncInterval,
		Timeout:  cfg.SyncTimeout,
	}, syncService, publisher, logger)

	return &App{
		Server:    server,
		Scheduler: scheduler,
		db:        db,
		logger:    logger,
	}, nil
}

// Close releases resources owned by the app. The HTTP server and scheduler
// are shut down by the caller before Close.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
