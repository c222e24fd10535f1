package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/pickem-league/external/authsvc"
	"github.com/riskibarqy/pickem-league/external/espn"
	"github.com/riskibarqy/pickem-league/external/jobqueue"
	"github.com/riskibarqy/pickem-league/internal/config"
	"github.com/riskibarqy/pickem-league/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/pickem-league/internal/interfaces/httpapi"
	"github.com/riskibarqy/pickem-league/internal/platform/database"
	idgen "github.com/riskibarqy/pickem-league/internal/platform/id"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
	"github.com/riskibarqy/pickem-league/internal/platform/resilience"
	"github.com/riskibarqy/pickem-league/internal/usecase"
)

// App bundles the HTTP server with the resources it owns.
type App struct {
	Server    *http.Server
	DB        *sqlx.DB
	scheduler *Scheduler
	logger    *logging.Logger
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := database.Connect(ctx, dbURL, dbNameFromURL(cfg.DBURL))
	if err != nil {
		return nil, err
	}

	txRunner := database.NewTxRunner(db)
	leagueRepo := postgres.NewLeagueRepository()
	memberRepo := postgres.NewMembershipRepository()
	phaseRepo := postgres.NewPhaseRepository()
	eventRepo := postgres.NewEventRepository()
	outcomeRepo := postgres.NewOutcomeRepository()
	oddsRepo := postgres.NewOddsRepository()
	pickRepo := postgres.NewPickRepository()
	standingsRepo := postgres.NewStandingsRepository()
	ids := idgen.NewRandomGenerator()

	leagueSvc := usecase.NewLeagueService(txRunner, leagueRepo, memberRepo, ids)
	pickSvc := usecase.NewPickService(txRunner, leagueRepo, memberRepo, phaseRepo, eventRepo, oddsRepo, pickRepo, ids)
	standingsSvc := usecase.NewStandingsService(txRunner, leagueRepo, pickRepo, standingsRepo, logger)

	espnClient := espn.NewClient(espn.ClientConfig{
		BaseURL:    cfg.ESPNBaseURL,
		APIKey:     cfg.ESPNAPIKey,
		Timeout:    cfg.ESPNTimeout,
		MaxRetries: cfg.ESPNMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.ESPNCircuitEnabled,
			FailureThreshold: cfg.ESPNCircuitFailureCount,
			OpenTimeout:      cfg.ESPNCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.ESPNCircuitHalfOpenMaxReq,
		},
	})
	syncSvc := usecase.NewSyncService(
		espnClient,
		txRunner,
		phaseRepo,
		eventRepo,
		outcomeRepo,
		oddsRepo,
		usecase.SyncConfig{Enabled: cfg.ESPNEnabled},
		logger,
	)

	verifier := authsvc.NewClient(authsvc.ClientConfig{
		BaseURL:         cfg.AuthServiceBaseURL,
		ServiceToken:    cfg.AuthServiceToken,
		Timeout:         cfg.AuthServiceTimeout,
		CacheTTL:        cfg.AuthServiceCacheTTL,
		CacheMaxEntries: cfg.AuthServiceCacheMaxEntries,
		Logger:          logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.AuthCircuitEnabled,
			FailureThreshold: cfg.AuthCircuitFailureCount,
			OpenTimeout:      cfg.AuthCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.AuthCircuitHalfOpenMaxReq,
		},
	})

	handler := httpapi.NewHandler(leagueSvc, pickSvc, standingsSvc, syncSvc, leagueRepo, logger)
	router := httpapi.NewRouter(handler, verifier, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		_ = db.Close()
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	var scheduler *Scheduler
	if cfg.QStashEnabled {
		publisher := jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
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
		}, logger)
		scheduler = NewScheduler(publisher, SchedulerConfig{
			ScheduleInterval:  cfg.JobScheduleInterval,
			ScoresInterval:    cfg.JobScoresInterval,
			OddsInterval:      cfg.JobOddsInterval,
			StandingsInterval: cfg.JobStandingsInterval,
		}, logger)
	}

	return &App{
		Server:    server,
		DB:        db,
		scheduler: scheduler,
		logger:    logger,
	}, nil
}

// StartScheduler launches the periodic job enqueue loops. It is a no-op
// when QStash publishing is disabled.
func (a *App) StartScheduler(ctx context.Context) {
	if a.scheduler == nil {
		a.logger.Info("job scheduler disabled", "reason", "QSTASH_ENABLED=false")
		return
	}
	a.scheduler.Start(ctx)
}

// Close stops the scheduler and releases the database pool.
func (a *App) Close() error {
	if a.scheduler != nil {
		a.scheduler.Stop()
	}
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
