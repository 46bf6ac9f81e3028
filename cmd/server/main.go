// Package main provides the entry point for the simulation API server.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/yourusername/diamond-odds/internal/api"
	"github.com/yourusername/diamond-odds/internal/cache"
	"github.com/yourusername/diamond-odds/internal/config"
	"github.com/yourusername/diamond-odds/internal/database"
	"github.com/yourusername/diamond-odds/internal/datasource"
	"github.com/yourusername/diamond-odds/internal/factors"
	"github.com/yourusername/diamond-odds/internal/logger"
	"github.com/yourusername/diamond-odds/internal/metrics"
	"github.com/yourusername/diamond-odds/internal/repository"
	"github.com/yourusername/diamond-odds/internal/scheduler"
	"github.com/yourusername/diamond-odds/internal/service"
	"github.com/yourusername/diamond-odds/internal/simulation"
	"github.com/yourusername/diamond-odds/internal/tracing"
)

var (
	// Version is set at build time
	Version = "dev"

	shutdownTimeout = 30 * time.Second
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.LoadWithDefaults(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Load AWS secrets if enabled
	if config.SecretsEnabled() {
		if err := config.LoadSecretsFromAWS(ctx, cfg); err != nil {
			log.Fatalf("Failed to load secrets: %v", err)
		}
	}

	// Validate configuration
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if err := config.ValidateEnvironment(cfg); err != nil {
		log.Fatalf("Invalid environment: %v", err)
	}

	// Set up logging
	appLog := logger.NewLogger(cfg.App.LogLevel)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"log_level":   cfg.App.LogLevel,
		"version":     Version,
	}).Info("Diamond Odds API starting")

	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
	}
	if err := tracing.Initialize(cfg.Tracing, Version, appLog); err != nil {
		appLog.WithError(err).Fatal("Failed to initialize tracing")
	}

	// Persistence is optional
	var (
		gameRepo       repository.GameRepository
		projectionRepo repository.ProjectionRepository
		runRepo        repository.SimulationRepository
		oddsRepo       repository.OddsRepository
		pinger         api.DatabasePinger
	)
	if cfg.Database.Enabled {
		db, err := database.Initialize(ctx, cfg)
		if err != nil {
			appLog.WithError(err).Fatal("Failed to connect to database")
		}
		defer db.Close()

		repos, err := repository.NewRepositories(db)
		if err != nil {
			appLog.WithError(err).Fatal("Failed to initialize repositories")
		}
		gameRepo, projectionRepo, runRepo, oddsRepo = repos.Game, repos.Projection, repos.Simulation, repos.Odds
		pinger = db
		appLog.Info("Database connection established")
	} else {
		appLog.Info("Persistence disabled; simulation history will be empty")
	}

	// Data source
	client, err := datasource.NewFromConfig(cfg, appLog)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to create data source")
	}
	defer client.Close()

	var source datasource.GameSource = client
	if cfg.Database.Enabled {
		source = datasource.NewArchivingSource(client, gameRepo, projectionRepo, appLog)
	}

	cleanup := time.Duration(cfg.Cache.CleanupSeconds) * time.Second
	gameCache := cache.New("games", time.Duration(cfg.Cache.GameTTLSeconds)*time.Second, cleanup)
	resultCache := cache.New("simulations", time.Duration(cfg.Cache.SimulationTTLSeconds)*time.Second, cleanup)
	provider := cache.NewCachedGameProvider(source, source, gameCache)

	// Simulation pipeline
	engine := simulation.NewEngine(simulation.FromConfig(&cfg.Simulation), logger.NewSimulationLogger(appLog))
	auditLog := logger.NewAuditLogger(appLog)
	simulator := service.NewSimulationService(
		provider,
		factors.NewAnalyzer(provider),
		engine,
		service.DefaultRatingSource(),
		runRepo,
		resultCache,
		service.SimulationServiceConfig{
			DefaultCount: cfg.Simulation.DefaultCount,
			HistoryLimit: cfg.Simulation.HistoryLimit,
		},
		logger.NewFactorLogger(appLog),
		auditLog,
	)
	comparer := service.NewMarketComparer(cfg.Market.EdgeThreshold, auditLog)
	slate := service.NewSlateService(source, source, simulator, comparer, gameRepo, oddsRepo, logger.NewSimulationLogger(appLog))
	games := service.NewGameService(provider, provider, source, source, oddsRepo, appLog)

	// HTTP API
	health := api.NewHealth(cfg.App.Name, Version, pinger).WithCaches(gameCache, resultCache)
	routerCfg := api.RouterConfig{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		RequestTimeout: cfg.RequestTimeout(),
		Games:          api.NewGamesHandler(games, appLog),
	}
	if cfg.Metrics.Enabled {
		routerCfg.MetricsPath = cfg.Metrics.Path
		routerCfg.MetricsHandler = metrics.Handler()
	}
	if cfg.Tracing.Enabled {
		routerCfg.TraceName = cfg.App.Name
	}
	router := api.NewRouter(api.NewHandler(simulator, appLog), health, routerCfg, appLog)
	server := api.NewServer(cfg.Server.Port, router, appLog)

	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched = scheduler.NewScheduler(slate, cfg.Simulation.DefaultCount, appLog)
		if err := sched.ScheduleSlate(cfg.Scheduler.SlateCron); err != nil {
			appLog.WithError(err).Fatal("Failed to schedule slate simulation")
		}
		if err := sched.Start(); err != nil {
			appLog.WithError(err).Fatal("Failed to start scheduler")
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(server.Start)
	g.Go(func() error {
		<-gctx.Done()
		health.SetReady(false)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		var errs []error
		if sched != nil {
			if err := sched.Stop(shutdownCtx); err != nil {
				errs = append(errs, err)
			}
		}
		if err := server.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, err)
		}
		return errors.Join(errs...)
	})

	health.SetReady(true)
	appLog.WithField("port", cfg.Server.Port).Info("Diamond Odds API ready")

	if err := g.Wait(); err != nil {
		appLog.WithError(err).Error("Server stopped with error")
		os.Exit(1)
	}
	appLog.Info("Diamond Odds API stopped")
}
