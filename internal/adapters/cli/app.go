package cli

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/swarmsim-go/internal/adapters/export"
	"github.com/andrescamacho/swarmsim-go/internal/adapters/metrics"
	"github.com/andrescamacho/swarmsim-go/internal/adapters/persistence"
	"github.com/andrescamacho/swarmsim-go/internal/application/common"
	"github.com/andrescamacho/swarmsim-go/internal/application/simulation/commands"
	"github.com/andrescamacho/swarmsim-go/internal/application/simulation/queries"
	"github.com/andrescamacho/swarmsim-go/internal/domain/shared"
	"github.com/andrescamacho/swarmsim-go/internal/domain/simulation"
	"github.com/andrescamacho/swarmsim-go/internal/infrastructure/config"
	"github.com/andrescamacho/swarmsim-go/internal/infrastructure/database"
	"github.com/andrescamacho/swarmsim-go/internal/infrastructure/logging"
	"github.com/andrescamacho/swarmsim-go/internal/infrastructure/tracing"
)

// app is the wiring shared by every subcommand
type app struct {
	cfg             *config.Config
	logger          *logging.Logger
	db              *gorm.DB
	mediator        common.Mediator
	shutdownTracing tracing.ShutdownFunc
	metricsPath     string
}

// dbNeed decides from the loaded config whether a command needs the database
type dbNeed func(cfg *config.Config) bool

func always(*config.Config) bool { return true }

// newApp loads configuration and builds the mediator. The database is only
// opened when needDB says so.
func newApp(ctx context.Context, needDB dbNeed) (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger}

	a.shutdownTracing, err = tracing.Init(ctx, cfg.Tracing, logger)
	if err != nil {
		_ = logger.Close()
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	a.metricsPath = cfg.Metrics.TextfilePath
	if metricsFile != "" {
		a.metricsPath = metricsFile
	}
	var cmdMetrics *metrics.CommandMetricsCollector
	if cfg.Metrics.Enabled || a.metricsPath != "" {
		_, cmdMetrics, err = metrics.Setup()
		if err != nil {
			a.close(ctx)
			return nil, err
		}
	}

	var repo simulation.RunRepository
	if needDB != nil && needDB(cfg) {
		a.db, err = database.NewConnection(&cfg.Database)
		if err != nil {
			a.close(ctx)
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.AutoMigrate(a.db); err != nil {
			a.close(ctx)
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		repo = persistence.NewGormRunRepository(a.db, cfg.Database.BatchSize)
	}

	opts := commands.RunnerOptions{
		Repo:             repo,
		Writer:           export.NewDirectoryWriter(),
		Clock:            shared.NewRealClock(),
		Workers:          cfg.Simulation.SweepWorkers,
		ProgressInterval: cfg.Logging.ProgressInterval,
	}

	m := common.NewMediator()
	if cmdMetrics != nil {
		m.Use(metrics.PrometheusMiddleware(cmdMetrics))
	}
	loader := config.NewScenarioLoader()
	registrations := []error{
		common.RegisterHandler[*commands.RunSimulationCommand](m, commands.NewRunSimulationHandler(loader, opts)),
		common.RegisterHandler[*commands.RunSweepCommand](m, commands.NewRunSweepHandler(loader, opts)),
	}
	if repo != nil {
		registrations = append(registrations,
			common.RegisterHandler[*queries.GetRunQuery](m, queries.NewGetRunHandler(repo)),
			common.RegisterHandler[*queries.ListRunsQuery](m, queries.NewListRunsHandler(repo)),
		)
	}
	for _, err := range registrations {
		if err != nil {
			a.close(ctx)
			return nil, fmt.Errorf("failed to register handler: %w", err)
		}
	}
	a.mediator = m

	return a, nil
}

// context carries the app logger for handlers
func (a *app) context(ctx context.Context) context.Context {
	return common.WithLogger(ctx, a.logger)
}

// close flushes metrics and spans and releases the database and log file
func (a *app) close(ctx context.Context) {
	if err := metrics.WriteTextfile(a.metricsPath); err != nil {
		a.logger.Log("WARNING", "Failed to write metrics", map[string]interface{}{"error": err.Error()})
	}
	metrics.Reset()

	tracing.ShutdownWithTimeout(ctx, a.shutdownTracing, a.logger)

	if a.db != nil {
		if err := database.Close(a.db); err != nil {
			a.logger.Log("WARNING", "Failed to close database", map[string]interface{}{"error": err.Error()})
		}
	}
	_ = a.logger.Close()
}

// withApp runs fn with a fully wired app and tears it down afterwards
func withApp(ctx context.Context, needDB dbNeed, fn func(ctx context.Context, a *app) error) error {
	a, err := newApp(ctx, needDB)
	if err != nil {
		return err
	}
	defer a.close(ctx)
	return fn(a.context(ctx), a)
}
