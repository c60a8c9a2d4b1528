package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/andrescamacho/starroute-go/internal/adapters/csvimport"
	"github.com/andrescamacho/starroute-go/internal/adapters/metrics"
	"github.com/andrescamacho/starroute-go/internal/adapters/persistence"
	"github.com/andrescamacho/starroute-go/internal/application/common"
	"github.com/andrescamacho/starroute-go/internal/application/session"
	"github.com/andrescamacho/starroute-go/internal/domain/catalog"
	"github.com/andrescamacho/starroute-go/internal/domain/navigation"
	"github.com/andrescamacho/starroute-go/internal/infrastructure/config"
	"github.com/andrescamacho/starroute-go/internal/infrastructure/database"
	"github.com/andrescamacho/starroute-go/internal/infrastructure/logging"
)

// app holds everything a command needs for one process run. The session
// is opened on first use so config commands never touch the catalog.
type app struct {
	cfg      *config.Config
	user     *config.UserConfigHandler
	logger   *logging.Logger
	session  *session.Session
	mediator common.Mediator
	started  time.Time

	commandMetrics *metrics.CommandMetricsCollector
	travelMetrics  *metrics.TravelMetricsCollector
	graphMetrics   *metrics.GraphMetricsCollector
}

// newApp loads configuration and builds the logger and metrics
func newApp(ctx context.Context, opts *globalOptions) (*app, context.Context, error) {
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return nil, ctx, err
	}
	if opts.verbose {
		cfg.Logging.Level = "debug"
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, ctx, fmt.Errorf("failed to create logger: %w", err)
	}
	ctx = logging.WithLogger(ctx, logger.Logger)

	user, err := config.NewUserConfigHandler(opts.userConfigDir)
	if err != nil {
		return nil, ctx, err
	}

	a := &app{cfg: cfg, user: user, logger: logger, started: time.Now()}

	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		a.commandMetrics = metrics.NewCommandMetricsCollector(cfg.Metrics.Namespace)
		a.travelMetrics = metrics.NewTravelMetricsCollector(cfg.Metrics.Namespace)
		a.graphMetrics = metrics.NewGraphMetricsCollector(cfg.Metrics.Namespace)
		for _, register := range []func() error{
			a.commandMetrics.Register,
			a.travelMetrics.Register,
			a.graphMetrics.Register,
		} {
			if err := register(); err != nil {
				return nil, ctx, fmt.Errorf("failed to register metrics: %w", err)
			}
		}
	}

	return a, ctx, nil
}

// openSession loads the catalog and creates an empty session. Calling it
// again is a no-op.
func (a *app) openSession(ctx context.Context) error {
	if a.session != nil {
		return nil
	}

	distances, err := loadCatalog(ctx, a.cfg)
	if err != nil {
		return err
	}

	simOpts := []navigation.Option{navigation.WithRefuelAmount(a.cfg.Travel.RefuelAmount)}
	var sessionOpts []session.Option
	if a.travelMetrics != nil {
		simOpts = append(simOpts, navigation.WithMetrics(a.travelMetrics))
		sessionOpts = append(sessionOpts, session.WithGraphMetrics(a.graphMetrics))
	}
	sessionOpts = append(sessionOpts, session.WithSimulatorOptions(simOpts...))

	a.session = session.New(distances, sessionOpts...)
	a.mediator = common.NewMediator(common.LoggingBehavior)
	if err := session.RegisterHandlers(a.mediator, a.session); err != nil {
		return err
	}

	logging.FromContext(ctx).V(1).Info("session opened",
		"catalog", a.cfg.Catalog.Source,
		"bodies", len(distances.Bodies()),
		"distances", distances.Len())
	return nil
}

// loadCatalog returns the builtin catalog or the one stored in the database
func loadCatalog(ctx context.Context, cfg *config.Config) (*catalog.DistanceCatalog, error) {
	if cfg.Catalog.Source != config.CatalogSourceDatabase {
		return catalog.Builtin(), nil
	}

	repo, closeDB, err := openCatalogRepository(cfg)
	if err != nil {
		return nil, err
	}
	defer closeDB()

	if cfg.Catalog.Seed {
		if _, err := repo.SeedIfEmpty(ctx, catalog.Builtin()); err != nil {
			return nil, err
		}
	}
	return repo.Load(ctx)
}

func openCatalogRepository(cfg *config.Config) (*persistence.GormCatalogRepository, func(), error) {
	db, err := database.Open(&cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open catalog database: %w", err)
	}
	return persistence.NewGormCatalogRepository(db), func() { _ = database.Close(db) }, nil
}

// loadGraph fills the session from a CSV file, or with every catalog body
// when path is empty, and prints any diagnostics
func (a *app) loadGraph(ctx context.Context, out io.Writer, path string) error {
	cmd := &session.ImportGraphCommand{AllBodies: path == ""}
	if path != "" {
		parsed, err := csvimport.LoadFile(path)
		if err != nil {
			return err
		}
		cmd.Rows = parsed.Rows
		renderDiagnostics(out, parsed.Diagnostics)
	}

	resp, err := a.mediator.Send(ctx, cmd)
	if err != nil {
		return err
	}
	renderDiagnostics(out, resp.(*session.ImportGraphResponse).Diagnostics)
	return nil
}

// finish records the command, writes the metrics textfile and flushes the
// logger
func (a *app) finish(command string, runErr error) error {
	if a.commandMetrics != nil {
		a.commandMetrics.RecordCommand(command, runErr, time.Since(a.started))
	}
	var err error
	if a.cfg.Metrics.Enabled {
		err = metrics.WriteTextfile(a.cfg.Metrics.Textfile)
	}
	_ = a.logger.Sync()
	return err
}
