// Package server wires storage, services and transports together and runs
// the gRPC and HTTP servers until shutdown.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/letshang/internal/logging"
	"github.com/dmitrijs2005/letshang/internal/server/config"
	"github.com/dmitrijs2005/letshang/internal/server/httpapi"
	"github.com/dmitrijs2005/letshang/internal/server/metrics"
	"github.com/dmitrijs2005/letshang/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/letshang/internal/server/services"
	"github.com/prometheus/client_golang/prometheus"

	gs "github.com/dmitrijs2005/letshang/internal/server/grpc"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	repomanager repomanager.RepositoryManager
	services    gs.Services
}

var openPostgres = func(ctx context.Context, dsn string) (repomanager.RepositoryManager, error) {
	return repomanager.OpenPostgres(ctx, dsn)
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSON(os.Stdout, c.LogLevel)

	if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
		return nil, fmt.Errorf("metrics init error: %w", err)
	}

	rm, err := openStorage(ctx, c, logger)
	if err != nil {
		return nil, err
	}

	agg := services.NewAggregationService(rm, logger)
	svc := gs.Services{
		Identity:    services.NewIdentityService(rm, logger),
		Aggregation: agg,
		RSVP:        services.NewRSVPService(rm, logger),
		Suggestions: services.NewSuggestionService(rm, logger),
		Lifecycle:   services.NewLifecycleService(rm, logger),
		Share:       services.NewShareService(agg, c.ShareBaseURL),
		Avatars:     services.NewAvatarService(c, logger),
	}

	return &App{config: c, logger: logger, repomanager: rm, services: svc}, nil
}

func openStorage(ctx context.Context, c *config.Config, l logging.Logger) (repomanager.RepositoryManager, error) {
	if c.UsesMemoryStore() {
		l.Warn(ctx, "Using in-memory storage, data is lost on exit")
		return repomanager.NewMemoryRepositoryManager(), nil
	}

	rm, err := openPostgres(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := rm.RunMigrations(ctx); err != nil {
		_ = rm.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}
	return rm, nil
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) error {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.services, app.config.SecretKey)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, "gRPC server failed", "error", err)
		cancelFunc()
		return err
	}
	return nil
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) error {
	s := httpapi.NewServer(app.config.EndpointAddrHTTP, app.logger, app.services.Share, prometheus.DefaultGatherer, app.config.CORSAllowedOrigins)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, "HTTP server failed", "error", err)
		cancelFunc()
		return err
	}
	return nil
}

// Run serves both transports until ctx is cancelled, a termination signal
// arrives or either server fails. The first server error is returned.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	run := func(start func(context.Context, context.CancelFunc) error) {
		defer wg.Done()
		if err := start(ctx, cancelFunc); err != nil {
			once.Do(func() { firstErr = err })
		}
	}

	wg.Add(2)
	go run(app.startGRPCServer)
	go run(app.startHTTPServer)
	wg.Wait()

	if err := app.repomanager.Close(); err != nil {
		app.logger.Error(ctx, "closing storage failed", "error", err)
	}
	app.logger.Info(context.Background(), "App stopped")
	return firstErr
}
