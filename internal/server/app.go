// Package server wires the employee service together: configuration,
// storage, credentials, photo uploads and the GraphQL HTTP endpoint.
// It also owns graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/employeehub/internal/dbx"
	"github.com/dmitrijs2005/employeehub/internal/logging"
	"github.com/dmitrijs2005/employeehub/internal/server/auth"
	"github.com/dmitrijs2005/employeehub/internal/server/config"
	"github.com/dmitrijs2005/employeehub/internal/server/graphql"
	"github.com/dmitrijs2005/employeehub/internal/server/metrics"
	"github.com/dmitrijs2005/employeehub/internal/server/photos"
	"github.com/dmitrijs2005/employeehub/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/employeehub/internal/server/services"
)

// seams for tests
var (
	openDB               = dbx.Open
	newRepositoryManager = repomanager.NewPostgresRepositoryManager
	newPhotoUploader     = func(ctx context.Context, cfg *config.Config) (services.PhotoUploader, error) {
		return photos.NewS3Gateway(ctx, cfg)
	}
	notifySignals = signal.Notify
	logOutput     = io.Writer(os.Stdout)
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *graphql.Server
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(logOutput, c.LogLevel)

	if c.UsesDefaultSecret() {
		logger.Warn(ctx, "JWT_SECRET is not set, using the insecure development secret")
	}

	db, err := openDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := newRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	uploader, err := newPhotoUploader(ctx, c)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("photo storage init error: %w", err)
	}

	creds := auth.NewCredentials(c)
	m := metrics.New()

	resolver := graphql.NewResolver(
		services.NewAccountService(db, rm, creds),
		services.NewEmployeeService(db, rm, uploader),
		m,
		logger,
		c.RequireAuth,
	)

	schema, err := graphql.NewSchema(resolver)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("schema error: %w", err)
	}

	srv := graphql.NewServer(graphql.ServerOptions{
		Address:   c.EndpointAddrHTTP,
		BodyLimit: c.BodyLimit,
		RateLimit: c.RateLimit,
	}, logger, schema, m, creds)

	return &App{config: c, logger: logger, db: db, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	notifySignals(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until ctx is cancelled, a termination signal arrives or the
// HTTP server fails. The database is closed on the way out.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
