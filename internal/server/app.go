// Package server initializes and runs the appointments API server.
// It opens the database, applies migrations, wires services and the optional
// QR archive, handles graceful shutdown, and serves HTTP.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/medapp/internal/logging"
	"github.com/dmitrijs2005/medapp/internal/server/config"
	"github.com/dmitrijs2005/medapp/internal/server/httpapi"
	"github.com/dmitrijs2005/medapp/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/medapp/internal/server/services"
	"github.com/dmitrijs2005/medapp/internal/server/storage"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// openDB is a seam for tests.
var openDB = func(dsn string) (*sql.DB, error) {
	return sql.Open("pgx", dsn)
}

type App struct {
	config             *config.Config
	logger             logging.Logger
	db                 *sql.DB
	userService        *services.UserService
	appointmentService *services.AppointmentService
	hospitalService    *services.HospitalService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	db, err := openDB(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()

	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	var archiver services.Archiver
	if c.ArchiveEnabled() {
		a, err := storage.NewS3Archiver(ctx, c)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("s3 init error: %w", err)
		}
		archiver = a
	}

	return &App{
		config:             c,
		logger:             logger,
		db:                 db,
		userService:        services.NewUserService(db, rm, c),
		appointmentService: services.NewAppointmentService(db, rm, c, archiver, logger),
		hospitalService:    services.NewHospitalService(db, rm),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger,
		app.userService, app.appointmentService, app.hospitalService, app.db, app.config.SecretKey)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until a termination signal arrives or the server fails, then
// closes the database.
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
