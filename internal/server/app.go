// Package server initializes and runs the application: it opens the database,
// applies migrations, wires the services together and starts the HTTP server
// with graceful shutdown on SIGINT/SIGTERM.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/yourplaces/backend/internal/logging"
	"github.com/yourplaces/backend/internal/server/config"
	"github.com/yourplaces/backend/internal/server/geocode"
	"github.com/yourplaces/backend/internal/server/httpapi"
	"github.com/yourplaces/backend/internal/server/repositories/repomanager"
	"github.com/yourplaces/backend/internal/server/services"
	"github.com/yourplaces/backend/internal/server/storage"
)

type App struct {
	config       *config.Config
	logger       logging.Logger
	db           *sql.DB
	userService  *services.UserService
	placeService *services.PlaceService
	images       storage.ImageStore
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	images := storage.NewS3ImageStore(cfg)
	geocoder := geocode.NewHTTPGeocoder(cfg.GeocoderBaseURL, cfg.GeocoderAPIKey)

	us := services.NewUserService(db, rm, cfg)
	ps := services.NewPlaceService(db, rm, geocoder, images, logger)

	return &App{
		config:       cfg,
		logger:       logger,
		db:           db,
		userService:  us,
		placeService: ps,
		images:       images,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewServer(app.config.EndpointAddr, app.logger, app.userService, app.placeService, app.images)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

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
		app.logger.Error(ctx, err.Error())
	}
}
