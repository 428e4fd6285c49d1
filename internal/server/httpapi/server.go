// Package httpapi exposes the users/places API over HTTP with gin.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/yourplaces/backend/internal/logging"
	"github.com/yourplaces/backend/internal/server/auth"
	"github.com/yourplaces/backend/internal/server/models"
	"github.com/yourplaces/backend/internal/server/services"
	"github.com/yourplaces/backend/internal/server/storage"
)

// UserService is the slice of the user service the transport needs.
type UserService interface {
	Register(ctx context.Context, name, email, rawPassword, imageKey string) (*models.User, string, error)
	Login(ctx context.Context, email, rawPassword string) (*models.User, string, error)
	List(ctx context.Context) ([]*models.User, error)
	VerifyToken(token string) (*auth.Claims, error)
}

// PlaceService is the slice of the place service the transport needs.
type PlaceService interface {
	Create(ctx context.Context, creatorID string, in services.CreatePlaceInput) (*models.Place, error)
	GetByID(ctx context.Context, placeID string) (*models.Place, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Place, error)
	Update(ctx context.Context, actorID, placeID, title, description string) (*models.Place, error)
	Delete(ctx context.Context, actorID, placeID string) error
}

type Server struct {
	address string
	logger  logging.Logger
	users   UserService
	places  PlaceService
	images  storage.ImageStore
}

func NewServer(address string, l logging.Logger, us UserService, ps PlaceService, img storage.ImageStore) *Server {
	return &Server{
		address: address,
		logger:  l.With("module", "http_server"),
		users:   us,
		places:  ps,
		images:  img,
	}
}

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.newRouter(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
