package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/yourplaces/backend/internal/common"
	"github.com/yourplaces/backend/internal/dbx"
	"github.com/yourplaces/backend/internal/logging"
	"github.com/yourplaces/backend/internal/server/geocode"
	"github.com/yourplaces/backend/internal/server/models"
	"github.com/yourplaces/backend/internal/server/repositories/repomanager"
	"github.com/yourplaces/backend/internal/server/storage"
)

// imageCleanupTimeout bounds the post-commit image deletion so a slow object
// store cannot pin goroutines forever.
const imageCleanupTimeout = 30 * time.Second

// CreatePlaceInput carries the already-validated fields for a new place.
type CreatePlaceInput struct {
	Title       string
	Description string
	Address     string
	ImageKey    string
}

// PlaceService owns the lifecycle of places. Create and Delete span the
// places table and the creator's place-id set; both writes commit or roll
// back as a unit, which is what keeps the two collections consistent under
// concurrent requests — there is no in-process locking.
type PlaceService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	geocoder    geocode.Geocoder
	images      storage.ImageStore
	logger      logging.Logger
}

func NewPlaceService(db *sql.DB, m repomanager.RepositoryManager, g geocode.Geocoder, img storage.ImageStore, l logging.Logger) *PlaceService {
	return &PlaceService{
		db:          db,
		repomanager: m,
		geocoder:    g,
		images:      img,
		logger:      l.With("module", "place_service"),
	}
}

// Create geocodes the address, then inserts the place and appends its id to
// the creator's place set in one transaction. A geocoder failure surfaces
// before anything is written.
func (s *PlaceService) Create(ctx context.Context, creatorID string, in CreatePlaceInput) (*models.Place, error) {

	userRepo := s.repomanager.Users(s.db)
	if _, err := userRepo.GetByID(ctx, creatorID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, common.ErrInternal
	}

	loc, err := s.geocoder.Resolve(ctx, in.Address)
	if err != nil {
		return nil, err
	}

	place := &models.Place{
		Title:       in.Title,
		Description: in.Description,
		Address:     in.Address,
		Lat:         loc.Lat,
		Lng:         loc.Lng,
		ImageKey:    in.ImageKey,
		CreatorID:   creatorID,
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var txErr error
		place, txErr = s.repomanager.Places(tx).Create(ctx, place)
		if txErr != nil {
			return txErr
		}
		return s.repomanager.Users(tx).AddPlace(ctx, creatorID, place.ID)
	})
	if err != nil {
		return nil, common.ErrInternal
	}

	return place, nil
}

// GetByID returns a single place.
func (s *PlaceService) GetByID(ctx context.Context, placeID string) (*models.Place, error) {
	place, err := s.repomanager.Places(s.db).GetByID(ctx, placeID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, common.ErrInternal
	}
	return place, nil
}

// ListByUser returns the places created by the given user. A missing user or
// an empty set both yield common.ErrNotFound.
func (s *PlaceService) ListByUser(ctx context.Context, userID string) ([]*models.Place, error) {

	if _, err := s.repomanager.Users(s.db).GetByID(ctx, userID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, common.ErrInternal
	}

	result, err := s.repomanager.Places(s.db).ListByCreator(ctx, userID)
	if err != nil {
		return nil, common.ErrInternal
	}
	if len(result) == 0 {
		return nil, common.ErrNotFound
	}
	return result, nil
}

// Update changes a place's title and description. Only the creator may do
// this; the relationship to the creator is untouched, so no transaction is
// needed.
func (s *PlaceService) Update(ctx context.Context, actorID, placeID, title, description string) (*models.Place, error) {

	placeRepo := s.repomanager.Places(s.db)

	place, err := placeRepo.GetByID(ctx, placeID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, common.ErrInternal
	}

	if err := s.authorizeMutation(actorID, place); err != nil {
		return nil, err
	}

	place, err = placeRepo.UpdateText(ctx, placeID, title, description)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, common.ErrInternal
	}

	return place, nil
}

// Delete removes a place and its backlink in one transaction, then deletes
// the stored image outside the transaction on a best-effort basis. When two
// deletes race, the loser observes a zero-row delete inside its transaction
// and gets common.ErrNotFound.
func (s *PlaceService) Delete(ctx context.Context, actorID, placeID string) error {

	place, err := s.repomanager.Places(s.db).GetByID(ctx, placeID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		return common.ErrInternal
	}

	// The creator must still resolve before the ownership check; a dangling
	// creator reference means corrupted data, not an authorization pass.
	if _, err := s.repomanager.Users(s.db).GetByID(ctx, place.CreatorID); err != nil {
		return common.ErrInternal
	}

	if err := s.authorizeMutation(actorID, place); err != nil {
		return err
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if txErr := s.repomanager.Places(tx).Delete(ctx, placeID); txErr != nil {
			return txErr
		}
		return s.repomanager.Users(tx).RemovePlace(ctx, place.CreatorID, placeID)
	})
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		return common.ErrInternal
	}

	s.cleanupImage(ctx, place.ImageKey)

	return nil
}

// authorizeMutation is the ownership check: the authenticated identity must
// equal the place's stored creator id. It runs only against places that are
// known to exist.
func (s *PlaceService) authorizeMutation(actorID string, place *models.Place) error {
	if place.CreatorID != actorID {
		return common.ErrForbidden
	}
	return nil
}

// cleanupImage deletes the place's stored image in the background. The data
// transaction already committed, so a storage failure is only logged: an
// orphaned image is recoverable, a dangling place reference is not.
func (s *PlaceService) cleanupImage(ctx context.Context, imageKey string) {
	if imageKey == "" {
		return
	}

	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), imageCleanupTimeout)
	go func() {
		defer cancel()
		if err := s.images.Delete(cleanupCtx, imageKey); err != nil {
			s.logger.Warn(cleanupCtx, "image cleanup failed", "key", imageKey, "error", err.Error())
		}
	}()
}
