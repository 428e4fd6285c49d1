package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/yourplaces/backend/internal/common"
	"github.com/yourplaces/backend/internal/dbx"
	"github.com/yourplaces/backend/internal/logging"
	"github.com/yourplaces/backend/internal/server/geocode"
	"github.com/yourplaces/backend/internal/server/models"
	placesrepo "github.com/yourplaces/backend/internal/server/repositories/places"
	usersrepo "github.com/yourplaces/backend/internal/server/repositories/users"
)

// --- shared fakes for service tests ---

var errNotFoundFromRepo = common.ErrNotFound

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	byID    map[string]*models.User
	byEmail map[string]*models.User
	getErr  error

	listOut []*models.User
	listErr error

	addPlaceErr    error
	addPlaceCalls  []string
	removePlaceErr error
	removedCalls   []string
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	u.ID = "u-new"
	return u, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, errNotFoundFromRepo
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, errNotFoundFromRepo
}

func (f *fakeUsersRepo) List(ctx context.Context) ([]*models.User, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

func (f *fakeUsersRepo) AddPlace(ctx context.Context, userID, placeID string) error {
	if f.addPlaceErr != nil {
		return f.addPlaceErr
	}
	f.addPlaceCalls = append(f.addPlaceCalls, userID+"/"+placeID)
	return nil
}

func (f *fakeUsersRepo) RemovePlace(ctx context.Context, userID, placeID string) error {
	if f.removePlaceErr != nil {
		return f.removePlaceErr
	}
	f.removedCalls = append(f.removedCalls, userID+"/"+placeID)
	return nil
}

type fakePlacesRepo struct {
	createOut *models.Place
	createErr error

	byID   map[string]*models.Place
	getErr error

	listOut []*models.Place
	listErr error

	updateOut *models.Place
	updateErr error

	deleteErr   error
	deleteCalls []string
}

func (f *fakePlacesRepo) Create(ctx context.Context, p *models.Place) (*models.Place, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	p.ID = "p-new"
	return p, nil
}

func (f *fakePlacesRepo) GetByID(ctx context.Context, id string) (*models.Place, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if p, ok := f.byID[id]; ok {
		return p, nil
	}
	return nil, errNotFoundFromRepo
}

func (f *fakePlacesRepo) ListByCreator(ctx context.Context, creatorID string) ([]*models.Place, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

func (f *fakePlacesRepo) UpdateText(ctx context.Context, id, title, description string) (*models.Place, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if f.updateOut != nil {
		return f.updateOut, nil
	}
	return &models.Place{ID: id, Title: title, Description: description}, nil
}

func (f *fakePlacesRepo) Delete(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleteCalls = append(f.deleteCalls, id)
	return nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	p *fakePlacesRepo
}

func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository       { return m.u }
func (m *fakeRepoManager) Places(db dbx.DBTX) placesrepo.Repository     { return m.p }
func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

type fakeGeocoder struct {
	out *geocode.Location
	err error
}

func (f *fakeGeocoder) Resolve(ctx context.Context, address string) (*geocode.Location, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.out, nil
}

type fakeImageStore struct {
	deleteErr  error
	deleted    chan string
	presignKey string
	presignURL string
	presignErr error
}

func newFakeImageStore() *fakeImageStore {
	return &fakeImageStore{deleted: make(chan string, 1)}
}

func (f *fakeImageStore) PresignPutURL(ctx context.Context) (string, string, error) {
	return f.presignKey, f.presignURL, f.presignErr
}

func (f *fakeImageStore) Delete(ctx context.Context, key string) error {
	f.deleted <- key
	return f.deleteErr
}

func discardLogger(t *testing.T) logging.Logger {
	t.Helper()
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}
