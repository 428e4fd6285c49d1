package users

import (
	"context"

	"github.com/yourplaces/backend/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)

	// AddPlace and RemovePlace mutate the user's place-id set atomically
	// (set semantics: adding an id twice or removing an absent one is a no-op).
	AddPlace(ctx context.Context, userID, placeID string) error
	RemovePlace(ctx context.Context, userID, placeID string) error
}
