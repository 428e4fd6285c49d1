package places

import (
	"context"

	"github.com/yourplaces/backend/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, place *models.Place) (*models.Place, error)
	GetByID(ctx context.Context, id string) (*models.Place, error)
	ListByCreator(ctx context.Context, creatorID string) ([]*models.Place, error)
	UpdateText(ctx context.Context, id, title, description string) (*models.Place, error)

	// Delete removes the place row and reports common.ErrNotFound when no row
	// matched, which is how a lost concurrent-delete race is detected.
	Delete(ctx context.Context, id string) error
}
