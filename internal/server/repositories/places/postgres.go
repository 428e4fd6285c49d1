package places

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/yourplaces/backend/internal/common"
	"github.com/yourplaces/backend/internal/dbx"
	"github.com/yourplaces/backend/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, place *models.Place) (*models.Place, error) {

	query :=
		`INSERT INTO places (title, description, address, lat, lng, image_key, creator_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		place.Title, place.Description, place.Address, place.Lat, place.Lng,
		place.ImageKey, place.CreatorID).Scan(&place.ID, &place.CreatedAt, &place.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return place, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Place, error) {
	query :=
		`SELECT id, title, description, address, lat, lng, image_key, creator_id, created_at, updated_at
		 FROM places
		 WHERE id = $1
		 `

	place := &models.Place{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&place.ID, &place.Title, &place.Description, &place.Address,
		&place.Lat, &place.Lng, &place.ImageKey, &place.CreatorID,
		&place.CreatedAt, &place.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return place, nil
}

func (r *PostgresRepository) ListByCreator(ctx context.Context, creatorID string) ([]*models.Place, error) {
	query :=
		`SELECT id, title, description, address, lat, lng, image_key, creator_id, created_at, updated_at
		 FROM places
		 WHERE creator_id = $1
		 ORDER BY created_at
		 `

	rows, err := r.db.QueryContext(ctx, query, creatorID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Place
	for rows.Next() {
		place := &models.Place{}
		if err := rows.Scan(&place.ID, &place.Title, &place.Description, &place.Address,
			&place.Lat, &place.Lng, &place.ImageKey, &place.CreatorID,
			&place.CreatedAt, &place.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, place)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) UpdateText(ctx context.Context, id, title, description string) (*models.Place, error) {
	query :=
		`UPDATE places
		 SET title = $2, description = $3, updated_at = now()
		 WHERE id = $1
		 RETURNING id, title, description, address, lat, lng, image_key, creator_id, created_at, updated_at
		 `

	place := &models.Place{}
	err := r.db.QueryRowContext(ctx, query, id, title, description).Scan(
		&place.ID, &place.Title, &place.Description, &place.Address,
		&place.Lat, &place.Lng, &place.ImageKey, &place.CreatorID,
		&place.CreatedAt, &place.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return place, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM places WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}

	return nil
}
