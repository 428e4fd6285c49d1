package users

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/yourplaces/backend/internal/common"
	"github.com/yourplaces/backend/internal/dbx"
	"github.com/yourplaces/backend/internal/server/models"
)

// uniqueViolation is the Postgres SQLSTATE for unique-constraint failures.
const uniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (name, email, password_hash, image_key)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.Name, user.Email, user.PasswordHash, user.ImageKey).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		// a duplicate email loses the unique-index race regardless of any
		// earlier existence check
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query :=
		`SELECT id, name, email, password_hash, image_key,
		        COALESCE(array_to_json(place_ids)::text, '[]'), created_at
		 FROM users
		 WHERE id = $1
		 `

	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT id, name, email, password_hash, image_key,
		        COALESCE(array_to_json(place_ids)::text, '[]'), created_at
		 FROM users
		 WHERE email = $1
		 `

	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.User, error) {
	query :=
		`SELECT id, name, email, password_hash, image_key,
		        COALESCE(array_to_json(place_ids)::text, '[]'), created_at
		 FROM users
		 ORDER BY created_at
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		var placeIDs string
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash,
			&user.ImageKey, &placeIDs, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if err := json.Unmarshal([]byte(placeIDs), &user.PlaceIDs); err != nil {
			return nil, fmt.Errorf("invalid place_ids: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return users, nil
}

// AddPlace appends placeID to the user's place-id set. The containment guard
// makes the append idempotent under concurrent transactions, so two creates
// for the same user can both commit without losing an update.
func (r *PostgresRepository) AddPlace(ctx context.Context, userID, placeID string) error {
	query :=
		`UPDATE users
		 SET place_ids = array_append(place_ids, $2::uuid)
		 WHERE id = $1 AND NOT (place_ids @> ARRAY[$2]::uuid[])
		 `

	if _, err := r.db.ExecContext(ctx, query, userID, placeID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// RemovePlace pulls placeID from the user's place-id set; removing an id that
// is not present is a no-op.
func (r *PostgresRepository) RemovePlace(ctx context.Context, userID, placeID string) error {
	query :=
		`UPDATE users
		 SET place_ids = array_remove(place_ids, $2::uuid)
		 WHERE id = $1
		 `

	if _, err := r.db.ExecContext(ctx, query, userID, placeID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var placeIDs string

	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash,
		&user.ImageKey, &placeIDs, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if err := json.Unmarshal([]byte(placeIDs), &user.PlaceIDs); err != nil {
		return nil, fmt.Errorf("invalid place_ids: %w", err)
	}

	return user, nil
}
