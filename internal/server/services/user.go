// Package services contains the server-side business logic: account
// registration and login, and the lifecycle of places including the
// transactional link between a place and its creator's place set.
package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/yourplaces/backend/internal/common"
	"github.com/yourplaces/backend/internal/server/auth"
	"github.com/yourplaces/backend/internal/server/config"
	"github.com/yourplaces/backend/internal/server/models"
	"github.com/yourplaces/backend/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

// passwordHashCost is the fixed bcrypt cost factor for new password hashes.
const passwordHashCost = 12

// hashPassword and comparePassword are seams for tests; bcrypt at cost 12 is
// deliberately slow.
var (
	hashPassword = func(raw string) ([]byte, error) {
		return bcrypt.GenerateFromPassword([]byte(raw), passwordHashCost)
	}
	comparePassword = func(hash, raw string) error {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw))
	}
)

// UserService handles registration, login and bearer-token verification.
type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Register creates a new account and returns it together with a signed token.
// A duplicate email yields common.ErrConflict: the uniqueness decision is
// made by the store's unique index, so a register race cannot slip through.
// The raw password is hashed immediately and never stored or logged.
func (s *UserService) Register(ctx context.Context, name, email, rawPassword, imageKey string) (*models.User, string, error) {

	hash, err := hashPassword(rawPassword)
	if err != nil {
		return nil, "", common.ErrInternal
	}

	user := &models.User{Name: name, Email: email, PasswordHash: string(hash), ImageKey: imageKey}

	repo := s.repomanager.Users(s.db)
	user, err = repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, "", common.ErrConflict
		}
		return nil, "", common.ErrInternal
	}

	token, err := s.issueToken(user.ID, user.Email)
	if err != nil {
		return nil, "", common.ErrInternal
	}

	return user, token, nil
}

// Login verifies credentials and returns the user plus a fresh token.
// An unknown email and a wrong password both return the identical
// common.ErrUnauthorized, so callers cannot probe which accounts exist.
func (s *UserService) Login(ctx context.Context, email, rawPassword string) (*models.User, string, error) {

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, "", common.ErrUnauthorized
		}
		return nil, "", common.ErrInternal
	}

	if err := comparePassword(user.PasswordHash, rawPassword); err != nil {
		return nil, "", common.ErrUnauthorized
	}

	token, err := s.issueToken(user.ID, user.Email)
	if err != nil {
		return nil, "", common.ErrInternal
	}

	return user, token, nil
}

// List returns all users. Password hashes are stripped before the result
// leaves the service.
func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	repo := s.repomanager.Users(s.db)
	users, err := repo.List(ctx)
	if err != nil {
		return nil, common.ErrInternal
	}
	for _, u := range users {
		u.PasswordHash = ""
	}
	return users, nil
}

// VerifyToken checks the signature and expiry of a bearer token and returns
// the identity it asserts.
func (s *UserService) VerifyToken(token string) (*auth.Claims, error) {
	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, common.ErrInvalidToken
	}
	return claims, nil
}

func (s *UserService) issueToken(userID, email string) (string, error) {
	return auth.GenerateToken(userID, email, s.jwtSecret, s.tokenValidityDuration)
}
