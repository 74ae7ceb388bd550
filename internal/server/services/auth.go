package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/clipforge/clipforge/internal/common"
	"github.com/clipforge/clipforge/internal/logging"
	"github.com/clipforge/clipforge/internal/server/auth"
	"github.com/clipforge/clipforge/internal/server/config"
	"github.com/clipforge/clipforge/internal/server/models"
	"github.com/clipforge/clipforge/internal/server/repositories/repomanager"
)

// AuthService owns registration, credential checks, token minting and
// bearer-token resolution.
type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      *auth.PasswordHasher
	codec       *auth.TokenCodec
	logger      logging.Logger

	lastLoginDebounce time.Duration
	now               func() time.Time
}

func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config,
	hasher *auth.PasswordHasher, codec *auth.TokenCodec, logger logging.Logger) *AuthService {
	return &AuthService{
		db:                db,
		repomanager:       m,
		hasher:            hasher,
		codec:             codec,
		logger:            logger,
		lastLoginDebounce: cfg.LastLoginDebounce,
		now:               time.Now,
	}
}

// Register creates an active, non-superuser account. Email uniqueness is
// reported to the caller; this surface is intentionally not anonymous-safe,
// unlike Login.
func (s *AuthService) Register(ctx context.Context, email, password string, firstName, lastName *string) (*models.User, error) {

	repo := s.repomanager.Users(s.db)

	if _, err := repo.GetByEmail(ctx, email); err == nil {
		return nil, common.ErrorEmailTaken
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error checking email: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:          email,
		HashedPassword: hash,
		IsActive:       true,
		FirstName:      firstName,
		LastName:       lastName,
	}

	user, err = repo.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and mints an access token. A missing account
// and a wrong password both cost one bcrypt comparison and return the same
// error, so response timing does not reveal which one happened.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.DummyVerify(password)
			return "", common.ErrorUnauthorized
		}
		return "", fmt.Errorf("error fetching user: %w", err)
	}

	if !s.hasher.Verify(password, user.HashedPassword) {
		return "", common.ErrorUnauthorized
	}

	if !user.IsActive {
		return "", common.ErrorForbidden
	}

	token, err := s.codec.Encode(strconv.FormatInt(user.ID, 10))
	if err != nil {
		return "", fmt.Errorf("error minting token: %w", err)
	}

	if err := repo.UpdateLastLogin(ctx, user.ID, s.now().UTC()); err != nil {
		// a stale last_login_at must not fail a successful login
		s.logger.Warn(ctx, "failed to update last login", "user_id", user.ID, "error", err)
	}

	return token, nil
}

// Resolve maps a bearer token to its active user. Tokens whose subject no
// longer exists are indistinguishable from garbage tokens.
func (s *AuthService) Resolve(ctx context.Context, token string) (*models.User, error) {

	claims, err := s.codec.Decode(token)
	if err != nil {
		return nil, err
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, fmt.Errorf("error fetching user: %w", err)
	}

	if !user.IsActive {
		return nil, common.ErrorForbidden
	}

	s.touchLastLogin(ctx, repo.UpdateLastLogin, user)

	return user, nil
}

// touchLastLogin refreshes last_login_at at most once per debounce window
// so a busy client does not turn every request into a users write.
func (s *AuthService) touchLastLogin(ctx context.Context, update func(context.Context, int64, time.Time) error, user *models.User) {
	now := s.now().UTC()

	if user.LastLoginAt != nil && now.Sub(*user.LastLoginAt) < s.lastLoginDebounce {
		return
	}

	if err := update(ctx, user.ID, now); err != nil {
		s.logger.Warn(ctx, "failed to update last login", "user_id", user.ID, "error", err)
		return
	}

	user.LastLoginAt = &now
}
