// Package services contains server-side business logic. This file implements
// AuthService, which handles signup, login, logout, and token authentication
// backed by server-stored sessions.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/bankauth/internal/common"
	"github.com/dmitrijs2005/bankauth/internal/dbx"
	"github.com/dmitrijs2005/bankauth/internal/server/auth"
	"github.com/dmitrijs2005/bankauth/internal/server/config"
	"github.com/dmitrijs2005/bankauth/internal/server/models"
	"github.com/dmitrijs2005/bankauth/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// AuthService provides authentication operations:
//   - SignUp: create an account and mint its first session token
//   - Login: verify credentials and mint a session token
//   - Logout: revoke the server-side session behind a token
//   - Authenticate: verify a token and its live session
type AuthService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
	bcryptCost            int
}

// NewAuthService constructs an AuthService using repositories and server config.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *AuthService {
	return &AuthService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
		bcryptCost:            cfg.BcryptCost,
	}
}

// NormalizeEmail lowercases and trims an email so that lookups and the
// unique index agree on one spelling.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignUp creates a new account with a zero balance and returns a session
// token for it. A taken email yields common.ErrorAlreadyExists. The lookup
// before the insert only shapes the error; the unique index on email is
// what actually wins races between concurrent signups.
func (s *AuthService) SignUp(ctx context.Context, name, email, password string) (string, error) {
	email = NormalizeEmail(email)

	repo := s.repomanager.Users(s.db)
	if _, err := repo.GetByEmail(ctx, email); err == nil {
		return "", common.ErrorAlreadyExists
	} else if !errors.Is(err, common.ErrorNotFound) {
		return "", common.ErrorInternal
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return "", common.ErrorInternal
	}

	user := &models.User{Name: name, Email: email, PasswordHash: hash, Balance: 0}
	sessionID := uuid.NewString()

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		userTx := s.repomanager.Users(tx)
		created, err := userTx.Create(ctx, user)
		if err != nil {
			return fmt.Errorf("error creating user: %w", err)
		}
		user = created

		sessionTx := s.repomanager.Sessions(tx)
		if err := sessionTx.Create(ctx, sessionID, user.ID, s.tokenValidityDuration); err != nil {
			return fmt.Errorf("error creating session: %w", err)
		}
		return nil
	}); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return "", common.ErrorAlreadyExists
		}
		return "", common.ErrorInternal
	}

	token, err := auth.GenerateToken(user.ID, email, sessionID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}

	return token, nil
}

// Login verifies the credentials and returns a session token. An unknown
// email and a wrong password both yield the same common.ErrorUnauthorized.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = NormalizeEmail(email)

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return "", common.ErrorUnauthorized
	}

	sessionID := uuid.NewString()
	sessionRepo := s.repomanager.Sessions(s.db)
	if err := sessionRepo.Create(ctx, sessionID, user.ID, s.tokenValidityDuration); err != nil {
		return "", common.ErrorInternal
	}

	token, err := auth.GenerateToken(user.ID, email, sessionID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}

	return token, nil
}

// Logout revokes the session behind the token and returns the account email.
// Invalid, expired, and already-revoked tokens all yield ErrorUnauthorized.
func (s *AuthService) Logout(ctx context.Context, token string) (string, error) {
	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return "", common.ErrorUnauthorized
	}

	sessionRepo := s.repomanager.Sessions(s.db)
	if err := sessionRepo.Delete(ctx, claims.ID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}

	return claims.Subject, nil
}

// Authenticate verifies the token signature and expiry and checks that the
// backing session is still alive. Used by the HTTP middleware.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	sessionRepo := s.repomanager.Sessions(s.db)
	session, err := sessionRepo.Find(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if session.Expires.Before(time.Now()) {
		return nil, common.ErrSessionExpired
	}

	return claims, nil
}
