// Package users persists account records. Email uniqueness is enforced by
// the storage layer's unique index, not by callers.
package users

import (
	"context"

	"github.com/dmitrijs2005/bankauth/internal/server/models"
)

type Repository interface {
	// Create inserts the account and returns it with the generated ID.
	// A duplicate email yields common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail returns the account for the given (normalized) email or
	// common.ErrorNotFound.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID returns the account for the given ID or common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.User, error)
}
