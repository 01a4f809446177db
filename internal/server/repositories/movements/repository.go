// Package movements reads the balance-movement history of an account.
// Movements are written by the banking side of the application; the auth
// server only serves them on the account view.
package movements

import (
	"context"

	"github.com/dmitrijs2005/bankauth/internal/server/models"
)

type Repository interface {
	// ListByUser returns the user's movements ordered oldest first.
	ListByUser(ctx context.Context, userID string) ([]*models.Movement, error)
}
