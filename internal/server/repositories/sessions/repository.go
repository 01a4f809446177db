// Package sessions persists the server-side rows backing issued tokens.
package sessions

import (
	"context"
	"time"

	"github.com/dmitrijs2005/bankauth/internal/server/models"
)

type Repository interface {
	// Create stores a session row expiring after the given validity.
	Create(ctx context.Context, id string, userID string, validity time.Duration) error

	// Find returns the session with the given ID or common.ErrorNotFound.
	Find(ctx context.Context, id string) (*models.Session, error)

	// Delete removes the session. Deleting an absent session yields
	// common.ErrorNotFound.
	Delete(ctx context.Context, id string) error
}
