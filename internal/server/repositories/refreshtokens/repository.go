// Package refreshtokens stores the opaque refresh tokens handed out at login.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, userID int64, token string, validity time.Duration) error
	// Find returns the token together with its owner's username, or
	// common.ErrorNotFound.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)
	// Delete reports false when no such token was stored, e.g. because a
	// concurrent refresh already consumed it.
	Delete(ctx context.Context, token string) (bool, error)
}
