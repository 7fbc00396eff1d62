// Package users declares the user store contract and its SQL backends.
package users

import (
	"context"

	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
)

type Repository interface {
	// Create inserts user and fills its ID. A taken username yields
	// common.ErrorConflict.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// GetUserByLogin returns the user with exactly this username or
	// common.ErrorNotFound.
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	// Delete removes the user; their items and refresh tokens go with them.
	// It reports whether a row was removed.
	Delete(ctx context.Context, login string) (bool, error)
}
