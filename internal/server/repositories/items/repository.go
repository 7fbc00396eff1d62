// Package items declares the item store contract and its SQL backends.
package items

import (
	"context"

	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
)

type Repository interface {
	// Create inserts item (OwnerID must be set) and fills its ID.
	Create(ctx context.Context, item *models.Item) (*models.Item, error)
	// Get returns the item joined with its owner, or common.ErrorNotFound.
	Get(ctx context.Context, id int64) (*models.Item, error)
	// List returns one page of items matching q and the number of matches
	// before pagination.
	List(ctx context.Context, q models.ItemQuery) ([]*models.Item, int64, error)
	// Update applies patch to the item only if it is owned by ownerUsername.
	// It reports false, not an error, when no such owned item exists.
	Update(ctx context.Context, id int64, ownerUsername string, patch models.ItemPatch) (bool, error)
	// Delete removes the item only if it is owned by ownerUsername.
	Delete(ctx context.Context, id int64, ownerUsername string) (bool, error)
}
