package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/itemkeeper/internal/common"
	"github.com/dmitrijs2005/itemkeeper/internal/dbx"
	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
	"github.com/dmitrijs2005/itemkeeper/internal/server/repositories/repomanager"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ItemService is the item access layer. Mutations are scoped to the calling
// user; reads are global.
type ItemService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewItemService(db *sql.DB, m repomanager.RepositoryManager) *ItemService {
	return &ItemService{db: db, repomanager: m}
}

// Create stores a new item owned by caller. A caller without a stored user
// row, such as the debug fallback user, gets common.ErrorOwnerNotFound.
func (s *ItemService) Create(ctx context.Context, caller *models.User, title string, description *string) (*models.Item, error) {
	if caller == nil {
		return nil, common.ErrorUnauthorized
	}

	var item *models.Item
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		owner, err := s.repomanager.Users(tx).GetUserByLogin(ctx, caller.UserName)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrorOwnerNotFound
			}
			return fmt.Errorf("error searching owner: %w", err)
		}

		created, err := s.repomanager.Items(tx).Create(ctx, &models.Item{
			Title:       title,
			Description: description,
			OwnerID:     owner.ID,
		})
		if err != nil {
			return fmt.Errorf("error creating item: %w", err)
		}

		created.Owner = &models.User{ID: owner.ID, UserName: owner.UserName, FullName: owner.FullName}
		item = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	return item, nil
}

// List returns one page of the global listing. A zero limit means
// DefaultPageSize, larger limits are capped at MaxPageSize and negative
// offsets start from the beginning.
func (s *ItemService) List(ctx context.Context, q models.ItemQuery) (*models.ItemPage, error) {
	q = normalizeQuery(q)

	items, total, err := s.repomanager.Items(s.db).List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("error listing items: %w", err)
	}

	return &models.ItemPage{Items: items, Total: total, Limit: q.Limit, Offset: q.Offset}, nil
}

func normalizeQuery(q models.ItemQuery) models.ItemQuery {
	switch {
	case q.Limit <= 0:
		q.Limit = DefaultPageSize
	case q.Limit > MaxPageSize:
		q.Limit = MaxPageSize
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	return q
}

func (s *ItemService) Get(ctx context.Context, id int64) (*models.Item, error) {
	item, err := s.repomanager.Items(s.db).Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error getting item: %w", err)
	}
	return item, nil
}

// Update applies patch to an item owned by caller and returns the stored
// result. Items that do not exist and items owned by someone else are both
// reported as common.ErrorNotFound.
func (s *ItemService) Update(ctx context.Context, id int64, caller *models.User, patch models.ItemPatch) (*models.Item, error) {
	if caller == nil {
		return nil, common.ErrorUnauthorized
	}

	var item *models.Item
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Items(tx)

		ok, err := repo.Update(ctx, id, caller.UserName, patch)
		if err != nil {
			return fmt.Errorf("error updating item: %w", err)
		}
		if !ok {
			return common.ErrorNotFound
		}

		item, err = repo.Get(ctx, id)
		if err != nil {
			return fmt.Errorf("error reading updated item: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return item, nil
}

// Delete removes an item owned by caller. It reports false when no such
// owned item exists.
func (s *ItemService) Delete(ctx context.Context, id int64, caller *models.User) (bool, error) {
	if caller == nil {
		return false, common.ErrorUnauthorized
	}

	ok, err := s.repomanager.Items(s.db).Delete(ctx, id, caller.UserName)
	if err != nil {
		return false, fmt.Errorf("error deleting item: %w", err)
	}
	return ok, nil
}
