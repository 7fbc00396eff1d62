package items

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/itemkeeper/internal/dbx"
	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
)

// SQLiteRepository is the modernc.org/sqlite backend. Search folds case for
// ASCII letters only, which is what SQLite's LIKE does.
type SQLiteRepository struct {
	base
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{base{db: db, d: sqliteDialect}}
}

func (r *SQLiteRepository) Create(ctx context.Context, item *models.Item) (*models.Item, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO items (title, description, owner_id) VALUES (?, ?, ?)`,
		item.Title, item.Description, item.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	item.ID = id

	return item, nil
}
