package items

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/itemkeeper/internal/common"
	"github.com/dmitrijs2005/itemkeeper/internal/dbx"
	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
)

// base holds the statements that only differ by placeholder syntax.
type base struct {
	db dbx.DBTX
	d  dialect
}

func (r *base) ph(n int) string { return r.d.placeholder(n) }

func (r *base) Get(ctx context.Context, id int64) (*models.Item, error) {
	query := `SELECT ` + selectItemColumns + `
		 FROM items i JOIN users u ON u.id = i.owner_id
		 WHERE i.id = ` + r.ph(1)

	item, err := scanItem(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return item, nil
}

func (r *base) List(ctx context.Context, q models.ItemQuery) ([]*models.Item, int64, error) {
	page, count := r.d.buildList(q)

	var total int64
	if err := r.db.QueryRowContext(ctx, count.sql, count.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, page.sql, page.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("db error: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	return result, total, nil
}

func (r *base) Update(ctx context.Context, id int64, ownerUsername string, patch models.ItemPatch) (bool, error) {
	query := `UPDATE items
		 SET title = COALESCE(` + r.ph(1) + `, title),
		     description = COALESCE(` + r.ph(2) + `, description)
		 WHERE id = ` + r.ph(3) + `
		   AND owner_id = (SELECT id FROM users WHERE username = ` + r.ph(4) + `)`

	res, err := r.db.ExecContext(ctx, query, patch.Title, patch.Description, id, ownerUsername)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	ok, err := dbx.RowsAffected(res)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return ok, nil
}

func (r *base) Delete(ctx context.Context, id int64, ownerUsername string) (bool, error) {
	query := `DELETE FROM items
		 WHERE id = ` + r.ph(1) + `
		   AND owner_id = (SELECT id FROM users WHERE username = ` + r.ph(2) + `)`

	res, err := r.db.ExecContext(ctx, query, id, ownerUsername)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	ok, err := dbx.RowsAffected(res)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return ok, nil
}
