package items

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
)

// sortColumns is the allow-list of sortable attributes. Anything else sorts
// by id.
var sortColumns = map[string]string{
	"id":          "i.id",
	"title":       "i.title",
	"description": "i.description",
	"owner_id":    "i.owner_id",
}

const selectItemColumns = `i.id, i.title, i.description, i.owner_id, u.id, u.username, u.full_name`

// dialect captures the two places where the backends differ.
type dialect struct {
	placeholder func(n int) string
	like        string
}

var (
	postgresDialect = dialect{
		placeholder: func(n int) string { return fmt.Sprintf("$%d", n) },
		like:        "ILIKE",
	}
	sqliteDialect = dialect{
		placeholder: func(int) string { return "?" },
		like:        "LIKE",
	}
)

// escapeLike makes s match literally inside a LIKE pattern that uses
// backslash as its escape character.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// orderBy renders the ORDER BY clause. NULL descriptions sort first when
// ascending on both backends, and id breaks ties.
func orderBy(q models.ItemQuery) string {
	col, ok := sortColumns[q.SortBy]
	if !ok {
		col = sortColumns["id"]
	}

	dir, nulls := "ASC", "NULLS FIRST"
	if q.Order == models.SortDesc {
		dir, nulls = "DESC", "NULLS LAST"
	}

	clause := fmt.Sprintf("%s %s %s", col, dir, nulls)
	if col != sortColumns["id"] {
		clause += ", i.id ASC"
	}
	return clause
}

type builtQuery struct {
	sql  string
	args []any
}

// buildList renders the page query and the count query for q.
func (d dialect) buildList(q models.ItemQuery) (page builtQuery, count builtQuery) {
	var where string
	bind := func(b *builtQuery, v any) string {
		b.args = append(b.args, v)
		return d.placeholder(len(b.args))
	}
	filter := func(b *builtQuery) string {
		if q.Search == "" {
			return ""
		}
		pattern := "%" + escapeLike(q.Search) + "%"
		return fmt.Sprintf(` WHERE (i.title %[1]s %[2]s ESCAPE '\' OR i.description %[1]s %[3]s ESCAPE '\')`,
			d.like, bind(b, pattern), bind(b, pattern))
	}

	where = filter(&count)
	count.sql = `SELECT COUNT(*) FROM items i` + where

	where = filter(&page)
	page.sql = `SELECT ` + selectItemColumns + ` FROM items i JOIN users u ON u.id = i.owner_id` +
		where +
		` ORDER BY ` + orderBy(q) +
		` LIMIT ` + bind(&page, q.Limit) + ` OFFSET ` + bind(&page, q.Offset)

	return page, count
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*models.Item, error) {
	item := &models.Item{Owner: &models.User{}}
	err := row.Scan(&item.ID, &item.Title, &item.Description, &item.OwnerID,
		&item.Owner.ID, &item.Owner.UserName, &item.Owner.FullName)
	if err != nil {
		return nil, err
	}
	return item, nil
}
