// Package models defines server-side data models persisted in the database.
package models

// Item is a record owned by exactly one user. Owner is filled by the store
// with an explicit join; it carries no password hash.
type Item struct {
	ID          int64
	Title       string
	Description *string
	OwnerID     int64
	Owner       *User
}

// ItemPatch is a partial update: nil fields are left untouched.
type ItemPatch struct {
	Title       *string
	Description *string
}

// IsEmpty reports whether the patch changes nothing.
func (p ItemPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil
}

// Sort directions accepted by ItemQuery.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// ItemQuery describes one page of the global item listing.
type ItemQuery struct {
	// Search filters by case-insensitive substring of title or description.
	// Empty means no filter.
	Search string
	Limit  int
	Offset int
	// SortBy names an item attribute; unknown names sort by id.
	SortBy string
	// Order is "desc" for descending, anything else ascending.
	Order string
}

// ItemPage is a page of items plus the number of items matching the search,
// independent of Limit and Offset.
type ItemPage struct {
	Items  []*Item
	Total  int64
	Limit  int
	Offset int
}
