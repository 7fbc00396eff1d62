package api

// Field rules live in the validate tags and are checked on the server by
// the validation package before any service is called.

type User struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	FullName *string `json:"full_name,omitempty"`
}

type Item struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	OwnerID     int64   `json:"owner_id"`
	Owner       *User   `json:"owner,omitempty"`
}

type RegisterUserRequest struct {
	Username string  `json:"username" validate:"required,min=3,max=50"`
	FullName *string `json:"full_name,omitempty" validate:"omitempty,max=120"`
	Password string  `json:"password" validate:"required,min=6,max=200"`
}

type RegisterUserResponse struct {
	User *User `json:"user"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse answers Login and RefreshToken. RefreshToken is empty for
// the debug fallback login.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type MeRequest struct{}

type MeResponse struct {
	User *User `json:"user"`
}

type DeleteMeRequest struct{}

type DeleteMeResponse struct {
	OK bool `json:"ok"`
}

type CreateItemRequest struct {
	Title       string  `json:"title" validate:"required,min=3,max=200,itemtitle"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
}

type ItemResponse struct {
	Item *Item `json:"item"`
}

type GetItemRequest struct {
	ID int64 `json:"id" validate:"gt=0"`
}

// ListItemsRequest selects one page of the global listing. Limit 0 means the
// server default. SortBy names an item field; unknown names sort by id.
type ListItemsRequest struct {
	Search string `json:"q,omitempty" validate:"max=200"`
	Limit  int    `json:"limit,omitempty" validate:"gte=0,lte=100"`
	Offset int    `json:"offset,omitempty" validate:"gte=0"`
	SortBy string `json:"sort_by,omitempty"`
	Order  string `json:"order,omitempty" validate:"omitempty,oneof=asc desc"`
}

type ListItemsResponse struct {
	Items  []*Item `json:"items"`
	Total  int64   `json:"total"`
	Limit  int     `json:"limit"`
	Offset int     `json:"offset"`
}

// UpdateItemRequest is a partial update; absent fields are left unchanged.
type UpdateItemRequest struct {
	ID          int64   `json:"id" validate:"gt=0"`
	Title       *string `json:"title,omitempty" validate:"omitempty,min=3,max=200,itemtitle"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
}

type DeleteItemRequest struct {
	ID int64 `json:"id" validate:"gt=0"`
}

type DeleteItemResponse struct {
	OK bool `json:"ok"`
}
