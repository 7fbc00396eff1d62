package models

// User is a registered account. PasswordHash never leaves the server.
type User struct {
	ID           int64
	UserName     string
	FullName     *string
	PasswordHash string
}
