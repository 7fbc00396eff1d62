package models

import "time"

type RefreshToken struct {
	ID       int64
	UserID   int64
	UserName string
	Token    string
	Expires  time.Time
}
