package domain

import "time"

// User is an authenticated account. PasswordHash is opaque outside the user
// service.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	IsAdmin      bool
	FullName     string
	Bio          string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
