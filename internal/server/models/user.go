package models

import "time"

// User is the authenticated principal. HashedPassword never leaves the
// server; inactive users must never resolve successfully.
type User struct {
	ID             int64
	Email          string
	HashedPassword string
	IsActive       bool
	IsSuperuser    bool

	FirstName *string
	LastName  *string

	CreatedAt   time.Time
	UpdatedAt   *time.Time
	LastLoginAt *time.Time
}
