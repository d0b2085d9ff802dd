package models

import "time"

// User is the identity row. PasswordHash and Salt are base64-encoded values
// produced by the hashing package; both are replaced together on password
// reset.
type User struct {
	ID           int64
	Name         string
	PasswordHash string
	Salt         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
