package models

import "time"

// Token is one issued session row. A user may hold any number of concurrently
// valid rows; issuing a new pair never invalidates the others. AuthToken is
// treated as expired once now minus UpdatedAt exceeds the configured TTL;
// RefreshToken never changes for the lifetime of the row.
type Token struct {
	ID           int64
	UserID       int64
	AuthToken    string
	RefreshToken string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
