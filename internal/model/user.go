// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered account.
//
// Email is the login identifier; it is stored trimmed and lowercased, and
// the users table has a UNIQUE constraint on it. Callers must normalize
// before querying or inserting (see service.NormalizeEmail).
//
// PasswordHash is the bcrypt hash of the user's password. The plaintext is
// never stored, and the hash is never serialized to JSON — note the "-" tag.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
