package models

import "time"

// User is an account record. Email is unique and stored lowercased.
// PasswordHash is an opaque bcrypt hash and must never leave the server.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Balance      int64
	CreatedAt    time.Time
}
