package domain

import "time"

// User is an account. PasswordHash is an argon2id PHC string and must never
// be serialized to clients.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
