package model

import "time"

// Member is a portal account. PasswordHash is a bcrypt hash; the plaintext
// password never leaves the auth service.
type Member struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}
