package domain

import "time"

// User is a registered account. PasswordHash is a bcrypt hash; the plaintext
// password never leaves the service layer.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
