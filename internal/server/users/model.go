package users

import "time"

// User is an account row. PasswordHash never leaves the server.
type User struct {
	ID           int64     `json:"user_id"`
	Username     string    `json:"username"`
	Email        *string   `json:"email"`
	Phone        *string   `json:"phone"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Update lists the mutable columns. Nil fields keep their current value.
type Update struct {
	Username     *string
	Email        *string
	Phone        *string
	PasswordHash *string
}

// Empty reports whether the update would change nothing.
func (u *Update) Empty() bool {
	return u.Username == nil && u.Email == nil && u.Phone == nil && u.PasswordHash == nil
}
