package models

// Registered account. PasswordHash never leaves the server.
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}
