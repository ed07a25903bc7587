package models

import "time"

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}

// SessionUser is the projection of an authenticated account carried by a
// server-side session. The client only ever sees the opaque token.
type SessionUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
