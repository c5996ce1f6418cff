package domain

import (
	"errors"
	"time"
)

// Roles carried inside session tokens.
const (
	RoleAdmin  = "admin"
	RoleClient = "client"
)

// AdminSubject is the token subject used for the admin identity. Client
// tokens carry their project id as subject instead.
const AdminSubject = "admin"

var ErrNotFound = errors.New("admin not found")

// Admin is the portal administrator credential. The row is provisioned at
// startup with the configured credential; an existing row is never changed.
type Admin struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
