package model

import (
	"time"

	"github.com/google/uuid"
)

// User is an authenticated storefront identity. Token issuance happens in the
// external auth service; this core only resolves an opaque token back to the
// user row.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	IsAdmin      bool      `json:"isAdmin" db:"is_admin"`
	Token        string    `json:"-" db:"token"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}
