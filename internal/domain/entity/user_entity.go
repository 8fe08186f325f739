package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the aggregate root for the user domain. PasswordHash holds an
// argon2id PHC string and is never serialized in any outward-facing
// representation.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
