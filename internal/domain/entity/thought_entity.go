package entity

import (
	"time"

	"github.com/google/uuid"
)

// Thought is a short free-text note owned by a single user.
type Thought struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
