package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/mindstack/mindstack/internal/domain/entity"
)

// ThoughtRepository persists thoughts. Every read/update/delete takes the
// owning user's id as a mandatory filter so rows of other users are
// unreachable even with a guessed id.
type ThoughtRepository interface {
	Create(ctx context.Context, t *entity.Thought) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Thought, error)
	GetByID(ctx context.Context, id, userID uuid.UUID) (*entity.Thought, error)
	Update(ctx context.Context, t *entity.Thought) error
	// Delete reports whether a row was removed.
	Delete(ctx context.Context, id, userID uuid.UUID) (bool, error)
}
