package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/mindstack/mindstack/internal/domain/entity"
)

// TodoRepository persists todos, owner-filtered like ThoughtRepository.
type TodoRepository interface {
	Create(ctx context.Context, t *entity.Todo) error
	// ListByUser returns the user's todos ordered incomplete-first, dated
	// before undated, earliest due date first, newest created first.
	// completed, when non-nil, filters by completion state.
	ListByUser(ctx context.Context, userID uuid.UUID, completed *bool) ([]entity.Todo, error)
	GetByID(ctx context.Context, id, userID uuid.UUID) (*entity.Todo, error)
	Update(ctx context.Context, t *entity.Todo) error
	Delete(ctx context.Context, id, userID uuid.UUID) (bool, error)
}
