package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mindstack/mindstack/internal/domain/entity"
	"github.com/mindstack/mindstack/internal/domain/repository"
)

var ErrTodoNotFound = errors.New("todo not found")

// TodoService handles CRUD over todos.
type TodoService struct {
	Todos repository.TodoRepository
}

func NewTodoService(todos repository.TodoRepository) *TodoService {
	return &TodoService{Todos: todos}
}

type CreateTodoInput struct {
	Title       string
	Description *string
	DueDate     *time.Time
}

func (s *TodoService) Create(ctx context.Context, userID uuid.UUID, in CreateTodoInput) (*entity.Todo, error) {
	t := &entity.Todo{
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
	}
	if err := s.Todos.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TodoService) List(ctx context.Context, userID uuid.UUID, completed *bool) ([]entity.Todo, error) {
	return s.Todos.ListByUser(ctx, userID, completed)
}

func (s *TodoService) Get(ctx context.Context, id, userID uuid.UUID) (*entity.Todo, error) {
	t, err := s.Todos.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, err
	}
	return t, nil
}

// UpdateTodoInput carries a partial update. Nil pointers keep the stored
// value. DueDateSet distinguishes an absent due_date from an explicit null:
// set with a nil DueDate clears the date.
type UpdateTodoInput struct {
	Title       *string
	Description *string
	Completed   *bool
	DueDateSet  bool
	DueDate     *time.Time
}

func (s *TodoService) Update(ctx context.Context, id, userID uuid.UUID, in UpdateTodoInput) (*entity.Todo, error) {
	t, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	// A blank title keeps the stored one.
	if in.Title != nil && strings.TrimSpace(*in.Title) != "" {
		t.Title = *in.Title
	}
	if in.Description != nil {
		t.Description = in.Description
	}
	if in.Completed != nil {
		t.Completed = *in.Completed
	}
	if in.DueDateSet {
		t.DueDate = in.DueDate
	}

	if err := s.Todos.Update(ctx, t); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *TodoService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	ok, err := s.Todos.Delete(ctx, id, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrTodoNotFound
	}
	return nil
}
