package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mindstack/mindstack/internal/domain/entity"
)

// InstanceFilter narrows habit instance listings.
type InstanceFilter struct {
	From      *time.Time
	To        *time.Time
	Completed *bool
}

// HabitRepository persists habits and their materialized instances.
type HabitRepository interface {
	Create(ctx context.Context, h *entity.Habit) error
	ListByUser(ctx context.Context, userID uuid.UUID, active *bool) ([]entity.Habit, error)
	GetByID(ctx context.Context, id, userID uuid.UUID) (*entity.Habit, error)
	Update(ctx context.Context, h *entity.Habit) error
	// Delete removes the habit row; instances are removed by the FK cascade.
	Delete(ctx context.Context, id, userID uuid.UUID) (bool, error)

	CreateInstance(ctx context.Context, in *entity.HabitInstance) error
	// ListInstanceDates returns due dates of existing instances of the habit
	// within [from, to], used to avoid duplicate generation.
	ListInstanceDates(ctx context.Context, habitID uuid.UUID, from, to time.Time) ([]time.Time, error)
	ListInstances(ctx context.Context, userID uuid.UUID, f InstanceFilter) ([]entity.HabitInstance, error)
	GetInstanceByID(ctx context.Context, id, userID uuid.UUID) (*entity.HabitInstance, error)
	UpdateInstance(ctx context.Context, in *entity.HabitInstance) error
	DeleteInstance(ctx context.Context, id, userID uuid.UUID) (bool, error)
	// DeleteInstancesOnOrAfter removes instances with due_date >= date.
	DeleteInstancesOnOrAfter(ctx context.Context, habitID uuid.UUID, date time.Time) error
	// DeleteInstancesAfter removes instances with due_date > date.
	DeleteInstancesAfter(ctx context.Context, habitID uuid.UUID, date time.Time) error
}
