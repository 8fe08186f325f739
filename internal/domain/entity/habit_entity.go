package entity

import (
	"time"

	"github.com/google/uuid"
)

// Habit frequencies. Monthly occurrences land on the same day of month,
// clamped to the last day when the next month is shorter.
const (
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
)

// Habit is a recurring task template. Concrete occurrences are materialized
// as HabitInstance rows over a rolling horizon.
type Habit struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Frequency   string     `json:"frequency"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	DueTime     *string    `json:"due_time"` // "HH:MM", informational
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// HabitInstance is one dated occurrence of a habit.
type HabitInstance struct {
	ID          uuid.UUID  `json:"id"`
	HabitID     uuid.UUID  `json:"habit_id"`
	UserID      uuid.UUID  `json:"user_id"`
	DueDate     time.Time  `json:"due_date"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at"`
	Skipped     bool       `json:"skipped"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
