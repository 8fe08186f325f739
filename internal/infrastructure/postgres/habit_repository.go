package postgres

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mindstack/mindstack/internal/domain/entity"
	"github.com/mindstack/mindstack/internal/domain/repository"
)

type HabitRepository struct {
	pool *pgxpool.Pool
}

func NewHabitRepository(pool *pgxpool.Pool) *HabitRepository {
	return &HabitRepository{pool: pool}
}

func (r *HabitRepository) Create(ctx context.Context, h *entity.Habit) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO habits (user_id, title, description, frequency, start_date, end_date, due_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, is_active, created_at, updated_at
	`, h.UserID, h.Title, h.Description, h.Frequency, h.StartDate, h.EndDate, h.DueTime)

	return row.Scan(&h.ID, &h.IsActive, &h.CreatedAt, &h.UpdatedAt)
}

func (r *HabitRepository) ListByUser(ctx context.Context, userID uuid.UUID, active *bool) ([]entity.Habit, error) {
	query := `
		SELECT id, user_id, title, description, frequency, start_date, end_date, due_time, is_active, created_at, updated_at
		FROM habits
		WHERE user_id = $1`
	args := []any{userID}
	if active != nil {
		query += ` AND is_active = $2`
		args = append(args, *active)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	habits := []entity.Habit{}
	for rows.Next() {
		var h entity.Habit
		if err := rows.Scan(&h.ID, &h.UserID, &h.Title, &h.Description, &h.Frequency,
			&h.StartDate, &h.EndDate, &h.DueTime, &h.IsActive, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (r *HabitRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*entity.Habit, error) {
	h := &entity.Habit{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, title, description, frequency, start_date, end_date, due_time, is_active, created_at, updated_at
		FROM habits
		WHERE id = $1 AND user_id = $2
	`, id, userID)

	if err := row.Scan(&h.ID, &h.UserID, &h.Title, &h.Description, &h.Frequency,
		&h.StartDate, &h.EndDate, &h.DueTime, &h.IsActive, &h.CreatedAt, &h.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errNotFound
		}
		return nil, err
	}
	return h, nil
}

func (r *HabitRepository) Update(ctx context.Context, h *entity.Habit) error {
	h.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE habits
		SET title = $1, description = $2, frequency = $3, end_date = $4, due_time = $5, is_active = $6, updated_at = $7
		WHERE id = $8 AND user_id = $9
	`, h.Title, h.Description, h.Frequency, h.EndDate, h.DueTime, h.IsActive, h.UpdatedAt, h.ID, h.UserID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return errNotFound
	}
	return nil
}

func (r *HabitRepository) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	res, err := r.pool.Exec(ctx, `
		DELETE FROM habits
		WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

func (r *HabitRepository) CreateInstance(ctx context.Context, in *entity.HabitInstance) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO habit_instances (habit_id, user_id, due_date)
		VALUES ($1, $2, $3)
		ON CONFLICT (habit_id, due_date) DO UPDATE SET updated_at = habit_instances.updated_at
		RETURNING id, completed, skipped, created_at, updated_at
	`, in.HabitID, in.UserID, in.DueDate)

	return row.Scan(&in.ID, &in.Completed, &in.Skipped, &in.CreatedAt, &in.UpdatedAt)
}

func (r *HabitRepository) ListInstanceDates(ctx context.Context, habitID uuid.UUID, from, to time.Time) ([]time.Time, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT due_date
		FROM habit_instances
		WHERE habit_id = $1 AND due_date BETWEEN $2 AND $3
	`, habitID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dates := []time.Time{}
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

func (r *HabitRepository) ListInstances(ctx context.Context, userID uuid.UUID, f repository.InstanceFilter) ([]entity.HabitInstance, error) {
	query := `
		SELECT id, habit_id, user_id, due_date, completed, completed_at, skipped, created_at, updated_at
		FROM habit_instances
		WHERE user_id = $1`
	args := []any{userID}
	if f.From != nil {
		args = append(args, *f.From)
		query += ` AND due_date >= $` + strconv.Itoa(len(args))
	}
	if f.To != nil {
		args = append(args, *f.To)
		query += ` AND due_date <= $` + strconv.Itoa(len(args))
	}
	if f.Completed != nil {
		args = append(args, *f.Completed)
		query += ` AND completed = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY due_date DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	instances := []entity.HabitInstance{}
	for rows.Next() {
		var in entity.HabitInstance
		if err := rows.Scan(&in.ID, &in.HabitID, &in.UserID, &in.DueDate, &in.Completed,
			&in.CompletedAt, &in.Skipped, &in.CreatedAt, &in.UpdatedAt); err != nil {
			return nil, err
		}
		instances = append(instances, in)
	}
	return instances, rows.Err()
}

func (r *HabitRepository) GetInstanceByID(ctx context.Context, id, userID uuid.UUID) (*entity.HabitInstance, error) {
	in := &entity.HabitInstance{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, habit_id, user_id, due_date, completed, completed_at, skipped, created_at, updated_at
		FROM habit_instances
		WHERE id = $1 AND user_id = $2
	`, id, userID)

	if err := row.Scan(&in.ID, &in.HabitID, &in.UserID, &in.DueDate, &in.Completed,
		&in.CompletedAt, &in.Skipped, &in.CreatedAt, &in.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errNotFound
		}
		return nil, err
	}
	return in, nil
}

func (r *HabitRepository) UpdateInstance(ctx context.Context, in *entity.HabitInstance) error {
	in.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE habit_instances
		SET completed = $1, completed_at = $2, skipped = $3, updated_at = $4
		WHERE id = $5 AND user_id = $6
	`, in.Completed, in.CompletedAt, in.Skipped, in.UpdatedAt, in.ID, in.UserID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return errNotFound
	}
	return nil
}

func (r *HabitRepository) DeleteInstance(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	res, err := r.pool.Exec(ctx, `
		DELETE FROM habit_instances
		WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

func (r *HabitRepository) DeleteInstancesOnOrAfter(ctx context.Context, habitID uuid.UUID, date time.Time) error {
	_, err := r.pool.Exec(ctx, `
		DELETE FROM habit_instances
		WHERE habit_id = $1 AND due_date >= $2
	`, habitID, date)
	return err
}

func (r *HabitRepository) DeleteInstancesAfter(ctx context.Context, habitID uuid.UUID, date time.Time) error {
	_, err := r.pool.Exec(ctx, `
		DELETE FROM habit_instances
		WHERE habit_id = $1 AND due_date > $2
	`, habitID, date)
	return err
}

var _ repository.HabitRepository = (*HabitRepository)(nil)
