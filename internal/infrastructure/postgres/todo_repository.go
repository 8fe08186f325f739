package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mindstack/mindstack/internal/domain/entity"
	"github.com/mindstack/mindstack/internal/domain/repository"
)

type TodoRepository struct {
	pool *pgxpool.Pool
}

func NewTodoRepository(pool *pgxpool.Pool) *TodoRepository {
	return &TodoRepository{pool: pool}
}

func (r *TodoRepository) Create(ctx context.Context, t *entity.Todo) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO todos (user_id, title, description, due_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, completed, created_at, updated_at
	`, t.UserID, t.Title, t.Description, t.DueDate)

	return row.Scan(&t.ID, &t.Completed, &t.CreatedAt, &t.UpdatedAt)
}

func (r *TodoRepository) ListByUser(ctx context.Context, userID uuid.UUID, completed *bool) ([]entity.Todo, error) {
	query := `
		SELECT id, user_id, title, description, completed, due_date, created_at, updated_at
		FROM todos
		WHERE user_id = $1`
	args := []any{userID}
	if completed != nil {
		query += ` AND completed = $2`
		args = append(args, *completed)
	}
	// Incomplete first, dated before undated, earliest due date first,
	// newest created first.
	query += `
		ORDER BY
			CASE WHEN completed THEN 1 ELSE 0 END,
			CASE WHEN due_date IS NULL THEN 1 ELSE 0 END,
			due_date ASC,
			created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	todos := []entity.Todo{}
	for rows.Next() {
		var t entity.Todo
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Completed,
			&t.DueDate, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

func (r *TodoRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*entity.Todo, error) {
	t := &entity.Todo{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, title, description, completed, due_date, created_at, updated_at
		FROM todos
		WHERE id = $1 AND user_id = $2
	`, id, userID)

	if err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Completed,
		&t.DueDate, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *TodoRepository) Update(ctx context.Context, t *entity.Todo) error {
	t.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE todos
		SET title = $1, description = $2, completed = $3, due_date = $4, updated_at = $5
		WHERE id = $6 AND user_id = $7
	`, t.Title, t.Description, t.Completed, t.DueDate, t.UpdatedAt, t.ID, t.UserID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return errNotFound
	}
	return nil
}

func (r *TodoRepository) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	res, err := r.pool.Exec(ctx, `
		DELETE FROM todos
		WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

var _ repository.TodoRepository = (*TodoRepository)(nil)
