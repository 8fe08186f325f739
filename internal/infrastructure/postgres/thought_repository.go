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

type ThoughtRepository struct {
	pool *pgxpool.Pool
}

func NewThoughtRepository(pool *pgxpool.Pool) *ThoughtRepository {
	return &ThoughtRepository{pool: pool}
}

func (r *ThoughtRepository) Create(ctx context.Context, t *entity.Thought) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO thoughts (user_id, content)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`, t.UserID, t.Content)

	return row.Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *ThoughtRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Thought, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, content, created_at, updated_at
		FROM thoughts
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	thoughts := []entity.Thought{}
	for rows.Next() {
		var t entity.Thought
		if err := rows.Scan(&t.ID, &t.UserID, &t.Content, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		thoughts = append(thoughts, t)
	}
	return thoughts, rows.Err()
}

func (r *ThoughtRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*entity.Thought, error) {
	t := &entity.Thought{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, content, created_at, updated_at
		FROM thoughts
		WHERE id = $1 AND user_id = $2
	`, id, userID)

	if err := row.Scan(&t.ID, &t.UserID, &t.Content, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *ThoughtRepository) Update(ctx context.Context, t *entity.Thought) error {
	t.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE thoughts
		SET content = $1, updated_at = $2
		WHERE id = $3 AND user_id = $4
	`, t.Content, t.UpdatedAt, t.ID, t.UserID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return errNotFound
	}
	return nil
}

func (r *ThoughtRepository) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	res, err := r.pool.Exec(ctx, `
		DELETE FROM thoughts
		WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

var _ repository.ThoughtRepository = (*ThoughtRepository)(nil)
