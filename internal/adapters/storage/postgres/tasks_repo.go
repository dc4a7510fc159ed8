package postgres

import (
	"context"
	"database/sql"
	"errors"

	"animal-shelter/internal/apperr"
	"animal-shelter/internal/domain/tasks"
)

type TasksRepo struct {
	db *sql.DB
}

func NewTasksRepo(db *sql.DB) *TasksRepo {
	return &TasksRepo{db: db}
}

const taskColumns = `
	id, animal_id, title, description,
	status, priority, assignee_id, due_date,
	created_by, completed_at,
	created_at, updated_at, deleted_at`

func scanTask(row scanner) (tasks.Task, error) {
	var (
		t                       tasks.Task
		animalID                sql.NullString
		due, completed, deleted sql.NullTime
	)
	if err := row.Scan(
		&t.ID,
		&animalID,
		&t.Title,
		&t.Description,
		&t.Status,
		&t.Priority,
		&t.AssigneeID,
		&due,
		&t.CreatedBy,
		&completed,
		&t.CreatedAt,
		&t.UpdatedAt,
		&deleted,
	); err != nil {
		return tasks.Task{}, err
	}
	t.AnimalID = animalID.String
	t.DueDate = fromNullTime(due)
	t.CompletedAt = fromNullTime(completed)
	t.DeletedAt = fromNullTime(deleted)
	return t, nil
}

func (r *TasksRepo) Create(ctx context.Context, t tasks.Task) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (`+taskColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		t.ID,
		toNullString(t.AnimalID),
		t.Title,
		t.Description,
		t.Status,
		t.Priority,
		t.AssigneeID,
		toNullTime(t.DueDate),
		t.CreatedBy,
		toNullTime(t.CompletedAt),
		t.CreatedAt,
		t.UpdatedAt,
		toNullTime(t.DeletedAt),
	)
	return err
}

// Update también persiste deleted_at (soft delete).
func (r *TasksRepo) Update(ctx context.Context, t tasks.Task) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET
			animal_id = $2,
			title = $3,
			description = $4,
			status = $5,
			priority = $6,
			assignee_id = $7,
			due_date = $8,
			completed_at = $9,
			updated_at = $10,
			deleted_at = $11
		WHERE id = $1 AND deleted_at IS NULL
	`,
		t.ID,
		toNullString(t.AnimalID),
		t.Title,
		t.Description,
		t.Status,
		t.Priority,
		t.AssigneeID,
		toNullTime(t.DueDate),
		toNullTime(t.CompletedAt),
		t.UpdatedAt,
		toNullTime(t.DeletedAt),
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return apperr.ErrRecordNotFound
	}
	return nil
}

func (r *TasksRepo) GetByID(ctx context.Context, id string) (tasks.Task, error) {
	t, err := scanTask(r.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1 AND deleted_at IS NULL`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return tasks.Task{}, apperr.ErrRecordNotFound
		}
		return tasks.Task{}, err
	}
	return t, nil
}

func (r *TasksRepo) List(ctx context.Context, f tasks.Filter) ([]tasks.Task, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE deleted_at IS NULL
			AND ($1 = '' OR animal_id = $1)
			AND ($2 = '' OR status = $2)
			AND ($3 = '' OR assignee_id = $3)
		ORDER BY due_date ASC NULLS LAST, created_at ASC
	`, f.AnimalID, string(f.Status), f.AssigneeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]tasks.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
