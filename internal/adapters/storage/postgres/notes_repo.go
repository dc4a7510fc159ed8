package postgres

import (
	"context"
	"database/sql"
	"errors"

	"animal-shelter/internal/apperr"
	"animal-shelter/internal/domain/notes"
)

type NotesRepo struct {
	db *sql.DB
}

func NewNotesRepo(db *sql.DB) *NotesRepo {
	return &NotesRepo{db: db}
}

func (r *NotesRepo) Create(ctx context.Context, n notes.Note) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notes (id, animal_id, author_id, body, created_at, updated_at, deleted_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		n.ID,
		n.AnimalID,
		n.AuthorID,
		n.Body,
		n.CreatedAt,
		n.UpdatedAt,
		toNullTime(n.DeletedAt),
	)
	return err
}

func (r *NotesRepo) Update(ctx context.Context, n notes.Note) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE notes
		SET body = $2, updated_at = $3, deleted_at = $4
		WHERE id = $1 AND deleted_at IS NULL
	`, n.ID, n.Body, n.UpdatedAt, toNullTime(n.DeletedAt))
	if err != nil {
		return err
	}
	c, _ := res.RowsAffected()
	if c == 0 {
		return apperr.ErrRecordNotFound
	}
	return nil
}

func (r *NotesRepo) GetByID(ctx context.Context, id string) (notes.Note, error) {
	var n notes.Note
	err := r.db.QueryRowContext(ctx, `
		SELECT id, animal_id, author_id, body, created_at, updated_at
		FROM notes
		WHERE id = $1 AND deleted_at IS NULL
	`, id).Scan(&n.ID, &n.AnimalID, &n.AuthorID, &n.Body, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return notes.Note{}, apperr.ErrRecordNotFound
		}
		return notes.Note{}, err
	}
	return n, nil
}

func (r *NotesRepo) ListByAnimal(ctx context.Context, animalID string) ([]notes.Note, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, animal_id, author_id, body, created_at, updated_at
		FROM notes
		WHERE animal_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC, id DESC
	`, animalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]notes.Note, 0)
	for rows.Next() {
		var n notes.Note
		if err := rows.Scan(&n.ID, &n.AnimalID, &n.AuthorID, &n.Body, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
