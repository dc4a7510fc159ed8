package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"animal-shelter/internal/apperr"
	"animal-shelter/internal/domain/references"
)

type ReferencesRepo struct {
	db *sql.DB
}

func NewReferencesRepo(db *sql.DB) *ReferencesRepo {
	return &ReferencesRepo{db: db}
}

func (r *ReferencesRepo) Create(ctx context.Context, ref references.Reference) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO refs (id, kind, name, parent_id, created_at)
		VALUES ($1,$2,$3,$4,$5)
	`,
		ref.ID,
		ref.Kind,
		ref.Name,
		toNullString(ref.ParentID),
		ref.CreatedAt,
	)
	return err
}

func (r *ReferencesRepo) GetByID(ctx context.Context, id string) (references.Reference, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return references.Reference{}, apperr.ErrRecordNotFound
	}

	var (
		ref    references.Reference
		parent sql.NullString
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, kind, name, parent_id, created_at
		FROM refs
		WHERE id = $1
	`, id).Scan(&ref.ID, &ref.Kind, &ref.Name, &parent, &ref.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return references.Reference{}, apperr.ErrRecordNotFound
		}
		return references.Reference{}, err
	}
	ref.ParentID = parent.String
	return ref, nil
}

func (r *ReferencesRepo) List(ctx context.Context, kind references.Kind, parentID string) ([]references.Reference, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, kind, name, parent_id, created_at
		FROM refs
		WHERE ($1 = '' OR kind = $1)
			AND ($2 = '' OR parent_id = $2)
		ORDER BY lower(name), id
	`, string(kind), parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]references.Reference, 0)
	for rows.Next() {
		var (
			ref    references.Reference
			parent sql.NullString
		)
		if err := rows.Scan(&ref.ID, &ref.Kind, &ref.Name, &parent, &ref.CreatedAt); err != nil {
			return nil, err
		}
		ref.ParentID = parent.String
		out = append(out, ref)
	}
	return out, rows.Err()
}
