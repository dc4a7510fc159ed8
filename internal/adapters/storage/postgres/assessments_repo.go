package postgres

import (
	"context"
	"database/sql"
	"errors"

	"animal-shelter/internal/apperr"
	"animal-shelter/internal/domain/assessments"
)

type AssessmentsRepo struct {
	db *sql.DB
}

func NewAssessmentsRepo(db *sql.DB) *AssessmentsRepo {
	return &AssessmentsRepo{db: db}
}

const assessmentColumns = `
	id, animal_id, kind, score, summary, details,
	assessed_at, assessed_by, created_at, updated_at`

func scanAssessment(row scanner) (assessments.Assessment, error) {
	var a assessments.Assessment
	err := row.Scan(
		&a.ID,
		&a.AnimalID,
		&a.Kind,
		&a.Score,
		&a.Summary,
		&a.Details,
		&a.AssessedAt,
		&a.AssessedBy,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}

func (r *AssessmentsRepo) Create(ctx context.Context, a assessments.Assessment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO assessments (`+assessmentColumns+`, deleted_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		a.ID,
		a.AnimalID,
		a.Kind,
		a.Score,
		a.Summary,
		a.Details,
		a.AssessedAt,
		a.AssessedBy,
		a.CreatedAt,
		a.UpdatedAt,
		toNullTime(a.DeletedAt),
	)
	return err
}

func (r *AssessmentsRepo) Update(ctx context.Context, a assessments.Assessment) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE assessments
		SET
			kind = $2,
			score = $3,
			summary = $4,
			details = $5,
			assessed_at = $6,
			updated_at = $7,
			deleted_at = $8
		WHERE id = $1 AND deleted_at IS NULL
	`,
		a.ID,
		a.Kind,
		a.Score,
		a.Summary,
		a.Details,
		a.AssessedAt,
		a.UpdatedAt,
		toNullTime(a.DeletedAt),
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

func (r *AssessmentsRepo) GetByID(ctx context.Context, id string) (assessments.Assessment, error) {
	a, err := scanAssessment(r.db.QueryRowContext(ctx,
		`SELECT `+assessmentColumns+` FROM assessments WHERE id = $1 AND deleted_at IS NULL`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return assessments.Assessment{}, apperr.ErrRecordNotFound
		}
		return assessments.Assessment{}, err
	}
	return a, nil
}

func (r *AssessmentsRepo) ListByAnimal(ctx context.Context, animalID string, kind assessments.Kind) ([]assessments.Assessment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+assessmentColumns+`
		FROM assessments
		WHERE animal_id = $1
			AND deleted_at IS NULL
			AND ($2 = '' OR kind = $2)
		ORDER BY assessed_at DESC, id DESC
	`, animalID, string(kind))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]assessments.Assessment, 0)
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
