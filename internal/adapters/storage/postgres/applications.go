package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"animal-shelter/internal/apperr"
	"animal-shelter/internal/domain/animals"
	"animal-shelter/internal/domain/applications"
)

const applicationColumns = `
	id, animal_id, applicant_id,
	full_name, email, phone, address, housing_type, has_yard,
	other_pets, experience, message,
	status, is_primary, submitted_at, internal_notes,
	status_reason, status_changed_by, status_changed_at,
	created_at, updated_at`

func scanApplication(row scanner) (applications.Application, error) {
	var (
		a         applications.Application
		changedAt sql.NullTime
	)
	if err := row.Scan(
		&a.ID,
		&a.AnimalID,
		&a.ApplicantID,
		&a.Profile.FullName,
		&a.Profile.Email,
		&a.Profile.Phone,
		&a.Profile.Address,
		&a.Profile.HousingType,
		&a.Profile.HasYard,
		&a.Profile.OtherPets,
		&a.Profile.Experience,
		&a.Profile.Message,
		&a.Status,
		&a.IsPrimary,
		&a.SubmittedAt,
		&a.InternalNotes,
		&a.StatusReason,
		&a.StatusChangedBy,
		&changedAt,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return applications.Application{}, err
	}
	a.StatusChangedAt = fromNullTime(changedAt)
	return a, nil
}

func (q *Queries) CreateApplication(ctx context.Context, a applications.Application) error {
	_, err := q.q.ExecContext(ctx, `
		INSERT INTO adoption_applications (`+applicationColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)
	`,
		a.ID,
		a.AnimalID,
		a.ApplicantID,
		a.Profile.FullName,
		a.Profile.Email,
		a.Profile.Phone,
		a.Profile.Address,
		a.Profile.HousingType,
		a.Profile.HasYard,
		a.Profile.OtherPets,
		a.Profile.Experience,
		a.Profile.Message,
		a.Status,
		a.IsPrimary,
		a.SubmittedAt,
		a.InternalNotes,
		a.StatusReason,
		a.StatusChangedBy,
		toNullTime(a.StatusChangedAt),
		a.CreatedAt,
		a.UpdatedAt,
	)
	return err
}

func (q *Queries) UpdateApplication(ctx context.Context, a applications.Application) error {
	res, err := q.q.ExecContext(ctx, `
		UPDATE adoption_applications
		SET
			full_name = $2,
			email = $3,
			phone = $4,
			address = $5,
			housing_type = $6,
			has_yard = $7,
			other_pets = $8,
			experience = $9,
			message = $10,
			status = $11,
			is_primary = $12,
			internal_notes = $13,
			status_reason = $14,
			status_changed_by = $15,
			status_changed_at = $16,
			updated_at = $17
		WHERE id = $1
	`,
		a.ID,
		a.Profile.FullName,
		a.Profile.Email,
		a.Profile.Phone,
		a.Profile.Address,
		a.Profile.HousingType,
		a.Profile.HasYard,
		a.Profile.OtherPets,
		a.Profile.Experience,
		a.Profile.Message,
		a.Status,
		a.IsPrimary,
		a.InternalNotes,
		a.StatusReason,
		a.StatusChangedBy,
		toNullTime(a.StatusChangedAt),
		a.UpdatedAt,
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

func (q *Queries) GetApplication(ctx context.Context, id string) (applications.Application, error) {
	return q.getApplication(ctx, id, false)
}

func (q *Queries) getApplication(ctx context.Context, id string, forUpdate bool) (applications.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM adoption_applications WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	a, err := scanApplication(q.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return applications.Application{}, apperr.ErrRecordNotFound
		}
		return applications.Application{}, err
	}
	return a, nil
}

// LockApplicationWithAnimal: animal primero, solicitud después.
// El animal_id no cambia nunca, así que leerlo sin lock es seguro.
func (q *Queries) LockApplicationWithAnimal(ctx context.Context, id string) (applications.Application, animals.Animal, error) {
	var animalID string
	err := q.q.QueryRowContext(ctx, `SELECT animal_id FROM adoption_applications WHERE id = $1`, id).Scan(&animalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return applications.Application{}, animals.Animal{}, apperr.ErrRecordNotFound
		}
		return applications.Application{}, animals.Animal{}, err
	}

	an, err := q.LockAnimal(ctx, animalID)
	if err != nil {
		return applications.Application{}, animals.Animal{}, err
	}
	a, err := q.getApplication(ctx, id, true)
	if err != nil {
		return applications.Application{}, animals.Animal{}, err
	}
	return a, an, nil
}

func (q *Queries) ListOpenApplicationsByAnimal(ctx context.Context, animalID string) ([]applications.Application, error) {
	rows, err := q.q.QueryContext(ctx, `
		SELECT `+applicationColumns+`
		FROM adoption_applications
		WHERE animal_id = $1 AND status = ANY($2)
		ORDER BY submitted_at, id
		FOR UPDATE
	`, animalID, textArray(applications.OpenStatuses))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectApplications(rows)
}

var applicationSortColumns = map[applications.SortField]string{
	applications.SortSubmittedAt: "submitted_at",
	applications.SortUpdatedAt:   "updated_at",
	applications.SortStatus:      "status",
}

func (q *Queries) ListApplications(ctx context.Context, lq applications.ListQuery) ([]applications.Application, int, error) {
	var (
		where = []string{"TRUE"}
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if len(lq.Statuses) > 0 {
		where = append(where, "status = ANY("+arg(textArray(lq.Statuses))+")")
	}
	if lq.AnimalID != "" {
		where = append(where, "animal_id = "+arg(lq.AnimalID))
	}
	if lq.ApplicantID != "" {
		where = append(where, "applicant_id = "+arg(lq.ApplicantID))
	}
	if s := strings.TrimSpace(lq.Search); s != "" {
		p := arg("%" + strings.ToLower(s) + "%")
		where = append(where, "(lower(full_name) LIKE "+p+" OR lower(email) LIKE "+p+")")
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := q.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM adoption_applications WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	col, ok := applicationSortColumns[lq.Sort]
	if !ok {
		col = "submitted_at"
	}
	dir := "ASC"
	if lq.Desc {
		dir = "DESC"
	}
	query := `SELECT ` + applicationColumns + ` FROM adoption_applications WHERE ` + cond +
		` ORDER BY ` + col + ` ` + dir + `, id ` + dir +
		` LIMIT ` + arg(lq.Paging.Limit()) + ` OFFSET ` + arg(lq.Paging.Offset())

	rows, err := q.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out, err := collectApplications(rows)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func collectApplications(rows *sql.Rows) ([]applications.Application, error) {
	out := make([]applications.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (q *Queries) AppendStatusHistory(ctx context.Context, h applications.StatusHistory) error {
	_, err := q.q.ExecContext(ctx, `
		INSERT INTO application_status_history (
			id, application_id,
			from_status, to_status, reason, changed_by, changed_at,
			previous_reason, previous_changed_by, previous_changed_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		h.ID,
		h.ApplicationID,
		h.FromStatus,
		h.ToStatus,
		h.Reason,
		h.ChangedBy,
		h.ChangedAt,
		h.PreviousReason,
		h.PreviousChangedBy,
		toNullTime(h.PreviousChangedAt),
	)
	return err
}

func (q *Queries) ListStatusHistory(ctx context.Context, applicationID string) ([]applications.StatusHistory, error) {
	rows, err := q.q.QueryContext(ctx, `
		SELECT
			id, application_id,
			from_status, to_status, reason, changed_by, changed_at,
			previous_reason, previous_changed_by, previous_changed_at
		FROM application_status_history
		WHERE application_id = $1
		ORDER BY changed_at, id
	`, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]applications.StatusHistory, 0)
	for rows.Next() {
		var (
			h    applications.StatusHistory
			prev sql.NullTime
		)
		if err := rows.Scan(
			&h.ID,
			&h.ApplicationID,
			&h.FromStatus,
			&h.ToStatus,
			&h.Reason,
			&h.ChangedBy,
			&h.ChangedAt,
			&h.PreviousReason,
			&h.PreviousChangedBy,
			&prev,
		); err != nil {
			return nil, err
		}
		h.PreviousChangedAt = fromNullTime(prev)
		out = append(out, h)
	}
	return out, rows.Err()
}
