package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"animal-shelter/internal/domain/audit"
	"animal-shelter/internal/domain/intakes"
	"animal-shelter/internal/domain/outcomes"
)

func (q *Queries) CreateIntake(ctx context.Context, in intakes.Intake) error {
	_, err := q.q.ExecContext(ctx, `
		INSERT INTO intakes (
			id, animal_id, type, intake_date,
			source, contact, notes,
			recorded_by, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		in.ID,
		in.AnimalID,
		in.Type,
		in.IntakeDate,
		in.Source,
		in.Contact,
		in.Notes,
		in.RecordedBy,
		in.CreatedAt,
	)
	return err
}

func (q *Queries) ListIntakesByAnimal(ctx context.Context, animalID string) ([]intakes.Intake, error) {
	rows, err := q.q.QueryContext(ctx, `
		SELECT
			id, animal_id, type, intake_date,
			source, contact, notes,
			recorded_by, created_at
		FROM intakes
		WHERE animal_id = $1
		ORDER BY intake_date DESC, created_at DESC
	`, animalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]intakes.Intake, 0)
	for rows.Next() {
		var in intakes.Intake
		if err := rows.Scan(
			&in.ID,
			&in.AnimalID,
			&in.Type,
			&in.IntakeDate,
			&in.Source,
			&in.Contact,
			&in.Notes,
			&in.RecordedBy,
			&in.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

func (q *Queries) CreateOutcome(ctx context.Context, o outcomes.Outcome) error {
	_, err := q.q.ExecContext(ctx, `
		INSERT INTO outcomes (
			id, animal_id, type, occurred_at,
			application_id, destination, notes,
			recorded_by, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		o.ID,
		o.AnimalID,
		o.Type,
		o.OccurredAt,
		toNullString(o.ApplicationID),
		o.Destination,
		o.Notes,
		o.RecordedBy,
		o.CreatedAt,
	)
	return err
}

func (q *Queries) ListOutcomesByAnimal(ctx context.Context, animalID string) ([]outcomes.Outcome, error) {
	rows, err := q.q.QueryContext(ctx, `
		SELECT
			id, animal_id, type, occurred_at,
			application_id, destination, notes,
			recorded_by, created_at
		FROM outcomes
		WHERE animal_id = $1
		ORDER BY occurred_at DESC, created_at DESC
	`, animalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]outcomes.Outcome, 0)
	for rows.Next() {
		var (
			o     outcomes.Outcome
			appID sql.NullString
		)
		if err := rows.Scan(
			&o.ID,
			&o.AnimalID,
			&o.Type,
			&o.OccurredAt,
			&appID,
			&o.Destination,
			&o.Notes,
			&o.RecordedBy,
			&o.CreatedAt,
		); err != nil {
			return nil, err
		}
		o.ApplicationID = appID.String
		out = append(out, o)
	}
	return out, rows.Err()
}

func (q *Queries) AppendAuditEntry(ctx context.Context, e audit.Entry) error {
	details, err := json.Marshal(e.Details)
	if err != nil {
		return err
	}
	_, err = q.q.ExecContext(ctx, `
		INSERT INTO audit_entries (
			id, animal_id, entity_type, entity_id,
			action, actor_id, details, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		e.ID,
		e.AnimalID,
		e.EntityType,
		e.EntityID,
		e.Action,
		e.ActorID,
		string(details),
		e.CreatedAt,
	)
	return err
}

func (q *Queries) ListAuditEntries(ctx context.Context, animalID string) ([]audit.Entry, error) {
	rows, err := q.q.QueryContext(ctx, `
		SELECT
			id, animal_id, entity_type, entity_id,
			action, actor_id, details, created_at
		FROM audit_entries
		WHERE animal_id = $1
		ORDER BY created_at DESC, id DESC
	`, animalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]audit.Entry, 0)
	for rows.Next() {
		var (
			e   audit.Entry
			raw []byte
		)
		if err := rows.Scan(
			&e.ID,
			&e.AnimalID,
			&e.EntityType,
			&e.EntityID,
			&e.Action,
			&e.ActorID,
			&raw,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}
		e.Details = map[string]string{}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &e.Details); err != nil {
				return nil, err
			}
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
