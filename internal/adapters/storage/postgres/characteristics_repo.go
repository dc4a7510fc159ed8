package postgres

import (
	"context"
	"database/sql"
	"errors"

	"animal-shelter/internal/apperr"
	"animal-shelter/internal/domain/characteristics"
)

type CharacteristicsRepo struct {
	db *sql.DB
}

func NewCharacteristicsRepo(db *sql.DB) *CharacteristicsRepo {
	return &CharacteristicsRepo{db: db}
}

func scanCharacteristic(row scanner) (characteristics.Characteristic, error) {
	var c characteristics.Characteristic
	err := row.Scan(&c.ID, &c.Name, &c.Category, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *CharacteristicsRepo) Create(ctx context.Context, c characteristics.Characteristic) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO characteristics (id, name, category, description, created_at, updated_at, deleted_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		c.ID,
		c.Name,
		c.Category,
		c.Description,
		c.CreatedAt,
		c.UpdatedAt,
		toNullTime(c.DeletedAt),
	)
	return err
}

func (r *CharacteristicsRepo) Update(ctx context.Context, c characteristics.Characteristic) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE characteristics
		SET name = $2, category = $3, description = $4, updated_at = $5, deleted_at = $6
		WHERE id = $1 AND deleted_at IS NULL
	`, c.ID, c.Name, c.Category, c.Description, c.UpdatedAt, toNullTime(c.DeletedAt))
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return apperr.ErrRecordNotFound
	}
	return nil
}

func (r *CharacteristicsRepo) GetByID(ctx context.Context, id string) (characteristics.Characteristic, error) {
	c, err := scanCharacteristic(r.db.QueryRowContext(ctx, `
		SELECT id, name, category, description, created_at, updated_at
		FROM characteristics
		WHERE id = $1 AND deleted_at IS NULL
	`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return characteristics.Characteristic{}, apperr.ErrRecordNotFound
		}
		return characteristics.Characteristic{}, err
	}
	return c, nil
}

func (r *CharacteristicsRepo) List(ctx context.Context, category string) ([]characteristics.Characteristic, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, category, description, created_at, updated_at
		FROM characteristics
		WHERE deleted_at IS NULL AND ($1 = '' OR category = $1)
		ORDER BY category, lower(name)
	`, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCharacteristics(rows)
}

func (r *CharacteristicsRepo) Assign(ctx context.Context, a characteristics.Assignment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO animal_characteristics (animal_id, characteristic_id, assigned_by, assigned_at)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (animal_id, characteristic_id) DO NOTHING
	`, a.AnimalID, a.CharacteristicID, a.AssignedBy, a.AssignedAt)
	return err
}

func (r *CharacteristicsRepo) Unassign(ctx context.Context, animalID, characteristicID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM animal_characteristics
		WHERE animal_id = $1 AND characteristic_id = $2
	`, animalID, characteristicID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *CharacteristicsRepo) ListByAnimal(ctx context.Context, animalID string) ([]characteristics.Characteristic, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.id, c.name, c.category, c.description, c.created_at, c.updated_at
		FROM animal_characteristics ac
		JOIN characteristics c ON c.id = ac.characteristic_id
		WHERE ac.animal_id = $1 AND c.deleted_at IS NULL
		ORDER BY c.category, lower(c.name)
	`, animalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCharacteristics(rows)
}

func collectCharacteristics(rows *sql.Rows) ([]characteristics.Characteristic, error) {
	out := make([]characteristics.Characteristic, 0)
	for rows.Next() {
		c, err := scanCharacteristic(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
