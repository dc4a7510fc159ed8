package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"animal-shelter/internal/apperr"
	"animal-shelter/internal/domain/animals"
)

const animalColumns = `
	id, name,
	species_id, breed_id, color_id,
	sex, birth_date, weight_kg, height_cm, health_status,
	listing_status, archive_reason,
	location, description,
	created_at, updated_at, deleted_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanAnimal(row scanner) (animals.Animal, error) {
	var (
		a             animals.Animal
		breed, color  sql.NullString
		bd, deletedAt sql.NullTime
		weight, hgt   sql.NullFloat64
	)
	if err := row.Scan(
		&a.ID,
		&a.Name,
		&a.SpeciesID,
		&breed,
		&color,
		&a.Sex,
		&bd,
		&weight,
		&hgt,
		&a.HealthStatus,
		&a.ListingStatus,
		&a.ArchiveReason,
		&a.Location,
		&a.Description,
		&a.CreatedAt,
		&a.UpdatedAt,
		&deletedAt,
	); err != nil {
		return animals.Animal{}, err
	}
	a.BreedID = breed.String
	a.ColorID = color.String
	a.BirthDate = fromNullTime(bd)
	a.WeightKg = fromNullFloat(weight)
	a.HeightCm = fromNullFloat(hgt)
	a.DeletedAt = fromNullTime(deletedAt)
	return a, nil
}

func (q *Queries) CreateAnimal(ctx context.Context, a animals.Animal) error {
	_, err := q.q.ExecContext(ctx, `
		INSERT INTO animals (`+animalColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
	`,
		a.ID,
		a.Name,
		a.SpeciesID,
		toNullString(a.BreedID),
		toNullString(a.ColorID),
		a.Sex,
		toNullTime(a.BirthDate),
		toNullFloat(a.WeightKg),
		toNullFloat(a.HeightCm),
		a.HealthStatus,
		a.ListingStatus,
		a.ArchiveReason,
		a.Location,
		a.Description,
		a.CreatedAt,
		a.UpdatedAt,
		toNullTime(a.DeletedAt),
	)
	return err
}

// UpdateAnimal no toca listing_status, archive_reason ni deleted_at.
func (q *Queries) UpdateAnimal(ctx context.Context, a animals.Animal) error {
	res, err := q.q.ExecContext(ctx, `
		UPDATE animals
		SET
			name = $2,
			species_id = $3,
			breed_id = $4,
			color_id = $5,
			sex = $6,
			birth_date = $7,
			weight_kg = $8,
			height_cm = $9,
			health_status = $10,
			location = $11,
			description = $12,
			updated_at = $13
		WHERE id = $1 AND deleted_at IS NULL
	`,
		a.ID,
		a.Name,
		a.SpeciesID,
		toNullString(a.BreedID),
		toNullString(a.ColorID),
		a.Sex,
		toNullTime(a.BirthDate),
		toNullFloat(a.WeightKg),
		toNullFloat(a.HeightCm),
		a.HealthStatus,
		a.Location,
		a.Description,
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

func (q *Queries) GetAnimal(ctx context.Context, id string) (animals.Animal, error) {
	return q.getAnimal(ctx, id, false)
}

// LockAnimal toma el lock de fila; fuera de una tx equivale a GetAnimal.
func (q *Queries) LockAnimal(ctx context.Context, id string) (animals.Animal, error) {
	return q.getAnimal(ctx, id, true)
}

func (q *Queries) getAnimal(ctx context.Context, id string, forUpdate bool) (animals.Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return animals.Animal{}, apperr.ErrRecordNotFound
	}
	query := `SELECT ` + animalColumns + ` FROM animals WHERE id = $1 AND deleted_at IS NULL`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	a, err := scanAnimal(q.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return animals.Animal{}, apperr.ErrRecordNotFound
		}
		return animals.Animal{}, err
	}
	return a, nil
}

var animalSortColumns = map[animals.SortField]string{
	animals.SortName:      "lower(name)",
	animals.SortCreatedAt: "created_at",
	animals.SortUpdatedAt: "updated_at",
}

func (q *Queries) ListAnimals(ctx context.Context, lq animals.ListQuery) ([]animals.Animal, int, error) {
	var (
		where = []string{"deleted_at IS NULL"}
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if len(lq.Statuses) > 0 {
		where = append(where, "listing_status = ANY("+arg(textArray(lq.Statuses))+")")
	}
	if lq.SpeciesID != "" {
		where = append(where, "species_id = "+arg(lq.SpeciesID))
	}
	if lq.Sex != "" {
		where = append(where, "sex = "+arg(string(lq.Sex)))
	}
	if lq.HealthStatus != "" {
		where = append(where, "health_status = "+arg(string(lq.HealthStatus)))
	}
	if s := strings.TrimSpace(lq.Search); s != "" {
		p := arg("%" + strings.ToLower(s) + "%")
		where = append(where, "(lower(name) LIKE "+p+" OR lower(description) LIKE "+p+" OR lower(location) LIKE "+p+")")
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := q.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM animals WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	col, ok := animalSortColumns[lq.Sort]
	if !ok {
		col = "created_at"
	}
	dir := "ASC"
	if lq.Desc {
		dir = "DESC"
	}
	query := `SELECT ` + animalColumns + ` FROM animals WHERE ` + cond +
		` ORDER BY ` + col + ` ` + dir + `, id ` + dir +
		` LIMIT ` + arg(lq.Paging.Limit()) + ` OFFSET ` + arg(lq.Paging.Offset())

	rows, err := q.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]animals.Animal, 0)
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, a)
	}
	return out, total, rows.Err()
}

// ConditionalUpdateListingStatus es el compare-and-set sobre listing_status.
func (q *Queries) ConditionalUpdateListingStatus(ctx context.Context, u animals.ListingUpdate) (bool, error) {
	res, err := q.q.ExecContext(ctx, `
		UPDATE animals
		SET
			listing_status = $2,
			archive_reason = $3,
			updated_at = $4
		WHERE id = $1
			AND deleted_at IS NULL
			AND listing_status = ANY($5)
	`,
		u.AnimalID,
		u.To,
		u.ArchiveReason,
		u.At,
		textArray(u.From),
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (q *Queries) SoftDeleteAnimal(ctx context.Context, id string, from []animals.ListingStatus, at time.Time) (bool, error) {
	res, err := q.q.ExecContext(ctx, `
		UPDATE animals
		SET deleted_at = $2, updated_at = $2
		WHERE id = $1
			AND deleted_at IS NULL
			AND listing_status = ANY($3)
	`, id, at, textArray(from))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (q *Queries) AddLike(ctx context.Context, l animals.Like) error {
	_, err := q.q.ExecContext(ctx, `
		INSERT INTO animal_likes (animal_id, user_id, created_at)
		VALUES ($1,$2,$3)
		ON CONFLICT (animal_id, user_id) DO NOTHING
	`, l.AnimalID, l.UserID, l.CreatedAt)
	return err
}

func (q *Queries) RemoveLike(ctx context.Context, animalID, userID string) error {
	_, err := q.q.ExecContext(ctx, `
		DELETE FROM animal_likes WHERE animal_id = $1 AND user_id = $2
	`, animalID, userID)
	return err
}

func (q *Queries) ListLikedAnimals(ctx context.Context, userID string) ([]animals.Animal, error) {
	rows, err := q.q.QueryContext(ctx, `
		SELECT `+prefixed("a", animalColumns)+`
		FROM animal_likes l
		JOIN animals a ON a.id = l.animal_id
		WHERE l.user_id = $1 AND a.deleted_at IS NULL
		ORDER BY l.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]animals.Animal, 0)
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// prefixed califica una lista de columnas con el alias de tabla.
func prefixed(alias, cols string) string {
	parts := strings.Split(cols, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}
