package memory

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"animal-shelter/internal/apperr"
	"animal-shelter/internal/domain/animals"
	"animal-shelter/internal/platform/paging"
)

func (v *view) CreateAnimal(ctx context.Context, a animals.Animal) error {
	st, done := v.begin()
	defer done()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("animal id required")
	}
	if _, exists := st.animals[a.ID]; exists {
		return errors.New("animal already exists")
	}
	st.animals[a.ID] = a
	return nil
}

func (v *view) UpdateAnimal(ctx context.Context, a animals.Animal) error {
	st, done := v.begin()
	defer done()

	cur, ok := live(st, a.ID)
	if !ok {
		return apperr.ErrRecordNotFound
	}
	// el estado de publicación solo cambia por update condicional
	a.ListingStatus = cur.ListingStatus
	a.ArchiveReason = cur.ArchiveReason
	a.DeletedAt = cur.DeletedAt
	st.animals[a.ID] = a
	return nil
}

func (v *view) GetAnimal(ctx context.Context, id string) (animals.Animal, error) {
	st, done := v.begin()
	defer done()

	a, ok := live(st, id)
	if !ok {
		return animals.Animal{}, apperr.ErrRecordNotFound
	}
	return a, nil
}

// LockAnimal es GetAnimal: la tx en memoria ya es exclusiva.
func (v *view) LockAnimal(ctx context.Context, id string) (animals.Animal, error) {
	return v.GetAnimal(ctx, id)
}

func (v *view) ListAnimals(ctx context.Context, q animals.ListQuery) ([]animals.Animal, int, error) {
	st, done := v.begin()
	defer done()

	search := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]animals.Animal, 0)
	for _, a := range st.animals {
		if a.DeletedAt != nil {
			continue
		}
		if len(q.Statuses) > 0 && !slices.Contains(q.Statuses, a.ListingStatus) {
			continue
		}
		if q.SpeciesID != "" && a.SpeciesID != q.SpeciesID {
			continue
		}
		if q.Sex != "" && a.Sex != q.Sex {
			continue
		}
		if q.HealthStatus != "" && a.HealthStatus != q.HealthStatus {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(a.Name), search) &&
			!strings.Contains(strings.ToLower(a.Description), search) &&
			!strings.Contains(strings.ToLower(a.Location), search) {
			continue
		}
		out = append(out, a)
	}

	slices.SortFunc(out, func(x, y animals.Animal) int {
		var c int
		switch q.Sort {
		case animals.SortName:
			c = cmp.Compare(strings.ToLower(x.Name), strings.ToLower(y.Name))
		case animals.SortUpdatedAt:
			c = x.UpdatedAt.Compare(y.UpdatedAt)
		default:
			c = x.CreatedAt.Compare(y.CreatedAt)
		}
		if c == 0 {
			c = cmp.Compare(x.ID, y.ID)
		}
		if q.Desc {
			return -c
		}
		return c
	})

	return paging.Window(out, q.Paging), len(out), nil
}

func (v *view) ConditionalUpdateListingStatus(ctx context.Context, u animals.ListingUpdate) (bool, error) {
	st, done := v.begin()
	defer done()

	a, ok := live(st, u.AnimalID)
	if !ok || !slices.Contains(u.From, a.ListingStatus) {
		return false, nil
	}
	a.ListingStatus = u.To
	a.ArchiveReason = u.ArchiveReason
	a.UpdatedAt = u.At
	st.animals[a.ID] = a
	return true, nil
}

func (v *view) SoftDeleteAnimal(ctx context.Context, id string, from []animals.ListingStatus, at time.Time) (bool, error) {
	st, done := v.begin()
	defer done()

	a, ok := live(st, id)
	if !ok || !slices.Contains(from, a.ListingStatus) {
		return false, nil
	}
	a.DeletedAt = &at
	a.UpdatedAt = at
	st.animals[a.ID] = a
	return true, nil
}

func (v *view) AddLike(ctx context.Context, l animals.Like) error {
	st, done := v.begin()
	defer done()

	byUser, ok := st.likes[l.AnimalID]
	if !ok {
		byUser = make(map[string]animals.Like)
		st.likes[l.AnimalID] = byUser
	}
	if _, exists := byUser[l.UserID]; !exists {
		byUser[l.UserID] = l
	}
	return nil
}

func (v *view) RemoveLike(ctx context.Context, animalID, userID string) error {
	st, done := v.begin()
	defer done()

	delete(st.likes[animalID], userID)
	return nil
}

// ListLikedAnimals devuelve los likes vigentes, el más reciente primero.
func (v *view) ListLikedAnimals(ctx context.Context, userID string) ([]animals.Animal, error) {
	st, done := v.begin()
	defer done()

	type liked struct {
		a  animals.Animal
		at time.Time
	}
	rows := make([]liked, 0)
	for animalID, byUser := range st.likes {
		l, ok := byUser[userID]
		if !ok {
			continue
		}
		a, ok := live(st, animalID)
		if !ok {
			continue
		}
		rows = append(rows, liked{a: a, at: l.CreatedAt})
	}
	slices.SortFunc(rows, func(x, y liked) int { return y.at.Compare(x.at) })

	out := make([]animals.Animal, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.a)
	}
	return out, nil
}

func live(st *state, id string) (animals.Animal, bool) {
	a, ok := st.animals[id]
	if !ok || a.DeletedAt != nil {
		return animals.Animal{}, false
	}
	return a, true
}
