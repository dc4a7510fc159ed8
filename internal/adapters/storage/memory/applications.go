package memory

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"strings"

	"animal-shelter/internal/apperr"
	"animal-shelter/internal/domain/animals"
	"animal-shelter/internal/domain/applications"
	"animal-shelter/internal/platform/paging"
)

func (v *view) CreateApplication(ctx context.Context, a applications.Application) error {
	st, done := v.begin()
	defer done()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("application id required")
	}
	if _, exists := st.applications[a.ID]; exists {
		return errors.New("application already exists")
	}
	st.applications[a.ID] = a
	return nil
}

func (v *view) UpdateApplication(ctx context.Context, a applications.Application) error {
	st, done := v.begin()
	defer done()

	if _, ok := st.applications[a.ID]; !ok {
		return apperr.ErrRecordNotFound
	}
	st.applications[a.ID] = a
	return nil
}

func (v *view) GetApplication(ctx context.Context, id string) (applications.Application, error) {
	st, done := v.begin()
	defer done()

	a, ok := st.applications[id]
	if !ok {
		return applications.Application{}, apperr.ErrRecordNotFound
	}
	return a, nil
}

func (v *view) LockApplicationWithAnimal(ctx context.Context, id string) (applications.Application, animals.Animal, error) {
	st, done := v.begin()
	defer done()

	a, ok := st.applications[id]
	if !ok {
		return applications.Application{}, animals.Animal{}, apperr.ErrRecordNotFound
	}
	an, ok := live(st, a.AnimalID)
	if !ok {
		return applications.Application{}, animals.Animal{}, apperr.ErrRecordNotFound
	}
	return a, an, nil
}

func (v *view) ListOpenApplicationsByAnimal(ctx context.Context, animalID string) ([]applications.Application, error) {
	st, done := v.begin()
	defer done()

	out := make([]applications.Application, 0)
	for _, a := range st.applications {
		if a.AnimalID == animalID && a.Status.Open() {
			out = append(out, a)
		}
	}
	slices.SortFunc(out, func(x, y applications.Application) int {
		return x.SubmittedAt.Compare(y.SubmittedAt)
	})
	return out, nil
}

func (v *view) ListApplications(ctx context.Context, q applications.ListQuery) ([]applications.Application, int, error) {
	st, done := v.begin()
	defer done()

	search := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]applications.Application, 0)
	for _, a := range st.applications {
		if len(q.Statuses) > 0 && !slices.Contains(q.Statuses, a.Status) {
			continue
		}
		if q.AnimalID != "" && a.AnimalID != q.AnimalID {
			continue
		}
		if q.ApplicantID != "" && a.ApplicantID != q.ApplicantID {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(a.Profile.FullName), search) &&
			!strings.Contains(strings.ToLower(a.Profile.Email), search) {
			continue
		}
		out = append(out, a)
	}

	slices.SortFunc(out, func(x, y applications.Application) int {
		var c int
		switch q.Sort {
		case applications.SortUpdatedAt:
			c = x.UpdatedAt.Compare(y.UpdatedAt)
		case applications.SortStatus:
			c = cmp.Compare(x.Status, y.Status)
		default:
			c = x.SubmittedAt.Compare(y.SubmittedAt)
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

func (v *view) AppendStatusHistory(ctx context.Context, h applications.StatusHistory) error {
	st, done := v.begin()
	defer done()

	st.history = append(st.history, h)
	return nil
}

// ListStatusHistory en orden de escritura (cronológico).
func (v *view) ListStatusHistory(ctx context.Context, applicationID string) ([]applications.StatusHistory, error) {
	st, done := v.begin()
	defer done()

	out := make([]applications.StatusHistory, 0)
	for _, h := range st.history {
		if h.ApplicationID == applicationID {
			out = append(out, h)
		}
	}
	return out, nil
}
