package memory

import (
	"context"
	"slices"

	"animal-shelter/internal/domain/audit"
	"animal-shelter/internal/domain/intakes"
	"animal-shelter/internal/domain/outcomes"
)

func (v *view) CreateIntake(ctx context.Context, in intakes.Intake) error {
	st, done := v.begin()
	defer done()

	st.intakes = append(st.intakes, in)
	return nil
}

// ListIntakesByAnimal, más reciente primero.
func (v *view) ListIntakesByAnimal(ctx context.Context, animalID string) ([]intakes.Intake, error) {
	st, done := v.begin()
	defer done()

	out := make([]intakes.Intake, 0)
	for _, in := range st.intakes {
		if in.AnimalID == animalID {
			out = append(out, in)
		}
	}
	slices.SortStableFunc(out, func(x, y intakes.Intake) int { return y.IntakeDate.Compare(x.IntakeDate) })
	return out, nil
}

func (v *view) CreateOutcome(ctx context.Context, o outcomes.Outcome) error {
	st, done := v.begin()
	defer done()

	st.outcomes = append(st.outcomes, o)
	return nil
}

func (v *view) ListOutcomesByAnimal(ctx context.Context, animalID string) ([]outcomes.Outcome, error) {
	st, done := v.begin()
	defer done()

	out := make([]outcomes.Outcome, 0)
	for _, o := range st.outcomes {
		if o.AnimalID == animalID {
			out = append(out, o)
		}
	}
	slices.SortStableFunc(out, func(x, y outcomes.Outcome) int { return y.OccurredAt.Compare(x.OccurredAt) })
	return out, nil
}

func (v *view) AppendAuditEntry(ctx context.Context, e audit.Entry) error {
	st, done := v.begin()
	defer done()

	st.audit = append(st.audit, e)
	return nil
}

func (v *view) ListAuditEntries(ctx context.Context, animalID string) ([]audit.Entry, error) {
	st, done := v.begin()
	defer done()

	out := make([]audit.Entry, 0)
	for i := len(st.audit) - 1; i >= 0; i-- {
		if st.audit[i].AnimalID == animalID {
			out = append(out, st.audit[i])
		}
	}
	return out, nil
}
