package assessments

import "time"

type Kind string

const (
	KindBehavior    Kind = "BEHAVIOR"
	KindMedical     Kind = "MEDICAL"
	KindTemperament Kind = "TEMPERAMENT"
)

func (k Kind) Valid() bool {
	return k == KindBehavior || k == KindMedical || k == KindTemperament
}

const (
	MinScore = 1
	MaxScore = 5
)

type Assessment struct {
	ID         string
	AnimalID   string
	Kind       Kind
	Score      int
	Summary    string
	Details    string
	AssessedAt time.Time
	AssessedBy string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time
}
