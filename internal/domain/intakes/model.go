package intakes

import "time"

// Type es cómo entró el animal al refugio.
type Type string

const (
	TypeStray      Type = "STRAY"
	TypeSurrender  Type = "SURRENDER"
	TypeTransfer   Type = "TRANSFER"
	TypeReturn     Type = "RETURN"
	TypeBornInCare Type = "BORN_IN_CARE"
	TypeSeized     Type = "SEIZED"
)

func (t Type) Valid() bool {
	switch t {
	case TypeStray, TypeSurrender, TypeTransfer, TypeReturn, TypeBornInCare, TypeSeized:
		return true
	default:
		return false
	}
}

type Intake struct {
	ID         string
	AnimalID   string
	Type       Type
	IntakeDate time.Time
	Source     string
	Contact    string
	Notes      string
	RecordedBy string
	CreatedAt  time.Time
}
