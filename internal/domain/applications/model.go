package applications

import (
	"time"

	"animal-shelter/internal/platform/paging"
)

// Status de una solicitud de adopción.
// @Enum PENDING, REVIEWING, APPROVED, REJECTED, WITHDRAWN, ADOPTED
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusReviewing Status = "REVIEWING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusWithdrawn Status = "WITHDRAWN"
	StatusAdopted   Status = "ADOPTED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusReviewing, StatusApproved, StatusRejected, StatusWithdrawn, StatusAdopted:
		return true
	default:
		return false
	}
}

// Open: la solicitud sigue compitiendo por el animal.
func (s Status) Open() bool {
	return s == StatusPending || s == StatusReviewing || s == StatusApproved
}

var OpenStatuses = []Status{StatusPending, StatusReviewing, StatusApproved}

// Motivos que escribe el sistema en los rechazos automáticos.
const (
	ReasonAdoptedElsewhere     = "Animal was adopted through another application"
	ReasonNoLongerAvailable    = "Animal is no longer available"
	ReasonWithdrawnByApplicant = "Withdrawn by applicant"
)

// HousingType
// @Enum HOUSE, APARTMENT, FARM, OTHER
type HousingType string

const (
	HousingHouse     HousingType = "HOUSE"
	HousingApartment HousingType = "APARTMENT"
	HousingFarm      HousingType = "FARM"
	HousingOther     HousingType = "OTHER"
)

func (h HousingType) Valid() bool {
	switch h {
	case HousingHouse, HousingApartment, HousingFarm, HousingOther:
		return true
	default:
		return false
	}
}

// Profile son los datos que carga el solicitante.
type Profile struct {
	FullName    string
	Email       string
	Phone       string
	Address     string
	HousingType HousingType
	HasYard     bool
	OtherPets   string
	Experience  string
	Message     string
}

type Application struct {
	ID          string
	AnimalID    string
	ApplicantID string

	Profile Profile

	Status    Status
	IsPrimary bool

	SubmittedAt   time.Time
	InternalNotes string

	// Último cambio de estado (vacío mientras siga en PENDING original).
	StatusReason    string
	StatusChangedBy string
	StatusChangedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// StatusHistory es append-only: una fila por cambio de estado, nunca se edita.
// Guarda el motivo/actor/fecha nuevos y también los que tenía la solicitud antes.
type StatusHistory struct {
	ID            string
	ApplicationID string

	FromStatus Status
	ToStatus   Status
	Reason     string
	ChangedBy  string
	ChangedAt  time.Time

	PreviousReason    string
	PreviousChangedBy string
	PreviousChangedAt *time.Time
}

type SortField string

const (
	SortSubmittedAt SortField = "submitted_at"
	SortUpdatedAt   SortField = "updated_at"
	SortStatus      SortField = "status"
)

func ParseSortField(s string) SortField {
	switch SortField(s) {
	case SortUpdatedAt, SortStatus:
		return SortField(s)
	default:
		return SortSubmittedAt
	}
}

type ListQuery struct {
	Statuses    []Status
	AnimalID    string
	ApplicantID string
	Search      string // nombre o email del solicitante
	Sort        SortField
	Desc        bool
	Paging      paging.Params
}
