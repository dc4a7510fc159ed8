package animals

import (
	"time"

	"animal-shelter/internal/platform/paging"
)

// Sex
// @Enum MALE, FEMALE, UNKNOWN
type Sex string

const (
	SexMale    Sex = "MALE"
	SexFemale  Sex = "FEMALE"
	SexUnknown Sex = "UNKNOWN"
)

func (s Sex) Valid() bool {
	return s == SexMale || s == SexFemale || s == SexUnknown
}

// HealthStatus
// @Enum HEALTHY, UNDER_TREATMENT, SPECIAL_NEEDS, CRITICAL
type HealthStatus string

const (
	HealthHealthy        HealthStatus = "HEALTHY"
	HealthUnderTreatment HealthStatus = "UNDER_TREATMENT"
	HealthSpecialNeeds   HealthStatus = "SPECIAL_NEEDS"
	HealthCritical       HealthStatus = "CRITICAL"
)

func (h HealthStatus) Valid() bool {
	switch h {
	case HealthHealthy, HealthUnderTreatment, HealthSpecialNeeds, HealthCritical:
		return true
	default:
		return false
	}
}

// ListingStatus es la disponibilidad para adopción.
//
//	DRAFT -> PUBLISHED (publish) -> PENDING_ADOPTION (solicitud primaria aprobada)
//	cualquiera salvo ARCHIVED -> ARCHIVED (outcome)
//	ARCHIVED -> DRAFT (re-intake)
type ListingStatus string

const (
	ListingDraft           ListingStatus = "DRAFT"
	ListingPublished       ListingStatus = "PUBLISHED"
	ListingPendingAdoption ListingStatus = "PENDING_ADOPTION"
	ListingArchived        ListingStatus = "ARCHIVED"
)

func (s ListingStatus) Valid() bool {
	switch s {
	case ListingDraft, ListingPublished, ListingPendingAdoption, ListingArchived:
		return true
	default:
		return false
	}
}

// AcceptsApplications: solo los animales listados reciben likes y solicitudes.
func (s ListingStatus) AcceptsApplications() bool {
	return s == ListingPublished || s == ListingPendingAdoption
}

// ListedStatuses son los visibles en el catálogo público.
var ListedStatuses = []ListingStatus{ListingPublished, ListingPendingAdoption}

// NotArchived son los estados desde los que se puede archivar.
var NotArchived = []ListingStatus{ListingDraft, ListingPublished, ListingPendingAdoption}

// ArchiveReason solo tiene valor cuando ListingStatus == ARCHIVED.
type ArchiveReason string

const (
	ArchiveNone            ArchiveReason = ""
	ArchiveAdopted         ArchiveReason = "ADOPTED"
	ArchiveTransferred     ArchiveReason = "TRANSFERRED"
	ArchiveReturnedToOwner ArchiveReason = "RETURNED_TO_OWNER"
	ArchiveDeceased        ArchiveReason = "DECEASED"
)

// Animal es el perfil de un animal del refugio.
type Animal struct {
	ID   string
	Name string

	SpeciesID string
	BreedID   string // opcional
	ColorID   string // opcional

	Sex          Sex
	BirthDate    *time.Time
	WeightKg     *float64
	HeightCm     *float64
	HealthStatus HealthStatus

	ListingStatus ListingStatus
	ArchiveReason ArchiveReason

	Location    string
	Description string

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// Like de un usuario a un animal listado. (animal, usuario) es único.
type Like struct {
	AnimalID  string
	UserID    string
	CreatedAt time.Time
}

// Tag es una característica asignada, tal como la ve el catálogo público.
type Tag struct {
	ID       string
	Name     string
	Category string
}

// ListingUpdate describe un update condicional de listing_status:
// solo aplica si el estado guardado está en From.
type ListingUpdate struct {
	AnimalID      string
	From          []ListingStatus
	To            ListingStatus
	ArchiveReason ArchiveReason
	At            time.Time
}

type SortField string

const (
	SortName      SortField = "name"
	SortCreatedAt SortField = "created_at"
	SortUpdatedAt SortField = "updated_at"
)

func ParseSortField(s string) SortField {
	switch SortField(s) {
	case SortName, SortUpdatedAt:
		return SortField(s)
	default:
		return SortCreatedAt
	}
}

// ListQuery son los filtros del listado (staff y público).
type ListQuery struct {
	Statuses     []ListingStatus
	SpeciesID    string
	Sex          Sex
	HealthStatus HealthStatus
	Search       string // nombre, ubicación o descripción (contains, case-insensitive)
	Sort         SortField
	Desc         bool
	Paging       paging.Params
}
