package outcomes

import (
	"time"

	"animal-shelter/internal/domain/animals"
)

// Type de salida definitiva del refugio.
// @Enum ADOPTION, TRANSFER, RETURN_TO_OWNER, DECEASED
type Type string

const (
	TypeAdoption      Type = "ADOPTION"
	TypeTransfer      Type = "TRANSFER"
	TypeReturnToOwner Type = "RETURN_TO_OWNER"
	TypeDeceased      Type = "DECEASED"
)

func (t Type) Valid() bool {
	_, ok := archiveReasons[t]
	return ok
}

var archiveReasons = map[Type]animals.ArchiveReason{
	TypeAdoption:      animals.ArchiveAdopted,
	TypeTransfer:      animals.ArchiveTransferred,
	TypeReturnToOwner: animals.ArchiveReturnedToOwner,
	TypeDeceased:      animals.ArchiveDeceased,
}

// ArchiveReason es el motivo con el que queda archivado el animal.
func (t Type) ArchiveReason() animals.ArchiveReason {
	return archiveReasons[t]
}

type Outcome struct {
	ID            string
	AnimalID      string
	Type          Type
	OccurredAt    time.Time
	ApplicationID string // solo ADOPTION
	Destination   string
	Notes         string
	RecordedBy    string
	CreatedAt     time.Time
}
