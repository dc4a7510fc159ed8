package audit

import (
	"time"

	"github.com/google/uuid"
)

type EntityType string

const (
	EntityIntake  EntityType = "INTAKE"
	EntityOutcome EntityType = "OUTCOME"
)

type Action string

const (
	ActionIntakeRecorded  Action = "INTAKE_RECORDED"
	ActionReintake        Action = "REINTAKE"
	ActionOutcomeRecorded Action = "OUTCOME_RECORDED"
)

// Entry es una línea del registro de actividad de un animal.
// Se escribe dentro de la misma transacción que el cambio que describe.
type Entry struct {
	ID         string
	AnimalID   string
	EntityType EntityType
	EntityID   string
	Action     Action
	ActorID    string
	Details    map[string]string
	CreatedAt  time.Time
}

func NewEntry(animalID string, et EntityType, entityID string, action Action, actor string, details map[string]string, at time.Time) Entry {
	if details == nil {
		details = map[string]string{}
	}
	return Entry{
		ID:         uuid.NewString(),
		AnimalID:   animalID,
		EntityType: et,
		EntityID:   entityID,
		Action:     action,
		ActorID:    actor,
		Details:    details,
		CreatedAt:  at,
	}
}
