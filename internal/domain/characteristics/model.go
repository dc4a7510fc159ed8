package characteristics

import "time"

// Characteristic es una etiqueta del catálogo ("bueno con gatos", "alta energía").
type Characteristic struct {
	ID          string
	Name        string
	Category    string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

type Assignment struct {
	AnimalID         string
	CharacteristicID string
	AssignedBy       string
	AssignedAt       time.Time
}
