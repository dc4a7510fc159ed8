package references

import "time"

// Kind del catálogo de referencia.
// @Enum SPECIES, BREED, COLOR
type Kind string

const (
	KindSpecies Kind = "SPECIES"
	KindBreed   Kind = "BREED"
	KindColor   Kind = "COLOR"
)

func (k Kind) Valid() bool {
	switch k {
	case KindSpecies, KindBreed, KindColor:
		return true
	default:
		return false
	}
}

// Reference es una entrada del catálogo (especie, raza o color).
// Una raza siempre cuelga de una especie (ParentID).
type Reference struct {
	ID        string
	Kind      Kind
	Name      string
	ParentID  string
	CreatedAt time.Time
}
