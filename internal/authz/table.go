package authz

import (
	"sort"
	"strings"
)

// Role del usuario autenticado. Lo resuelve el proveedor de identidad.
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleStaff     Role = "STAFF"
	RoleVolunteer Role = "VOLUNTEER"
	RoleAdopter   Role = "ADOPTER"
)

func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	switch r {
	case RoleAdmin, RoleStaff, RoleVolunteer, RoleAdopter:
		return r, true
	default:
		return "", false
	}
}

// Permission es un token "recurso:acción".
type Permission string

const (
	PermAnimalsRead          Permission = "animals:read"
	PermAnimalsWrite         Permission = "animals:write"
	PermAnimalsPublish       Permission = "animals:publish"
	PermAnimalsDelete        Permission = "animals:delete"
	PermIntakesRead          Permission = "intakes:read"
	PermIntakesWrite         Permission = "intakes:write"
	PermOutcomesRead         Permission = "outcomes:read"
	PermOutcomesWrite        Permission = "outcomes:write"
	PermApplicationsRead     Permission = "applications:read"
	PermApplicationsReview   Permission = "applications:review"
	PermTasksRead            Permission = "tasks:read"
	PermTasksWrite           Permission = "tasks:write"
	PermNotesRead            Permission = "notes:read"
	PermNotesWrite           Permission = "notes:write"
	PermAssessmentsRead      Permission = "assessments:read"
	PermAssessmentsWrite     Permission = "assessments:write"
	PermCharacteristicsRead  Permission = "characteristics:read"
	PermCharacteristicsWrite Permission = "characteristics:write"
	PermReferencesWrite      Permission = "references:write"
	PermActivityRead         Permission = "activity:read"
	PermDashboardAccess      Permission = "dashboard:access"
)

// Table es la tabla rol -> permisos. Inmutable después de NewTable.
type Table struct {
	byRole map[Role]map[Permission]struct{}
}

// NewTable copia el mapa recibido; modificarlo después no afecta a la tabla.
func NewTable(def map[Role][]Permission) *Table {
	t := &Table{byRole: make(map[Role]map[Permission]struct{}, len(def))}
	for role, perms := range def {
		set := make(map[Permission]struct{}, len(perms))
		for _, p := range perms {
			set[p] = struct{}{}
		}
		t.byRole[role] = set
	}
	return t
}

// DefaultTable es la configuración del refugio.
func DefaultTable() *Table {
	volunteer := []Permission{
		PermDashboardAccess,
		PermAnimalsRead,
		PermTasksRead,
		PermTasksWrite,
		PermNotesRead,
		PermNotesWrite,
		PermAssessmentsRead,
		PermCharacteristicsRead,
	}

	staff := append([]Permission{
		PermAnimalsWrite,
		PermAnimalsPublish,
		PermIntakesRead,
		PermIntakesWrite,
		PermOutcomesRead,
		PermOutcomesWrite,
		PermApplicationsRead,
		PermApplicationsReview,
		PermAssessmentsWrite,
		PermCharacteristicsWrite,
		PermActivityRead,
	}, volunteer...)

	admin := append([]Permission{
		PermAnimalsDelete,
		PermReferencesWrite,
	}, staff...)

	return NewTable(map[Role][]Permission{
		RoleAdmin:     admin,
		RoleStaff:     staff,
		RoleVolunteer: volunteer,
		// ADOPTER solo usa rutas /me y públicas.
		RoleAdopter: nil,
	})
}

func (t *Table) Allows(role Role, perm Permission) bool {
	if t == nil {
		return false
	}
	set, ok := t.byRole[role]
	if !ok {
		return false
	}
	_, ok = set[perm]
	return ok
}

// Permissions devuelve una copia ordenada.
func (t *Table) Permissions(role Role) []Permission {
	if t == nil {
		return nil
	}
	set := t.byRole[role]
	out := make([]Permission, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
