package auth

// Claims representa la información extraída del token.
// Role viene tal cual del proveedor de identidad; authz lo interpreta.
type Claims struct {
	UserID string
	Email  string
	Name   string
	Role   string
}
