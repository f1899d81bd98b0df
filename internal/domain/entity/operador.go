package entity

// Roles de operador del catálogo. Solo estos pueden escribir.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// IsWriteRole indica si el rol puede crear, modificar o eliminar entidades.
func IsWriteRole(role string) bool {
	return role == RoleAdmin || role == RoleEditor
}
