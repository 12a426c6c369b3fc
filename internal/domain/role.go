package domain

// RoleName enumerates the roles known to the ticketing system.
type RoleName string

const (
	RoleTechnician   RoleName = "Technicien"
	RoleSecretaryDSI RoleName = "Secrétaire DSI"
	RoleDeputyDSI    RoleName = "Adjoint DSI"
	RoleDSI          RoleName = "DSI"
	RoleAdmin        RoleName = "Admin"
)

// Role is a row of the roles table.
type Role struct {
	ID          string
	Name        RoleName
	Description string
}
