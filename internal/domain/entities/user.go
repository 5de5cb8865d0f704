package entities

import "time"

// Role is the closed set of permissions a user can hold.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSemiAdmin  Role = "semiadmin"
	RoleTechnician Role = "technician"
	RoleViewer     Role = "viewer"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSemiAdmin, RoleTechnician, RoleViewer:
		return true
	}
	return false
}

// User is an identity known to the service. The role stored here is the only
// one ever trusted.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}
