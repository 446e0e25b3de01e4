package valueobjects

import "fmt"

// Role is fixed at registration and never changed by any exposed operation.
type Role string

const (
	RoleEmployee   Role = "employee"
	RoleTechnician Role = "technician"
	RoleAdmin      Role = "admin"
)

var validRoles = map[Role]bool{
	RoleEmployee:   true,
	RoleTechnician: true,
	RoleAdmin:      true,
}

// AllRoles returns every role in declaration order
func AllRoles() []Role {
	return []Role{RoleEmployee, RoleTechnician, RoleAdmin}
}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	return validRoles[r]
}

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", fmt.Errorf("invalid role: %s", s)
	}
	return r, nil
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

func (r Role) IsTechnician() bool {
	return r == RoleTechnician
}

func (r Role) IsEmployee() bool {
	return r == RoleEmployee
}
