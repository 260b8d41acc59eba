package entities

import "time"

// UserRole is the staff role carried in the access token.
type UserRole string

const (
	UserRoleAdmin   UserRole = "admin"
	UserRoleAsesor  UserRole = "asesor"
	UserRoleTecnico UserRole = "tecnico"
)

// ManagerRoles may create orders and assign technicians.
var ManagerRoles = []UserRole{UserRoleAdmin, UserRoleAsesor}

func (r UserRole) Valid() bool {
	switch r {
	case UserRoleAdmin, UserRoleAsesor, UserRoleTecnico:
		return true
	}
	return false
}

// User is a staff member. PasswordHash never leaves the repository layer in responses.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (email-index): email
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         UserRole  `json:"role"`
	Phone        string    `json:"phone,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// HasRole reports whether the user holds one of the allowed roles.
// It is the single capability check used both for UI gating and for authorization.
func HasRole(user User, allowed ...UserRole) bool {
	if user.ID == "" {
		return false
	}
	for _, r := range allowed {
		if user.Role == r {
			return true
		}
	}
	return false
}
