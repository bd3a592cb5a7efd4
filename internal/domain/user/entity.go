package user

import "strings"

type Role string

const (
	RoleAdmin    Role = "admin"    // HR administrator - payroll, reports, employees
	RoleEmployee Role = "employee" // Regular employee - own payslips only
)

// ParseRole accepts the backend's enum spelling in any case, with or
// without a ROLE_ prefix.
func ParseRole(s string) (Role, error) {
	r := strings.ToLower(strings.TrimSpace(s))
	r = strings.TrimPrefix(r, "role_")
	switch Role(r) {
	case RoleAdmin, RoleEmployee:
		return Role(r), nil
	}
	return "", ErrUnknownRole
}

// User is the identity the backend returned at login.
type User struct {
	ID       string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// IsAdmin checks if user is an HR administrator
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
