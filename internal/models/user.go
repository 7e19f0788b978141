package models

import "strings"

// Role decides which navigation and dashboard content a session sees.
type Role string

const (
	RoleMigrant    Role = "migrant"
	RoleHealthcare Role = "healthcare"
	RoleAdmin      Role = "admin"
)

// ParseRole maps a form value to a Role. Empty input is the default role.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case "", RoleMigrant:
		return RoleMigrant, true
	case RoleHealthcare:
		return RoleHealthcare, true
	case RoleAdmin:
		return RoleAdmin, true
	}
	return "", false
}

// User is one entry of a profile's "users" list. The same shape, minus the
// password, is stored under "current_user" as the session copy.
type User struct {
	ID       string `json:"id"`
	FullName string `json:"fullName,omitempty"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Gender   string `json:"gender,omitempty"`
	DOB      string `json:"dob,omitempty"`
	Password string `json:"password,omitempty"`
	Role     Role   `json:"role,omitempty"`

	// Healthcare staff only
	MedicalLicense string `json:"medicalLicense,omitempty"`
	Specialization string `json:"specialization,omitempty"`
	Facility       string `json:"facility,omitempty"`
}

// EffectiveRole treats a missing role as migrant.
func (u User) EffectiveRole() Role {
	if u.Role == "" {
		return RoleMigrant
	}
	return u.Role
}

// SessionCopy returns the record as it is kept in current_user.
func (u User) SessionCopy() User {
	u.Password = ""
	return u
}

// DisplayName prefers the full name.
func (u User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	if u.Username != "" {
		return u.Username
	}
	return "User"
}
