package domain

// Role identifies the kind of actor signed in to the portal. The backend
// issues exactly these three values; anything else is treated as unknown.
type Role string

const (
	RolePatient Role = "PATIENT"
	RoleDoctor  Role = "DOCTOR"
	RoleAdmin   Role = "ADMIN"
)

// ParseRole maps a raw string to a known Role. The boolean is false for
// unknown or empty input.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RolePatient, RoleDoctor, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

// User models the identity record returned by the hospital backend on
// sign-in or session restore. It is immutable for the lifetime of a session.
type User struct {
	ID       int64  `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Role     Role   `json:"role"`
}
