package domain

// Session pairs the signed-in user with the bearer token the backend issued
// for them. The two fields are always set together or both zero; the session
// store is the only component allowed to produce non-zero values.
type Session struct {
	User  *User
	Token string
}

// Authenticated reports whether the session is established. Token presence
// and user presence are equivalent by the pairing invariant.
func (s Session) Authenticated() bool {
	return s.Token != "" && s.User != nil
}

// Role returns the session's role, or the empty Role when anonymous.
func (s Session) Role() Role {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}
