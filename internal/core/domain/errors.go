package domain

import "errors"

var (
	// ErrInvalidCredentials covers bad sign-in input and backend rejections
	// of a login attempt.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserExists is returned when registration collides with an existing
	// account.
	ErrUserExists = errors.New("user already exists")

	// ErrSessionExpired means the backend rejected the bearer token with 401.
	// The session has already been cleared by the time callers observe it.
	ErrSessionExpired = errors.New("session expired")

	// ErrForbidden means the backend rejected the call with 403: the token is
	// valid but the resource is not permitted for this role.
	ErrForbidden = errors.New("access forbidden")

	// ErrBackendUnavailable wraps transport-level failures reaching the
	// hospital API.
	ErrBackendUnavailable = errors.New("backend unavailable")
)
