// Package navigation holds the portal's route map and the pure guard
// predicates that gate entry to it. Nothing here performs a redirect; the
// web layer turns Decision values into actual navigation.
package navigation

import "github.com/rachitkhandelwal41/hospital-portal/internal/core/domain"

// Canonical paths. These are the single source of truth for the router and
// for every redirect target.
const (
	PathRoot   = "/"
	PathSignIn = "/sign-in"
	PathSignUp = "/sign-up"

	PathPatientDashboard = "/patient/dashboard"
	PathDoctorDashboard  = "/doctor/dashboard"
	PathAdminDashboard   = "/admin/dashboard"
)

// DefaultRouteFor maps a role to its landing page. Total over the closed
// role enumeration; unknown or absent roles land on the sign-in page.
func DefaultRouteFor(role domain.Role) string {
	switch role {
	case domain.RolePatient:
		return PathPatientDashboard
	case domain.RoleDoctor:
		return PathDoctorDashboard
	case domain.RoleAdmin:
		return PathAdminDashboard
	default:
		return PathSignIn
	}
}
