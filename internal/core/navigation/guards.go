package navigation

import "github.com/rachitkhandelwal41/hospital-portal/internal/core/domain"

// Decision is the outcome of a guard: either the navigation may proceed, or
// it must be redirected to RedirectTo. Keeping the decision a plain value
// separates the pure check from the redirect side effect.
type Decision struct {
	Allowed    bool
	RedirectTo string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(to string) Decision {
	return Decision{RedirectTo: to}
}

// AnonymousOnly gates the sign-in and sign-up pages: an already signed-in
// user is sent to their own dashboard instead.
func AnonymousOnly(sess domain.Session) Decision {
	if sess.Authenticated() {
		return deny(DefaultRouteFor(sess.Role()))
	}
	return allow()
}

// Authenticated gates every protected page; anonymous visitors are sent to
// the sign-in page.
func Authenticated(sess domain.Session) Decision {
	if !sess.Authenticated() {
		return deny(PathSignIn)
	}
	return allow()
}

// RequireRole gates a role-specific section. Authentication is checked
// before the role so a signed-in user with the wrong role is redirected to
// their own dashboard rather than back to sign-in, which would loop.
func RequireRole(sess domain.Session, allowed ...domain.Role) Decision {
	if !sess.Authenticated() {
		return deny(PathSignIn)
	}
	role := sess.Role()
	for _, r := range allowed {
		if r == role {
			return allow()
		}
	}
	return deny(DefaultRouteFor(role))
}
