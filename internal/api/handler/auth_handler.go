package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/rachitkhandelwal41/hospital-portal/internal/api/metrics"
	"github.com/rachitkhandelwal41/hospital-portal/internal/core/domain"
	"github.com/rachitkhandelwal41/hospital-portal/internal/core/navigation"
	"github.com/rachitkhandelwal41/hospital-portal/internal/core/ports"
)

// AuthHandler serves the sign-in and sign-up pages and drives the session
// store from their submissions. A failed attempt re-renders the form with
// the error message and leaves the session untouched; redirecting after a
// successful POST keeps one submit in flight per client.
type AuthHandler struct {
	gateway ports.Gateway
	log     zerolog.Logger
}

func NewAuthHandler(gateway ports.Gateway, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{gateway: gateway, log: log}
}

// SignInPage renders the sign-in form.
func (h *AuthHandler) SignInPage(c echo.Context) error {
	data := newPageData(c, "Sign in")
	if c.QueryParam("registered") == "1" {
		data.Success = "Account created successfully. Please sign in."
	}
	return c.Render(http.StatusOK, "sign-in.html", data)
}

// SignIn authenticates against the backend and establishes the session.
func (h *AuthHandler) SignIn(c echo.Context) error {
	st, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req signInRequest
	if err := c.Bind(&req); err != nil {
		return h.signInError(c, http.StatusBadRequest, req, "Invalid form submission.", "validation")
	}
	if err := c.Validate(&req); err != nil {
		return h.signInError(c, http.StatusUnprocessableEntity, req, err.Error(), "validation")
	}

	ctx := c.Request().Context()
	user, token, err := h.gateway.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrBackendUnavailable) {
			h.log.Error().Err(err).Msg("sign-in: backend unreachable")
			return h.signInError(c, http.StatusServiceUnavailable, req,
				"The service is temporarily unavailable. Please try again.", "backend_unavailable")
		}
		return h.signInError(c, http.StatusUnauthorized, req,
			"Invalid email or password. Please try again.", "rejected")
	}

	if err := st.Set(ctx, user, token); err != nil {
		// Session is established in memory; only restart durability is lost.
		h.log.Warn().Err(err).Msg("sign-in: token persistence failed")
	}

	metrics.SignInsTotal.WithLabelValues(string(user.Role)).Inc()
	h.log.Info().Str("role", string(user.Role)).Int64("user_id", user.ID).Msg("user signed in")

	return c.Redirect(http.StatusSeeOther, navigation.DefaultRouteFor(user.Role))
}

// SignUpPage renders the registration form with the department list.
func (h *AuthHandler) SignUpPage(c echo.Context) error {
	data := newPageData(c, "Sign up")
	data.Departments = h.departments(c)
	return c.Render(http.StatusOK, "sign-up.html", data)
}

// SignUp registers a new account. Validation runs entirely before any
// network call; the backend is only consulted for a well-formed payload.
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req signUpRequest
	if err := c.Bind(&req); err != nil {
		return h.signUpError(c, http.StatusBadRequest, req, "Invalid form submission.")
	}
	if err := c.Validate(&req); err != nil {
		return h.signUpError(c, http.StatusUnprocessableEntity, req, err.Error())
	}

	reg := req.registration()
	if _, _, err := h.gateway.Register(c.Request().Context(), reg); err != nil {
		switch {
		case errors.Is(err, domain.ErrUserExists):
			return h.signUpError(c, http.StatusConflict, req, "An account with this email already exists.")
		case errors.Is(err, domain.ErrBackendUnavailable):
			h.log.Error().Err(err).Msg("sign-up: backend unreachable")
			return h.signUpError(c, http.StatusServiceUnavailable, req,
				"The service is temporarily unavailable. Please try again.")
		default:
			h.log.Warn().Err(err).Msg("sign-up: registration rejected")
			return h.signUpError(c, http.StatusUnprocessableEntity, req,
				"Registration failed. Please check your details and try again.")
		}
	}

	metrics.RegistrationsTotal.WithLabelValues(string(reg.Role)).Inc()
	h.log.Info().Str("role", string(reg.Role)).Msg("user registered")

	// The new account signs in explicitly; no session is established here.
	return c.Redirect(http.StatusSeeOther, navigation.PathSignIn+"?registered=1")
}

// Logout clears the session and returns to the sign-in page.
func (h *AuthHandler) Logout(c echo.Context) error {
	st, err := ctxSession(c)
	if err != nil {
		return err
	}
	if err := st.Clear(c.Request().Context()); err != nil {
		h.log.Warn().Err(err).Msg("logout: persisted token removal failed")
	}
	return c.Redirect(http.StatusSeeOther, navigation.PathSignIn)
}

// departments returns the live department list, degrading to the static
// fallback so registration never blocks on reference data.
func (h *AuthHandler) departments(c echo.Context) []domain.Department {
	deps, err := h.gateway.Departments(c.Request().Context())
	if err != nil {
		h.log.Warn().Err(err).Msg("departments fetch failed, serving fallback list")
		return domain.FallbackDepartments()
	}
	return deps
}

func (h *AuthHandler) signInError(c echo.Context, status int, req signInRequest, msg, reason string) error {
	metrics.SignInFailuresTotal.WithLabelValues(reason).Inc()
	data := newPageData(c, "Sign in")
	data.Error = msg
	data.Form = req
	return c.Render(status, "sign-in.html", data)
}

func (h *AuthHandler) signUpError(c echo.Context, status int, req signUpRequest, msg string) error {
	data := newPageData(c, "Sign up")
	data.Error = msg
	data.Form = req
	data.Departments = h.departments(c)
	return c.Render(status, "sign-up.html", data)
}
