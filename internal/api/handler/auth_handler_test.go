package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/rachitkhandelwal41/hospital-portal/internal/core/domain"
	"github.com/rachitkhandelwal41/hospital-portal/internal/core/navigation"
	"github.com/rachitkhandelwal41/hospital-portal/internal/core/session"
	"github.com/rachitkhandelwal41/hospital-portal/internal/infrastructure/db/memory"
)

type stubGateway struct {
	loginFn       func(ctx context.Context, email, password string) (*domain.User, string, error)
	registerFn    func(ctx context.Context, reg domain.Registration) (*domain.User, string, error)
	departmentsFn func(ctx context.Context) ([]domain.Department, error)

	loginCalls    int
	registerCalls int
}

func (g *stubGateway) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	g.loginCalls++
	if g.loginFn == nil {
		return nil, "", domain.ErrInvalidCredentials
	}
	return g.loginFn(ctx, email, password)
}

func (g *stubGateway) Register(ctx context.Context, reg domain.Registration) (*domain.User, string, error) {
	g.registerCalls++
	if g.registerFn == nil {
		return nil, "", domain.ErrBackendUnavailable
	}
	return g.registerFn(ctx, reg)
}

func (g *stubGateway) Me(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrSessionExpired
}

func (g *stubGateway) Departments(ctx context.Context) ([]domain.Department, error) {
	if g.departmentsFn == nil {
		return nil, domain.ErrBackendUnavailable
	}
	return g.departmentsFn(ctx)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Renderer = NewRenderer()
	e.Validator = NewValidator()
	return e
}

func formContext(e *echo.Echo, target string, form url.Values) (echo.Context, *httptest.ResponseRecorder, *session.Store) {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	st := session.NewStore("c1", memory.NewTokenStore())
	c.Set("session", st)
	return c, rec, st
}

func TestSignIn_EstablishesSessionAndRedirects(t *testing.T) {
	gw := &stubGateway{loginFn: func(_ context.Context, email, password string) (*domain.User, string, error) {
		if email != "doc@example.com" || password != "secret1" {
			t.Fatalf("unexpected credentials: %s / %s", email, password)
		}
		return &domain.User{ID: 3, Username: "doc", Email: email, Role: domain.RoleDoctor}, "t1", nil
	}}
	h := NewAuthHandler(gw, zerolog.Nop())

	c, rec, st := formContext(newTestEcho(), "/sign-in", url.Values{
		"email":    {"doc@example.com"},
		"password": {"secret1"},
	})

	if err := h.SignIn(c); err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if got := rec.Header().Get(echo.HeaderLocation); got != navigation.PathDoctorDashboard {
		t.Fatalf("expected redirect to %s, got %s", navigation.PathDoctorDashboard, got)
	}
	if !st.Authenticated() || st.Token() != "t1" || st.Role() != domain.RoleDoctor {
		t.Fatalf("expected doctor session with token t1, got auth=%v token=%q role=%s",
			st.Authenticated(), st.Token(), st.Role())
	}
}

func TestSignIn_ValidationFailureSkipsBackend(t *testing.T) {
	gw := &stubGateway{}
	h := NewAuthHandler(gw, zerolog.Nop())

	c, rec, st := formContext(newTestEcho(), "/sign-in", url.Values{
		"email":    {"not-an-email"},
		"password": {"secret1"},
	})

	if err := h.SignIn(c); err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if gw.loginCalls != 0 {
		t.Fatalf("malformed input must not reach the backend")
	}
	if st.Authenticated() {
		t.Fatalf("failed attempt must leave the session anonymous")
	}
	if !strings.Contains(rec.Body.String(), "valid email") {
		t.Fatalf("expected validation message in the re-rendered form")
	}
}

func TestSignIn_RejectedCredentials(t *testing.T) {
	gw := &stubGateway{loginFn: func(context.Context, string, string) (*domain.User, string, error) {
		return nil, "", domain.ErrInvalidCredentials
	}}
	h := NewAuthHandler(gw, zerolog.Nop())

	c, rec, st := formContext(newTestEcho(), "/sign-in", url.Values{
		"email":    {"doc@example.com"},
		"password": {"wrongpw"},
	})

	if err := h.SignIn(c); err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if st.Authenticated() {
		t.Fatalf("rejected credentials must leave the session anonymous")
	}
	if !strings.Contains(rec.Body.String(), "Invalid email or password") {
		t.Fatalf("expected rejection message in the re-rendered form")
	}
}

func TestSignIn_BackendOutage(t *testing.T) {
	gw := &stubGateway{loginFn: func(context.Context, string, string) (*domain.User, string, error) {
		return nil, "", domain.ErrBackendUnavailable
	}}
	h := NewAuthHandler(gw, zerolog.Nop())

	c, rec, _ := formContext(newTestEcho(), "/sign-in", url.Values{
		"email":    {"doc@example.com"},
		"password": {"secret1"},
	})

	if err := h.SignIn(c); err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "temporarily unavailable") {
		t.Fatalf("expected outage message in the re-rendered form")
	}
}

func TestSignUp_RedirectsToSignIn(t *testing.T) {
	gw := &stubGateway{registerFn: func(_ context.Context, reg domain.Registration) (*domain.User, string, error) {
		if reg.Role != domain.RolePatient || reg.Patient == nil {
			t.Fatalf("expected patient registration payload, got %+v", reg)
		}
		return &domain.User{ID: 9, Username: reg.Username, Role: reg.Role}, "", nil
	}}
	h := NewAuthHandler(gw, zerolog.Nop())

	c, rec, st := formContext(newTestEcho(), "/sign-up", url.Values{
		"username":         {"pat"},
		"email":            {"pat@example.com"},
		"phone":            {"1234567890"},
		"role":             {"PATIENT"},
		"password":         {"Passw0rd"},
		"confirm_password": {"Passw0rd"},
		"age":              {"30"},
		"gender":           {"F"},
		"blood_group":      {"O+"},
	})

	if err := h.SignUp(c); err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if got := rec.Header().Get(echo.HeaderLocation); got != navigation.PathSignIn+"?registered=1" {
		t.Fatalf("expected redirect to sign-in, got %s", got)
	}
	if st.Authenticated() {
		t.Fatalf("registration must not establish a session")
	}
}

func TestSignUp_ValidationFailureSkipsBackend(t *testing.T) {
	gw := &stubGateway{}
	h := NewAuthHandler(gw, zerolog.Nop())

	// Patient registration without the patient fields.
	c, rec, _ := formContext(newTestEcho(), "/sign-up", url.Values{
		"username":         {"pat"},
		"email":            {"pat@example.com"},
		"phone":            {"1234567890"},
		"role":             {"PATIENT"},
		"password":         {"Passw0rd"},
		"confirm_password": {"Passw0rd"},
	})

	if err := h.SignUp(c); err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if gw.registerCalls != 0 {
		t.Fatalf("invalid registration must not reach the backend")
	}
}

func TestSignUp_DuplicateAccount(t *testing.T) {
	gw := &stubGateway{registerFn: func(context.Context, domain.Registration) (*domain.User, string, error) {
		return nil, "", domain.ErrUserExists
	}}
	h := NewAuthHandler(gw, zerolog.Nop())

	c, rec, _ := formContext(newTestEcho(), "/sign-up", url.Values{
		"username":         {"pat"},
		"email":            {"pat@example.com"},
		"phone":            {"1234567890"},
		"role":             {"ADMIN"},
		"password":         {"Passw0rd"},
		"confirm_password": {"Passw0rd"},
	})

	if err := h.SignUp(c); err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "already exists") {
		t.Fatalf("expected duplicate-account message in the re-rendered form")
	}
}

func TestSignUpPage_FallsBackToStaticDepartments(t *testing.T) {
	gw := &stubGateway{} // departments fetch fails
	h := NewAuthHandler(gw, zerolog.Nop())

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/sign-up", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("session", session.NewStore("c1", memory.NewTokenStore()))

	if err := h.SignUpPage(c); err != nil {
		t.Fatalf("sign up page: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	for _, name := range []string{"Cardiology", "Neurology", "General Medicine"} {
		if !strings.Contains(rec.Body.String(), name) {
			t.Fatalf("expected fallback department %q in the rendered form", name)
		}
	}
}

func TestLogout_ClearsSessionAndRedirects(t *testing.T) {
	h := NewAuthHandler(&stubGateway{}, zerolog.Nop())

	c, rec, st := formContext(newTestEcho(), "/logout", url.Values{})
	if err := st.Set(context.Background(), &domain.User{ID: 1, Username: "doc", Role: domain.RoleDoctor}, "t1"); err != nil {
		t.Fatalf("seed session: %v", err)
	}

	if err := h.Logout(c); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if got := rec.Header().Get(echo.HeaderLocation); got != navigation.PathSignIn {
		t.Fatalf("expected redirect to %s, got %s", navigation.PathSignIn, got)
	}
	if st.Authenticated() {
		t.Fatalf("expected session cleared on logout")
	}
}
