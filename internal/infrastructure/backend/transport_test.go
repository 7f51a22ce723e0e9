package backend

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rachitkhandelwal41/hospital-portal/internal/core/domain"
	"github.com/rachitkhandelwal41/hospital-portal/internal/core/session"
	"github.com/rachitkhandelwal41/hospital-portal/internal/infrastructure/db/memory"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func emptyResponse(status int) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader("")),
		Header:     make(http.Header),
	}
}

func doctorSession(t *testing.T, token string) *session.Store {
	t.Helper()
	st := session.NewStore("c1", memory.NewTokenStore())
	user := &domain.User{ID: 1, Username: "doc", Role: domain.RoleDoctor}
	if err := st.Set(context.Background(), user, token); err != nil {
		t.Fatalf("set session: %v", err)
	}
	return st
}

func TestBearerTransport_AttachesSessionToken(t *testing.T) {
	var got string
	tr := &BearerTransport{Base: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		got = req.Header.Get("Authorization")
		return emptyResponse(http.StatusOK), nil
	})}

	st := doctorSession(t, "t1")
	req := httptest.NewRequest(http.MethodGet, "http://api.local/api/departments", nil)
	req = req.WithContext(WithSession(req.Context(), st))

	if _, err := tr.RoundTrip(req); err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if got != "Bearer t1" {
		t.Fatalf("expected bearer header, got %q", got)
	}
}

func TestBearerTransport_SkipsAuthEntryPoints(t *testing.T) {
	st := doctorSession(t, "stale-token")

	for _, path := range []string{"/api/auth/login", "/api/auth/register"} {
		var got string
		tr := &BearerTransport{Base: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			got = req.Header.Get("Authorization")
			return emptyResponse(http.StatusOK), nil
		})}

		req := httptest.NewRequest(http.MethodPost, "http://api.local"+path, nil)
		req = req.WithContext(WithSession(req.Context(), st))

		if _, err := tr.RoundTrip(req); err != nil {
			t.Fatalf("round trip: %v", err)
		}
		if got != "" {
			t.Fatalf("%s must never carry a token, got %q", path, got)
		}
	}
}

func TestBearerTransport_NoTokenNoHeader(t *testing.T) {
	var got string
	tr := &BearerTransport{Base: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		got = req.Header.Get("Authorization")
		return emptyResponse(http.StatusOK), nil
	})}

	req := httptest.NewRequest(http.MethodGet, "http://api.local/api/departments", nil)
	if _, err := tr.RoundTrip(req); err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if got != "" {
		t.Fatalf("expected no header without a session, got %q", got)
	}
}

func TestBearerTransport_ExplicitTokenWins(t *testing.T) {
	var got string
	tr := &BearerTransport{Base: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		got = req.Header.Get("Authorization")
		return emptyResponse(http.StatusOK), nil
	})}

	st := doctorSession(t, "session-token")
	ctx := WithToken(WithSession(context.Background(), st), "restore-token")
	req := httptest.NewRequest(http.MethodGet, "http://api.local/api/auth/me", nil).WithContext(ctx)

	if _, err := tr.RoundTrip(req); err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if got != "Bearer restore-token" {
		t.Fatalf("expected the explicit token, got %q", got)
	}
}

func TestStatusInterceptor_UnauthorizedClearsSession(t *testing.T) {
	tr := &StatusInterceptor{Base: roundTripFunc(func(*http.Request) (*http.Response, error) {
		return emptyResponse(http.StatusUnauthorized), nil
	})}

	st := doctorSession(t, "t1")
	req := httptest.NewRequest(http.MethodGet, "http://api.local/api/departments", nil)
	req = req.WithContext(WithSession(req.Context(), st))

	resp, err := tr.RoundTrip(req)
	if err != nil {
		t.Fatalf("round trip: %v", err)
	}
	// The rejection still propagates to the caller.
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 to pass through, got %d", resp.StatusCode)
	}
	if st.Authenticated() {
		t.Fatalf("expected session cleared on 401")
	}
	if st.Token() != "" || st.User() != nil {
		t.Fatalf("expected token and user both absent after 401")
	}
}

func TestStatusInterceptor_ForbiddenKeepsSession(t *testing.T) {
	tr := &StatusInterceptor{Base: roundTripFunc(func(*http.Request) (*http.Response, error) {
		return emptyResponse(http.StatusForbidden), nil
	})}

	st := doctorSession(t, "t1")
	req := httptest.NewRequest(http.MethodGet, "http://api.local/api/departments", nil)
	req = req.WithContext(WithSession(req.Context(), st))

	resp, err := tr.RoundTrip(req)
	if err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 to pass through, got %d", resp.StatusCode)
	}
	if !st.Authenticated() || st.Token() != "t1" {
		t.Fatalf("403 must leave the session untouched")
	}
}
