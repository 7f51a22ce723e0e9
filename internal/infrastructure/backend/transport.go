package backend

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rachitkhandelwal41/hospital-portal/internal/api/metrics"
)

// BearerTransport decorates every outbound request with the session's bearer
// token. The authentication entry points themselves (login, register) are
// excluded: a stale or absent token is meaningless there. An explicit token
// placed with WithToken takes precedence over the bound session's token.
type BearerTransport struct {
	Base http.RoundTripper
}

func (t *BearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if isAuthEntryPoint(req.URL.Path) {
		return t.base().RoundTrip(req)
	}

	token := tokenFromContext(req.Context())
	if token == "" {
		if st := sessionFromContext(req.Context()); st != nil {
			token = st.Token()
		}
	}
	if token != "" {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return t.base().RoundTrip(req)
}

func (t *BearerTransport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

// isAuthEntryPoint reports whether the request targets an endpoint that
// establishes authentication rather than consuming it.
func isAuthEntryPoint(path string) bool {
	return strings.HasSuffix(path, "/auth/login") || strings.HasSuffix(path, "/auth/register")
}

// StatusInterceptor reacts to authorization failures from the backend:
//
//   - 401: the session that issued the request is cleared — token and user
//     drop together and the persisted token is removed. The response still
//     propagates so the caller observes the rejection.
//   - 403: the session is left untouched; the credentials are valid, the
//     resource is not. The web layer redirects to the portal root.
//
// Every other status passes through unchanged. The interceptor also records
// request metrics, since it sees every backend round trip.
type StatusInterceptor struct {
	Base http.RoundTripper
}

func (t *StatusInterceptor) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.base().RoundTrip(req)
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(req.URL.Path, "error").Inc()
		return nil, err
	}

	metrics.BackendRequestsTotal.WithLabelValues(req.URL.Path, strconv.Itoa(resp.StatusCode)).Inc()
	metrics.BackendRequestDuration.WithLabelValues(req.URL.Path).Observe(time.Since(start).Seconds())

	if resp.StatusCode == http.StatusUnauthorized {
		if st := sessionFromContext(req.Context()); st != nil {
			// Authoritative action for an invalid session; the redirect to
			// sign-in happens in the web error handler right after.
			_ = st.Clear(req.Context())
		}
	}
	return resp, nil
}

func (t *StatusInterceptor) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}
