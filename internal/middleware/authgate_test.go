package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"fundraiser/internal/auth"
	"fundraiser/internal/domain"
)

func gateTestHandler(t *testing.T, tokens *auth.TokenService) http.Handler {
	t.Helper()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return AuthGate(tokens, zerolog.Nop())(next)
}

func sessionCookie(t *testing.T, tokens *auth.TokenService, role domain.Role) *http.Cookie {
	t.Helper()
	token, err := tokens.Issue("user-1", role)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return tokens.Cookie(token)
}

func TestAuthGateRedirectsAdminToLoginWhenUnauthenticated(t *testing.T) {
	tokens := auth.NewTokenService("gate-secret", time.Hour)
	handler := gateTestHandler(t, tokens)

	for _, path := range []string{"/admin", "/admin/donations", "/admin/anything/nested"} {
		req := httptest.NewRequest("GET", path, nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusFound {
			t.Fatalf("%s: expected 302, got %d", path, rr.Code)
		}
		if loc := rr.Header().Get("Location"); loc != "/login" {
			t.Fatalf("%s: expected redirect to /login, got %q", path, loc)
		}
	}
}

func TestAuthGateRedirectsAdminToLoginOnBadCookie(t *testing.T) {
	tokens := auth.NewTokenService("gate-secret", time.Hour)
	handler := gateTestHandler(t, tokens)

	cases := map[string]*http.Cookie{
		"garbage":      {Name: auth.CookieName, Value: "not-a-token"},
		"wrong secret": sessionCookie(t, auth.NewTokenService("other-secret", time.Hour), domain.RoleStaff),
		"expired":      sessionCookie(t, auth.NewTokenService("gate-secret", -time.Minute), domain.RoleStaff),
	}
	for name, cookie := range cases {
		req := httptest.NewRequest("GET", "/admin/donations", nil)
		req.AddCookie(cookie)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusFound || rr.Header().Get("Location") != "/login" {
			t.Fatalf("%s: expected redirect to /login, got %d %q", name, rr.Code, rr.Header().Get("Location"))
		}
	}
}

func TestAuthGateRedirectsLoginToAdminWhenAuthenticated(t *testing.T) {
	tokens := auth.NewTokenService("gate-secret", time.Hour)
	handler := gateTestHandler(t, tokens)

	req := httptest.NewRequest("GET", "/login", nil)
	req.AddCookie(sessionCookie(t, tokens, domain.RoleSuperAdmin))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/admin" {
		t.Fatalf("expected redirect to /admin, got %q", loc)
	}
}

func TestAuthGatePassesThroughElsewhere(t *testing.T) {
	tokens := auth.NewTokenService("gate-secret", time.Hour)
	handler := gateTestHandler(t, tokens)

	// Unauthenticated requests outside the admin prefix pass unmodified.
	for _, path := range []string{"/", "/donations/recent", "/login", "/payments/status"} {
		req := httptest.NewRequest("GET", path, nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("%s: expected pass-through 200, got %d", path, rr.Code)
		}
	}

	// Authenticated admin requests pass as well.
	req := httptest.NewRequest("GET", "/admin/donations", nil)
	req.AddCookie(sessionCookie(t, tokens, domain.RoleStaff))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for valid admin session, got %d", rr.Code)
	}
}

func TestRequireRole(t *testing.T) {
	tokens := auth.NewTokenService("gate-secret", time.Hour)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ClaimsFromContext(r.Context()) == nil {
			t.Error("expected claims on context")
		}
		w.WriteHeader(http.StatusOK)
	})
	handler := RequireRole(tokens, domain.RoleSuperAdmin, domain.RoleStaff)(next)

	req := httptest.NewRequest("GET", "/admin/api/donations", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("no cookie: expected 401, got %d", rr.Code)
	}

	req = httptest.NewRequest("GET", "/admin/api/donations", nil)
	req.AddCookie(sessionCookie(t, tokens, domain.RoleViewer))
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("viewer: expected 403, got %d", rr.Code)
	}

	req = httptest.NewRequest("GET", "/admin/api/donations", nil)
	req.AddCookie(sessionCookie(t, tokens, domain.RoleStaff))
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("staff: expected 200, got %d", rr.Code)
	}
}
