package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eltablero/globals"
	"eltablero/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

func signToken(t *testing.T, userID, role string) string {
	t.Helper()
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

func TestAuthenticateRejectsMissingToken(t *testing.T) {
	called := false
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		called = true
	})

	req := httptest.NewRequest(http.MethodPost, "/api/reservations", nil)
	rec := httptest.NewRecorder()
	handler(rec, req, nil)

	if called {
		t.Fatal("handler ran without a token")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAuthenticateRejectsForgedUpgradeHeaders(t *testing.T) {
	called := false
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		called = true
	})

	// Upgrade headers must not open a side door past authentication.
	req := httptest.NewRequest(http.MethodPost, "/api/reservations", nil)
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")
	rec := httptest.NewRecorder()
	handler(rec, req, nil)

	if called {
		t.Fatal("handler ran for an unauthenticated upgrade request")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAuthenticateStoresClaimsInContext(t *testing.T) {
	var gotUser, gotRole string
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gotUser, _ = r.Context().Value(globals.UserIDKey).(string)
		gotRole, _ = r.Context().Value(globals.RoleKey).(string)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/reservations", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "u42", models.RoleCustomer))
	rec := httptest.NewRecorder()
	handler(rec, req, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotUser != "u42" || gotRole != models.RoleCustomer {
		t.Fatalf("context = (%q, %q), want (u42, customer)", gotUser, gotRole)
	}
}

func TestAdminOnlyRejectsCustomers(t *testing.T) {
	called := false
	handler := AdminOnly(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		called = true
	})

	req := httptest.NewRequest(http.MethodDelete, "/api/reservations/r1", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "u42", models.RoleCustomer))
	rec := httptest.NewRecorder()
	handler(rec, req, nil)

	if called {
		t.Fatal("handler ran for a non-admin user")
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/reservations/r1", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "a1", models.RoleAdmin))
	rec = httptest.NewRecorder()
	handler(rec, req, nil)

	if !called || rec.Code != http.StatusOK {
		t.Fatalf("admin request: called=%v status=%d", called, rec.Code)
	}
}
