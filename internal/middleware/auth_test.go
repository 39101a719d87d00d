package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestJWTAuth_RoundTrip(t *testing.T) {
	auth := NewJWTAuth("test-secret")
	userID := uuid.New()
	companyID := uuid.New()

	token, err := auth.GenerateAccessToken(userID, companyID, "alice@example.com", "ADMIN")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	var gotUser, gotCompany uuid.UUID
	var gotRole string
	handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = GetUserID(r.Context())
		gotCompany = GetCompanyID(r.Context())
		gotRole = GetRole(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if gotUser != userID || gotCompany != companyID || gotRole != "ADMIN" {
		t.Fatalf("expected claims on context, got %v %v %q", gotUser, gotCompany, gotRole)
	}
}

func TestJWTAuth_RejectsMissingAndMalformedHeaders(t *testing.T) {
	auth := NewJWTAuth("test-secret")
	handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler should not run without a valid token")
	}))

	for _, header := range []string{"", "Bearer", "Basic abc", "Bearer not-a-jwt"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("expected status 401 for header %q, got %d", header, rr.Code)
		}
	}
}

func TestJWTAuth_RejectsWrongSecret(t *testing.T) {
	token, err := NewJWTAuth("secret-a").GenerateAccessToken(uuid.New(), uuid.New(), "a@b.co", "EMPLOYEE")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	handler := NewJWTAuth("secret-b").Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler should not run for a token signed with another secret")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rr.Code)
	}
}

func TestRequireRole(t *testing.T) {
	guard := RequireRole("ADMIN")

	ran := false
	handler := guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ran = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden || ran {
		t.Fatalf("expected 403 without role claim, got %d", rr.Code)
	}

	auth := NewJWTAuth("test-secret")
	token, _ := auth.GenerateAccessToken(uuid.New(), uuid.New(), "a@b.co", "ADMIN")
	chained := auth.Middleware(guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ran = true
	})))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr = httptest.NewRecorder()
	chained.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK || !ran {
		t.Fatalf("expected admin token to pass, got %d", rr.Code)
	}
}
