package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rotaforte/frota/internal/auth"
	"github.com/rotaforte/frota/internal/rbac"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	jwtMgr := auth.NewJWTManager(strings.Repeat("a", 32), time.Minute)
	handler := Auth(jwtMgr)(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/drivers", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Success {
		t.Fatal("expected success=false in error envelope")
	}
	if body.Error == "" {
		t.Fatal("expected error message in envelope")
	}
}

func TestAuthRejectsGarbageToken(t *testing.T) {
	jwtMgr := auth.NewJWTManager(strings.Repeat("a", 32), time.Minute)
	handler := Auth(jwtMgr)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/drivers", nil)
	req.Header.Set("Authorization", "Bearer nao-e-um-jwt")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthInjectsClaims(t *testing.T) {
	jwtMgr := auth.NewJWTManager(strings.Repeat("a", 32), time.Minute)
	token, _, err := jwtMgr.GenerateAccessToken("subject-1", "operator")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	var gotSubject, gotRole string
	handler := Auth(jwtMgr)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSubject = GetSubject(r.Context())
		gotRole = GetRole(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/drivers", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if gotSubject != "subject-1" {
		t.Fatalf("expected subject-1 in context, got %q", gotSubject)
	}
	if gotRole != "operator" {
		t.Fatalf("expected role operator in context, got %q", gotRole)
	}
}

func TestRequireDeniesByCapability(t *testing.T) {
	handler := Require(func(c rbac.Capabilities) bool { return c.UserManage })(okHandler())

	cases := []struct {
		role string
		want int
	}{
		{"admin", http.StatusOK},
		{"operator", http.StatusForbidden},
		{"viewer", http.StatusForbidden},
		// papel desconhecido cai em viewer
		{"superuser", http.StatusForbidden},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		req = req.WithContext(WithClaims(req.Context(), "subject-1", tc.role))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != tc.want {
			t.Fatalf("role %q: expected %d, got %d", tc.role, tc.want, rec.Code)
		}
	}
}

func TestRequireFleetEditBlocksOperator(t *testing.T) {
	handler := Require(func(c rbac.Capabilities) bool { return c.FleetEdit })(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/drivers", nil)
	req = req.WithContext(WithClaims(req.Context(), "subject-1", "operator"))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for operator on fleet edit, got %d", rec.Code)
	}
}
