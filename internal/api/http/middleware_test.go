package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"school-lending-backend/internal/domain"
	"school-lending-backend/internal/security"
)

func TestAuthenticate(t *testing.T) {
	tm := security.NewTokenManager("test-secret", 60)

	var gotUserID int32
	var gotRole domain.UserRole
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = UserIDFromContext(r.Context())
		gotRole, _ = RoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := Authenticate(tm)(next)

	t.Run("ValidToken", func(t *testing.T) {
		token, err := tm.GenerateAccessToken(2, "budi", "siswa")
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/peminjaman", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int32(2), gotUserID)
		assert.Equal(t, domain.UserRoleStudent, gotRole)
	})

	t.Run("MissingToken", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/peminjaman", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("GarbageToken", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/peminjaman", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("WrongSigningKey", func(t *testing.T) {
		other := security.NewTokenManager("other-secret", 60)
		token, _ := other.GenerateAccessToken(2, "budi", "siswa")

		req := httptest.NewRequest(http.MethodGet, "/api/peminjaman", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	tm := security.NewTokenManager("test-secret", 60)
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := Authenticate(tm)(RequireRole(domain.UserRoleStaff)(next))

	request := func(role string) *httptest.ResponseRecorder {
		token, _ := tm.GenerateAccessToken(1, "u", role)
		req := httptest.NewRequest(http.MethodPost, "/api/komoditas", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	t.Run("StaffAllowed", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, request("petugas").Code)
	})

	t.Run("AdminAlwaysAllowed", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, request("administrator").Code)
	})

	t.Run("BareAdminIsNotARole", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, request("admin").Code)
	})

	t.Run("StudentForbidden", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, request("siswa").Code)
	})
}
