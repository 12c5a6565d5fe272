package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alumnet/portal/models"
	"github.com/alumnet/portal/userctx"
)

func roleTestHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
}

func TestRequireRole_AllowsMatchingRole(t *testing.T) {
	handler := RequireRole(models.RoleAdmin)(roleTestHandler())

	req := httptest.NewRequest(http.MethodGet, "/admin/audit", nil)
	req = req.WithContext(userctx.SetUser(req.Context(), &models.User{ID: 1, Role: models.RoleAdmin}))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestRequireRole_RedirectsOtherRoles(t *testing.T) {
	handler := RequireRole(models.RoleAdmin)(roleTestHandler())

	for _, role := range []models.Role{models.RoleMember, models.RoleAlumni} {
		req := httptest.NewRequest(http.MethodGet, "/admin/audit", nil)
		req = req.WithContext(userctx.SetUser(req.Context(), &models.User{ID: 2, Role: role}))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		// Silent redirect: no hint about the page's existence
		assert.Equal(t, http.StatusSeeOther, rec.Code, "role %s must be redirected", role)
		assert.Equal(t, "/", rec.Header().Get("Location"))
		assert.NotContains(t, rec.Body.String(), "ok")
	}
}

func TestRequireRole_RedirectsAnonymous(t *testing.T) {
	handler := RequireRole(models.RoleAdmin)(roleTestHandler())

	req := httptest.NewRequest(http.MethodGet, "/admin/audit", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestRequireRole_MultipleRoles(t *testing.T) {
	handler := RequireRole(models.RoleAlumni, models.RoleAdmin)(roleTestHandler())

	req := httptest.NewRequest(http.MethodGet, "/downloads", nil)
	req = req.WithContext(userctx.SetUser(req.Context(), &models.User{ID: 3, Role: models.RoleAlumni}))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
