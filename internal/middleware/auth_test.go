package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MarianaQC/courseplatform-api/internal/infrastructure/security"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(tm *security.TokenManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin",
		AuthMiddleware(tm),
		RequireRoles("admin"),
		func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) },
	)
	return r
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	tm := security.NewTokenManager("a", "r")
	r := setupRouter(tm)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareBadFormat(t *testing.T) {
	tm := security.NewTokenManager("a", "r")
	r := setupRouter(tm)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Token abc")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRolesForbidsUser(t *testing.T) {
	tm := security.NewTokenManager("a", "r")
	r := setupRouter(tm)

	access, _, err := tm.Generate("user-1", "user")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRolesAllowsAdmin(t *testing.T) {
	tm := security.NewTokenManager("a", "r")
	r := setupRouter(tm)

	access, _, err := tm.Generate("admin-1", "admin")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
