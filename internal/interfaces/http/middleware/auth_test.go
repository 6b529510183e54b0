// internal/interfaces/http/middleware/auth_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/pkg/auth"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "Storefront"
	cfg.JWT.Secret = "test-secret-at-least-32-characters-long"
	cfg.JWT.AccessTokenExpiry = time.Hour
	return cfg
}

func issueToken(t *testing.T, cfg *config.Config, userID uint, isAdmin bool) string {
	t.Helper()
	token, err := auth.NewJWTManager(cfg).GenerateToken(userID, "ada@example.com", isAdmin)
	require.NoError(t, err)
	return token
}

// newProtectedRouter mounts a route behind AuthRequired that echoes the
// authenticated user context.
func newProtectedRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	protected := router.Group("/checkout")
	protected.Use(AuthRequired(cfg))
	protected.GET("", func(c *gin.Context) {
		userID, _ := GetUserIDFromContext(c)
		email, _ := GetUserEmailFromContext(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "email": email})
	})
	return router
}

func TestAuthRequiredRedirectsWithoutToken(t *testing.T) {
	router := newProtectedRouter(testConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/checkout", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, LoginPath, w.Header().Get("Location"))
}

func TestAuthRequiredRedirectsInvalidToken(t *testing.T) {
	router := newProtectedRouter(testConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/checkout", nil)
	req.AddCookie(&http.Cookie{Name: AuthTokenCookie, Value: "not-a-token"})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, LoginPath, w.Header().Get("Location"))
}

func TestAuthRequiredRedirectsWrongSecret(t *testing.T) {
	cfg := testConfig()
	router := newProtectedRouter(cfg)

	other := testConfig()
	other.JWT.Secret = "a-completely-different-secret-value-here"
	token := issueToken(t, other, 3, false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/checkout", nil)
	req.AddCookie(&http.Cookie{Name: AuthTokenCookie, Value: token})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, LoginPath, w.Header().Get("Location"))
}

func TestAuthRequiredPassesCookieToken(t *testing.T) {
	cfg := testConfig()
	router := newProtectedRouter(cfg)
	token := issueToken(t, cfg, 3, false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/checkout", nil)
	req.AddCookie(&http.Cookie{Name: AuthTokenCookie, Value: token})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":3`)
	assert.Contains(t, w.Body.String(), `"email":"ada@example.com"`)
}

func TestAuthRequiredPassesBearerToken(t *testing.T) {
	cfg := testConfig()
	router := newProtectedRouter(cfg)
	token := issueToken(t, cfg, 3, false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/checkout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":3`)
}

func newAdminRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	admin := router.Group("/admin")
	admin.Use(AuthRequired(cfg))
	admin.Use(AdminRequired())
	admin.GET("/products", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func TestAdminRequired(t *testing.T) {
	cfg := testConfig()
	router := newAdminRouter(cfg)

	// no token: redirected to login by AuthRequired
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/products", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, LoginPath, w.Header().Get("Location"))

	// authenticated but not admin: forbidden
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin/products", nil)
	req.AddCookie(&http.Cookie{Name: AuthTokenCookie, Value: issueToken(t, cfg, 3, false)})
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// admin: passes through
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin/products", nil)
	req.AddCookie(&http.Cookie{Name: AuthTokenCookie, Value: issueToken(t, cfg, 1, true)})
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOptionalAuth(t *testing.T) {
	cfg := testConfig()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(OptionalAuth(cfg))
	router.GET("/", func(c *gin.Context) {
		userID, authed := GetUserIDFromContext(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "authenticated": authed})
	})

	// anonymous requests pass through without user context
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)

	// a garbage token is ignored rather than rejected
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: AuthTokenCookie, Value: "not-a-token"})
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)

	// a valid token populates the user context
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: AuthTokenCookie, Value: issueToken(t, cfg, 3, false)})
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":3`)
	assert.Contains(t, w.Body.String(), `"authenticated":true`)
}
