package middlewares

import (
	"net/http"
	"net/http/httptest"
	"plannova/src/config"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func protectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SecureHeaders, MaintenanceMode)
	r.GET("/", func(ctx *gin.Context) { ctx.JSON(http.StatusOK, "ok") })
	r.GET("/me", AuthMiddleware, func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"id": ctx.GetString("id"), "role": ctx.GetString("role")})
	})
	r.GET("/admin", AuthMiddleware, RequireRole(RoleAdmin), func(ctx *gin.Context) {
		ctx.Status(http.StatusNoContent)
	})
	return r
}

func do(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	config.JWT_SECRET = "test-secret"
	r := protectedRouter()

	token, err := GenerateJWT("user-1", "customer", time.Hour)
	require.Nil(t, err)

	w := do(r, "/me", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", gjson.Get(w.Body.String(), "id").String())
	assert.Equal(t, "customer", gjson.Get(w.Body.String(), "role").String())
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	assert.Equal(t, http.StatusUnauthorized, do(r, "/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "/me", "garbage").Code)
	assert.Equal(t, http.StatusForbidden, do(r, "/admin", token).Code)

	admin, err := GenerateJWT("admin-1", RoleAdmin, time.Hour)
	require.Nil(t, err)
	assert.Equal(t, http.StatusNoContent, do(r, "/admin", admin).Code)
}

func TestAuthMiddlewareRejectsExpiredAndForeignTokens(t *testing.T) {
	config.JWT_SECRET = "test-secret"
	r := protectedRouter()

	expired, err := GenerateJWT("user-1", RoleAdmin, -time.Minute)
	require.Nil(t, err)
	assert.Equal(t, http.StatusUnauthorized, do(r, "/me", expired).Code)

	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "x"}).SignedString([]byte("other"))
	require.Nil(t, err)
	assert.Equal(t, http.StatusUnauthorized, do(r, "/me", foreign).Code)
}

func TestMaintenanceMode(t *testing.T) {
	config.MAINTENANCE_MODE = true
	defer func() { config.MAINTENANCE_MODE = false }()
	r := protectedRouter()

	assert.Equal(t, http.StatusOK, do(r, "/", "").Code)
	w := do(r, "/me", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "server is under maintenance", gjson.Get(w.Body.String(), "error").String())
}

func TestAuthMiddlewareFailsClosedWithoutSecret(t *testing.T) {
	config.JWT_SECRET = ""
	defer func() { config.JWT_SECRET = "test-secret" }()
	r := protectedRouter()

	_, err := GenerateJWT("admin-1", RoleAdmin, time.Hour)
	assert.ErrorIs(t, err, ErrNoSigningSecret)

	claims := jwt.MapClaims{"sub": "admin-1", "role": RoleAdmin, "exp": time.Now().Add(time.Hour).Unix()}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(""))
	require.Nil(t, err)
	assert.Equal(t, http.StatusUnauthorized, do(r, "/me", unsigned).Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "/admin", unsigned).Code)
}
