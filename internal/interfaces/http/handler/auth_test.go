package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/retail/backoffice/internal/application/identity"
	"github.com/retail/backoffice/internal/domain/shared"
	"github.com/retail/backoffice/internal/infrastructure/auth"
	"github.com/retail/backoffice/internal/interfaces/http/dto"
	"github.com/retail/backoffice/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testClaims() *auth.Claims {
	return &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{ID: "jti-1", Subject: "7"},
		Tenant:           testTenant,
		Name:             "Ana",
		Email:            "ana@tienda.co",
	}
}

func setupAuthRouter(svc *MockAuthService, claims *auth.Claims) *gin.Engine {
	h := NewAuthHandler(svc)
	router := gin.New()
	router.POST("/api/v1/auth/login", h.Login)

	authed := router.Group("/api/v1/auth", func(c *gin.Context) {
		if claims != nil {
			c.Set(middleware.JWTClaimsKey, claims)
		}
		c.Next()
	})
	authed.GET("/me", h.Me)
	authed.POST("/logout", h.Logout)
	return router
}

func TestAuthHandler_Login(t *testing.T) {
	svc := new(MockAuthService)
	router := setupAuthRouter(svc, nil)

	expires := time.Date(2026, 10, 15, 20, 0, 0, 0, time.UTC)
	svc.On("Login", mock.Anything, identity.LoginInput{Email: "Ana@Tienda.co", Password: "secreta"}).
		Return(&identity.LoginResult{
			Token:     "signed.jwt.token",
			ExpiresAt: expires,
			User:      identity.UserResponse{ID: 7, Nombre: "Ana", Email: "ana@tienda.co"},
			Tenant:    testTenant,
		}, nil)

	w := doJSON(router, http.MethodPost, "/api/v1/auth/login", `{"email":"Ana@Tienda.co","password":"secreta"}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var result identity.LoginResult
	decodeData(t, w, &result)
	assert.Equal(t, "signed.jwt.token", result.Token)
	assert.Equal(t, testTenant, result.Tenant)
	assert.True(t, expires.Equal(result.ExpiresAt))
}

func TestAuthHandler_Login_Rejected(t *testing.T) {
	svc := new(MockAuthService)
	router := setupAuthRouter(svc, nil)
	svc.On("Login", mock.Anything, mock.Anything).
		Return(nil, shared.NewDomainError(shared.CodeUnauthorized, "Invalid user or password"))

	w := doJSON(router, http.MethodPost, "/api/v1/auth/login", `{"email":"ana@tienda.co","password":"wrong"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, dto.ErrCodeUnauthorized, resp.Error.Code)
	assert.Equal(t, "Invalid user or password", resp.Error.Message)
}

func TestAuthHandler_Login_InvalidBody(t *testing.T) {
	svc := new(MockAuthService)
	router := setupAuthRouter(svc, nil)

	w := doJSON(router, http.MethodPost, "/api/v1/auth/login", `{"email":"not-an-email","password":"x"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeValidation, decodeResponse(t, w).Error.Code)
	svc.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
}

func TestAuthHandler_Me(t *testing.T) {
	claims := testClaims()
	svc := new(MockAuthService)
	svc.On("Session", claims).Return(&identity.SessionResponse{
		User:   identity.UserResponse{ID: 7, Nombre: "Ana", Email: "ana@tienda.co"},
		Tenant: testTenant,
	}, nil)

	w := doJSON(setupAuthRouter(svc, claims), http.MethodGet, "/api/v1/auth/me", "")

	require.Equal(t, http.StatusOK, w.Code)
	var session identity.SessionResponse
	decodeData(t, w, &session)
	assert.Equal(t, int64(7), session.User.ID)
	assert.Equal(t, testTenant, session.Tenant)
}

func TestAuthHandler_Me_NoClaims(t *testing.T) {
	svc := new(MockAuthService)

	w := doJSON(setupAuthRouter(svc, nil), http.MethodGet, "/api/v1/auth/me", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	svc.AssertNotCalled(t, "Session", mock.Anything)
}

func TestAuthHandler_Logout(t *testing.T) {
	claims := testClaims()
	svc := new(MockAuthService)
	svc.On("Logout", mock.Anything, claims).Return(&identity.LogoutResult{OK: true}, nil)

	w := doJSON(setupAuthRouter(svc, claims), http.MethodPost, "/api/v1/auth/logout", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":{"ok":true}}`, w.Body.String())
}
