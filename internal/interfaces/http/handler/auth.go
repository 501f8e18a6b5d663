package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/retail/backoffice/internal/application/identity"
	"github.com/retail/backoffice/internal/infrastructure/auth"
	"github.com/retail/backoffice/internal/interfaces/http/dto"
	"github.com/retail/backoffice/internal/interfaces/http/middleware"
)

// AuthService is the identity use cases behind the auth endpoints
type AuthService interface {
	Login(ctx context.Context, input identity.LoginInput) (*identity.LoginResult, error)
	Session(claims *auth.Claims) (*identity.SessionResponse, error)
	Logout(ctx context.Context, claims *auth.Claims) (*identity.LogoutResult, error)
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login godoc
// @Summary      User login
// @Description  Authenticates a user by email and password and returns a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identity.LoginInput true "Login credentials"
// @Success      200 {object} dto.Response{data=identity.LoginResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req identity.LoginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Me godoc
// @Summary      Current session
// @Description  User and tenant of the current token
// @Tags         auth
// @Produce      json
// @Success      200 {object} dto.Response{data=identity.SessionResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.ErrorWithCode(c, dto.ErrCodeUnauthorized, "Authentication required")
		return
	}

	session, err := h.authService.Session(claims)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, session)
}

// Logout godoc
// @Summary      User logout
// @Description  Revokes the current token
// @Tags         auth
// @Produce      json
// @Success      200 {object} dto.Response{data=identity.LogoutResult}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	result, err := h.authService.Logout(c.Request.Context(), middleware.GetJWTClaims(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
