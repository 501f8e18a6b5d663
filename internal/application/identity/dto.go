package identity

import (
	"time"

	"github.com/retail/backoffice/internal/domain/identity"
)

// LoginInput holds the credentials submitted to Login
type LoginInput struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,max=128"`
}

// UserResponse is the public view of an authenticated user
type UserResponse struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
	Email  string `json:"email"`
}

// LoginResult is returned by a successful login
type LoginResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
	Tenant    string       `json:"tenant"`
}

// SessionResponse describes the caller of an authenticated request
type SessionResponse struct {
	User   UserResponse `json:"user"`
	Tenant string       `json:"tenant"`
}

// LogoutResult acknowledges a logout
type LogoutResult struct {
	OK bool `json:"ok"`
}

// ToUserResponse converts a domain user to its public view
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{ID: u.ID, Nombre: u.Name, Email: u.Email}
}
