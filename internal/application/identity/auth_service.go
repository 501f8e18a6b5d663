package identity

import (
	"context"
	"errors"

	"github.com/retail/backoffice/internal/domain/identity"
	"github.com/retail/backoffice/internal/domain/shared"
	"github.com/retail/backoffice/internal/infrastructure/auth"
	"go.uber.org/zap"
)

var errInvalidCredentials = shared.NewDomainError(shared.CodeUnauthorized, "Invalid user or password")

// AuthService signs users in across tenant schemas and revokes their tokens
type AuthService struct {
	directory  identity.Directory
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	directory identity.Directory,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		directory:  directory,
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger,
	}
}

// Login looks the email up in every tenant schema, in schema order, and signs
// a token for the first account found. A wrong password on that account fails
// the login without trying later schemas.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	email := identity.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, errInvalidCredentials
	}

	schemas, err := s.directory.TenantSchemas(ctx)
	if err != nil {
		s.logger.Error("Failed to list tenant schemas", zap.Error(err))
		return nil, shared.NewInfrastructureError("login", err)
	}

	user, err := s.findUser(ctx, schemas, email)
	if err != nil {
		return nil, err
	}
	if !user.VerifyPassword(input.Password) {
		s.logger.Info("Login rejected", zap.String("tenant_id", user.Tenant), zap.Int64("user_id", user.ID))
		return nil, errInvalidCredentials
	}

	signed, err := s.jwtService.Generate(auth.TokenInput{
		UserID: user.ID,
		Tenant: user.Tenant,
		Name:   user.Name,
		Email:  user.Email,
	})
	if err != nil {
		s.logger.Error("Failed to sign token", zap.Error(err))
		return nil, shared.NewInfrastructureError("login", err)
	}

	s.logger.Info("User logged in",
		zap.String("tenant_id", user.Tenant),
		zap.Int64("user_id", user.ID))

	return &LoginResult{
		Token:     signed.Token,
		ExpiresAt: signed.ExpiresAt,
		User:      ToUserResponse(user),
		Tenant:    user.Tenant,
	}, nil
}

func (s *AuthService) findUser(ctx context.Context, schemas []string, email string) (*identity.User, error) {
	for _, schema := range schemas {
		if !shared.ValidTenantSchema(schema) {
			continue
		}
		user, err := s.directory.FindByEmail(ctx, schema, email)
		if err == nil {
			return user, nil
		}
		if errors.Is(ctx.Err(), context.Canceled) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, shared.NewInfrastructureError("login", ctx.Err())
		}
		if !shared.IsCode(err, shared.CodeNotFound) {
			s.logger.Warn("Skipping tenant during login", zap.String("tenant_id", schema), zap.Error(err))
		}
	}
	return nil, errInvalidCredentials
}

// Session returns the caller described by validated token claims
func (s *AuthService) Session(claims *auth.Claims) (*SessionResponse, error) {
	id, err := claims.UserID()
	if err != nil {
		return nil, shared.ErrUnauthorized
	}
	return &SessionResponse{
		User:   UserResponse{ID: id, Nombre: claims.Name, Email: claims.Email},
		Tenant: claims.Tenant,
	}, nil
}

// Logout revokes the token until it would have expired
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) (*LogoutResult, error) {
	if claims != nil && claims.ID != "" {
		if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.RemainingTTL()); err != nil {
			s.logger.Error("Failed to revoke token", zap.String("tenant_id", claims.Tenant), zap.Error(err))
			return nil, shared.NewInfrastructureError("logout", err)
		}
		s.logger.Info("User logged out", zap.String("tenant_id", claims.Tenant), zap.String("user_id", claims.Subject))
	}
	return &LogoutResult{OK: true}, nil
}
