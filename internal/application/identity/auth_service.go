// Package identity provides registration, authentication and user
// administration for the procurement API.
package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/procure/backend/internal/domain/identity"
	"github.com/procure/backend/internal/domain/shared"
	"github.com/procure/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration, login, logout and token refresh
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger,
	}
}

// Register creates a new pending account. The account cannot log in until
// an admin assigns it a role.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*UserInfo, error) {
	if input.Password == "" {
		return nil, shared.NewDomainError("MISSING_FIELD", "Password is required")
	}
	if len(input.Password) < 8 {
		return nil, shared.NewDomainError("INVALID_FORMAT", "Password must be at least 8 characters")
	}

	if existing, err := s.userRepo.FindByEmail(ctx, input.EmailAddress); err == nil && existing != nil {
		return nil, shared.NewDomainErrorf("DUPLICATE_KEY", "An account with email %s already exists", input.EmailAddress)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, shared.ErrInternal
	}

	user, err := identity.NewUser(input.Name, input.EmailAddress, input.ContactNumber, input.Address, string(hash))
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to save user", zap.Error(err))
		return nil, shared.ErrInternal
	}

	s.logger.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.EmailAddress))

	info := userInfo(user)
	return &info, nil
}

// Login authenticates a user by email and password and returns a token pair
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, input.EmailAddress)
	if err != nil || user == nil {
		s.logger.Warn("Login attempt for unknown email", zap.String("email", input.EmailAddress))
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		s.logger.Warn("Invalid password attempt", zap.String("email", input.EmailAddress))
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid email or password")
	}

	if user.IsPending() {
		s.logger.Warn("Login attempt for pending account", zap.String("email", input.EmailAddress))
		return nil, shared.NewDomainError("UNAUTHORIZED", "Account is awaiting admin approval")
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: user.ID,
		Email:  user.EmailAddress,
		Role:   user.Role,
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.ErrInternal
	}

	s.logger.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("role", user.Role.String()))

	return &LoginResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
		User:                  userInfo(user),
	}, nil
}

// RefreshToken exchanges a valid refresh token for a new token pair. The
// user's current role is re-read so a role change takes effect on refresh.
func (s *AuthService) RefreshToken(ctx context.Context, input RefreshTokenInput) (*RefreshTokenResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		s.logger.Warn("Refresh token validation failed", zap.Error(err))
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, shared.NewDomainError("UNAUTHORIZED", "Refresh token has expired")
		}
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid refresh token")
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid refresh token")
	}

	invalidated, err := s.blacklist.IsUserTokenInvalidated(ctx, claims.UserID, claims.GetIssuedAtTime())
	if err != nil {
		s.logger.Error("Blacklist lookup failed", zap.Error(err))
		return nil, shared.ErrInternal
	}
	if invalidated {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Session has been revoked")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil || user == nil {
		s.logger.Warn("Token refresh for missing user", zap.String("user_id", claims.UserID))
		return nil, shared.NewDomainError("UNAUTHORIZED", "Account no longer exists")
	}
	if user.IsPending() {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Account is awaiting admin approval")
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: user.ID,
		Email:  user.EmailAddress,
		Role:   user.Role,
	})
	if err != nil {
		s.logger.Error("Failed to refresh token pair", zap.Error(err))
		return nil, shared.ErrInternal
	}

	s.logger.Info("Token refreshed", zap.String("user_id", user.ID.String()))

	return &RefreshTokenResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
	}, nil
}

// Logout blacklists the presented access token for its remaining lifetime
// and invalidates outstanding refresh tokens for the user.
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	claims, err := s.jwtService.ValidateAccessToken(input.AccessToken)
	if err != nil {
		// An expired or garbled token has nothing left to revoke.
		s.logger.Debug("Logout with invalid access token", zap.Error(err))
		return nil
	}

	if ttl := claims.GetRemainingTTL(); ttl > 0 {
		if err := s.blacklist.AddToBlacklist(ctx, claims.ID, ttl); err != nil {
			s.logger.Error("Failed to blacklist token", zap.Error(err))
			return shared.ErrInternal
		}
	}

	refreshTTL := s.jwtService.GetRefreshTokenExpiration()
	if err := s.blacklist.AddUserTokensToBlacklist(ctx, input.UserID.String(), refreshTTL); err != nil {
		s.logger.Error("Failed to invalidate user tokens", zap.Error(err))
		return shared.ErrInternal
	}

	s.logger.Info("User logged out", zap.String("user_id", input.UserID.String()))
	return nil
}

// GetCurrentUser returns the profile of the authenticated user
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil || user == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "User not found")
	}

	info := userInfo(user)
	return &info, nil
}
