package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/procure/backend/internal/domain/identity"
)

// RegisterInput contains the input for user registration
type RegisterInput struct {
	Name          string
	EmailAddress  string
	ContactNumber string
	Address       string
	Password      string
}

// LoginInput contains the input for user login
type LoginInput struct {
	EmailAddress string
	Password     string
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
	User                  UserInfo
}

// UserInfo contains basic user information returned through the API
type UserInfo struct {
	ID            uuid.UUID
	Name          string
	EmailAddress  string
	ContactNumber string
	Address       string
	Role          identity.Role
	Status        identity.UserStatus
	CreatedAt     time.Time
}

// RefreshTokenInput contains the input for token refresh
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenResult contains the result of a token refresh
type RefreshTokenResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
}

// LogoutInput contains the input for user logout
type LogoutInput struct {
	UserID uuid.UUID
	// AccessToken is the bearer token presented on the logout request;
	// its JTI is blacklisted for the token's remaining lifetime.
	AccessToken string
}

// AssignRoleInput contains the input for the admin role-assignment operation
type AssignRoleInput struct {
	TargetUserID uuid.UUID
	Role         identity.Role
}

func userInfo(u *identity.User) UserInfo {
	return UserInfo{
		ID:            u.ID,
		Name:          u.Name,
		EmailAddress:  u.EmailAddress,
		ContactNumber: u.ContactNumber,
		Address:       u.Address,
		Role:          u.Role,
		Status:        u.Status,
		CreatedAt:     u.CreatedAt,
	}
}
