package handler

import (
	"time"

	appIdentity "github.com/procure/backend/internal/application/identity"
)

// RegisterRequest is the payload for user registration
type RegisterRequest struct {
	Name          string `json:"name" binding:"required,max=100"`
	EmailAddress  string `json:"emailAddress" binding:"required,email"`
	ContactNumber string `json:"contactNumber" binding:"required,max=20"`
	Address       string `json:"address" binding:"required,max=200"`
	Password      string `json:"password" binding:"required,min=8,max=72"`
}

// LoginRequest is the payload for user login
type LoginRequest struct {
	EmailAddress string `json:"emailAddress" binding:"required,email"`
	Password     string `json:"password" binding:"required"`
}

// RefreshTokenRequest is the payload for token refresh
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResponse carries an issued token pair
type TokenResponse struct {
	AccessToken           string    `json:"accessToken"`
	RefreshToken          string    `json:"refreshToken"`
	AccessTokenExpiresAt  time.Time `json:"accessTokenExpiresAt"`
	RefreshTokenExpiresAt time.Time `json:"refreshTokenExpiresAt"`
	TokenType             string    `json:"tokenType"`
}

// UserResponse is the read model of a user account
type UserResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	EmailAddress  string    `json:"emailAddress"`
	ContactNumber string    `json:"contactNumber"`
	Address       string    `json:"address"`
	Role          int       `json:"role"`
	RoleName      string    `json:"roleName"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

// LoginResponse carries the token pair and the authenticated user
type LoginResponse struct {
	Token TokenResponse `json:"token"`
	User  UserResponse  `json:"user"`
}

// RefreshTokenResponse carries the rotated token pair
type RefreshTokenResponse struct {
	Token TokenResponse `json:"token"`
}

// AssignRoleRequest is the payload for the admin role-assignment operation
type AssignRoleRequest struct {
	Role int `json:"role" binding:"min=0,max=2"`
}

func toUserResponse(u appIdentity.UserInfo) UserResponse {
	return UserResponse{
		ID:            u.ID.String(),
		Name:          u.Name,
		EmailAddress:  u.EmailAddress,
		ContactNumber: u.ContactNumber,
		Address:       u.Address,
		Role:          int(u.Role),
		RoleName:      u.Role.String(),
		Status:        string(u.Status),
		CreatedAt:     u.CreatedAt,
	}
}
