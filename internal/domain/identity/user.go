package identity

import (
	"strings"
	"time"

	"github.com/procure/backend/internal/domain/shared"
)

// UserStatus represents the approval state of a user account
type UserStatus string

const (
	UserStatusPending  UserStatus = "pending"
	UserStatusApproved UserStatus = "approved"
)

// User is an account that creates and owns procurement documents
type User struct {
	shared.BaseAggregateRoot
	Name          string `gorm:"type:varchar(200);not null"`
	EmailAddress  string `gorm:"type:varchar(200);not null;uniqueIndex"`
	ContactNumber string `gorm:"type:varchar(30);not null"`
	Address       string `gorm:"type:varchar(500)"`
	// PasswordHash is a bcrypt hash; never exposed through the API
	PasswordHash string     `gorm:"type:varchar(100);not null"`
	Role         Role       `gorm:"not null;default:0"`
	Status       UserStatus `gorm:"type:varchar(20);not null;default:'pending'"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new user in pending status with the owner role
func NewUser(name, emailAddress, contactNumber, address, passwordHash string) (*User, error) {
	if name == "" || emailAddress == "" || contactNumber == "" || passwordHash == "" {
		return nil, shared.NewDomainError("MISSING_FIELD", "Name, email, contact number and password are required")
	}
	if !strings.Contains(emailAddress, "@") {
		return nil, shared.NewDomainError("INVALID_FORMAT", "Invalid email address")
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		EmailAddress:      strings.ToLower(emailAddress),
		ContactNumber:     contactNumber,
		Address:           address,
		PasswordHash:      passwordHash,
		Role:              RoleOwner,
		Status:            UserStatusPending,
	}, nil
}

// AssignRole changes the user's role and marks the account approved
func (u *User) AssignRole(role Role) error {
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_FORMAT", "Invalid role")
	}
	u.Role = role
	u.Status = UserStatusApproved
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// IsPending reports whether the account still awaits approval
func (u *User) IsPending() bool {
	return u.Status == UserStatusPending
}
