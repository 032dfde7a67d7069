package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/procure/backend/internal/domain/shared"
)

// UserRepository defines persistence operations for users
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, emailAddress string) (*User, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]User, error)
	FindByStatus(ctx context.Context, status UserStatus) ([]User, error)
	Save(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
