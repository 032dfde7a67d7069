package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/procure/backend/internal/domain/identity"
	"github.com/procure/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// UserService handles admin-only user administration: listing accounts,
// approving pending registrations by assigning a role, and deletion.
type UserService struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new user administration service
func NewUserService(userRepo identity.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

func requireUserAdmin(actorRole identity.Role) error {
	if !actorRole.CanManageUsers() {
		return shared.ErrUnauthorized
	}
	return nil
}

// ListUsers returns all accounts, paginated
func (s *UserService) ListUsers(ctx context.Context, actorRole identity.Role, filter shared.Filter) (*shared.Paginated[UserInfo], error) {
	if err := requireUserAdmin(actorRole); err != nil {
		return nil, err
	}

	users, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list users", zap.Error(err))
		return nil, shared.ErrInternal
	}
	total, err := s.userRepo.Count(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to count users", zap.Error(err))
		return nil, shared.ErrInternal
	}

	infos := make([]UserInfo, len(users))
	for i := range users {
		infos[i] = userInfo(&users[i])
	}

	result := shared.NewPaginated(infos, total, filter.Page, filter.PageSize)
	return &result, nil
}

// PendingUsers returns accounts still awaiting approval
func (s *UserService) PendingUsers(ctx context.Context, actorRole identity.Role) ([]UserInfo, error) {
	if err := requireUserAdmin(actorRole); err != nil {
		return nil, err
	}

	users, err := s.userRepo.FindByStatus(ctx, identity.UserStatusPending)
	if err != nil {
		s.logger.Error("Failed to list pending users", zap.Error(err))
		return nil, shared.ErrInternal
	}

	infos := make([]UserInfo, len(users))
	for i := range users {
		infos[i] = userInfo(&users[i])
	}
	return infos, nil
}

// AssignRole sets the target user's role and approves the account
func (s *UserService) AssignRole(ctx context.Context, actorRole identity.Role, input AssignRoleInput) (*UserInfo, error) {
	if err := requireUserAdmin(actorRole); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, input.TargetUserID)
	if err != nil || user == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "User not found")
	}

	if err := user.AssignRole(input.Role); err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to save user", zap.Error(err))
		return nil, shared.ErrInternal
	}

	s.logger.Info("Role assigned",
		zap.String("user_id", user.ID.String()),
		zap.String("role", input.Role.String()))

	info := userInfo(user)
	return &info, nil
}

// DeleteUser removes an account. The account's documents remain, still
// attributed to the deleted user's ID.
func (s *UserService) DeleteUser(ctx context.Context, actorRole identity.Role, actorID, targetID uuid.UUID) error {
	if err := requireUserAdmin(actorRole); err != nil {
		return err
	}
	if actorID == targetID {
		return shared.NewDomainError("UNAUTHORIZED", "Admins cannot delete their own account")
	}

	user, err := s.userRepo.FindByID(ctx, targetID)
	if err != nil || user == nil {
		return shared.NewDomainError("NOT_FOUND", "User not found")
	}

	if err := s.userRepo.Delete(ctx, targetID); err != nil {
		s.logger.Error("Failed to delete user", zap.Error(err))
		return shared.ErrInternal
	}

	s.logger.Info("User deleted", zap.String("user_id", targetID.String()))
	return nil
}
