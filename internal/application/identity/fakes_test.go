package identity

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/procure/backend/internal/domain/identity"
	"github.com/procure/backend/internal/domain/shared"
	"github.com/procure/backend/internal/infrastructure/auth"
	"github.com/procure/backend/internal/infrastructure/config"
)

type memoryUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]identity.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[uuid.UUID]identity.User)}
}

func (r *memoryUserRepo) FindByID(_ context.Context, id uuid.UUID) (*identity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &u, nil
}

func (r *memoryUserRepo) FindByEmail(_ context.Context, emailAddress string) (*identity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.EmailAddress == strings.ToLower(emailAddress) {
			found := u
			return &found, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memoryUserRepo) FindAll(_ context.Context, _ shared.Filter) ([]identity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]identity.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *memoryUserRepo) FindByStatus(_ context.Context, status identity.UserStatus) ([]identity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []identity.User
	for _, u := range r.users {
		if u.Status == status {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *memoryUserRepo) Save(_ context.Context, user *identity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = *user
	return nil
}

func (r *memoryUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *memoryUserRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars!!",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 168 * time.Hour,
		Issuer:                 "procure-backend-test",
	})
}
