package identity

import (
	"context"
	"testing"

	"github.com/procure/backend/internal/domain/identity"
	"github.com/procure/backend/internal/domain/shared"
	"github.com/procure/backend/internal/infrastructure/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthFixture() (*AuthService, *memoryUserRepo, *UserService) {
	repo := newMemoryUserRepo()
	blacklist := auth.NewInMemoryTokenBlacklist()
	svc := NewAuthService(repo, testJWTService(), blacklist, zap.NewNop())
	users := NewUserService(repo, zap.NewNop())
	return svc, repo, users
}

func registerInput(email string) RegisterInput {
	return RegisterInput{
		Name:          "Asha Verma",
		EmailAddress:  email,
		ContactNumber: "9876543210",
		Address:       "12 Mill Road",
		Password:      "s3cret-pass",
	}
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, code, derr.Code)
}

func TestRegisterCreatesPendingAccount(t *testing.T) {
	svc, repo, _ := newAuthFixture()
	ctx := context.Background()

	info, err := svc.Register(ctx, registerInput("Asha@Example.com"))
	require.NoError(t, err)

	assert.Equal(t, "asha@example.com", info.EmailAddress)
	assert.Equal(t, identity.UserStatusPending, info.Status)
	assert.Equal(t, identity.RoleOwner, info.Role)

	stored, err := repo.FindByEmail(ctx, "asha@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", stored.PasswordHash)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, registerInput("asha@example.com"))
	require.NoError(t, err)

	_, err = svc.Register(ctx, registerInput("ASHA@example.com"))
	assertCode(t, err, "DUPLICATE_KEY")
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	input := registerInput("asha@example.com")
	input.Password = ""
	_, err := svc.Register(ctx, input)
	assertCode(t, err, "MISSING_FIELD")

	input.Password = "short"
	_, err = svc.Register(ctx, input)
	assertCode(t, err, "INVALID_FORMAT")

	input.Password = "s3cret-pass"
	input.EmailAddress = "not-an-email"
	_, err = svc.Register(ctx, input)
	assertCode(t, err, "INVALID_FORMAT")
}

// approve registers a user and assigns them a role through an admin actor.
func approve(t *testing.T, svc *AuthService, users *UserService, email string, role identity.Role) *UserInfo {
	t.Helper()
	ctx := context.Background()

	info, err := svc.Register(ctx, registerInput(email))
	require.NoError(t, err)

	approved, err := users.AssignRole(ctx, identity.RoleAdmin, AssignRoleInput{
		TargetUserID: info.ID,
		Role:         role,
	})
	require.NoError(t, err)
	return approved
}

func TestLoginPendingAccountRejected(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, registerInput("asha@example.com"))
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginInput{EmailAddress: "asha@example.com", Password: "s3cret-pass"})
	assertCode(t, err, "UNAUTHORIZED")
}

func TestLoginApprovedAccount(t *testing.T) {
	svc, _, users := newAuthFixture()
	ctx := context.Background()

	approved := approve(t, svc, users, "asha@example.com", identity.RoleSecondaryAdmin)

	result, err := svc.Login(ctx, LoginInput{EmailAddress: "asha@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, "Bearer", result.TokenType)
	assert.Equal(t, approved.ID, result.User.ID)
	assert.Equal(t, identity.RoleSecondaryAdmin, result.User.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, users := newAuthFixture()
	ctx := context.Background()

	approve(t, svc, users, "asha@example.com", identity.RoleOwner)

	_, err := svc.Login(ctx, LoginInput{EmailAddress: "asha@example.com", Password: "wrong"})
	assertCode(t, err, "UNAUTHORIZED")
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.Login(context.Background(), LoginInput{EmailAddress: "nobody@example.com", Password: "x"})
	assertCode(t, err, "UNAUTHORIZED")
}

func TestRefreshTokenIssuesNewPair(t *testing.T) {
	svc, _, users := newAuthFixture()
	ctx := context.Background()

	approve(t, svc, users, "asha@example.com", identity.RoleOwner)
	login, err := svc.Login(ctx, LoginInput{EmailAddress: "asha@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEmpty(t, refreshed.RefreshToken)
}

func TestRefreshTokenRejectsAccessToken(t *testing.T) {
	svc, _, users := newAuthFixture()
	ctx := context.Background()

	approve(t, svc, users, "asha@example.com", identity.RoleOwner)
	login, err := svc.Login(ctx, LoginInput{EmailAddress: "asha@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	// An access token is not valid as a refresh token.
	_, err = svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: login.AccessToken})
	assertCode(t, err, "UNAUTHORIZED")
}

func TestRefreshTokenPicksUpRoleChange(t *testing.T) {
	svc, _, users := newAuthFixture()
	ctx := context.Background()

	approved := approve(t, svc, users, "asha@example.com", identity.RoleOwner)
	login, err := svc.Login(ctx, LoginInput{EmailAddress: "asha@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	_, err = users.AssignRole(ctx, identity.RoleAdmin, AssignRoleInput{
		TargetUserID: approved.ID,
		Role:         identity.RoleAdmin,
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: login.RefreshToken})
	require.NoError(t, err)

	claims, err := testJWTService().ValidateAccessToken(refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int(identity.RoleAdmin), claims.Role)
}

func TestRefreshTokenForDeletedUser(t *testing.T) {
	svc, repo, users := newAuthFixture()
	ctx := context.Background()

	approved := approve(t, svc, users, "asha@example.com", identity.RoleOwner)
	login, err := svc.Login(ctx, LoginInput{EmailAddress: "asha@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, approved.ID))

	_, err = svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: login.RefreshToken})
	assertCode(t, err, "UNAUTHORIZED")
}

func TestLogoutRevokesRefreshTokens(t *testing.T) {
	svc, _, users := newAuthFixture()
	ctx := context.Background()

	approved := approve(t, svc, users, "asha@example.com", identity.RoleOwner)
	login, err := svc.Login(ctx, LoginInput{EmailAddress: "asha@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	err = svc.Logout(ctx, LogoutInput{UserID: approved.ID, AccessToken: login.AccessToken})
	require.NoError(t, err)

	_, err = svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: login.RefreshToken})
	assertCode(t, err, "UNAUTHORIZED")
}

func TestLogoutWithGarbageTokenIsNoop(t *testing.T) {
	svc, _, users := newAuthFixture()
	ctx := context.Background()

	approved := approve(t, svc, users, "asha@example.com", identity.RoleOwner)

	err := svc.Logout(ctx, LogoutInput{UserID: approved.ID, AccessToken: "not.a.token"})
	assert.NoError(t, err)
}

func TestGetCurrentUser(t *testing.T) {
	svc, _, users := newAuthFixture()
	ctx := context.Background()

	approved := approve(t, svc, users, "asha@example.com", identity.RoleAdmin)

	info, err := svc.GetCurrentUser(ctx, approved.ID)
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", info.EmailAddress)
	assert.Equal(t, identity.UserStatusApproved, info.Status)
}
