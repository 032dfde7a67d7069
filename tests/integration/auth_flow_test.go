package integration

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/procure/backend/internal/domain/identity"
	"github.com/procure/backend/tests/testutil"
)

// TestAuthFlow walks an account through registration, approval, login,
// token refresh and logout.
func TestAuthFlow(t *testing.T) {
	env := newEnv(t)

	rec := testutil.DoJSON(t, env.Engine, http.MethodPost, "/api/v1/auth/register", map[string]any{
		"name":          "New Keeper",
		"emailAddress":  "new@plant.example",
		"contactNumber": "9000000001",
		"address":       "Plant 2",
		"password":      "keeper-pass-9",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	resp := testutil.DecodeResponse(t, rec)
	assert.Equal(t, "pending", testutil.DataField(t, resp, "status"))

	// Pending accounts cannot log in until an admin approves them.
	rec = testutil.DoJSON(t, env.Engine, http.MethodPost, "/api/v1/auth/login", map[string]any{
		"emailAddress": "new@plant.example",
		"password":     "keeper-pass-9",
	}, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code, rec.Body.String())

	env.registerUser(t, "Plant Admin", "admin@plant.example", "admin-pass-1", identity.RoleAdmin)
	adminToken := env.login(t, "admin@plant.example", "admin-pass-1")

	// The admin approves the pending account over HTTP.
	rec = testutil.DoJSON(t, env.Engine, http.MethodGet, "/api/v1/users/pending", nil, adminToken)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp = testutil.DecodeResponse(t, rec)
	pending, ok := resp.Data.([]any)
	require.True(t, ok, "pending users is not a list")
	require.Len(t, pending, 1)
	pendingUser, ok := pending[0].(map[string]any)
	require.True(t, ok)
	pendingID, ok := pendingUser["id"].(string)
	require.True(t, ok)

	rec = testutil.DoJSON(t, env.Engine, http.MethodPut, "/api/v1/users/"+pendingID+"/role", map[string]any{
		"role": int(identity.RoleOwner),
	}, adminToken)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	token := env.login(t, "new@plant.example", "keeper-pass-9")

	rec = testutil.DoJSON(t, env.Engine, http.MethodGet, "/api/v1/auth/profile", nil, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp = testutil.DecodeResponse(t, rec)
	assert.Equal(t, "new@plant.example", testutil.DataField(t, resp, "emailAddress"))

	// Logout blacklists the access token.
	rec = testutil.DoJSON(t, env.Engine, http.MethodPost, "/api/v1/auth/logout", nil, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = testutil.DoJSON(t, env.Engine, http.MethodGet, "/api/v1/auth/profile", nil, token)
	require.Equal(t, http.StatusUnauthorized, rec.Code, rec.Body.String())
}

// TestRequestsWithoutTokenAreRejected verifies the middleware guards the
// document routes while leaving the auth routes open.
func TestRequestsWithoutTokenAreRejected(t *testing.T) {
	env := newEnv(t)

	rec := testutil.DoJSON(t, env.Engine, http.MethodGet, "/api/v1/requisitions", nil, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code, rec.Body.String())
	resp := testutil.DecodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "UNAUTHORIZED", resp.Error.Code)

	rec = testutil.DoJSON(t, env.Engine, http.MethodPost, "/api/v1/auth/login", map[string]any{
		"emailAddress": "nobody@plant.example",
		"password":     "wrong-pass-1",
	}, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code, rec.Body.String())
	resp = testutil.DecodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "UNAUTHORIZED", resp.Error.Code)
}

// TestTokenRefresh exchanges a refresh token for a new pair.
func TestTokenRefresh(t *testing.T) {
	env := newEnv(t)
	env.registerUser(t, "Store Keeper", "store@plant.example", "store-pass-1", identity.RoleOwner)

	rec := testutil.DoJSON(t, env.Engine, http.MethodPost, "/api/v1/auth/login", map[string]any{
		"emailAddress": "store@plant.example",
		"password":     "store-pass-1",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := testutil.DecodeResponse(t, rec)
	token, ok := testutil.DataField(t, resp, "token").(map[string]any)
	require.True(t, ok)
	refresh, ok := token["refreshToken"].(string)
	require.True(t, ok)

	rec = testutil.DoJSON(t, env.Engine, http.MethodPost, "/api/v1/auth/refresh", map[string]any{
		"refreshToken": refresh,
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp = testutil.DecodeResponse(t, rec)
	fresh, ok := testutil.DataField(t, resp, "token").(map[string]any)
	require.True(t, ok)
	access, ok := fresh["accessToken"].(string)
	require.True(t, ok)
	require.NotEmpty(t, access)

	rec = testutil.DoJSON(t, env.Engine, http.MethodGet, "/api/v1/auth/profile", nil, access)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}
