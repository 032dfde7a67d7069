// Package integration exercises the full HTTP stack against in-memory
// repositories: real handlers, JWT middleware, services and the
// reconciliation engine, with only the database swapped out.
package integration

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appIdentity "github.com/procure/backend/internal/application/identity"
	appProcurement "github.com/procure/backend/internal/application/procurement"
	"github.com/procure/backend/internal/application/reconciliation"
	"github.com/procure/backend/internal/domain/identity"
	"github.com/procure/backend/internal/infrastructure/auth"
	"github.com/procure/backend/internal/infrastructure/config"
	"github.com/procure/backend/internal/infrastructure/report"
	"github.com/procure/backend/tests/testutil"

	"github.com/procure/backend/internal/interfaces/http/handler"
	"github.com/procure/backend/internal/interfaces/http/middleware"
	"github.com/procure/backend/internal/interfaces/http/router"
)

// Env is a fully wired application instance backed by in-memory stores.
type Env struct {
	Engine *gin.Engine
	Users  *testutil.MemUserStore
}

func newEnv(t *testing.T) *Env {
	t.Helper()

	log := zap.NewNop()

	users := testutil.NewMemUserStore()
	requisitions := testutil.NewRequisitionStore()
	purchaseOrders := testutil.NewPurchaseOrderStore()
	grns := testutil.NewGRNStore()
	grnReturns := testutil.NewGRNReturnStore()
	issues := testutil.NewIssueStore()
	issueReturns := testutil.NewIssueReturnStore()
	consumptions := testutil.NewMemConsumptionStore()

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "integration-access-secret",
		RefreshSecret:          "integration-refresh-secret",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "procure-backend",
	})
	blacklist := auth.NewInMemoryTokenBlacklist()

	engine := reconciliation.NewEngine(log)
	policy := reconciliation.DefaultChainPolicy()

	authService := appIdentity.NewAuthService(users, jwtService, blacklist, log)
	userService := appIdentity.NewUserService(users, log)

	requisitionService := appProcurement.NewRequisitionService(requisitions, log)
	purchaseOrderService := appProcurement.NewPurchaseOrderService(purchaseOrders, log)
	grnService := appProcurement.NewGRNService(grns, purchaseOrders, consumptions, engine, policy, log)
	grnReturnService := appProcurement.NewGRNReturnService(grnReturns, grns, consumptions, engine, log)
	issueService := appProcurement.NewIssueService(issues, grns, consumptions, engine, policy, log)
	issueReturnService := appProcurement.NewIssueReturnService(issueReturns, issues, consumptions, engine, log)

	reports := report.NewExcelAdapter(log)

	web := gin.New()
	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.TokenBlacklist = blacklist

	r := router.NewRouter(web, router.WithAPIVersion("v1"))
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))
	r.Register(handler.NewAuthHandler(authService)).
		Register(handler.NewUserHandler(userService)).
		Register(handler.NewRequisitionHandler(requisitionService, reports)).
		Register(handler.NewPurchaseOrderHandler(purchaseOrderService, reports)).
		Register(handler.NewGRNHandler(grnService, reports)).
		Register(handler.NewGRNReturnHandler(grnReturnService, reports)).
		Register(handler.NewIssueHandler(issueService, reports)).
		Register(handler.NewIssueReturnHandler(issueReturnService, reports))
	r.Setup()

	return &Env{Engine: web, Users: users}
}

// registerUser creates an account through the registration endpoint and
// approves it with the given role directly in the store, since a fresh
// environment has no admin to approve it over HTTP.
func (e *Env) registerUser(t *testing.T, name, email, password string, role identity.Role) {
	t.Helper()

	rec := testutil.DoJSON(t, e.Engine, http.MethodPost, "/api/v1/auth/register", map[string]any{
		"name":          name,
		"emailAddress":  email,
		"contactNumber": "9000000000",
		"address":       "Plant 1",
		"password":      password,
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	user, err := e.Users.FindByEmail(context.Background(), email)
	require.NoError(t, err)
	require.NoError(t, user.AssignRole(role))
	require.NoError(t, e.Users.Save(context.Background(), user))
}

// login exchanges credentials for an access token through the login
// endpoint.
func (e *Env) login(t *testing.T, email, password string) string {
	t.Helper()

	rec := testutil.DoJSON(t, e.Engine, http.MethodPost, "/api/v1/auth/login", map[string]any{
		"emailAddress": email,
		"password":     password,
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := testutil.DecodeResponse(t, rec)
	token, ok := testutil.DataField(t, resp, "token").(map[string]any)
	require.True(t, ok, "login response has no token object")
	access, ok := token["accessToken"].(string)
	require.True(t, ok, "login response has no access token")
	return access
}
