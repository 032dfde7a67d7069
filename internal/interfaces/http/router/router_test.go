package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testRegistrar struct {
	prefix string
}

func (r *testRegistrar) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET(r.prefix+"/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
}

func TestNewRouter(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	assert.NotNil(t, r)
	assert.Equal(t, "v1", r.apiVersion)
}

func TestRouterWithAPIVersion(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v2"))

	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	NewRouter(engine).
		Register(&testRegistrar{prefix: "/requisitions"}).
		Register(&testRegistrar{prefix: "/grns"}).
		Setup()

	for _, path := range []string{"/api/v1/requisitions/ping", "/api/v1/grns/ping"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestRouterMiddlewareAppliesToAPIRoutes(t *testing.T) {
	engine := gin.New()
	var seen bool
	NewRouter(engine).
		Use(func(c *gin.Context) { seen = true; c.Next() }).
		Register(&testRegistrar{prefix: "/users"}).
		Setup()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/ping", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, seen)
}

func TestRouterVersionedPrefix(t *testing.T) {
	engine := gin.New()
	NewRouter(engine, WithAPIVersion("v2")).
		Register(&testRegistrar{prefix: "/issues"}).
		Setup()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/issues/ping", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v2/issues/ping", nil)
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
