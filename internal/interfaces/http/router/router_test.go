package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/connector/internal/infrastructure/magento"
	"github.com/erp/connector/internal/interfaces/http/handler"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())
	assert.Equal(t, "/api/v1", r.BasePath())
	assert.Empty(t, r.registrars)

	r = NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "/api/v2", r.BasePath())
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	group := NewDomainGroup("test", "/test").
		GET("/ping", func(c *gin.Context) {
			c.String(http.StatusOK, "pong")
		}).
		POST("/echo", func(c *gin.Context) {
			c.Status(http.StatusAccepted)
		})

	NewRouter(engine).Register(group).Setup()

	w := serve(engine, http.MethodGet, "/api/v1/test/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())

	assert.Equal(t, http.StatusAccepted, serve(engine, http.MethodPost, "/api/v1/test/echo").Code)
	assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/test/ping").Code)
}

func TestDomainGroup_Middleware(t *testing.T) {
	engine := gin.New()
	calls := 0
	group := NewDomainGroup("guarded", "/guarded").
		Use(func(c *gin.Context) {
			calls++
			c.Next()
		}).
		GET("/a", func(c *gin.Context) { c.Status(http.StatusOK) })

	NewRouter(engine).Register(group).Setup()
	serve(engine, http.MethodGet, "/api/v1/guarded/a")

	assert.Equal(t, 1, calls)
	assert.Equal(t, "guarded", group.Name())
	assert.Equal(t, "/guarded", group.Prefix())
}

func TestDomainGroup_Routes(t *testing.T) {
	group := NewDomainGroup("storefront", "/storefront").
		POST("/query", func(*gin.Context) {}).
		GET("/orders/:id", func(*gin.Context) {})

	assert.Equal(t, []RouteInfo{
		{Method: http.MethodPost, Path: "/storefront/query"},
		{Method: http.MethodGet, Path: "/storefront/orders/:id"},
	}, group.Routes())
}

func TestFilterRoutes(t *testing.T) {
	grammar := magento.DefaultGrammar()
	translator, err := magento.NewTranslator(grammar)
	require.NoError(t, err)
	parser, err := magento.NewParser(grammar)
	require.NoError(t, err)

	engine := gin.New()
	NewRouter(engine).Register(
		SystemRoutes(handler.NewSystemHandler("test")),
		FilterRoutes(handler.NewFilterHandler(translator, parser, nil)),
	).Setup()

	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/api/v1/system/ping").Code)
	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/api/v1/metadata").Code)
	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/api/v1/metadata/orders").Code)
	assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/api/v1/storefront/orders/1").Code)
}

func TestStorefrontRoutes(t *testing.T) {
	routes := StorefrontRoutes(handler.NewStorefrontHandler(nil)).Routes()

	assert.Len(t, routes, 10)
	assert.Contains(t, routes, RouteInfo{Method: http.MethodGet, Path: "/storefront/stock-items"})
	assert.Contains(t, routes, RouteInfo{Method: http.MethodPost, Path: "/storefront/orders/:id/cancel"})
}
