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

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())

	assert.NotNil(t, r)
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)
}

func TestRouterWithAPIVersion(t *testing.T) {
	r := NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	group := NewDomainGroup("test", "/test")
	group.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	r.Register(group).Setup()

	w := serve(engine, http.MethodGet, "/api/v1/test/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestRouterUse(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine).Use(func(c *gin.Context) {
		c.Header("X-Router", "yes")
		c.Next()
	})
	r.Register(NewDomainGroup("test", "/test").GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	}))
	r.Setup()

	w := serve(engine, http.MethodGet, "/api/v1/test/ping")
	assert.Equal(t, "yes", w.Header().Get("X-Router"))
}

func TestDomainGroup(t *testing.T) {
	t.Run("creates group with name and prefix", func(t *testing.T) {
		g := NewDomainGroup("sales", "/ventas")
		assert.Equal(t, "sales", g.Name())
		assert.Equal(t, "/ventas", g.Prefix())
	})

	t.Run("registers every method", func(t *testing.T) {
		engine := gin.New()
		ok := func(c *gin.Context) { c.String(http.StatusOK, c.Request.Method) }

		g := NewDomainGroup("sales", "/ventas").
			GET("", ok).
			POST("", ok).
			PUT("/:id", ok).
			DELETE("/:id", ok)
		g.RegisterRoutes(engine.Group("/api/v1"))

		for method, path := range map[string]string{
			http.MethodGet:    "/api/v1/ventas",
			http.MethodPost:   "/api/v1/ventas",
			http.MethodPut:    "/api/v1/ventas/1",
			http.MethodDelete: "/api/v1/ventas/1",
		} {
			w := serve(engine, method, path)
			assert.Equal(t, http.StatusOK, w.Code, method)
			assert.Equal(t, method, w.Body.String())
		}
	})

	t.Run("applies middleware only to its own routes", func(t *testing.T) {
		engine := gin.New()
		guarded := NewDomainGroup("guarded", "/guarded").
			Use(func(c *gin.Context) { c.AbortWithStatus(http.StatusUnauthorized) }).
			GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })
		open := NewDomainGroup("open", "/open").
			GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

		api := engine.Group("/api/v1")
		guarded.RegisterRoutes(api)
		open.RegisterRoutes(api)

		assert.Equal(t, http.StatusUnauthorized, serve(engine, http.MethodGet, "/api/v1/guarded/x").Code)
		assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/api/v1/open/x").Code)
	})

	t.Run("groups sharing a prefix", func(t *testing.T) {
		engine := gin.New()
		r := NewRouter(engine)
		r.Register(NewDomainGroup("auth", "/auth").POST("/login", func(c *gin.Context) { c.Status(http.StatusOK) }))
		r.Register(NewDomainGroup("session", "/auth").
			Use(func(c *gin.Context) { c.AbortWithStatus(http.StatusUnauthorized) }).
			GET("/me", func(c *gin.Context) { c.Status(http.StatusOK) }))
		r.Setup()

		assert.Equal(t, http.StatusOK, serve(engine, http.MethodPost, "/api/v1/auth/login").Code)
		assert.Equal(t, http.StatusUnauthorized, serve(engine, http.MethodGet, "/api/v1/auth/me").Code)
	})
}
