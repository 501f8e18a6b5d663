package router

import (
	"github.com/gin-gonic/gin"
	"github.com/retail/backoffice/internal/infrastructure/config"
	"github.com/retail/backoffice/internal/infrastructure/logger"
	"github.com/retail/backoffice/internal/interfaces/http/dto"
	"github.com/retail/backoffice/internal/interfaces/http/handler"
	"github.com/retail/backoffice/internal/interfaces/http/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// Handlers groups the HTTP handlers served by the engine
type Handlers struct {
	Health  *handler.HealthHandler
	Auth    *handler.AuthHandler
	Sales   *handler.SaleHandler
	Credits *handler.CreditHandler
}

// EngineConfig carries the middleware dependencies of the engine
type EngineConfig struct {
	Logger *zap.Logger
	HTTP   config.HTTPConfig

	ServiceName    string
	TracingEnabled bool
	// Meter records HTTP metrics; nil disables them
	Meter metric.Meter

	JWT middleware.JWTMiddlewareConfig
	// AuthDisabled takes the tenant from X-Tenant-ID instead of a bearer token
	AuthDisabled bool

	Idempotency middleware.IdempotencyConfig

	// Swagger guards the API document under /swagger
	Swagger middleware.SwaggerConfig
}

// NewEngine builds the gin engine with the middleware stack and the ledger routes.
//
// Middleware order: request logging and ID, panic recovery, security headers,
// CORS, tracing, metrics, body limit. Routes under /api/v1 other than login
// additionally require a tenant, resolved from the bearer token or, with auth
// disabled, from X-Tenant-ID. The API document under /swagger answers 404
// unless cfg.Swagger enables it.
func NewEngine(cfg EngineConfig, h Handlers) (*gin.Engine, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	httpMetrics, err := middleware.HTTPMetrics(cfg.Meter)
	if err != nil {
		return nil, err
	}

	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfigFrom(cfg.HTTP)))
	engine.Use(middleware.Tracing(cfg.ServiceName, cfg.TracingEnabled))
	engine.Use(httpMetrics)
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(dto.GetHTTPStatus(dto.ErrCodeRouteNotFound), dto.NewErrorResponseWithRequestID(
			dto.ErrCodeRouteNotFound, "Route not found", c.GetString(logger.GinRequestIDKey),
		))
	})

	if h.Health != nil {
		engine.GET("/health", h.Health.Health)
	}

	jwtCfg := cfg.JWT
	if jwtCfg.Logger == nil {
		jwtCfg.Logger = log
	}
	authenticate := middleware.HeaderTenantMiddleware(log)
	var bearer gin.HandlerFunc
	if !cfg.AuthDisabled {
		bearer = middleware.JWTAuthMiddleware(jwtCfg)
		authenticate = bearer
		log.Info("Bearer authentication enabled")
	} else {
		log.Warn("Bearer authentication disabled; tenant taken from " + middleware.TenantHeaderKey)
	}
	protected := []gin.HandlerFunc{authenticate, middleware.SpanEnricher()}

	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(cfg.Swagger, bearer),
		ginSwagger.WrapHandler(swaggerFiles.Handler))

	idemCfg := cfg.Idempotency
	if idemCfg.Logger == nil {
		idemCfg.Logger = log
	}
	idempotent := middleware.Idempotency(idemCfg)

	r := NewRouter(engine, WithAPIVersion("v1"))

	if h.Auth != nil {
		r.Register(NewDomainGroup("auth", "/auth").
			POST("/login", h.Auth.Login))
		r.Register(NewDomainGroup("session", "/auth").
			Use(protected...).
			GET("/me", h.Auth.Me).
			POST("/logout", h.Auth.Logout))
	}

	if h.Sales != nil {
		r.Register(NewDomainGroup("sales", "/ventas").
			Use(protected...).
			GET("/metadata", h.Sales.Metadata).
			GET("", h.Sales.List).
			GET("/:id", h.Sales.Get).
			POST("", idempotent, h.Sales.Create).
			PUT("/:id", h.Sales.Update).
			DELETE("/:id", h.Sales.Delete))
	}

	if h.Credits != nil {
		r.Register(NewDomainGroup("credits", "/creditos").
			Use(protected...).
			GET("", h.Credits.List).
			POST("/:id/pagos", idempotent, h.Credits.RecordPayment))
	}

	r.Setup()
	return engine, nil
}
