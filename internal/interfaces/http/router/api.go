package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/retail-inventory/backend/internal/domain/shared"
	"github.com/retail-inventory/backend/internal/infrastructure/logger"
	"github.com/retail-inventory/backend/internal/interfaces/http/dto"
	"github.com/retail-inventory/backend/internal/interfaces/http/handler"
	"github.com/retail-inventory/backend/internal/interfaces/http/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// Handlers are the HTTP handlers mounted by NewEngine
type Handlers struct {
	System    *handler.SystemHandler
	Auth      *handler.AuthHandler
	Inventory *handler.InventoryHandler
	Product   *handler.ProductHandler
	Brand     *handler.ClassificationHandler
	Category  *handler.ClassificationHandler
	Type      *handler.ClassificationHandler
	Location  *handler.LocationHandler
	Supplier  *handler.SupplierHandler
	Dashboard *handler.DashboardHandler
	Retail    *handler.RetailHandler
}

// Options configures the middleware chain
type Options struct {
	Logger         *zap.Logger
	ServiceName    string
	TracingEnabled bool
	// Meter enables HTTP metrics when set
	Meter          metric.Meter
	CORS           middleware.CORSConfig
	Security       middleware.SecurityConfig
	MaxBodySize    int64
	TrustedProxies []string
	JWT            middleware.JWTConfig
	Tenant         middleware.TenantConfig
	// LoginLimiter throttles POST /auth/login per client IP when set
	LoginLimiter   *middleware.RateLimiter
	SwaggerEnabled bool
	// APIVersion defaults to v1
	APIVersion string
}

// NewEngine builds the gin engine with the full middleware chain and every
// API route
func NewEngine(opts Options, h Handlers) (*gin.Engine, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(opts.TrustedProxies); err != nil {
		return nil, err
	}
	middleware.SetupValidator()

	engine.Use(
		logger.Recovery(opts.Logger),
		middleware.RequestID(),
		middleware.Tracing(opts.ServiceName, opts.TracingEnabled),
		middleware.TracingAttributes(),
		logger.GinMiddleware(opts.Logger),
	)
	if opts.Meter != nil {
		httpMetrics, err := middleware.HTTPMetrics(opts.Meter)
		if err != nil {
			return nil, err
		}
		engine.Use(httpMetrics)
	}
	engine.Use(
		middleware.SecureWithConfig(opts.Security),
		middleware.CORSWithConfig(opts.CORS),
	)
	if opts.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(opts.MaxBodySize))
	}

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(shared.CodeNotFound, "Route not found", c.GetString(middleware.RequestIDKey)))
	})

	engine.GET("/health", h.System.Health)
	if opts.SwaggerEnabled {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	var routerOpts []RouterOption
	if opts.APIVersion != "" {
		routerOpts = append(routerOpts, WithAPIVersion(opts.APIVersion))
	}
	r := NewRouter(engine, routerOpts...)
	for _, g := range apiGroups(opts, h) {
		r.Register(g)
	}
	r.Setup()

	return engine, nil
}

func apiGroups(opts Options, h Handlers) []*DomainGroup {
	authenticated := middleware.JWTAuth(opts.JWT)
	tenant := middleware.Tenant(opts.Tenant)

	system := NewDomainGroup("system", "")
	system.GET("/ping", h.System.Ping)

	authGroup := NewDomainGroup("auth", "/auth")
	if opts.LoginLimiter != nil {
		authGroup.POST("/login", middleware.RateLimit(opts.LoginLimiter), h.Auth.Login)
	} else {
		authGroup.POST("/login", h.Auth.Login)
	}
	session := authGroup.Group("session", "").Use(authenticated)
	session.POST("/logout", h.Auth.Logout)
	session.GET("/me", h.Auth.CurrentUser)

	inventory := NewDomainGroup("inventory", "/inventory").Use(authenticated, tenant)
	inventory.GET("", h.Inventory.List)
	inventory.POST("/create", h.Inventory.Create)
	inventory.GET("/:id", h.Inventory.GetByID)
	inventory.PUT("/:id", h.Inventory.Update)
	inventory.DELETE("/:id", h.Inventory.Delete)
	inventory.PUT("/stock-in/:id", h.Inventory.StockIn)
	inventory.PUT("/stock-out/:id", h.Inventory.StockOut)
	inventory.PUT("/move-stock/:id", h.Inventory.MoveStock)

	movements := NewDomainGroup("stock-movements", "/stock-movements").Use(authenticated, tenant)
	movements.GET("", h.Inventory.ListMovements)
	movements.GET("/:id", h.Inventory.GetMovement)

	locations := NewDomainGroup("locations", "/locations").Use(authenticated, tenant)
	locations.GET("", h.Location.List)
	locations.POST("", h.Location.Create)
	locations.GET("/:id", h.Location.GetByID)
	locations.PUT("/:id", h.Location.Update)
	locations.DELETE("/:id", h.Location.Delete)
	locations.POST("/:id/recalculate", h.Location.Recalculate)

	dashboard := NewDomainGroup("dashboard", "/dashboard").Use(authenticated, tenant)
	dashboard.GET("", h.Dashboard.GetStats)

	retails := NewDomainGroup("retails", "/retails").Use(authenticated, middleware.AdminOnly())
	retails.GET("", h.Retail.List)
	retails.POST("", h.Retail.Create)
	retails.POST("/refresh-status", h.Retail.RefreshStatuses)
	retails.GET("/:id", h.Retail.GetByID)
	retails.PUT("/:id", h.Retail.Update)
	retails.PUT("/extend/:id", h.Retail.Extend)
	retails.DELETE("/:id", h.Retail.Delete)

	groups := []*DomainGroup{system, authGroup, inventory, movements, locations, dashboard, retails}
	for _, crud := range []struct {
		name string
		h    crudHandler
	}{
		{"products", h.Product},
		{"brands", h.Brand},
		{"categories", h.Category},
		{"types", h.Type},
		{"suppliers", h.Supplier},
	} {
		g := NewDomainGroup(crud.name, "/"+crud.name).Use(authenticated, tenant)
		g.GET("", crud.h.List)
		g.POST("", crud.h.Create)
		g.GET("/:id", crud.h.GetByID)
		g.PUT("/:id", crud.h.Update)
		g.DELETE("/:id", crud.h.Delete)
		groups = append(groups, g)
	}
	return groups
}

// crudHandler is satisfied by every tenant-scoped resource handler
type crudHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	GetByID(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}
