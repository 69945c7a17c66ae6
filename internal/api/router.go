package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/localmart/merchant-platform/docs"
	"github.com/localmart/merchant-platform/internal/api/handler"
	"github.com/localmart/merchant-platform/internal/api/middleware"
	"github.com/localmart/merchant-platform/internal/core/domain"
	"github.com/localmart/merchant-platform/internal/core/ports"
)

// Dependencies are the use cases and probes the router exposes.
type Dependencies struct {
	Guard       ports.AccessGuard
	Auth        ports.AuthService
	Throttle    ports.LoginThrottle
	LoginURLs   handler.LoginURLBuilder
	Shops       ports.ShopService
	Products    ports.ProductService
	Orders      ports.OrderService
	Dashboard   ports.DashboardService
	Ready       map[string]handler.Pinger
	CORSOrigins []string
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	registry := prometheus.NewRegistry()
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: deps.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType},
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "marketplace",
		Subsystem:  "http",
		Registerer: registry,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics" || strings.HasPrefix(c.Path(), "/health")
		},
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Throttle, deps.LoginURLs, log)
	shopHandler := handler.NewShopHandler(deps.Shops)
	productHandler := handler.NewProductHandler(deps.Products)
	orderHandler := handler.NewOrderHandler(deps.Orders)
	dashboardHandler := handler.NewDashboardHandler(deps.Dashboard)

	anyUser := middleware.Auth(deps.Guard, domain.AtLeast(domain.RoleCustomer))
	merchantOnly := middleware.Auth(deps.Guard, domain.Exactly(domain.RoleMerchant))

	// --- Auth routes ---
	e.POST("/auth/google", authHandler.Login)
	e.GET("/auth/google/login-url", authHandler.LoginURL)
	e.GET("/auth/me", authHandler.Me, anyUser)
	e.GET("/profile", authHandler.Me, anyUser)
	e.PUT("/profile", authHandler.UpdateProfile, anyUser)

	// --- Merchant surface: role check in middleware, ownership in services ---
	e.GET("/dashboard", dashboardHandler.Summary, merchantOnly)

	e.GET("/shops", shopHandler.List, merchantOnly)
	e.POST("/shops", shopHandler.Create, merchantOnly)
	e.GET("/shops/:shop_id", shopHandler.Get, merchantOnly)
	e.PUT("/shops/:shop_id", shopHandler.Update, merchantOnly)
	e.PUT("/shops/:shop_id/status", shopHandler.UpdateStatus, merchantOnly)

	e.GET("/shops/:shop_id/products", productHandler.List, merchantOnly)
	e.POST("/shops/:shop_id/products", productHandler.Create, merchantOnly)
	e.GET("/products/:product_id", productHandler.Get, merchantOnly)
	e.PUT("/products/:product_id", productHandler.Update, merchantOnly)

	e.GET("/shops/:shop_id/orders", orderHandler.List, merchantOnly)
	e.PUT("/orders/:order_id/status", orderHandler.UpdateStatus, merchantOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Ready)

	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Ops ---
	gatherers := prometheus.Gatherers{registry, prometheus.DefaultGatherer}
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherers, promhttp.HandlerOpts{})))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one zerolog line per request. Headers are never
// logged, so bearer tokens stay out of the logs.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURIPath:   true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			log.Info().
				Str("method", v.Method).
				Str("path", v.URIPath).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
