package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/99minutos/auth-service/internal/api/handler"
	"github.com/99minutos/auth-service/internal/api/middleware"
	"github.com/99minutos/auth-service/internal/core/ports"
)

// Dependencies carries everything the router wires into handlers.
type Dependencies struct {
	AuthService ports.AuthService
	Tokens      ports.TokenVerifier
	// Revocations is optional; /api/logout is only mounted when it is set.
	Revocations ports.TokenRevoker
	// HealthChecks are run by /health/ready, keyed by dependency name.
	HealthChecks   map[string]handler.Check
	Logger         zerolog.Logger
	AllowedOrigins []string
	// Registerer and Gatherer enable HTTP metrics and /metrics when set.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	// Metrics wrap the request logger: the logger hands errors to
	// HTTPErrorHandler, so the status observed here is the one written.
	if deps.Registerer != nil {
		e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Namespace:  "auth",
			Subsystem:  "http",
			Registerer: deps.Registerer,
			Skipper: func(c echo.Context) bool {
				return c.Path() == "/metrics"
			},
		}))
	}
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     deps.AllowedOrigins,
		AllowMethods:     []string{echo.GET, echo.POST, echo.OPTIONS},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	if deps.Gatherer != nil {
		e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
			Gatherer: deps.Gatherer,
		}))
	}

	authHandler := handler.NewAuthHandler(deps.AuthService)
	sessionHandler := handler.NewSessionHandler(deps.Revocations)
	healthHandler := handler.NewHealthHandler(deps.HealthChecks)

	// --- Auth routes ---
	g := e.Group("/api")
	g.POST("/register", authHandler.Register)
	g.POST("/login", authHandler.Login)
	g.POST("/signup", authHandler.Signup)

	authed := middleware.Auth(deps.Tokens, deps.Revocations)
	g.GET("/me", sessionHandler.Me, authed)
	if deps.Revocations != nil {
		g.POST("/logout", sessionHandler.Logout, authed)
	}

	// --- Health probes (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
