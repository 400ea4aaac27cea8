package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/testbot/testbot-api/docs"
	"github.com/testbot/testbot-api/internal/api/handler"
	"github.com/testbot/testbot-api/internal/api/middleware"
	"github.com/testbot/testbot-api/internal/core/domain"
	"github.com/testbot/testbot-api/internal/core/ports"
)

const metricsSubsystem = "http"

// Dependencies carries everything the router wires into handlers.
type Dependencies struct {
	Auth      ports.AuthService
	Tokens    ports.TokenValidator
	Data      ports.DataService
	TestCases ports.TestCaseService
	Reports   ports.ReportService
	Templates ports.TemplateService

	// Policy defaults to domain.DefaultPolicy when nil.
	Policy domain.Policy
	// Checks are the named dependency pings behind /health/ready.
	Checks      map[string]handler.Check
	CORSOrigins []string

	// Registerer and Gatherer default to the global prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer

	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	policy := deps.Policy
	if policy == nil {
		policy = domain.DefaultPolicy()
	}
	registerer := deps.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	origins := deps.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: origins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization, "Idempotency-Key"},
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "testbot",
		Subsystem:  metricsSubsystem,
		Registerer: registerer,
	}))

	// --- Public routes ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Checks)

	e.GET("/", healthHandler.Root)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	authHandler := handler.NewAuthHandler(deps.Auth)
	e.POST("/auth/login", authHandler.Login)

	// --- Protected routes ---
	dataHandler := handler.NewDataHandler(deps.Data)
	testCaseHandler := handler.NewTestCaseHandler(deps.TestCases)
	reportHandler := handler.NewReportHandler(deps.Reports)
	templateHandler := handler.NewTemplateHandler(deps.Templates)

	auth := middleware.Auth(deps.Tokens)
	guard := func(op domain.Operation) []echo.MiddlewareFunc {
		return []echo.MiddlewareFunc{auth, middleware.Authorize(policy, op)}
	}

	e.GET("/data/all", dataHandler.All, guard(domain.OpReadSnapshot)...)
	e.POST("/test-cases", testCaseHandler.Create, guard(domain.OpCreateTestCase)...)
	e.PUT("/test-cases/:id/pause", testCaseHandler.Pause, guard(domain.OpPauseTestCase)...)
	e.PUT("/test-cases/:id/resume", testCaseHandler.Resume, guard(domain.OpResumeTestCase)...)
	e.POST("/reports", reportHandler.Submit, guard(domain.OpSubmitReport)...)
	e.POST("/templates", templateHandler.Create, guard(domain.OpCreateTemplate)...)

	return e
}

// requestLogger writes one access log line per request through zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	log = log.With().Str("component", "http").Logger()
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
