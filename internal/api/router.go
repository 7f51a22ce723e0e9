package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/rachitkhandelwal41/hospital-portal/internal/api/handler"
	"github.com/rachitkhandelwal41/hospital-portal/internal/api/middleware"
	"github.com/rachitkhandelwal41/hospital-portal/internal/core/domain"
	"github.com/rachitkhandelwal41/hospital-portal/internal/core/ports"
	"github.com/rachitkhandelwal41/hospital-portal/internal/core/session"
)

// RouterDeps carries everything the router needs wired in.
type RouterDeps struct {
	Sessions   *session.Manager
	Gateway    ports.Gateway
	Redis      *redis.Client // nil when the in-memory token store is used
	BackendURL string
	Cookie     middleware.CookieOptions
	Log        zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
// The route map mirrors the portal's navigation contract: auth pages behind
// the anonymous-only guard, each role section behind authentication plus its
// role guard, and everything unknown funnelled to sign-in.
func NewRouter(deps RouterDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Renderer = handler.NewRenderer()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("portal"))
	e.Use(middleware.Session(deps.Sessions, deps.Cookie))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Gateway, deps.Log)
	pages := handler.NewPagesHandler(deps.Gateway, deps.Log)

	// --- Public routes ---
	e.GET("/", pages.Root)

	anon := e.Group("", middleware.AnonymousOnly())
	anon.GET("/sign-in", authHandler.SignInPage)
	anon.POST("/sign-in", authHandler.SignIn)
	anon.GET("/sign-up", authHandler.SignUpPage)
	anon.POST("/sign-up", authHandler.SignUp)

	e.POST("/logout", authHandler.Logout)

	// --- Role sections (authentication checked before role) ---
	patient := e.Group("/patient", middleware.Authenticated(), middleware.RequireRole(domain.RolePatient))
	patient.GET("/dashboard", pages.Page("Patient dashboard"))
	patient.GET("/appointments", pages.Page("My appointments"))
	patient.GET("/prescriptions", pages.Page("My prescriptions"))

	doctor := e.Group("/doctor", middleware.Authenticated(), middleware.RequireRole(domain.RoleDoctor))
	doctor.GET("/dashboard", pages.Page("Doctor dashboard"))
	doctor.GET("/patients", pages.Page("My patients"))
	doctor.GET("/appointments", pages.Page("Appointments"))
	doctor.GET("/prescriptions", pages.Page("Prescriptions"))

	admin := e.Group("/admin", middleware.Authenticated(), middleware.RequireRole(domain.RoleAdmin))
	admin.GET("/dashboard", pages.Page("Admin dashboard"))
	admin.GET("/doctors", pages.Page("Doctors"))
	admin.GET("/departments", pages.Departments)
	admin.GET("/billing", pages.Page("Billing"))
	admin.GET("/reports", pages.Page("Reports"))

	// --- Observability (no auth required) ---
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Redis, deps.BackendURL)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// Unknown paths land on sign-in, same as the original route table.
	e.RouteNotFound("/*", pages.Root)

	return e
}
