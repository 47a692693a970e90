package handler

import (
	"net/http"

	"property-service/internal/middleware"
	"property-service/internal/model"
	"property-service/pkg/logger"
	"property-service/pkg/validation"
	"property-service/prometheus"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Router holds everything needed to serve the API.
type Router struct {
	Properties    *PropertyHandler
	Inquiries     *InquiryHandler
	Auth          *AuthHandler
	Health        *HealthHandler
	Authenticator middleware.Authenticator
}

// ServerOptions tunes the echo instance.
type ServerOptions struct {
	CORSOrigins []string
	// BodyLimit is an echo size string such as "50M".
	BodyLimit string
}

// NewServer builds the echo instance with middleware and routes mounted.
func NewServer(opts ServerOptions, r Router) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler
	e.Validator = validation.New()

	e.Use(echomw.Recover())
	e.Use(middleware.RequestIDMiddleware)
	// metrics wraps the request logger, which hands errors to ErrorHandler
	e.Use(middleware.MetricsMiddleware)
	e.Use(logger.Middleware())
	if len(opts.CORSOrigins) > 0 {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins: opts.CORSOrigins,
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		}))
	}
	if opts.BodyLimit != "" {
		e.Use(echomw.BodyLimit(opts.BodyLimit))
	}

	e.GET("/metrics", echo.WrapHandler(prometheus.Handler()))
	r.Mount(e)
	return e
}

// Mount registers the routes on e.
func (r Router) Mount(e *echo.Echo) {
	if r.Health != nil {
		e.GET("/health", r.Health.Check)
	}

	requireAuth := middleware.RequireAuth(r.Authenticator)
	adminOnly := middleware.RequireRole(model.RoleAdmin)

	api := e.Group("/api")

	properties := api.Group("/properties")
	properties.GET("", r.Properties.List)
	properties.GET("/stats/dashboard", r.Properties.DashboardStats, requireAuth, adminOnly)
	properties.GET("/:id", r.Properties.Get)
	properties.POST("", r.Properties.Create, requireAuth, adminOnly)
	properties.PUT("/:id", r.Properties.Update, requireAuth, adminOnly)
	properties.PATCH("/:id/status", r.Properties.UpdateStatus, requireAuth, adminOnly)
	properties.DELETE("/:id", r.Properties.Delete, requireAuth, adminOnly)

	inquiries := api.Group("/inquiries")
	inquiries.POST("", r.Inquiries.Create)
	inquiries.GET("/stats", r.Inquiries.Stats, requireAuth, adminOnly)
	inquiries.GET("", r.Inquiries.List, requireAuth, adminOnly)
	inquiries.GET("/:id", r.Inquiries.Get, requireAuth, adminOnly)
	inquiries.PUT("/:id", r.Inquiries.UpdateStatus, requireAuth, adminOnly)
	inquiries.DELETE("/:id", r.Inquiries.Delete, requireAuth, adminOnly)

	general := api.Group("/general-inquiries")
	general.POST("", r.Inquiries.CreateGeneral)
	general.GET("/stats", r.Inquiries.GeneralStats, requireAuth, adminOnly)
	general.GET("", r.Inquiries.ListGeneral, requireAuth, adminOnly)
	general.GET("/:id", r.Inquiries.GetGeneral, requireAuth, adminOnly)
	general.PUT("/:id", r.Inquiries.UpdateGeneralStatus, requireAuth, adminOnly)
	general.DELETE("/:id", r.Inquiries.DeleteGeneral, requireAuth, adminOnly)

	authAPI := api.Group("/auth")
	authAPI.POST("/login", r.Auth.Login)
	authAPI.POST("/register", r.Auth.Register, requireAuth, adminOnly)
	authAPI.GET("/me", r.Auth.Me, requireAuth, adminOnly)
	authAPI.PUT("/updatedetails", r.Auth.UpdateDetails, requireAuth, adminOnly)
	authAPI.PUT("/updatepassword", r.Auth.UpdatePassword, requireAuth, adminOnly)
}
