package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sangkips/autoquote-api/internal/config"
	"github.com/sangkips/autoquote-api/internal/domain/enum"
	domainRepo "github.com/sangkips/autoquote-api/internal/domain/repository"
	"github.com/sangkips/autoquote-api/internal/observability"
	"github.com/sangkips/autoquote-api/internal/presentation/http/handler"
	"github.com/sangkips/autoquote-api/internal/presentation/http/middleware"
	"github.com/sangkips/autoquote-api/pkg/apperror"
	"github.com/sangkips/autoquote-api/pkg/utils"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	User      *handler.UserHandler
	Customer  *handler.CustomerHandler
	Company   *handler.CompanyHandler
	Vehicle   *handler.VehicleHandler
	SalesRep  *handler.SalesRepHandler
	Term      *handler.TermHandler
	Profile   *handler.ProfileHandler
	Quotation *handler.QuotationHandler
	Pricing   *handler.PricingHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	RateLimiter     *middleware.RateLimiter
	Metrics         *observability.Metrics
	Logger          *zap.Logger
	// Ready reports whether the service can take traffic, for /health.
	Ready func() error
}

// NewRateLimiter builds the limiter from the rate limit settings
func NewRateLimiter(cfg *config.RateLimitConfig) *middleware.RateLimiter {
	return middleware.NewRateLimiter(middleware.RateLimiterConfigFor(cfg.Requests, time.Duration(cfg.Duration)*time.Second))
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(apperror.JSONFieldName)
	}

	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	rateLimiter := deps.RateLimiter
	if rateLimiter == nil {
		rateLimiter = NewRateLimiter(&deps.Cfg.RateLimit)
	}

	router := gin.New()

	// Global middleware
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RecoveryMiddleware(log))
	if deps.Metrics != nil {
		router.Use(observability.GinMiddleware(deps.Metrics))
	}
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		status, code := "ok", http.StatusOK
		if deps.Ready != nil {
			if err := deps.Ready(); err != nil {
				status, code = "unavailable", http.StatusServiceUnavailable
			}
		}
		c.JSON(code, gin.H{
			"status":  status,
			"service": deps.Cfg.App.Name,
		})
	})
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		auth := v1.Group("/auth")
		auth.Use(rateLimiter.Middleware())
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(rateLimiter.Middleware())
		protected.Use(middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo}))

		registerProtectedRoutes(protected, h)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	admin := middleware.RequireRole(enum.UserRoleAdmin)

	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	protected.POST("/pricing/preview", h.Pricing.Preview)

	registerQuotationRoutes(protected, h)

	customers := protected.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}

	// Catalogue reads are open to sales staff, writes are admin only.
	companies := protected.Group("/companies")
	{
		companies.GET("", h.Company.List)
		companies.GET("/:id", h.Company.Get)
		companies.POST("", admin, h.Company.Create)
		companies.PUT("/:id", admin, h.Company.Update)
		companies.DELETE("/:id", admin, h.Company.Delete)
	}

	vehicles := protected.Group("/vehicles")
	{
		vehicles.GET("", h.Vehicle.List)
		vehicles.GET("/:id", h.Vehicle.Get)
		vehicles.POST("", admin, h.Vehicle.Create)
		vehicles.PUT("/:id", admin, h.Vehicle.Update)
		vehicles.DELETE("/:id", admin, h.Vehicle.Delete)
	}

	reps := protected.Group("/sales-reps")
	{
		reps.GET("", h.SalesRep.List)
		reps.GET("/:id", h.SalesRep.Get)
		reps.POST("", admin, h.SalesRep.Create)
		reps.PUT("/:id", admin, h.SalesRep.Update)
		reps.DELETE("/:id", admin, h.SalesRep.Delete)
	}

	terms := protected.Group("/terms")
	{
		terms.GET("", h.Term.List)
		terms.GET("/:id", h.Term.Get)
		terms.POST("", admin, h.Term.Create)
		terms.PUT("/:id", admin, h.Term.Update)
		terms.DELETE("/:id", admin, h.Term.Delete)
	}

	profiles := protected.Group("/customization-profiles")
	{
		profiles.GET("", h.Profile.List)
		profiles.GET("/resolved", h.Profile.Resolved)
		profiles.GET("/:id", h.Profile.Get)
		profiles.POST("", admin, h.Profile.Create)
		profiles.PUT("/:id", admin, h.Profile.Update)
		profiles.DELETE("/:id", admin, h.Profile.Delete)
		profiles.POST("/:id/default", admin, h.Profile.SetDefault)
	}

	users := protected.Group("/users")
	users.Use(admin)
	{
		users.GET("", h.User.List)
		users.POST("", h.User.Create)
		users.PUT("/:id/active", h.User.SetActive)
	}
}

func registerQuotationRoutes(protected *gin.RouterGroup, h *Handlers) {
	quotations := protected.Group("/quotations")
	{
		quotations.GET("", h.Quotation.List)
		quotations.POST("", h.Quotation.Create)
		quotations.GET("/register.pdf", h.Quotation.Register)
		quotations.GET("/:id", h.Quotation.Get)
		quotations.PUT("/:id", h.Quotation.Update)
		quotations.DELETE("/:id", h.Quotation.Delete)
		quotations.PATCH("/:id/status", h.Quotation.UpdateStatus)
		quotations.GET("/:id/pdf", h.Quotation.PDF)
		quotations.POST("/:id/email", h.Quotation.Email)
	}
}
