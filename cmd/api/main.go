package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sangkips/autoquote-api/internal/application/service"
	"github.com/sangkips/autoquote-api/internal/config"
	"github.com/sangkips/autoquote-api/internal/infrastructure/database"
	"github.com/sangkips/autoquote-api/internal/infrastructure/repository"
	"github.com/sangkips/autoquote-api/internal/observability"
	"github.com/sangkips/autoquote-api/internal/presentation/http/handler"
	"github.com/sangkips/autoquote-api/internal/presentation/http/routes"
	"github.com/sangkips/autoquote-api/pkg/document"
	"github.com/sangkips/autoquote-api/pkg/email"
	"github.com/sangkips/autoquote-api/pkg/logger"
	"github.com/sangkips/autoquote-api/pkg/qrcode"
	"github.com/sangkips/autoquote-api/pkg/report"
	"github.com/sangkips/autoquote-api/pkg/utils"
	"go.uber.org/zap"
)

// idempotencySweepInterval is how often expired idempotency keys are purged
const idempotencySweepInterval = time.Hour

func main() {
	// Load configuration
	cfg := config.Load()

	zlog, err := logger.New(logger.Config{
		ServiceName: cfg.App.Name,
		Environment: cfg.App.Env,
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
	})
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	gormLog := logger.NewGormLogger(logger.GormLevel(cfg.Log.SQLLevel), cfg.Log.SlowQuery)
	db, err := database.NewPostgresDB(ctx, &cfg.Database, gormLog, zlog)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := database.AutoMigrate(db, zlog); err != nil {
		zlog.Fatal("failed to run migrations", zap.Error(err))
	}
	if err := database.SeedDefaultData(ctx, db, cfg.Admin, zlog); err != nil {
		zlog.Warn("failed to seed default data", zap.Error(err))
	}

	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	metrics := observability.NewMetrics(observability.Config{
		ServiceName: cfg.App.Name,
		Environment: cfg.App.Env,
	})

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	salesRepRepo := repository.NewSalesRepRepository(db)
	termRepo := repository.NewTermConditionRepository(db)
	profileRepo := repository.NewCustomizationProfileRepository(db)
	quotationRepo := repository.NewQuotationRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// QR codes are cached in Redis when it is configured
	var qrCache qrcode.Cache
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			zlog.Warn("redis unavailable, QR codes will not be cached", zap.Error(err))
		} else {
			qrCache = qrcode.NewRedisCache(rdb)
		}
	}
	qrClient := qrcode.NewClient(qrcode.Config{
		Endpoint:   cfg.QR.Endpoint,
		Timeout:    cfg.QR.Timeout,
		MaxRetries: cfg.QR.MaxRetries,
		CacheTTL:   cfg.QR.CacheTTL,
		Size:       cfg.QR.Size,
		OnFallback: metrics.QRFallback,
	}, qrCache, zlog.Named("qrcode"))

	fonts := document.Fonts{RegularPath: cfg.PDF.FontPath, BoldPath: cfg.PDF.BoldFontPath}
	renderer, err := document.NewRenderer(document.Options{
		Fonts:        fonts,
		QR:           qrClient,
		Logger:       zlog.Named("document"),
		ArabicDigits: cfg.PDF.ArabicDigits,
		Currency:     cfg.PDF.Currency,
	})
	if err != nil {
		zlog.Fatal("failed to initialize document renderer", zap.Error(err))
	}
	register := report.NewRegisterReport(fonts, renderer.Formatter())

	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
	})

	defaults := service.QuotationDefaults{
		Currency:        cfg.PDF.Currency,
		MinorUnit:       cfg.PDF.MinorUnit,
		VATRate:         cfg.PDF.DefaultVATRate,
		ValidityDays:    cfg.PDF.ValidityDays,
		ReferencePrefix: cfg.PDF.ReferencePrefix,
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager, zlog)
	customerService := service.NewCustomerService(customerRepo)
	companyService := service.NewCompanyService(companyRepo)
	vehicleService := service.NewVehicleService(vehicleRepo)
	salesRepService := service.NewSalesRepService(salesRepRepo)
	termService := service.NewTermService(termRepo)
	customizationService := service.NewCustomizationService(profileRepo, zlog)
	pricingService := service.NewPricingService(defaults)
	quotationService := service.NewQuotationService(
		quotationRepo, companyRepo, customerRepo, vehicleRepo, salesRepRepo, defaults, zlog,
	)
	documentService := service.NewDocumentService(service.DocumentServiceConfig{
		Quotations:    quotationService,
		QuotationRepo: quotationRepo,
		TermRepo:      termRepo,
		Profiles:      customizationService,
		Renderer:      renderer,
		Register:      register,
		Mailer:        emailService,
		Observer:      metrics,
		RenderTimeout: cfg.PDF.RenderTimeout,
		Logger:        zlog,
	})

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		User:      handler.NewUserHandler(authService),
		Customer:  handler.NewCustomerHandler(customerService),
		Company:   handler.NewCompanyHandler(companyService),
		Vehicle:   handler.NewVehicleHandler(vehicleService),
		SalesRep:  handler.NewSalesRepHandler(salesRepService),
		Term:      handler.NewTermHandler(termService),
		Profile:   handler.NewProfileHandler(customizationService),
		Quotation: handler.NewQuotationHandler(quotationService, documentService),
		Pricing:   handler.NewPricingHandler(pricingService),
	}

	rateLimiter := routes.NewRateLimiter(&cfg.RateLimit)
	go rateLimiter.Run(ctx)
	go sweepIdempotencyKeys(ctx, idempotencyRepo, zlog)

	sqlDB, err := db.DB()
	if err != nil {
		zlog.Fatal("failed to get database handle", zap.Error(err))
	}

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		RateLimiter:     rateLimiter,
		Metrics:         metrics,
		Logger:          zlog,
		Ready: func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return sqlDB.PingContext(pingCtx)
		},
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlog.Info("starting server", zap.String("port", port), zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("graceful shutdown failed", zap.Error(err))
	}
	if err := sqlDB.Close(); err != nil {
		zlog.Warn("failed to close database", zap.Error(err))
	}
}

type expiredKeyDeleter interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

func sweepIdempotencyKeys(ctx context.Context, repo expiredKeyDeleter, zlog *zap.Logger) {
	ticker := time.NewTicker(idempotencySweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := repo.DeleteExpired(ctx, now)
			if err != nil {
				zlog.Warn("failed to purge idempotency keys", zap.Error(err))
				continue
			}
			if n > 0 {
				zlog.Info("purged idempotency keys", zap.Int64("count", n))
			}
		}
	}
}
