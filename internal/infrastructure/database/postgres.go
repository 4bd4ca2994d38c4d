package database

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sangkips/autoquote-api/internal/config"
	"github.com/sangkips/autoquote-api/internal/domain/entity"
	"github.com/sangkips/autoquote-api/internal/domain/enum"
	"github.com/sangkips/autoquote-api/pkg/document"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewPostgresDB connects to PostgreSQL, retrying with exponential backoff
// until the server accepts connections or ctx is done.
func NewPostgresDB(ctx context.Context, cfg *config.DatabaseConfig, gormLog gormlogger.Interface, log *zap.Logger) (*gorm.DB, error) {
	var db *gorm.DB

	retryPolicy := backoff.NewExponentialBackOff()
	retryPolicy.MaxElapsedTime = 2 * time.Minute
	retryPolicy.MaxInterval = 15 * time.Second

	log.Info("connecting to PostgreSQL", zap.String("host", cfg.Host), zap.String("database", cfg.Name))

	err := backoff.RetryNotify(
		func() error {
			conn, err := gorm.Open(postgres.New(postgres.Config{
				DSN:                  cfg.DSN(),
				PreferSimpleProtocol: true, // disables implicit prepared statement usage
			}), &gorm.Config{
				Logger: gormLog,
			})
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}
			sqlDB, err := conn.DB()
			if err != nil {
				return backoff.Permanent(fmt.Errorf("get underlying sql.DB: %w", err))
			}
			if err := sqlDB.PingContext(ctx); err != nil {
				return fmt.Errorf("ping: %w", err)
			}
			db = conn
			return nil
		},
		backoff.WithContext(retryPolicy, ctx),
		func(err error, next time.Duration) {
			log.Warn("PostgreSQL connection failed, retrying",
				zap.Error(err),
				zap.Duration("next_attempt_in", next))
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Info("connected to PostgreSQL")
	return db, nil
}

// Entities lists every migrated model.
func Entities() []interface{} {
	return []interface{}{
		&entity.User{},
		&entity.Company{},
		&entity.Customer{},
		&entity.Vehicle{},
		&entity.SalesRepresentative{},
		&entity.TermCondition{},
		&entity.CustomizationProfile{},
		&entity.Quotation{},
		&entity.IdempotencyKey{},
	}
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("running database migrations")

	if err := Migrate(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("database migrations completed")
	return nil
}

// indexes holds constraints GORM tags cannot express. Both PostgreSQL and
// SQLite accept partial indexes.
var indexes = []string{
	// At most one live profile is the default.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_customization_profiles_single_default
		ON customization_profiles (is_default) WHERE is_default AND deleted_at IS NULL`,
}

// Migrate migrates every entity and creates the extra indexes.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Entities()...); err != nil {
		return err
	}
	for _, stmt := range indexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}

// DefaultTerms are seeded when the terms table is empty.
var DefaultTerms = []string{
	"الأسعار شاملة ضريبة القيمة المضافة ما لم يذكر خلاف ذلك.",
	"العرض لا يشمل رسوم التأمين والتسجيل إلا إذا نص على ذلك.",
	"يتم التسليم بعد سداد كامل قيمة المركبة.",
	"الأسعار قابلة للتغيير دون إشعار مسبق بعد انتهاء مدة صلاحية العرض.",
}

// SeedDefaultData creates the first administrator, the default
// customization profile and the default terms. Each step only runs when its
// table is empty, so seeding is safe on every start.
func SeedDefaultData(ctx context.Context, db *gorm.DB, admin config.AdminConfig, log *zap.Logger) error {
	log.Info("seeding default data")
	db = db.WithContext(ctx)

	var users int64
	if err := db.Model(&entity.User{}).Count(&users).Error; err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	switch {
	case users > 0:
	case admin.Email == "" || admin.Password == "":
		log.Warn("no users exist and ADMIN_PASSWORD is not set, skipping admin seed")
	default:
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}
		adminUser := entity.User{
			FirstName: admin.FirstName,
			LastName:  admin.LastName,
			Email:     admin.Email,
			Password:  string(hashedPassword),
			Role:      enum.UserRoleAdmin,
			IsActive:  true,
		}
		if err := db.Create(&adminUser).Error; err != nil {
			return fmt.Errorf("create admin user: %w", err)
		}
		log.Info("admin user created", zap.String("email", admin.Email))
	}

	var profiles int64
	if err := db.Model(&entity.CustomizationProfile{}).Count(&profiles).Error; err != nil {
		return fmt.Errorf("count customization profiles: %w", err)
	}
	if profiles == 0 {
		profile := entity.CustomizationProfile{
			Name:      "الافتراضي",
			IsDefault: true,
			Profile:   *document.DefaultProfile(),
		}
		if err := db.Create(&profile).Error; err != nil {
			return fmt.Errorf("create default profile: %w", err)
		}
		log.Info("default customization profile created")
	}

	var terms int64
	if err := db.Model(&entity.TermCondition{}).Count(&terms).Error; err != nil {
		return fmt.Errorf("count terms: %w", err)
	}
	if terms == 0 {
		rows := make([]entity.TermCondition, len(DefaultTerms))
		for i, text := range DefaultTerms {
			rows[i] = entity.TermCondition{Text: text, DisplayOrder: i + 1, IsActive: true}
		}
		if err := db.Create(&rows).Error; err != nil {
			return fmt.Errorf("create default terms: %w", err)
		}
		log.Info("default terms created", zap.Int("count", len(rows)))
	}

	log.Info("default data seeding completed")
	return nil
}
