package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Log       LogConfig
	PDF       PDFConfig
	QR        QRConfig
	Redis     RedisConfig
	Email     EmailConfig
	Admin     AdminConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

type JWTConfig struct {
	Secret             string
	ExpiryHours        time.Duration
	RefreshExpiryHours time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

type LogConfig struct {
	Level     string
	Format    string
	SQLLevel  string
	SlowQuery time.Duration
}

// PDFConfig controls document rendering.
type PDFConfig struct {
	FontPath        string
	BoldFontPath    string
	ArabicDigits    bool
	Currency        string
	MinorUnit       string
	DefaultVATRate  float64
	ValidityDays    int
	ReferencePrefix string
	RenderTimeout   time.Duration
}

type QRConfig struct {
	Endpoint   string
	Timeout    time.Duration
	MaxRetries uint64
	CacheTTL   time.Duration
	Size       int
}

// RedisConfig is optional; an empty Addr disables the QR cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
}

// AdminConfig seeds the first administrator when no users exist.
type AdminConfig struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "autoquote-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "autoquote")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Asia/Riyadh")
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("JWT_REFRESH_EXPIRY_HOURS", 168)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")
	viper.SetDefault("LOG_SQL_LEVEL", "warn")
	viper.SetDefault("LOG_SLOW_QUERY_MS", 200)
	viper.SetDefault("PDF_FONT_PATH", "")
	viper.SetDefault("PDF_BOLD_FONT_PATH", "")
	viper.SetDefault("PDF_ARABIC_DIGITS", false)
	viper.SetDefault("PDF_CURRENCY", "ريال")
	viper.SetDefault("PDF_MINOR_UNIT", "هللة")
	viper.SetDefault("PDF_DEFAULT_VAT_RATE", 15)
	viper.SetDefault("PDF_VALIDITY_DAYS", 15)
	viper.SetDefault("PDF_REFERENCE_PREFIX", "QT")
	viper.SetDefault("PDF_RENDER_TIMEOUT_SECONDS", 20)
	viper.SetDefault("QR_ENDPOINT", "https://api.qrserver.com/v1/create-qr-code/?size=300x300")
	viper.SetDefault("QR_TIMEOUT_SECONDS", 5)
	viper.SetDefault("QR_MAX_RETRIES", 2)
	viper.SetDefault("QR_CACHE_TTL_HOURS", 24)
	viper.SetDefault("QR_SIZE", 300)
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_FROM_NAME", "AutoQuote")
	viper.SetDefault("ADMIN_EMAIL", "admin@autoquote.local")
	viper.SetDefault("ADMIN_FIRST_NAME", "System")
	viper.SetDefault("ADMIN_LAST_NAME", "Admin")

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
		},
		JWT: JWTConfig{
			Secret:             viper.GetString("JWT_SECRET"),
			ExpiryHours:        time.Duration(viper.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
			RefreshExpiryHours: time.Duration(viper.GetInt("JWT_REFRESH_EXPIRY_HOURS")) * time.Hour,
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		Log: LogConfig{
			Level:     viper.GetString("LOG_LEVEL"),
			Format:    viper.GetString("LOG_FORMAT"),
			SQLLevel:  viper.GetString("LOG_SQL_LEVEL"),
			SlowQuery: time.Duration(viper.GetInt("LOG_SLOW_QUERY_MS")) * time.Millisecond,
		},
		PDF: PDFConfig{
			FontPath:        viper.GetString("PDF_FONT_PATH"),
			BoldFontPath:    viper.GetString("PDF_BOLD_FONT_PATH"),
			ArabicDigits:    viper.GetBool("PDF_ARABIC_DIGITS"),
			Currency:        viper.GetString("PDF_CURRENCY"),
			MinorUnit:       viper.GetString("PDF_MINOR_UNIT"),
			DefaultVATRate:  viper.GetFloat64("PDF_DEFAULT_VAT_RATE"),
			ValidityDays:    viper.GetInt("PDF_VALIDITY_DAYS"),
			ReferencePrefix: viper.GetString("PDF_REFERENCE_PREFIX"),
			RenderTimeout:   time.Duration(viper.GetInt("PDF_RENDER_TIMEOUT_SECONDS")) * time.Second,
		},
		QR: QRConfig{
			Endpoint:   viper.GetString("QR_ENDPOINT"),
			Timeout:    time.Duration(viper.GetInt("QR_TIMEOUT_SECONDS")) * time.Second,
			MaxRetries: viper.GetUint64("QR_MAX_RETRIES"),
			CacheTTL:   time.Duration(viper.GetInt("QR_CACHE_TTL_HOURS")) * time.Hour,
			Size:       viper.GetInt("QR_SIZE"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Email: EmailConfig{
			SMTPHost:     viper.GetString("SMTP_HOST"),
			SMTPPort:     viper.GetInt("SMTP_PORT"),
			SMTPUsername: viper.GetString("SMTP_USERNAME"),
			SMTPPassword: viper.GetString("SMTP_PASSWORD"),
			FromName:     viper.GetString("SMTP_FROM_NAME"),
			FromEmail:    viper.GetString("SMTP_FROM_EMAIL"),
		},
		Admin: AdminConfig{
			Email:     viper.GetString("ADMIN_EMAIL"),
			Password:  viper.GetString("ADMIN_PASSWORD"),
			FirstName: viper.GetString("ADMIN_FIRST_NAME"),
			LastName:  viper.GetString("ADMIN_LAST_NAME"),
		},
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
