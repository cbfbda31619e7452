package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every setting the storefront reads from the environment.
type Config struct {
	Port   string `mapstructure:"PORT"`
	AppEnv string `mapstructure:"APP_ENV"`

	LogLevel string `mapstructure:"LOG_LEVEL"`

	DBDriver    string `mapstructure:"DB_DRIVER"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	DBHost      string `mapstructure:"DB_HOST"`
	DBPort      string `mapstructure:"DB_PORT"`
	DBUser      string `mapstructure:"DB_USER"`
	DBPassword  string `mapstructure:"DB_PASSWORD"`
	DBName      string `mapstructure:"DB_NAME"`

	JWTSecret   string `mapstructure:"JWT_SECRET"`
	AdminAPIKey string `mapstructure:"ADMIN_API_KEY"`

	PaymentWebhookSecret string `mapstructure:"PAYMENT_WEBHOOK_SECRET"`
	PaymentMode          string `mapstructure:"PAYMENT_MODE"`

	RedisAddr          string `mapstructure:"REDIS_ADDR"`
	RedisPassword      string `mapstructure:"REDIS_PASSWORD"`
	RateLimitPerMinute int    `mapstructure:"RATE_LIMIT_PER_MINUTE"`

	KafkaBrokers    string `mapstructure:"KAFKA_BROKERS"`
	KafkaOrderTopic string `mapstructure:"KAFKA_ORDER_TOPIC"`

	UploadsDir      string        `mapstructure:"UPLOADS_DIR"`
	BackupDir       string        `mapstructure:"BACKUP_DIR"`
	BackupRetention time.Duration `mapstructure:"BACKUP_RETENTION"`
	BackupHour      int           `mapstructure:"BACKUP_HOUR"`

	CORSOrigins string `mapstructure:"CORS_ORIGINS"`
}

var defaults = map[string]any{
	"PORT":                   "8080",
	"APP_ENV":                "development",
	"LOG_LEVEL":              "info",
	"DB_DRIVER":              "postgres",
	"DATABASE_URL":           "",
	"DB_HOST":                "localhost",
	"DB_PORT":                "5432",
	"DB_USER":                "",
	"DB_PASSWORD":            "",
	"DB_NAME":                "storefront",
	"JWT_SECRET":             "",
	"ADMIN_API_KEY":          "",
	"PAYMENT_WEBHOOK_SECRET": "",
	"PAYMENT_MODE":           "live",
	"REDIS_ADDR":             "",
	"REDIS_PASSWORD":         "",
	"RATE_LIMIT_PER_MINUTE":  20,
	"KAFKA_BROKERS":          "",
	"KAFKA_ORDER_TOPIC":      "orders.placed",
	"UPLOADS_DIR":            "./uploads",
	"BACKUP_DIR":             "./backup/uploads",
	"BACKUP_RETENTION":       "96h",
	"BACKUP_HOUR":            2,
	"CORS_ORIGINS":           "*",
}

// Load reads an optional .env file and then the process environment.
// Environment variables win over .env values.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))
	cfg.PaymentMode = strings.ToLower(strings.TrimSpace(cfg.PaymentMode))
	return cfg, nil
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is not set"))
	}
	if c.AdminAPIKey == "" {
		errs = append(errs, errors.New("ADMIN_API_KEY is not set"))
	}
	if !c.PaymentSandbox() && c.PaymentWebhookSecret == "" {
		errs = append(errs, errors.New("PAYMENT_WEBHOOK_SECRET is not set"))
	}
	if c.PaymentSandbox() && c.IsProduction() {
		errs = append(errs, fmt.Errorf("PAYMENT_MODE %q is not allowed in production", c.PaymentMode))
	}
	switch c.DBDriver {
	case "postgres", "mysql", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver))
	}
	if c.RateLimitPerMinute < 0 {
		errs = append(errs, errors.New("RATE_LIMIT_PER_MINUTE must not be negative"))
	}
	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// PaymentSandbox is true when webhook signatures are not checked. Only an explicit
// PAYMENT_MODE of sandbox or dev turns it on.
func (c *Config) PaymentSandbox() bool {
	return c.PaymentMode == "sandbox" || c.PaymentMode == "dev"
}

// DSN builds the connection string for the configured driver. DATABASE_URL wins when set.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	switch c.DBDriver {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
	case "sqlite":
		return c.DBName + ".db"
	default:
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
	}
}

func (c *Config) KafkaBrokerList() []string {
	return splitList(c.KafkaBrokers)
}

func (c *Config) CORSOriginList() []string {
	origins := splitList(c.CORSOrigins)
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
