package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	NATS         NATSConfig
	JWT          JWTConfig
	Geolocation  GeolocationConfig
	Completion   CompletionConfig
	Penalty      PenaltyConfig
	Notification NotificationConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string   `envconfig:"PORT" default:"8080"`
	Host            string   `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string   `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout int      `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string `envconfig:"DB_HOST" default:"localhost"`
	Port        string `envconfig:"DB_PORT" default:"5432"`
	User        string `envconfig:"DB_USER" default:"postgres"`
	Password    string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name        string `envconfig:"DB_NAME" default:"mealmeet"`
	SSLMode     string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns    int    `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns    int    `envconfig:"DB_MIN_CONNS" default:"5"`
	AutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"false"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// NATSConfig holds NATS configuration for notification dispatch
type NATSConfig struct {
	URL           string        `envconfig:"NATS_URL" default:"nats://localhost:4222"`
	SubjectPrefix string        `envconfig:"NATS_SUBJECT_PREFIX" default:"notify"`
	ConnectWait   time.Duration `envconfig:"NATS_CONNECT_WAIT" default:"30s"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	AccessSecret string        `envconfig:"JWT_ACCESS_SECRET" default:"dev-access-secret"`
	AccessExpiry time.Duration `envconfig:"JWT_ACCESS_EXPIRY" default:"15m"`
}

// GeolocationConfig holds the device-location bridge configuration
type GeolocationConfig struct {
	BaseURL string        `envconfig:"GEO_BASE_URL" default:"http://localhost:9100"`
	Timeout time.Duration `envconfig:"GEO_TIMEOUT" default:"10s"`
}

// CompletionConfig holds completion-gate tuning
type CompletionConfig struct {
	MaxDistanceMeters float64 `envconfig:"COMPLETION_MAX_DISTANCE_METERS" default:"100"`
}

// PenaltyConfig holds penalty policy tuning
type PenaltyConfig struct {
	// GraceWindow is how soon after creation a zero-guest cancellation
	// stays exempt from escalation.
	GraceWindow time.Duration `envconfig:"PENALTY_GRACE_WINDOW" default:"10m"`
	CacheTTL    time.Duration `envconfig:"PENALTY_CACHE_TTL" default:"5m"`
}

// NotificationConfig holds fan-out tuning
type NotificationConfig struct {
	Workers     int           `envconfig:"NOTIFY_WORKERS" default:"4"`
	SendTimeout time.Duration `envconfig:"NOTIFY_SEND_TIMEOUT" default:"3s"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Environment == "production" && c.JWT.AccessSecret == "dev-access-secret" {
		return fmt.Errorf("JWT_ACCESS_SECRET must be set in production")
	}
	if c.Completion.MaxDistanceMeters <= 0 {
		return fmt.Errorf("COMPLETION_MAX_DISTANCE_METERS must be positive")
	}
	if c.Notification.Workers < 1 {
		return fmt.Errorf("NOTIFY_WORKERS must be at least 1")
	}
	return nil
}

// GetDatabaseDSN returns the PostgreSQL connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
