package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port    string `envconfig:"PORT" default:"8080"`
	GinMode string `envconfig:"GIN_MODE" default:"debug"`

	// Database: mysql, postgres or sqlite
	DatabaseDriver string `envconfig:"DATABASE_DRIVER" default:"sqlite"`
	DatabaseURL    string `envconfig:"DATABASE_URL" default:"pacearena.db"`
	SeedData       bool   `envconfig:"SEED_DATA" default:"true"`

	JWTSecret      string `envconfig:"JWT_SECRET" default:"your-secret-key"`
	JWTExpireHours int    `envconfig:"JWT_EXPIRE_HOURS" default:"168"`

	// Email Configuration
	SMTPHost     string `envconfig:"SMTP_HOST"`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"2525"`
	SMTPUsername string `envconfig:"SMTP_USERNAME"`
	SMTPPassword string `envconfig:"SMTP_PASSWORD"`
	FromEmail    string `envconfig:"FROM_EMAIL" default:"noreply@pacearena.app"`
	FromName     string `envconfig:"FROM_NAME" default:"PaceArena"`

	// Messaging; publishing is disabled when AMQPURL is empty
	AMQPURL      string `envconfig:"AMQP_URL"`
	AMQPExchange string `envconfig:"AMQP_EXCHANGE" default:"pacearena.events"`

	// Tracing; disabled when empty
	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	UploadDir         string  `envconfig:"UPLOAD_DIR" default:"uploads"`
	NearbyRadiusMiles float64 `envconfig:"NEARBY_RADIUS_MILES" default:"25"`

	RateLimitPerMinute int `envconfig:"RATE_LIMIT_PER_MINUTE" default:"120"`
	RateLimitBurst     int `envconfig:"RATE_LIMIT_BURST" default:"20"`

	DeadlineSchedule string `envconfig:"DEADLINE_SCHEDULE" default:"@every 15m"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.NearbyRadiusMiles <= 0 {
		return nil, fmt.Errorf("NEARBY_RADIUS_MILES must be positive, got %v", cfg.NearbyRadiusMiles)
	}
	return &cfg, nil
}

func (c *Config) JWTExpiry() time.Duration {
	return time.Duration(c.JWTExpireHours) * time.Hour
}

func (c *Config) SMTPEnabled() bool {
	return c.SMTPHost != ""
}
