package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// KafkaConfig holds broker addresses and the loan events topic.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string // "debug", "info", "warn", "error"
	Format string // "json", "text"
}

// EngineConfig holds the accounting rules threaded into the distributor and
// schedule generator: rounding precision and the accepted annual rate range.
type EngineConfig struct {
	Precision   int32
	MinRate     float64
	MaxRate     float64
}

// Config is the full service configuration, read from the environment.
type Config struct {
	HTTPPort      int
	DB            DatabaseConfig
	Kafka         KafkaConfig
	Log           LogConfig
	Engine        EngineConfig
	MigrationsDir string
	ServiceName   string
}

// Validate panics on configuration that cannot possibly work. Called once at
// startup.
func (c Config) Validate() {
	if c.DB.Password == "" {
		panic("DB_PASSWORD environment variable is required")
	}
	if c.Engine.Precision < 0 {
		panic("ENGINE_PRECISION must not be negative")
	}
}

// Load reads configuration from the environment, applying defaults.
func Load() Config {
	return Config{
		HTTPPort: getEnvInt("HTTP_PORT", 8080),
		DB: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "loanengine"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "loanengine"),
			SSLMode:  getEnv("DB_SSLMODE", "require"),
			MaxConns: int32(getEnvInt("DB_MAX_CONNS", 10)),
			MinConns: int32(getEnvInt("DB_MIN_CONNS", 2)),
		},
		Kafka: KafkaConfig{
			Brokers: strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			Topic:   getEnv("KAFKA_TOPIC", "lending.loan.events"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Engine: EngineConfig{
			Precision: int32(getEnvInt("ENGINE_PRECISION", 2)),
			MinRate:   getEnvFloat("ENGINE_MIN_RATE", 0.01),
			MaxRate:   getEnvFloat("ENGINE_MAX_RATE", 100),
		},
		MigrationsDir: getEnv("MIGRATIONS_DIR", ""),
		ServiceName:   "loan-engine",
	}
}

// HTTPAddr returns the listen address for the HTTP server.
func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
