package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage drivers
const (
	DriverMongoDB  = "mongodb"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	MongoDB  MongoDBConfig
	Postgres PostgresConfig
	JWT      JWTConfig
	Lottery  LotteryConfig
	Timeouts TimeoutsConfig
	LogLevel string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	Mode         string // gin mode: debug, release or test
	AllowedHosts []string
}

// StorageConfig selects the repository backend
type StorageConfig struct {
	Driver string
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
}

// PostgresConfig holds PostgreSQL-specific configuration
type PostgresConfig struct {
	DSN     string
	Migrate bool
}

// JWTConfig holds JWT-specific configuration
type JWTConfig struct {
	Secret    string
	Issuer    string
	ExpiresIn int // seconds
}

// LotteryConfig holds lottery defaults
type LotteryConfig struct {
	DefaultDrawSize int
}

// TimeoutsConfig bounds calls to external systems
type TimeoutsConfig struct {
	Store time.Duration
	Auth  time.Duration
}

// LoadConfig reads config.yaml from path, ./config or the working directory and overlays
// environment variables such as MONGODB_URI or TIMEOUTS_STORE.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if path != "" {
		v.AddConfigPath(path)
	}
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverMongoDB:
		if c.MongoDB.URI == "" {
			return errors.New("MongoDB.URI is required for the mongodb driver")
		}
	case DriverPostgres:
		if c.Postgres.DSN == "" {
			return errors.New("Postgres.DSN is required for the postgres driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Lottery.DefaultDrawSize < 1 {
		return errors.New("Lottery.DefaultDrawSize must be at least 1")
	}
	if c.Timeouts.Store <= 0 || c.Timeouts.Auth <= 0 {
		return errors.New("timeouts must be positive")
	}
	return nil
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("Server.Port", "4000")
	v.SetDefault("Server.Mode", "debug")
	v.SetDefault("Server.AllowedHosts", []string{"localhost:3000"})
	v.SetDefault("Storage.Driver", DriverMongoDB)
	v.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	v.SetDefault("MongoDB.Database", "event-lottery")
	v.SetDefault("Postgres.DSN", "")
	v.SetDefault("Postgres.Migrate", true)
	v.SetDefault("JWT.Secret", "")
	v.SetDefault("JWT.Issuer", "event-lottery")
	v.SetDefault("JWT.ExpiresIn", 24*60*60) // 24 hours
	v.SetDefault("Lottery.DefaultDrawSize", 1)
	v.SetDefault("Timeouts.Store", 10*time.Second)
	v.SetDefault("Timeouts.Auth", 30*time.Second)
	v.SetDefault("LogLevel", "info")
}
