package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// Database drivers
const (
	DriverSQLite = "sqlite"
	DriverBolt   = "bolt"
)

// Store modes
const (
	StoreModeLocal  = "local"
	StoreModeRemote = "remote"
)

// EnvPrefix prefixes every environment override, e.g. BILLED_SERVER_PORT
const EnvPrefix = "BILLED"

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Store    StoreConfig    `mapstructure:"store"`
	Logger   LoggerConfig   `mapstructure:"logger"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host          string        `mapstructure:"host"`
	Port          int           `mapstructure:"port"`
	ReadTimeout   time.Duration `mapstructure:"read_timeout"`
	WriteTimeout  time.Duration `mapstructure:"write_timeout"`
	MaxUploadSize int64         `mapstructure:"max_upload_size"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Path            string        `mapstructure:"path"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	MigrationsDir   string        `mapstructure:"migrations_dir"` // empty uses the embedded migrations
}

// StorageConfig holds receipt storage configuration
type StorageConfig struct {
	ReceiptsDir string `mapstructure:"receipts_dir"`
	URLPrefix   string `mapstructure:"url_prefix"`
}

// StoreConfig selects where bills are kept
type StoreConfig struct {
	Mode      string        `mapstructure:"mode"`
	RemoteURL string        `mapstructure:"remote_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// LoadDotEnv loads variables from an optional .env file without overriding the environment
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := gotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Load loads configuration from file and environment variables.
// An empty configPath uses defaults and the environment only.
func Load(configPath string) (*Config, error) {
	if err := LoadDotEnv(""); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.max_upload_size", 10<<20)

	// Database defaults
	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.path", "data/billed.db")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 5*time.Minute)

	// Storage defaults
	v.SetDefault("storage.receipts_dir", "data/receipts")
	v.SetDefault("storage.url_prefix", "/receipts")

	// Store defaults
	v.SetDefault("store.mode", StoreModeLocal)
	v.SetDefault("store.timeout", 30*time.Second)

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.output_path", "stdout")
	v.SetDefault("logger.format", "json")
}

// bindEnvVars binds the short environment names
func bindEnvVars(v *viper.Viper) {
	_ = v.BindEnv("store.remote_url", "BILLED_STORE_URL")
	_ = v.BindEnv("database.path", "BILLED_DB_PATH")
	_ = v.BindEnv("logger.level", "BILLED_LOG_LEVEL")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}

	switch c.Store.Mode {
	case StoreModeLocal:
		switch c.Database.Driver {
		case DriverSQLite, DriverBolt:
		default:
			return fmt.Errorf("database.driver must be %q or %q, got %q", DriverSQLite, DriverBolt, c.Database.Driver)
		}
		if c.Database.Path == "" {
			return fmt.Errorf("database.path is required")
		}
		if c.Storage.ReceiptsDir == "" {
			return fmt.Errorf("storage.receipts_dir is required")
		}
	case StoreModeRemote:
		if c.Store.RemoteURL == "" {
			return fmt.Errorf("store.remote_url is required in remote mode")
		}
	default:
		return fmt.Errorf("store.mode must be %q or %q, got %q", StoreModeLocal, StoreModeRemote, c.Store.Mode)
	}

	return nil
}
