// Package container provides dependency injection and lifecycle management
// for the Billed server following Clean Architecture principles.
package container

import (
	"fmt"
	"time"
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

// Config holds all configuration for the Container.
// It aggregates configurations for all subsystems.
type Config struct {
	// Database configuration
	Database DatabaseConfig

	// Storage configuration
	Storage StorageConfig

	// Store configuration
	Store StoreConfig

	// Server configuration
	Server ServerConfig
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	// Driver is "sqlite" or "bolt"
	Driver string

	// Path to the database file
	Path string

	// MaxOpenConns is the maximum number of open connections
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections
	MaxIdleConns int

	// ConnMaxLifetime is the maximum connection lifetime
	ConnMaxLifetime time.Duration

	// MigrationsDir overrides the embedded migrations when set
	MigrationsDir string
}

// StorageConfig holds receipt storage settings.
type StorageConfig struct {
	// ReceiptsDir is the directory receipts are written to
	ReceiptsDir string

	// URLPrefix is prepended to receipt paths to build fileUrl
	URLPrefix string
}

// StoreConfig selects the bill store backing the server.
type StoreConfig struct {
	// Mode is "local" or "remote"
	Mode string

	// RemoteURL is the store API base URL in remote mode
	RemoteURL string

	// Timeout for remote store requests
	Timeout time.Duration
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host          string
	Port          int
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	MaxUploadSize int64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:          DriverSQLite,
			Path:            "data/billed.db",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Storage: StorageConfig{
			ReceiptsDir: "data/receipts",
			URLPrefix:   "/receipts",
		},
		Store: StoreConfig{
			Mode:    StoreModeLocal,
			Timeout: 30 * time.Second,
		},
		Server: ServerConfig{
			Host:          "0.0.0.0",
			Port:          8080,
			ReadTimeout:   30 * time.Second,
			WriteTimeout:  30 * time.Second,
			MaxUploadSize: 10 << 20,
		},
	}
}

// Validate checks that required configuration values are present.
func (c *Config) Validate() error {
	switch c.Store.Mode {
	case StoreModeLocal:
		if c.Database.Driver != DriverSQLite && c.Database.Driver != DriverBolt {
			return fmt.Errorf("database.driver %q is not supported", c.Database.Driver)
		}
		if c.Database.Path == "" {
			return fmt.Errorf("database.path is required")
		}
		if c.Storage.ReceiptsDir == "" {
			return fmt.Errorf("storage.receipts_dir is required")
		}
	case StoreModeRemote:
		if c.Store.RemoteURL == "" {
			return fmt.Errorf("store.remote_url is required")
		}
	default:
		return fmt.Errorf("store.mode %q is not supported", c.Store.Mode)
	}

	return nil
}
