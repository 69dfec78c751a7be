package container

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/garyjia/billed/internal/application/port"
	"github.com/garyjia/billed/internal/infrastructure/storage"
	httpserver "github.com/garyjia/billed/internal/interfaces/http"
	"github.com/garyjia/billed/pkg/database"
	"github.com/garyjia/billed/pkg/utils"
)

// Container manages all application dependencies and lifecycle.
// Components are initialized in dependency order and torn down in reverse.
type Container struct {
	config *Config
	logger *zap.Logger

	// Infrastructure - Data
	sqlDB      *database.DB
	repository port.BillRepository

	// Infrastructure - Storage
	files *storage.ReceiptStorage

	// Application
	stores port.StoreProvider

	// Interfaces
	server *httpserver.Server

	// Lifecycle
	mu     sync.Mutex
	ready  atomic.Bool
	closed atomic.Bool
}

// HealthStatus represents the health of all components.
type HealthStatus struct {
	Overall    bool                       `json:"overall"`
	Components map[string]ComponentHealth `json:"components"`
}

// ComponentHealth represents health of a single component.
type ComponentHealth struct {
	Healthy bool   `json:"healthy"`
	Message string `json:"message,omitempty"`
}

// NewContainer creates a new container from configuration.
// It does not initialize components - call Start() to initialize.
func NewContainer(cfg *Config, logger *zap.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Container{
		config: cfg,
		logger: logger,
	}, nil
}

// Start initializes all components.
// Components are initialized in dependency order:
// 1. Database and repository (local mode)
// 2. Receipt storage (local mode)
// 3. Bill store
// 4. HTTP server
func (c *Container) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return fmt.Errorf("container has been closed")
	}

	if c.ready.Load() {
		return fmt.Errorf("container already started")
	}

	c.logger.Info("Starting container initialization", zap.String("store_mode", c.config.Store.Mode))

	if c.config.Store.Mode == StoreModeLocal {
		if err := c.initDatabase(); err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		c.logger.Info("Database initialized", zap.String("driver", c.config.Database.Driver))

		if err := c.initStorage(); err != nil {
			c.closeRepository()
			return fmt.Errorf("failed to initialize storage: %w", err)
		}
		c.logger.Info("Storage initialized", zap.String("dir", c.files.BaseDir()))
	}

	if err := c.initStore(); err != nil {
		c.closeRepository()
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	c.logger.Info("Bill store initialized")

	if err := c.initServer(); err != nil {
		c.closeRepository()
		return fmt.Errorf("failed to initialize HTTP server: %w", err)
	}
	c.logger.Info("HTTP server initialized", zap.String("address", c.server.Address()))

	c.ready.Store(true)
	c.logger.Info("Container started successfully")

	return nil
}

// Close gracefully shuts down all components in reverse order.
func (c *Container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return fmt.Errorf("container already closed")
	}

	c.logger.Info("Closing container")

	var errs []error

	if c.server != nil {
		if err := c.server.Stop(); err != nil {
			c.logger.Error("Failed to stop HTTP server", zap.Error(err))
			errs = append(errs, fmt.Errorf("stop server: %w", err))
		}
	}

	if err := c.closeRepository(); err != nil {
		errs = append(errs, fmt.Errorf("close database: %w", err))
	}

	c.closed.Store(true)
	c.ready.Store(false)

	if len(errs) > 0 {
		c.logger.Error("Container closed with errors", zap.Int("error_count", len(errs)))
		return fmt.Errorf("container closed with %d errors", len(errs))
	}

	c.logger.Info("Container closed successfully")
	return nil
}

// Ready returns true when all components are initialized.
func (c *Container) Ready() bool {
	return c.ready.Load()
}

// Health returns health status of all components.
func (c *Container) Health() *HealthStatus {
	status := &HealthStatus{
		Overall:    true,
		Components: make(map[string]ComponentHealth),
	}

	set := func(name string, h ComponentHealth) {
		status.Components[name] = h
		if !h.Healthy {
			status.Overall = false
		}
	}

	if c.config.Store.Mode == StoreModeRemote {
		set("store", ComponentHealth{Healthy: c.stores != nil, Message: "remote " + c.config.Store.RemoteURL})
		return status
	}

	switch {
	case c.repository == nil:
		set("database", ComponentHealth{Healthy: false, Message: "not initialized"})
	case c.sqlDB != nil:
		if err := c.sqlDB.Ping(); err != nil {
			set("database", ComponentHealth{Healthy: false, Message: fmt.Sprintf("ping failed: %v", err)})
		} else {
			set("database", ComponentHealth{Healthy: true})
		}
	default:
		set("database", ComponentHealth{Healthy: true, Message: c.config.Database.Driver})
	}

	if c.files == nil {
		set("storage", ComponentHealth{Healthy: false, Message: "not initialized"})
	} else if _, err := os.Stat(c.files.BaseDir()); err != nil {
		set("storage", ComponentHealth{Healthy: false, Message: err.Error()})
	} else {
		set("storage", ComponentHealth{Healthy: true})
	}

	return status
}

// initDatabase opens the database and the bill repository using providers.
func (c *Container) initDatabase() error {
	bundle, err := ProvideDatabase(&c.config.Database, c.logger)
	if err != nil {
		return err
	}

	c.sqlDB = bundle.SQL
	c.repository = bundle.Repository
	return nil
}

// initStorage initializes the receipt storage using providers.
func (c *Container) initStorage() error {
	files, err := ProvideStorage(&c.config.Storage, c.logger)
	if err != nil {
		return err
	}

	c.files = files
	return nil
}

// initStore picks the local or remote bill store.
func (c *Container) initStore() error {
	var (
		stores port.StoreProvider
		err    error
	)
	if c.config.Store.Mode == StoreModeRemote {
		stores, err = ProvideRemoteStore(&c.config.Store, c.logger)
	} else {
		stores, err = ProvideLocalStore(c.repository, c.files, &c.config.Storage, c.logger)
	}
	if err != nil {
		return err
	}

	c.stores = stores
	return nil
}

// initServer creates the HTTP server.
func (c *Container) initServer() error {
	serverCfg := httpserver.ServerConfig{
		Host:          c.config.Server.Host,
		Port:          c.config.Server.Port,
		ReadTimeout:   c.config.Server.ReadTimeout,
		WriteTimeout:  c.config.Server.WriteTimeout,
		MaxUploadSize: c.config.Server.MaxUploadSize,
	}
	if c.files != nil {
		serverCfg.ReceiptsDir = c.files.BaseDir()
	}

	health := func() (bool, interface{}) {
		status := c.Health()
		return status.Overall, status.Components
	}

	server, err := httpserver.NewServer(serverCfg, c.stores, health, utils.NewServiceLogger(c.logger))
	if err != nil {
		return err
	}

	c.server = server
	return nil
}

func (c *Container) closeRepository() error {
	if c.repository == nil {
		return nil
	}

	err := c.repository.Close()
	if err != nil {
		c.logger.Error("Failed to close database", zap.Error(err))
	} else {
		c.logger.Info("Database closed")
	}
	c.repository = nil
	c.sqlDB = nil
	return err
}

// Getters for accessing container components

// Repository returns the bill repository, nil in remote mode.
func (c *Container) Repository() port.BillRepository {
	return c.repository
}

// FileStorage returns the receipt storage, nil in remote mode.
func (c *Container) FileStorage() port.FileStorage {
	if c.files == nil {
		return nil
	}
	return c.files
}

// Stores returns the bill store provider.
func (c *Container) Stores() port.StoreProvider {
	return c.stores
}

// Server returns the HTTP server.
func (c *Container) Server() *httpserver.Server {
	return c.server
}

// Logger returns the container's logger.
func (c *Container) Logger() *zap.Logger {
	return c.logger
}

// Config returns the container's configuration.
func (c *Container) Config() *Config {
	return c.config
}
