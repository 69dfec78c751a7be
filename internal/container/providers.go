package container

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/garyjia/billed/internal/application/port"
	"github.com/garyjia/billed/internal/infrastructure/external/remote"
	"github.com/garyjia/billed/internal/infrastructure/persistence/boltdb"
	"github.com/garyjia/billed/internal/infrastructure/persistence/sqlite"
	"github.com/garyjia/billed/internal/infrastructure/storage"
	"github.com/garyjia/billed/internal/infrastructure/store"
	"github.com/garyjia/billed/pkg/database"
)

// DatabaseBundle holds database-related components.
// SQL is nil when the bolt driver is used.
type DatabaseBundle struct {
	SQL        *database.DB
	Repository port.BillRepository
}

// ProvideDatabase opens the configured database and returns the bill repository.
// Pending SQLite migrations are applied automatically.
func ProvideDatabase(cfg *DatabaseConfig, logger *zap.Logger) (*DatabaseBundle, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	switch cfg.Driver {
	case DriverBolt:
		repo, err := boltdb.Open(cfg.Path, logger)
		if err != nil {
			return nil, err
		}
		return &DatabaseBundle{Repository: repo}, nil

	case DriverSQLite, "":
		db, err := database.New(database.Config{
			Path:            cfg.Path,
			MaxOpenConns:    cfg.MaxOpenConns,
			MaxIdleConns:    cfg.MaxIdleConns,
			ConnMaxLifetime: cfg.ConnMaxLifetime,
		}, logger)
		if err != nil {
			return nil, err
		}

		var migrations fs.FS = database.EmbeddedMigrations()
		if cfg.MigrationsDir != "" {
			migrations = os.DirFS(cfg.MigrationsDir)
		}
		if err := database.NewMigrator(db, logger).RunMigrations(migrations); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}

		repo := sqlite.NewBillRepository(sqlite.NewDB(db.DB, logger), logger)
		return &DatabaseBundle{SQL: db, Repository: repo}, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// ProvideStorage creates the receipt storage.
func ProvideStorage(cfg *StorageConfig, logger *zap.Logger) (*storage.ReceiptStorage, error) {
	if cfg == nil {
		return nil, fmt.Errorf("storage config is required")
	}
	return storage.NewReceiptStorage(cfg.ReceiptsDir, logger)
}

// ProvideLocalStore creates the store provider over the repository and receipt storage.
func ProvideLocalStore(repo port.BillRepository, files port.FileStorage, cfg *StorageConfig, logger *zap.Logger) (port.StoreProvider, error) {
	if repo == nil {
		return nil, fmt.Errorf("bill repository is required")
	}
	if files == nil {
		return nil, fmt.Errorf("file storage is required")
	}
	return store.NewLocalStore(repo, files, cfg.URLPrefix, logger), nil
}

// ProvideRemoteStore creates the store provider talking to a remote store API.
func ProvideRemoteStore(cfg *StoreConfig, logger *zap.Logger) (port.StoreProvider, error) {
	if cfg == nil || cfg.RemoteURL == "" {
		return nil, fmt.Errorf("remote store URL is required")
	}
	return remote.NewClient(remote.ClientConfig{
		BaseURL: cfg.RemoteURL,
		Timeout: cfg.Timeout,
	}, logger), nil
}
