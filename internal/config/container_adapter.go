package config

import (
	"github.com/garyjia/billed/internal/container"
)

// ToContainerConfig converts the application Config to a container.Config.
// This provides a bridge between the file-based config loaded by viper
// and the container's configuration structure.
func (c *Config) ToContainerConfig() *container.Config {
	return &container.Config{
		Database: container.DatabaseConfig{
			Driver:          c.Database.Driver,
			Path:            c.Database.Path,
			MaxOpenConns:    c.Database.MaxOpenConns,
			MaxIdleConns:    c.Database.MaxIdleConns,
			ConnMaxLifetime: c.Database.ConnMaxLifetime,
			MigrationsDir:   c.Database.MigrationsDir,
		},
		Storage: container.StorageConfig{
			ReceiptsDir: c.Storage.ReceiptsDir,
			URLPrefix:   c.Storage.URLPrefix,
		},
		Store: container.StoreConfig{
			Mode:      c.Store.Mode,
			RemoteURL: c.Store.RemoteURL,
			Timeout:   c.Store.Timeout,
		},
		Server: container.ServerConfig{
			Host:          c.Server.Host,
			Port:          c.Server.Port,
			ReadTimeout:   c.Server.ReadTimeout,
			WriteTimeout:  c.Server.WriteTimeout,
			MaxUploadSize: c.Server.MaxUploadSize,
		},
	}
}
