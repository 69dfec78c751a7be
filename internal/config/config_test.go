package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, StoreModeLocal, cfg.Store.Mode)
	assert.Equal(t, "/receipts", cfg.Storage.URLPrefix)
	assert.Equal(t, 30*time.Second, cfg.Store.Timeout)
	assert.Equal(t, "json", cfg.Logger.Format)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 3456
database:
  driver: bolt
  path: /tmp/billed.bolt
storage:
  receipts_dir: /tmp/receipts
  url_prefix: https://localhost:3456/images
logger:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3456, cfg.Server.Port)
	assert.Equal(t, DriverBolt, cfg.Database.Driver)
	assert.Equal(t, "/tmp/billed.bolt", cfg.Database.Path)
	assert.Equal(t, "https://localhost:3456/images", cfg.Storage.URLPrefix)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BILLED_SERVER_PORT", "9090")
	t.Setenv("BILLED_STORE_MODE", "remote")
	t.Setenv("BILLED_STORE_URL", "http://store.internal:8080")

	cfg, err := Load(writeConfig(t, "server:\n  port: 3456\n"))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, StoreModeRemote, cfg.Store.Mode)
	assert.Equal(t, "http://store.internal:8080", cfg.Store.RemoteURL)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: 8080},
			Database: DatabaseConfig{Driver: DriverSQLite, Path: "billed.db"},
			Storage:  StorageConfig{ReceiptsDir: "receipts"},
			Store:    StoreConfig{Mode: StoreModeLocal},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"unknown driver", func(c *Config) { c.Database.Driver = "postgres" }, "database.driver"},
		{"missing db path", func(c *Config) { c.Database.Path = "" }, "database.path"},
		{"unknown mode", func(c *Config) { c.Store.Mode = "firestore" }, "store.mode"},
		{"remote without url", func(c *Config) { c.Store.Mode = StoreModeRemote }, "store.remote_url"},
		{"remote ignores driver", func(c *Config) {
			c.Store.Mode = StoreModeRemote
			c.Store.RemoteURL = "http://localhost:8080"
			c.Database.Driver = ""
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("BILLED_TEST_DOTENV=loaded\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("BILLED_TEST_DOTENV") })

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "loaded", os.Getenv("BILLED_TEST_DOTENV"))

	assert.NoError(t, LoadDotEnv(filepath.Join(dir, "absent.env")))
}

func TestToContainerConfig(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cc := cfg.ToContainerConfig()
	assert.Equal(t, cfg.Database.Path, cc.Database.Path)
	assert.Equal(t, cfg.Storage.ReceiptsDir, cc.Storage.ReceiptsDir)
	assert.Equal(t, cfg.Store.Mode, cc.Store.Mode)
	assert.NoError(t, cc.Validate())
}
