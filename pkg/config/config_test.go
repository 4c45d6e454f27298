package config

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, 8080, config.Port)
	assert.Equal(t, "127.0.0.1", config.Bind)
	assert.Equal(t, "", config.Security.ClientAPIKey)
	assert.False(t, config.Security.RequireAuth)
	assert.Equal(t, "info", config.Logging.Level)
	assert.True(t, config.Metrics.Enabled)
	assert.Equal(t, 30*time.Second, config.Metrics.UpdateInterval)
	assert.Equal(t, 5*time.Second, config.Server.ShutdownTimeout)
	assert.Equal(t, "127.0.0.1:8080", config.Address())
	assert.NoError(t, config.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name:   "defaults",
			mutate: func(c *Config) {},
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Port = 70000 },
			wantErr: "invalid port",
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Logging.Level = "chatty" },
			wantErr: "invalid log level",
		},
		{
			name:    "auth without key",
			mutate:  func(c *Config) { c.Security.RequireAuth = true },
			wantErr: "client_api_key is required",
		},
		{
			name: "auth with key",
			mutate: func(c *Config) {
				c.Security.RequireAuth = true
				c.Security.ClientAPIKey = "secret"
			},
		},
		{
			name:    "zero metrics interval",
			mutate:  func(c *Config) { c.Metrics.UpdateInterval = 0 },
			wantErr: "invalid metrics update interval",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGenerateSecureKey(t *testing.T) {
	t.Run("generate 32 byte key", func(t *testing.T) {
		key, err := GenerateSecureKey(32)
		require.NoError(t, err)
		assert.Len(t, key, 64) // 32 bytes = 64 hex characters

		_, err = hex.DecodeString(key)
		assert.NoError(t, err)
	})

	t.Run("generate different keys", func(t *testing.T) {
		key1, err := GenerateSecureKey(16)
		require.NoError(t, err)
		key2, err := GenerateSecureKey(16)
		require.NoError(t, err)

		assert.NotEqual(t, key1, key2)
	})

	t.Run("zero length", func(t *testing.T) {
		key, err := GenerateSecureKey(0)
		require.NoError(t, err)
		assert.Empty(t, key)
	})
}

func TestLoadConfig(t *testing.T) {
	t.Run("load existing config", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.yaml")
		expectedConfig := &Config{
			Port: 9000,
			Bind: "0.0.0.0",
			Security: Security{
				ClientAPIKey: "test-client-api-key",
				RequireAuth:  true,
			},
			Logging: Logging{
				Level: "debug",
			},
			Metrics: Metrics{
				Enabled:        false,
				UpdateInterval: time.Minute,
			},
			Server: Server{
				ReadTimeout:     time.Second,
				WriteTimeout:    2 * time.Second,
				ShutdownTimeout: 3 * time.Second,
			},
		}

		err := SaveConfig(expectedConfig, configPath)
		require.NoError(t, err)

		loadedConfig, err := LoadConfig(configPath)
		require.NoError(t, err)
		assert.Equal(t, expectedConfig, loadedConfig)
	})

	t.Run("partial file keeps defaults", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("port: 9100\n"), 0600))

		loadedConfig, err := LoadConfig(configPath)
		require.NoError(t, err)
		assert.Equal(t, 9100, loadedConfig.Port)
		assert.Equal(t, "127.0.0.1", loadedConfig.Bind)
		assert.Equal(t, "info", loadedConfig.Logging.Level)
	})

	t.Run("load non-existent config", func(t *testing.T) {
		_, err := LoadConfig("/non/existent/config.yaml")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "config file does not exist")
	})

	t.Run("load invalid yaml", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "invalid.yaml")
		err := os.WriteFile(configPath, []byte("invalid: yaml: content: ["), 0644)
		require.NoError(t, err)

		_, err = LoadConfig(configPath)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})
}

func TestLoadWithEnv(t *testing.T) {
	t.Run("missing file uses defaults", func(t *testing.T) {
		cfg, err := LoadWithEnv(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("file values", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.yaml")
		fileConfig := DefaultConfig()
		fileConfig.Port = 9200
		fileConfig.Logging.Level = "warn"
		fileConfig.Server.ShutdownTimeout = 7 * time.Second
		require.NoError(t, SaveConfig(fileConfig, configPath))

		cfg, err := LoadWithEnv(configPath)
		require.NoError(t, err)
		assert.Equal(t, fileConfig, cfg)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.yaml")
		fileConfig := DefaultConfig()
		fileConfig.Port = 9200
		require.NoError(t, SaveConfig(fileConfig, configPath))

		t.Setenv("MEMOD_PORT", "9300")
		t.Setenv("MEMOD_BIND", "0.0.0.0")
		t.Setenv("MEMOD_CLIENT_API_KEY", "from-env")
		t.Setenv("MEMOD_REQUIRE_AUTH", "true")
		t.Setenv("MEMOD_LOG_LEVEL", "debug")
		t.Setenv("MEMOD_SHUTDOWN_TIMEOUT", "12s")

		cfg, err := LoadWithEnv(configPath)
		require.NoError(t, err)
		assert.Equal(t, 9300, cfg.Port)
		assert.Equal(t, "0.0.0.0", cfg.Bind)
		assert.Equal(t, "from-env", cfg.Security.ClientAPIKey)
		assert.True(t, cfg.Security.RequireAuth)
		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, 12*time.Second, cfg.Server.ShutdownTimeout)
	})

	t.Run("invalid result is rejected", func(t *testing.T) {
		t.Setenv("MEMOD_REQUIRE_AUTH", "true")

		_, err := LoadWithEnv("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid config")
	})
}

func TestSaveConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	config := DefaultConfig()

	err := SaveConfig(config, configPath)
	require.NoError(t, err)

	info, err := os.Stat(configPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loadedConfig, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, config, loadedConfig)
}

func TestBootstrapConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")

	config, err := BootstrapConfig(configPath)
	require.NoError(t, err)

	assert.Equal(t, 8080, config.Port)
	assert.Equal(t, "127.0.0.1", config.Bind)
	assert.Equal(t, "info", config.Logging.Level)
	assert.True(t, config.Security.RequireAuth)

	assert.Len(t, config.Security.ClientAPIKey, 64)
	_, err = hex.DecodeString(config.Security.ClientAPIKey)
	assert.NoError(t, err)

	assert.True(t, ConfigExists(configPath))

	loadedConfig, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, config, loadedConfig)
}

func TestGetDefaultConfigPath(t *testing.T) {
	path := GetDefaultConfigPath()
	assert.NotEmpty(t, path)
	assert.Contains(t, path, "memod")
}

func TestConfigExists(t *testing.T) {
	tmpDir := t.TempDir()

	existingPath := filepath.Join(tmpDir, "exists.yaml")
	nonExistentPath := filepath.Join(tmpDir, "does-not-exist.yaml")

	err := os.WriteFile(existingPath, []byte("test"), 0644)
	require.NoError(t, err)

	assert.True(t, ConfigExists(existingPath))
	assert.False(t, ConfigExists(nonExistentPath))
}

func TestConfigYAMLMarshalling(t *testing.T) {
	config := &Config{
		Port: 9999,
		Bind: "localhost",
		Security: Security{
			ClientAPIKey: "client-api-key-789",
		},
		Logging: Logging{
			Level: "warn",
		},
		Metrics: Metrics{
			Enabled:        true,
			UpdateInterval: 15 * time.Second,
		},
	}

	data, err := yaml.Marshal(config)
	require.NoError(t, err)
	assert.Contains(t, string(data), "update_interval: 15s")

	var unmarshalled Config
	err = yaml.Unmarshal(data, &unmarshalled)
	require.NoError(t, err)

	assert.Equal(t, config, &unmarshalled)
}

func TestSaveConfigErrorHandling(t *testing.T) {
	config := DefaultConfig()

	// A regular file where a directory is expected cannot be created over
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0600))

	err := SaveConfig(config, filepath.Join(blocker, "sub", "config.yaml"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create config directory")
}
