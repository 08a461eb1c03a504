package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
app:
  name: "stayspot"
  environment: "test"
database:
  path: "test.db"
api:
  http:
    port: 9000
  auth:
    enabled: true
    api_keys:
      - key: "k1"
        name: "frontend"
        permissions: ["read:spots", "write:bookings"]
booking:
  reject_owner: true
`
	require.NoError(t, os.WriteFile(configPath, []byte(yamlContent), 0o644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "stayspot", cfg.App.Name)
	assert.Equal(t, "test.db", cfg.Database.Path)
	assert.Equal(t, 9000, cfg.API.HTTP.Port)
	assert.True(t, cfg.Booking.RejectOwner)
	require.Len(t, cfg.API.Auth.APIKeys, 1)
	assert.Equal(t, "frontend", cfg.API.Auth.APIKeys[0].Name)
}

func TestLoadConfig_EnvExpansion(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv("STAYSPOT_DB_PATH", "/tmp/env.db")

	yamlContent := `
database:
  path: "${STAYSPOT_DB_PATH}"
`
	require.NoError(t, os.WriteFile(configPath, []byte(yamlContent), 0o644))

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/env.db", cfg.Database.Path)
}

func TestLoadConfig_Defaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("database:\n  path: test.db\n"), 0o644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "stayspot", cfg.App.Name)
	assert.Equal(t, 8080, cfg.API.HTTP.Port)
	assert.Equal(t, 10, cfg.API.HTTP.RequestTimeout)
	assert.Equal(t, "x-api-key", cfg.API.Auth.HeaderAPIKey)
	assert.Equal(t, "x-user-id", cfg.API.Auth.HeaderUserID)
	assert.False(t, cfg.Booking.RejectOwner)
	assert.Equal(t, 1000, cfg.Exports.QueueSize)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "valid config",
			cfg:     Config{Database: DatabaseConfig{Path: "path"}},
			wantErr: false,
		},
		{
			name:    "missing database path",
			cfg:     Config{},
			wantErr: true,
		},
		{
			name: "redis enabled without address",
			cfg: Config{
				Database: DatabaseConfig{Path: "path"},
				Redis:    RedisConfig{Enabled: true},
			},
			wantErr: true,
		},
		{
			name: "duplicate api keys",
			cfg: Config{
				Database: DatabaseConfig{Path: "path"},
				API: APIConfig{Auth: APIAuthConfig{APIKeys: []APIClientKey{
					{Key: "k", Name: "a"},
					{Key: "k", Name: "b"},
				}}},
			},
			wantErr: true,
		},
		{
			name: "exports enabled without path",
			cfg: Config{
				Database: DatabaseConfig{Path: "path"},
				Exports:  ExportConfig{Enabled: true},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
