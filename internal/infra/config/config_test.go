package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/creasty/defaults"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate_RequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid config",
			config: Config{
				Database: DatabaseConfig{URL: "postgres://localhost/player"},
				Player: PlayerConfig{
					Volume: 0.8,
					Output: OutputConfig{Type: "none"},
				},
			},
			wantErr: false,
		},
		{
			name: "missing database url",
			config: Config{
				Player: PlayerConfig{Volume: 1.0, Output: OutputConfig{Type: "none"}},
			},
			wantErr: true,
			errMsg:  "URL",
		},
		{
			name: "volume out of range",
			config: Config{
				Database: DatabaseConfig{URL: "postgres://localhost/player"},
				Player: PlayerConfig{
					Volume: 1.5,
					Output: OutputConfig{Type: "none"},
				},
			},
			wantErr: true,
			errMsg:  "Volume",
		},
		{
			name: "unknown output type",
			config: Config{
				Database: DatabaseConfig{URL: "postgres://localhost/player"},
				Player: PlayerConfig{
					Volume: 1.0,
					Output: OutputConfig{Type: "jack"},
				},
			},
			wantErr: true,
			errMsg:  "Type",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestConfig_Defaults(t *testing.T) {
	var cfg Config
	require.NoError(t, defaults.Set(&cfg))

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "player:events", cfg.Redis.Channel)
	assert.Equal(t, 1.0, cfg.Player.Volume)
	assert.Equal(t, "none", cfg.Player.Output.Type)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9090"
database:
  url: postgres://localhost/player
player:
  volume: 0.5
  output:
    type: speaker
    settings:
      buffer_size_kb: 512
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 0.5, cfg.Player.Volume)
	assert.Equal(t, "speaker", cfg.Player.Output.Type)
	assert.Equal(t, 512, cfg.Player.Output.Settings["buffer_size_kb"])
}

func TestLoad_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
database:
  url: postgres://file/value
`), 0o600))

	t.Setenv("DATABASE_URL", "postgres://env/value")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://env/value", cfg.Database.URL)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}
