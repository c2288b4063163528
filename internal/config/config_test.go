package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Should return defaults when the file does not exist", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.NoError(t, err)
		assert.Equal(t, ":3001", cfg.Server.Addr)
		assert.Equal(t, 100, cfg.Server.MaxUploadMB)
		assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
		assert.Zero(t, cfg.Engine.Seed)
	})

	t.Run("Should read values from a config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(
			"engine:\n  seed: 7\nserver:\n  addr: \":8080\"\n  max_upload_mb: 5\n  allowed_origins:\n    - \"https://example.com\"\n",
		), 0o644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, int64(7), cfg.Engine.Seed)
		assert.Equal(t, ":8080", cfg.Server.Addr)
		assert.Equal(t, 5, cfg.Server.MaxUploadMB)
		assert.Equal(t, []string{"https://example.com"}, cfg.Server.AllowedOrigins)
	})

	t.Run("Should fill omitted fields with defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("engine:\n  seed: 3\n"), 0o644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, int64(3), cfg.Engine.Seed)
		assert.Equal(t, ":3001", cfg.Server.Addr)
		assert.Equal(t, 100, cfg.Server.MaxUploadMB)
	})

	t.Run("Should fail on malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("server: [not a mapping"), 0o644))
		_, err := Load(path)
		require.Error(t, err)
	})
}

func TestSave(t *testing.T) {
	t.Run("Should round-trip a config through disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "dir", "config.yaml")
		in := &AppConfig{
			Engine: EngineConfig{Seed: 11},
			Server: ServerConfig{Addr: ":4000", MaxUploadMB: 25, AllowedOrigins: []string{"http://localhost:5173"}},
		}
		require.NoError(t, Save(path, in))

		out, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, in, out)
	})
}
