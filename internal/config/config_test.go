package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fee-wizard/internal/errors"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Session.Backend)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL.Std())
}

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{
		"backend": {"base_url": "http://fees.internal/api/v1", "timeout": "3s"},
		"session": {"backend": "redis", "redis_addr": "localhost:6379", "ttl": 600}
	}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://fees.internal/api/v1", cfg.Backend.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Backend.Timeout.Std())
	assert.Equal(t, "redis", cfg.Session.Backend)
	assert.Equal(t, 10*time.Minute, cfg.Session.TTL.Std())
	// untouched sections keep defaults
	assert.Equal(t, ":8080", cfg.Server.Address)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
server:
  address: ":9090"
  rate_limit: 0
session:
  backend: sqlite
  dsn: /tmp/sessions.db
  ttl: 45m
logging:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Zero(t, cfg.Server.RateLimit)
	assert.Equal(t, "sqlite", cfg.Session.Backend)
	assert.Equal(t, 45*time.Minute, cfg.Session.TTL.Std())
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadRejectsUnknownSessionBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"session": {"backend": "etcd"}}`), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeConfig))
}

func TestSaveRoundTripYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yml")
	cfg := Default()
	cfg.Backend.Timeout = Duration(7 * time.Second)
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7*time.Second, loaded.Backend.Timeout.Std())
}
