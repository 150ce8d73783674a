package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_DefaultsAndFile(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
driver = "memory"

[scheduling]
max_booking_hours = 4
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, 4, cfg.Scheduling.MaxBookingHours)
	assert.Equal(t, "America/Phoenix", cfg.Scheduling.TimeZone)
	assert.Equal(t, 2*time.Hour, cfg.Scheduling.EditLock())
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, 30*time.Second, cfg.Cache.ShopTimingsTTL())
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "db.internal"
password = "from-file"
`)
	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.True(t, cfg.Redis.Enabled())
	assert.Contains(t, cfg.Database.DSN(), "port=6543")
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"unknown driver": "[database]\ndriver = \"mongo\"\n",
		"unknown zone":   "[scheduling]\ntime_zone = \"Mars/Olympus\"\n",
		"zero cap":       "[scheduling]\nmax_booking_hours = 0\n",
		"broken toml":    "[server\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content))
			assert.Error(t, err)
		})
	}

	t.Run("bad env port", func(t *testing.T) {
		t.Setenv("DB_PORT", "five")
		_, err := Load(writeConfig(t, ""))
		assert.Error(t, err)
	})
}
