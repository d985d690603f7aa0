package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Ananth-NQI/storebot-backend/pkg/e"
)

func setBase(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("ADMIN_ID", "42")
	t.Setenv("USE_MEMORY_STORE", "true")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("MONGODB_URI", "")
	t.Setenv("WEBHOOK_URL", "")
	t.Setenv("RAILWAY_STATIC_URL", "")
	t.Setenv("PORT", "")
	t.Setenv("SESSION_TTL", "")
}

func TestLoad_Defaults(t *testing.T) {
	setBase(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, int64(42), cfg.Bot.AdminID)
	require.Equal(t, "3000", cfg.HTTP.Port)
	require.Equal(t, DriverMemory, cfg.Store.Driver)
	require.Equal(t, time.Duration(0), cfg.Redis.SessionTTL)
	require.False(t, cfg.Twilio.Enabled())
}

func TestLoad_RequiresTokenAndAdmin(t *testing.T) {
	setBase(t)
	t.Setenv("BOT_TOKEN", "")
	_, err := Load()
	require.ErrorIs(t, err, e.ErrInvalidConfig)

	setBase(t)
	t.Setenv("ADMIN_ID", "not-a-number")
	_, err = Load()
	require.ErrorIs(t, err, e.ErrInvalidConfig)
}

func TestLoad_StoreDriverFromURL(t *testing.T) {
	cases := map[string]StoreDriver{
		"mongodb://localhost:27017/shop":         DriverMongo,
		"mongodb+srv://u:p@cluster.example/shop": DriverMongo,
		"postgres://u:p@localhost:5432/shop":     DriverPostgres,
		"host=localhost user=u dbname=shop":      DriverPostgres,
	}
	for url, want := range cases {
		setBase(t)
		t.Setenv("USE_MEMORY_STORE", "")
		t.Setenv("DATABASE_URL", url)

		cfg, err := Load()
		require.NoError(t, err, url)
		require.Equal(t, want, cfg.Store.Driver, url)
		require.Equal(t, url, cfg.Store.URL)
	}

	setBase(t)
	t.Setenv("USE_MEMORY_STORE", "")
	_, err := Load()
	require.ErrorIs(t, err, e.ErrInvalidConfig)

	t.Setenv("DATABASE_URL", "mysql://nope")
	_, err = Load()
	require.ErrorIs(t, err, e.ErrInvalidConfig)
}

func TestLoad_WebhookFallback(t *testing.T) {
	setBase(t)
	t.Setenv("RAILWAY_STATIC_URL", "shop.up.railway.app")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "https://shop.up.railway.app", cfg.Bot.WebhookURL)

	t.Setenv("WEBHOOK_URL", "https://bot.example.com/")
	cfg, err = Load()
	require.NoError(t, err)
	require.Equal(t, "https://bot.example.com", cfg.Bot.WebhookURL)
}

func TestLoad_BadDuration(t *testing.T) {
	setBase(t)
	t.Setenv("SESSION_TTL", "soon")
	_, err := Load()
	require.ErrorIs(t, err, e.ErrInvalidConfig)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("STOREBOT_DOTENV_PROBE=loaded\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("STOREBOT_DOTENV_PROBE") })

	require.False(t, LoadDotEnv(filepath.Join(dir, "missing.env")))
	require.True(t, LoadDotEnv(path))
	require.Equal(t, "loaded", os.Getenv("STOREBOT_DOTENV_PROBE"))
}
