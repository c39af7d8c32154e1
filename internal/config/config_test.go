package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_MemoryStorageWithDefaults(t *testing.T) {
	path := writeConfig(t, `
[storage]
driver = "memory"

[booking]
timezone = "Europe/Lisbon"
currency = "EUR"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, "EUR", cfg.Booking.Currency)
	assert.False(t, cfg.Payment.Enabled)

	loc, err := cfg.Booking.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Lisbon", loc.String())
}

func TestLoad_EnvOverridesSecrets(t *testing.T) {
	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("PAYMENT_SECRET_KEY", "sk_test")

	path := writeConfig(t, `
[database]
host = "localhost"
dbname = "charter"
password = "from-file"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "sk_test", cfg.Payment.SecretKey)
	assert.Contains(t, cfg.Database.DSN(), "dbname=charter")
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "unknown driver", body: "[storage]\ndriver = \"mongo\"\n"},
		{name: "postgres without host", body: "[storage]\ndriver = \"postgres\"\n"},
		{name: "payment enabled without url", body: "[storage]\ndriver = \"memory\"\n[payment]\nenabled = true\n"},
		{name: "bad timezone", body: "[storage]\ndriver = \"memory\"\n[booking]\ntimezone = \"Mars/Olympus\"\n"},
		{name: "bad log level", body: "[storage]\ndriver = \"memory\"\n[logs]\nlevel = \"trace\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.ErrorIs(t, err, ErrReadConfig)
}

func TestLoad_DotEnv(t *testing.T) {
	path := writeConfig(t, `
[storage]
driver = "memory"
`)

	t.Run("values from .env", func(t *testing.T) {
		t.Chdir(t.TempDir())
		require.NoError(t, os.WriteFile(".env", []byte("CALENDAR_ACCESS_TOKEN=token-from-dotenv\n"), 0o600))
		t.Cleanup(func() { _ = os.Unsetenv("CALENDAR_ACCESS_TOKEN") })

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "token-from-dotenv", cfg.Calendar.AccessToken)
	})

	t.Run("missing .env is fine", func(t *testing.T) {
		t.Chdir(t.TempDir())

		_, err := Load(path)
		assert.NoError(t, err)
	})

	t.Run("malformed .env is an error", func(t *testing.T) {
		t.Chdir(t.TempDir())
		require.NoError(t, os.WriteFile(".env", []byte("PAYMENT_SECRET_KEY=\"no closing quote\n"), 0o600))

		_, err := Load(path)
		assert.ErrorIs(t, err, ErrReadConfig)
	})
}
