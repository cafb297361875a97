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
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const minimalConfig = `
server:
  host: "0.0.0.0"
  port: 8080
firestore:
  project_id: "nox-test"
paystack:
  secret_key: "sk_test_x"
jwt:
  secret: "jwt-secret"
`

func TestLoad(t *testing.T) {
	t.Run("minimal config gets defaults", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, minimalConfig))
		require.NoError(t, err)

		assert.Equal(t, "0.0.0.0:8080", cfg.GetServerAddress())
		assert.Equal(t, "https://api.paystack.co", cfg.Paystack.BaseURL)
		assert.Equal(t, "2000.00", cfg.Limits.MaxTransferAmount)
		assert.Equal(t, int64(6), cfg.Limits.PlatformFeePct)
		assert.Equal(t, int64(60), cfg.Limits.DailyLimitPct)
		assert.Equal(t, "0 0 1 * * *", cfg.Scheduler.SweepExpiredSubscriptions)
		assert.Equal(t, "info", cfg.Log.Level)
	})

	t.Run("environment overrides file values", func(t *testing.T) {
		t.Setenv("PAYSTACK_SECRET_KEY", "sk_live_y")
		t.Setenv("SERVER_PORT", "9090")

		cfg, err := Load(writeConfig(t, minimalConfig))
		require.NoError(t, err)
		assert.Equal(t, "sk_live_y", cfg.Paystack.SecretKey)
		assert.Equal(t, 9090, cfg.Server.Port)
	})

	t.Run("missing gateway secret fails fast", func(t *testing.T) {
		body := `
server:
  port: 8080
firestore:
  project_id: "nox-test"
jwt:
  secret: "jwt-secret"
`
		_, err := Load(writeConfig(t, body))
		assert.ErrorContains(t, err, "paystack secret key")
	})

	t.Run("missing jwt secret fails fast", func(t *testing.T) {
		body := `
server:
  port: 8080
firestore:
  project_id: "nox-test"
paystack:
  secret_key: "sk_test_x"
`
		_, err := Load(writeConfig(t, body))
		assert.ErrorContains(t, err, "JWT secret")
	})

	t.Run("bad port rejected", func(t *testing.T) {
		body := `
server:
  port: 99999
firestore:
  project_id: "nox-test"
paystack:
  secret_key: "sk_test_x"
jwt:
  secret: "jwt-secret"
`
		_, err := Load(writeConfig(t, body))
		assert.ErrorContains(t, err, "invalid server port")
	})

	t.Run("unreadable file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
}
