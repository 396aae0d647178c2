package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, 8080, cfg.HTTP.Port)
	require.Equal(t, ":8080", cfg.Addr())
	require.Equal(t, "items.yml", cfg.Catalog.Path)
	require.Empty(t, cfg.Catalog.DSN)
	require.Empty(t, cfg.Receipts.DSN)
	require.Equal(t, "info", cfg.Log.Level)
	require.True(t, cfg.Metrics.Enabled)
	require.Equal(t, 30, cfg.Checkout.LimitPerMin)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minishop.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  port: 9090
catalog:
  path: /srv/items.yml
log:
  level: debug
metrics:
  enabled: false
`), 0o600))

	t.Setenv("MINISHOP_HTTP_PORT", "9191")
	t.Setenv("MINISHOP_RECEIPTS_DSN", "postgres://shop@db/shop")

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, 9191, cfg.HTTP.Port)
	require.Equal(t, "/srv/items.yml", cfg.Catalog.Path)
	require.Equal(t, "postgres://shop@db/shop", cfg.Receipts.DSN)
	require.Equal(t, "debug", cfg.Log.Level)
	require.False(t, cfg.Metrics.Enabled)
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("port", func(t *testing.T) {
		t.Setenv("MINISHOP_HTTP_PORT", "70000")
		_, err := Load("")
		require.ErrorIs(t, err, ErrInvalid)
	})

	t.Run("no catalog", func(t *testing.T) {
		t.Setenv("MINISHOP_CATALOG_PATH", " ")
		_, err := Load("")
		require.ErrorIs(t, err, ErrInvalid)
	})

	t.Run("negative limit", func(t *testing.T) {
		t.Setenv("MINISHOP_CHECKOUT_LIMIT_PER_MIN", "-1")
		_, err := Load("")
		require.ErrorIs(t, err, ErrInvalid)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})
}
