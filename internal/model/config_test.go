package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, AuthProviderLocal, cfg.Auth.Provider)
	assert.Equal(t, 6, cfg.Shop.PageSize)
	assert.Equal(t, int64(1_000_000), cfg.Shop.FreeShippingOver)
	assert.Equal(t, int64(15_000), cfg.Shop.ShippingFee)
	assert.Equal(t, int64(11), cfg.Shop.TaxPercent)
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "shop:\n  page_size: 3\nauth:\n  provider: identitytoolkit\n  api_key: abc\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Shop.PageSize)
	assert.Equal(t, int64(11), cfg.Shop.TaxPercent)
	assert.Equal(t, AuthProviderIdentityToolkit, cfg.Auth.Provider)
	assert.Equal(t, "abc", cfg.Auth.APIKey)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("TASKSHOP_SHOP_PAGE_SIZE", "9")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Shop.PageSize)
}

func TestLoadConfig_RejectsToolkitWithoutKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("auth:\n  provider: identitytoolkit\n"), 0o600))

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "api_key")
}

func TestLoadConfig_ReceiptMailbox(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "receipts:\n  imap:\n    host: imap.example.com\n    username: ana\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.Receipts.IMAP.Enabled())
	assert.Equal(t, "993", cfg.Receipts.IMAP.Port)
	assert.Equal(t, "Receipts", cfg.Receipts.IMAP.Folder)
	assert.True(t, cfg.Receipts.IMAP.TLS)

	require.NoError(t, os.WriteFile(path, []byte("receipts:\n  imap:\n    host: imap.example.com\n"), 0o600))
	_, err = LoadConfig(path)
	assert.ErrorContains(t, err, "receipts.imap.username")
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultAppConfig()
	cfg.Shop.PageSize = 4
	cfg.Display.Theme = "dark"

	require.NoError(t, SaveConfig(path, cfg))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 4, loaded.Shop.PageSize)
	assert.Equal(t, "dark", loaded.Display.Theme)
}
