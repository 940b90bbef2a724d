package model

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Auth provider names accepted in auth.provider.
const (
	AuthProviderLocal           = "local"
	AuthProviderIdentityToolkit = "identitytoolkit"
)

// StoreConfig locates the local database.
type StoreConfig struct {
	// Path is the SQLite file. Empty means <config dir>/taskshop.db.
	Path string `mapstructure:"path" yaml:"path"`
}

// AuthConfig selects and configures the identity provider.
type AuthConfig struct {
	// Provider is "local" or "identitytoolkit".
	Provider string `mapstructure:"provider" yaml:"provider"`

	// APIKey is the Identity Toolkit web API key.
	APIKey string `mapstructure:"api_key" yaml:"api_key"`

	// BaseURL overrides the Identity Toolkit endpoint (used against emulators).
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
}

// ShopConfig holds storefront pricing and paging.
type ShopConfig struct {
	PageSize         int   `mapstructure:"page_size" yaml:"page_size"`
	FreeShippingOver int64 `mapstructure:"free_shipping_over" yaml:"free_shipping_over"`
	ShippingFee      int64 `mapstructure:"shipping_fee" yaml:"shipping_fee"`
	TaxPercent       int64 `mapstructure:"tax_percent" yaml:"tax_percent"`
}

// IMAPConfig points at a mailbox that receives a copy of each receipt. The
// password lives in the keyring, never in the config file.
type IMAPConfig struct {
	Host     string `mapstructure:"host" yaml:"host"`
	Port     string `mapstructure:"port" yaml:"port"`
	Username string `mapstructure:"username" yaml:"username"`
	Folder   string `mapstructure:"folder" yaml:"folder"`
	TLS      bool   `mapstructure:"tls" yaml:"tls"`
}

// Enabled reports whether a server is configured.
func (c IMAPConfig) Enabled() bool {
	return c.Host != ""
}

// ReceiptConfig controls where checkout receipts are written.
type ReceiptConfig struct {
	Dir  string     `mapstructure:"dir" yaml:"dir"`
	From string     `mapstructure:"from" yaml:"from"`
	IMAP IMAPConfig `mapstructure:"imap" yaml:"imap"`
}

// LogConfig controls the logrus sink.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Store    StoreConfig   `mapstructure:"store" yaml:"store"`
	Auth     AuthConfig    `mapstructure:"auth" yaml:"auth"`
	Shop     ShopConfig    `mapstructure:"shop" yaml:"shop"`
	Receipts ReceiptConfig `mapstructure:"receipts" yaml:"receipts"`
	Log      LogConfig     `mapstructure:"log" yaml:"log"`
	Display  DisplayConfig `mapstructure:"display" yaml:"display"`
}

// ConfigDir returns ~/.config/taskshop, or "." when the home directory is
// unknown.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "taskshop")
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/taskshop/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// DefaultAppConfig returns the configuration used when no file exists.
func DefaultAppConfig() *AppConfig {
	dir := ConfigDir()
	return &AppConfig{
		Store: StoreConfig{Path: filepath.Join(dir, "taskshop.db")},
		Auth:  AuthConfig{Provider: AuthProviderLocal},
		Shop: ShopConfig{
			PageSize:         6,
			FreeShippingOver: 1_000_000,
			ShippingFee:      15_000,
			TaxPercent:       11,
		},
		Receipts: ReceiptConfig{
			Dir:  filepath.Join(dir, "receipts"),
			From: "TaskShop <orders@taskshop.local>",
			IMAP: IMAPConfig{Port: "993", Folder: "Receipts", TLS: true},
		},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(dir, "taskshop.log"),
		},
		Display: DisplayConfig{Theme: "default"},
	}
}

func setDefaults(v *viper.Viper, d *AppConfig) {
	v.SetDefault("store.path", d.Store.Path)
	v.SetDefault("auth.provider", d.Auth.Provider)
	v.SetDefault("auth.api_key", "")
	v.SetDefault("auth.base_url", "")
	v.SetDefault("shop.page_size", d.Shop.PageSize)
	v.SetDefault("shop.free_shipping_over", d.Shop.FreeShippingOver)
	v.SetDefault("shop.shipping_fee", d.Shop.ShippingFee)
	v.SetDefault("shop.tax_percent", d.Shop.TaxPercent)
	v.SetDefault("receipts.dir", d.Receipts.Dir)
	v.SetDefault("receipts.from", d.Receipts.From)
	v.SetDefault("receipts.imap.host", "")
	v.SetDefault("receipts.imap.port", d.Receipts.IMAP.Port)
	v.SetDefault("receipts.imap.username", "")
	v.SetDefault("receipts.imap.folder", d.Receipts.IMAP.Folder)
	v.SetDefault("receipts.imap.tls", d.Receipts.IMAP.TLS)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("display.theme", d.Display.Theme)
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, defaults are used. TASKSHOP_* environment
// variables override file values (TASKSHOP_AUTH_API_KEY -> auth.api_key).
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("taskshop")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, DefaultAppConfig())

	if err := v.ReadInConfig(); err != nil {
		_, missing := err.(*os.PathError)
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if !missing && !notFound {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings no component can run with.
func (c *AppConfig) Validate() error {
	switch c.Auth.Provider {
	case AuthProviderLocal:
	case AuthProviderIdentityToolkit:
		if c.Auth.APIKey == "" {
			return fmt.Errorf("auth.api_key is required for provider %q", c.Auth.Provider)
		}
	default:
		return fmt.Errorf("unknown auth.provider %q", c.Auth.Provider)
	}
	if c.Shop.PageSize < 1 {
		return fmt.Errorf("shop.page_size must be positive, got %d", c.Shop.PageSize)
	}
	if c.Shop.TaxPercent < 0 || c.Shop.ShippingFee < 0 || c.Shop.FreeShippingOver < 0 {
		return fmt.Errorf("shop pricing values must not be negative")
	}
	if c.Receipts.IMAP.Enabled() && c.Receipts.IMAP.Username == "" {
		return fmt.Errorf("receipts.imap.username is required when receipts.imap.host is set")
	}
	return nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("store", cfg.Store)
	v.Set("auth", cfg.Auth)
	v.Set("shop", cfg.Shop)
	v.Set("receipts", cfg.Receipts)
	v.Set("log", cfg.Log)
	v.Set("display", cfg.Display)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
