// Package config reads service settings from defaults, an optional config
// file and MINISHOP_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "MINISHOP"

var ErrInvalid = errors.New("invalid config")

type Config struct {
	HTTP     HTTP     `mapstructure:"http"`
	Catalog  Catalog  `mapstructure:"catalog"`
	Receipts Receipts `mapstructure:"receipts"`
	Log      Log      `mapstructure:"log"`
	Metrics  Metrics  `mapstructure:"metrics"`
	Checkout Checkout `mapstructure:"checkout"`
}

type HTTP struct {
	Port int `mapstructure:"port"`
}

// Catalog is loaded from Postgres when DSN is set, otherwise from Path.
type Catalog struct {
	Path string `mapstructure:"path"`
	DSN  string `mapstructure:"dsn"`
}

type Receipts struct {
	DSN string `mapstructure:"dsn"`
}

type Log struct {
	Level string `mapstructure:"level"`
}

type Metrics struct {
	Enabled bool   `mapstructure:"enabled"`
	Token   string `mapstructure:"token"`
}

type Checkout struct {
	LimitPerMin int `mapstructure:"limit_per_min"`
}

func (c Config) Addr() string { return fmt.Sprintf(":%d", c.HTTP.Port) }

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.port", 8080)
	v.SetDefault("catalog.path", "items.yml")
	v.SetDefault("catalog.dsn", "")
	v.SetDefault("receipts.dsn", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.token", "")
	v.SetDefault("checkout.limit_per_min", 30)
}

// Load builds a Config. path may be empty, in which case only defaults and
// the environment apply.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.HTTP.Port < 1 || c.HTTP.Port > 65535 {
		return fmt.Errorf("%w: http.port %d out of range", ErrInvalid, c.HTTP.Port)
	}
	if c.Catalog.DSN == "" && strings.TrimSpace(c.Catalog.Path) == "" {
		return fmt.Errorf("%w: catalog.path or catalog.dsn is required", ErrInvalid)
	}
	if c.Checkout.LimitPerMin < 0 {
		return fmt.Errorf("%w: checkout.limit_per_min must not be negative", ErrInvalid)
	}
	return nil
}
