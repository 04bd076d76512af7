// Package conf loads and validates the process configuration.
package conf

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/viper"

	"github.com/campushq/campushub/internal/log"
	"github.com/campushq/campushub/internal/server"
	"github.com/campushq/campushub/internal/server/biz"
	"github.com/campushq/campushub/internal/server/gc"
	"github.com/campushq/campushub/internal/store"
)

type Config struct {
	Server server.Config  `conf:"server" yaml:"server" json:"server"`
	Log    log.Config     `conf:"log"    yaml:"log"    json:"log"`
	DB     store.Config   `conf:"db"     yaml:"db"     json:"db"`
	Auth   biz.AuthConfig `conf:"auth"   yaml:"auth"   json:"auth"`
	GC     gc.Config      `conf:"gc"     yaml:"gc"     json:"gc"`
}

// Load reads campushub.yml from the working directory, ./conf or
// /etc/campushub, then applies CAMPUSHUB_* environment overrides.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("campushub")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./conf")
	v.AddConfigPath("/etc/campushub")

	v.SetEnvPrefix("CAMPUSHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("conf: read config: %w", err)
		}
		// No file is fine; defaults plus env cover it.
	}

	var config Config

	err := v.Unmarshal(&config, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "conf"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	})
	if err != nil {
		return nil, fmt.Errorf("conf: unmarshal: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.name", "campushub")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.request_timeout", "30s")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stderr")

	v.SetDefault("db.dialect", "sqlite")
	v.SetDefault("db.dsn", "file:campushub.db?cache=shared&_pragma=foreign_keys(1)")

	v.SetDefault("auth.token_ttl", (7 * 24 * time.Hour).String())

	v.SetDefault("gc.cron", "*/10 * * * *")
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		result = multierror.Append(result, fmt.Errorf("conf: server.port %d out of range", c.Server.Port))
	}

	if c.DB.Dialect == "" {
		result = multierror.Append(result, errors.New("conf: db.dialect is required"))
	}

	if c.DB.DSN == "" {
		result = multierror.Append(result, errors.New("conf: db.dsn is required"))
	}

	if c.Auth.SecretKey != "" && len(c.Auth.SecretKey) < 32 {
		result = multierror.Append(result, errors.New("conf: auth.secret_key must be at least 32 characters"))
	}

	if c.Auth.TokenTTL <= 0 {
		result = multierror.Append(result, errors.New("conf: auth.token_ttl must be positive"))
	}

	if c.GC.CRON == "" {
		result = multierror.Append(result, errors.New("conf: gc.cron is required"))
	}

	return result.ErrorOrNil()
}

// Components splits the loaded config into the per-layer configs fx injects.
func Components(c *Config) (server.Config, log.Config, store.Config, biz.AuthConfig, gc.Config) {
	return c.Server, c.Log, c.DB, c.Auth, c.GC
}
