package config

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"momoapi/internal/provider/momo"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load
const EnvPrefix = "MOMO"

type MomoCfg struct {
	Environment     string
	SubscriptionKey string
	APIUser         string
	APIKey          string
	CallbackURL     string
}

type HTTPCfg struct{ Timeout time.Duration }
type LogCfg struct{ Level string }

type Cfg struct {
	Momo MomoCfg
	HTTP HTTPCfg
	Log  LogCfg
}

// Load reads MOMO_* variables from the process environment. Each env file is
// loaded first if it exists; variables already set are never overridden.
// With no files given, ".env" is tried.
func Load(envFiles ...string) (Cfg, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, path := range envFiles {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Cfg{}, fmt.Errorf("failed to load %s: %w", path, err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetDefault("ENVIRONMENT", "sandbox")
	v.SetDefault("HTTP_TIMEOUT", "30s")
	v.SetDefault("LOG_LEVEL", "info")

	timeout, err := time.ParseDuration(v.GetString("HTTP_TIMEOUT"))
	if err != nil {
		return Cfg{}, fmt.Errorf("%s_HTTP_TIMEOUT must be a duration: %w", EnvPrefix, err)
	}

	cfg := Cfg{
		Momo: MomoCfg{
			Environment:     strings.TrimSpace(v.GetString("ENVIRONMENT")),
			SubscriptionKey: strings.TrimSpace(v.GetString("SUBSCRIPTION_KEY")),
			APIUser:         strings.TrimSpace(v.GetString("API_USER")),
			APIKey:          strings.TrimSpace(v.GetString("API_KEY")),
			CallbackURL:     strings.TrimSpace(v.GetString("CALLBACK_URL")),
		},
		HTTP: HTTPCfg{Timeout: timeout},
		Log:  LogCfg{Level: strings.ToLower(v.GetString("LOG_LEVEL"))},
	}

	// Fail fast on required settings
	if cfg.Momo.SubscriptionKey == "" {
		return Cfg{}, fmt.Errorf("%s_SUBSCRIPTION_KEY is required", EnvPrefix)
	}
	if _, err := zerolog.ParseLevel(cfg.Log.Level); err != nil {
		return Cfg{}, fmt.Errorf("%s_LOG_LEVEL: %w", EnvPrefix, err)
	}

	return cfg, nil
}

// Settings returns the flat option set a momo.Factory is built from
func (c Cfg) Settings() momo.Settings {
	return momo.Settings{
		Environment:     c.Momo.Environment,
		SubscriptionKey: c.Momo.SubscriptionKey,
		APIUser:         c.Momo.APIUser,
		APIKey:          c.Momo.APIKey,
		CallbackURL:     c.Momo.CallbackURL,
	}
}

// Options returns client options for the configured timeout and log level
func (c Cfg) Options() []momo.Option {
	level, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	return []momo.Option{
		momo.WithHTTPClient(&http.Client{Timeout: c.HTTP.Timeout}),
		momo.WithLogger(log.Logger.Level(level)),
	}
}

// NewFactory loads the configuration and builds a momo.Factory from it
func NewFactory(envFiles ...string) (*momo.Factory, error) {
	cfg, err := Load(envFiles...)
	if err != nil {
		return nil, err
	}
	return momo.NewFactory(cfg.Settings(), cfg.Options()...)
}
