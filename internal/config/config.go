package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

const ENV_PREFIX = "ABIKIT"

// Keys shared by flags, environment variables and viper.
const (
	Debug = "debug"

	LookupURL        = "lookup.url"
	LookupTimeout    = "lookup.timeout"
	LookupMaxRetries = "lookup.max-retries"
)

const (
	DefaultLookupURL        = "https://api.openchain.xyz"
	DefaultLookupTimeout    = 10 * time.Second
	DefaultLookupMaxRetries = 3
)

type Config struct {
	Debug        bool
	LookupConfig LookupConfig
}

type LookupConfig struct {
	Url        string
	Timeout    time.Duration
	MaxRetries int
}

// KebabToSnakeCase turns a flag name into its viper key, "lookup.max-retries"
// becoming "lookup.max_retries".
func KebabToSnakeCase(str string) string {
	return strings.ReplaceAll(str, "-", "_")
}

// NewConfig reads the current viper state. Unset values fall back to defaults.
func NewConfig() *Config {
	c := &Config{
		Debug: viper.GetBool(KebabToSnakeCase(Debug)),
		LookupConfig: LookupConfig{
			Url:        viper.GetString(KebabToSnakeCase(LookupURL)),
			Timeout:    viper.GetDuration(KebabToSnakeCase(LookupTimeout)),
			MaxRetries: viper.GetInt(KebabToSnakeCase(LookupMaxRetries)),
		},
	}

	if c.LookupConfig.Url == "" {
		c.LookupConfig.Url = DefaultLookupURL
	}
	if c.LookupConfig.Timeout <= 0 {
		c.LookupConfig.Timeout = DefaultLookupTimeout
	}
	if !viper.IsSet(KebabToSnakeCase(LookupMaxRetries)) {
		c.LookupConfig.MaxRetries = DefaultLookupMaxRetries
	}
	if c.LookupConfig.MaxRetries < 0 {
		c.LookupConfig.MaxRetries = 0
	}
	return c
}
