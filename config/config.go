package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

/* Config é um pacote auxiliar. Poderia ser uma lib externa
 * Values come from an optional .env file (TOML) and the environment,
 * the environment winning when both are set.
 */

type Config struct {
	Port               string  `mapstructure:"PORT"`
	WahaAPIURL         string  `mapstructure:"WAHA_API_URL"`
	WahaAPIKey         string  `mapstructure:"WAHA_API_KEY"`
	WebhookHMACKey     string  `mapstructure:"WEBHOOK_HMAC_KEY"`
	UpstreamsFile      string  `mapstructure:"UPSTREAMS_FILE"`
	RedisAddr          string  `mapstructure:"REDIS_ADDR"`
	RedisPassword      string  `mapstructure:"REDIS_PASSWORD"`
	RedisDB            int     `mapstructure:"REDIS_DB"`
	RedisChannel       string  `mapstructure:"REDIS_CHANNEL"`
	SendRatePerSecond  float64 `mapstructure:"SEND_RATE_PER_SECOND"`
	SendBurst          int     `mapstructure:"SEND_BURST"`
	StreamClientBuffer int     `mapstructure:"STREAM_CLIENT_BUFFER"`
}

var defaults = map[string]any{
	"PORT":                 "8080",
	"WAHA_API_URL":         "http://localhost:3000",
	"WAHA_API_KEY":         "",
	"WEBHOOK_HMAC_KEY":     "",
	"UPSTREAMS_FILE":       "",
	"REDIS_ADDR":           "",
	"REDIS_PASSWORD":       "",
	"REDIS_DB":             0,
	"REDIS_CHANNEL":        "waha:webhooks",
	"SEND_RATE_PER_SECOND": 0.0,
	"SEND_BURST":           1,
	"STREAM_CLIENT_BUFFER": 64,
}

func GetConfig() (*Config, error) {
	return load(".")
}

func load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("toml")
	v.AddConfigPath(path)
	// Unmarshal only sees keys viper already knows about, so every key gets a default.
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()
	err := v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}
	var config Config
	err = v.Unmarshal(&config)
	if err != nil {
		return nil, fmt.Errorf("parsing config data: %w", err)
	}
	return &config, nil
}

// RedisEnabled reports whether the cross-replica relay should be started.
func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

// SendThrottled reports whether outbound sends go through a rate limiter.
func (c *Config) SendThrottled() bool {
	return c.SendRatePerSecond > 0
}
