package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Store backend selectors.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// ServerConfig holds all configuration for the gateway.
// Tags use mapstructure for Viper unmarshalling.
type ServerConfig struct {
	HTTPPort string `mapstructure:"HTTP_PORT"`

	// Backend for the session and token stores: memory, redis or mongo.
	StoreBackend string `mapstructure:"STORE_BACKEND"`
	RedisAddr    string `mapstructure:"REDIS_ADDR"`
	RedisPrefix  string `mapstructure:"REDIS_PREFIX"`
	MongoURI     string `mapstructure:"MONGO_URI"`
	MongoDBName  string `mapstructure:"MONGO_DB_NAME"`

	CodePrefix      string `mapstructure:"CODE_PREFIX"`
	CodeTTLSeconds  int    `mapstructure:"CODE_TTL_SECONDS"`
	TokenTTLSeconds int    `mapstructure:"TOKEN_TTL_SECONDS"`

	// ConfirmationURL is the human-facing page where the code is entered;
	// PublicURL is this gateway's externally visible base URL (discovery docs).
	ConfirmationURL string `mapstructure:"CONFIRMATION_URL"`
	PublicURL       string `mapstructure:"PUBLIC_URL"`

	LogLevel        string `mapstructure:"LOG_LEVEL"`
	LogPretty       bool   `mapstructure:"LOG_PRETTY"`
	OtelServiceName string `mapstructure:"OTEL_SERVICE_NAME"`
}

// CodeTTL returns the session expiry horizon.
func (c *ServerConfig) CodeTTL() time.Duration {
	return time.Duration(c.CodeTTLSeconds) * time.Second
}

// TokenTTL returns the token expiry horizon.
func (c *ServerConfig) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLSeconds) * time.Second
}

// LoadConfig reads configuration from file, environment variables, and defaults.
func LoadConfig() (*ServerConfig, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AddConfigPath("/etc/mcpgate/")
	v.AddConfigPath("$HOME/.mcpgate")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("STORE_BACKEND", BackendMemory)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PREFIX", "mcpgate")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017/mcpgate_dev")
	v.SetDefault("MONGO_DB_NAME", "mcpgate_dev")
	v.SetDefault("CODE_PREFIX", "GATE")
	v.SetDefault("CODE_TTL_SECONDS", 300)    // 5 minutes
	v.SetDefault("TOKEN_TTL_SECONDS", 86400) // 24 hours
	v.SetDefault("CONFIRMATION_URL", "https://confirm.relaymesh.dev/activate")
	v.SetDefault("PUBLIC_URL", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", true)
	v.SetDefault("OTEL_SERVICE_NAME", "mcpgate")

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is acceptable; defaults and env vars apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg ServerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	return &cfg, nil
}
