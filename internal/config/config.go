package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Binance  Binance  `mapstructure:"binance"`
	Logger   Logger   `mapstructure:"logger"`
	Server   Server   `mapstructure:"server"`
	Database Database `mapstructure:"database"`
}

// Binance holds the configuration for the Binance API.
// Credentials are per user and live in the database, not here.
type Binance struct {
	Testnet        bool    `mapstructure:"testnet"`
	BaseURL        string  `mapstructure:"base_url"`
	RateLimit      float64 `mapstructure:"rate_limit"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
	RecvWindow     int     `mapstructure:"recv_window"`
}

// Server holds the configuration for the HTTP server.
type Server struct {
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Database holds the configuration for the database.
type Database struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

// Logger holds the configuration for the logger.
type Logger struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LoadConfig reads configuration from file or environment variables.
// A missing config file is not an error; defaults and environment apply.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config") // name of config file (without extension)
	v.SetConfigType("yml")

	// Allow environment variables to override config file
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("binance.testnet", false)
	v.SetDefault("binance.base_url", "")
	v.SetDefault("binance.rate_limit", 20)      // requests per second
	v.SetDefault("binance.rate_limit_burst", 5) // burst size
	v.SetDefault("binance.recv_window", 5000)   // milliseconds
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "ledger.db")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return
		}
		err = nil
	}

	err = v.Unmarshal(&config)
	return
}
