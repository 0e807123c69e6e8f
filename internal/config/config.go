package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	CoolPC   CoolPCConfig   `mapstructure:"coolpc"`
	Fetch    FetchConfig    `mapstructure:"fetch"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

// ServerConfig identifies the MCP server towards clients
type ServerConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
}

// CatalogConfig locates the catalog document on disk
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// CoolPCConfig holds the price-list fetcher settings
type CoolPCConfig struct {
	BaseURL              string `mapstructure:"base_url"`
	Timeout              int    `mapstructure:"timeout"`
	MaxRetries           int    `mapstructure:"max_retries"`
	MaxRequestsPerSecond int    `mapstructure:"max_requests_per_second"`
	UserAgent            string `mapstructure:"user_agent"`
}

// FetchConfig controls the start-up refresh behaviour
type FetchConfig struct {
	RefreshOnStart bool `mapstructure:"refresh_on_start"`
	MinInterval    int  `mapstructure:"min_interval"` // minutes, gated through the Redis fetch state
}

// DatabaseConfig holds the optional snapshot archive connection
type DatabaseConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

// RedisConfig holds the optional fetch-state connection details
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
}

// Load loads configuration from YAML file with environment variable
// overrides. A missing config.yaml is fine, the defaults describe a
// read-only stdio server over ./evaluate.json.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.name", "coolpc-catalog")
	viper.SetDefault("server.version", "1.0.0")

	viper.SetDefault("catalog.path", "evaluate.json")

	viper.SetDefault("coolpc.base_url", "https://www.coolpc.com.tw")
	viper.SetDefault("coolpc.timeout", 60)
	viper.SetDefault("coolpc.max_retries", 3)
	viper.SetDefault("coolpc.max_requests_per_second", 1)
	viper.SetDefault("coolpc.user_agent",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")

	viper.SetDefault("fetch.refresh_on_start", false)
	viper.SetDefault("fetch.min_interval", 60)

	viper.SetDefault("database.enabled", false)
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.name", "coolpc")
	viper.SetDefault("database.user", "coolpc_user")
	viper.SetDefault("database.password", "coolpc_pass")

	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.database", 0)
}
