package config

import (
	"fmt"
	"os"
	"strings"

	httpapi "github.com/evlampy/storeboard/internal/api/http"
	"github.com/evlampy/storeboard/internal/apisrv/auth"
	"github.com/evlampy/storeboard/internal/mailstats"
	"github.com/evlampy/storeboard/internal/source"
	"github.com/evlampy/storeboard/internal/store"
	"github.com/evlampy/storeboard/log"
	"github.com/spf13/viper"
)

// Config represents the global configuration for the service.
type Config struct {
	DB     store.Config     `mapstructure:"mysql"`
	Logger log.Config       `mapstructure:"logger"`
	HTTP   httpapi.Config   `mapstructure:"http"`
	Auth   auth.Config      `mapstructure:"auth"`
	Source source.Config    `mapstructure:"source"`
	Mail   mailstats.Config `mapstructure:"mailstats"`
}

// LoadConfig loads the configuration from a file and/or environment
// variables. Environment variables take precedence over config file values.
func LoadConfig(cfgFile string) (*Config, error) {
	viper.SetConfigType("toml")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "__", "-", "__"))

	bindEnvVars()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %v", err)
			}
		}
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath("./config")
		viper.AddConfigPath("$HOME/config/storeboard")
		viper.AddConfigPath("/etc/storeboard")
		// config file is optional, env vars can carry everything
		_ = viper.ReadInConfig()
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config into struct: %v", err)
	}

	return &config, nil
}

// bindEnvVars binds flat environment variable names to nested config keys.
func bindEnvVars() {
	// MySQL
	viper.BindEnv("mysql.dsn", "MYSQL_DSN")
	viper.BindEnv("mysql.automigrate", "MYSQL_AUTOMIGRATE")
	viper.BindEnv("mysql.max_open_connections", "MYSQL_MAX_OPEN_CONNECTIONS")
	viper.BindEnv("mysql.max_idle_connections", "MYSQL_MAX_IDLE_CONNECTIONS")

	// Logger
	viper.BindEnv("logger.level", "LOG_LEVEL")
	viper.BindEnv("logger.add_source", "LOG_ADD_SOURCE")

	// HTTP
	viper.BindEnv("http.port", "HTTP_PORT")
	viper.BindEnv("http.address", "HTTP_ADDRESS")
	viper.BindEnv("http.allowed_origins", "HTTP_ALLOWED_ORIGINS")
	viper.BindEnv("http.rate_limit", "HTTP_RATE_LIMIT")
	viper.BindEnv("http.rate_window", "HTTP_RATE_WINDOW")

	// Auth
	viper.BindEnv("auth.jwt_secret", "AUTH_JWT_SECRET")
	viper.BindEnv("auth.master_password", "AUTH_MASTER_PASSWORD")
	viper.BindEnv("auth.jwt_ttl", "AUTH_JWT_TTL")

	// Shop platform source
	viper.BindEnv("source.base_url", "SOURCE_BASE_URL")
	viper.BindEnv("source.api_key", "SOURCE_API_KEY")
	viper.BindEnv("source.timeout", "SOURCE_TIMEOUT")
	viper.BindEnv("source.cache_ttl", "SOURCE_CACHE_TTL")
	viper.BindEnv("source.orders_lookup_days", "SOURCE_ORDERS_LOOKUP_DAYS")

	// Mail platform
	viper.BindEnv("mailstats.sendgrid_api_key", "MAILSTATS_SENDGRID_API_KEY")
	viper.BindEnv("mailstats.host", "MAILSTATS_HOST")
}
