package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Address string `mapstructure:"address"`
	Port    int    `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	LogMode bool   `mapstructure:"log_mode"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Log      LogConfig      `mapstructure:"log"`
}

// devJWTSecret is the fallback signing key used when no secret is
// configured. Fine for local development, unsafe anywhere else.
const devJWTSecret = "dev_secret_change_me"

var (
	appConfig *Config
	loadErr   error
	once      sync.Once
)

// Load loads configuration from given file path (e.g. "config.yaml").
// If path is empty, it defaults to "config.yaml" in current working
// directory. A missing file is not an error: defaults plus environment
// overrides (prefix EXT, e.g. EXT_JWT_SECRET) are enough to run.
func Load(path string) (*Config, error) {
	once.Do(func() {
		v := viper.New()

		if path == "" {
			v.SetConfigName("config")
			v.SetConfigType("yaml")
			v.AddConfigPath(".")
		} else {
			v.SetConfigFile(path)
		}

		v.SetDefault("server.address", "")
		v.SetDefault("server.port", 5001)
		v.SetDefault("database.path", "data/expense.db")
		v.SetDefault("jwt.expire_hours", 7*24)
		v.SetDefault("log.level", "info")

		// environment overrides, e.g. EXT_SERVER_PORT=9000
		v.SetEnvPrefix("EXT") // expense tracker
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()

		if readErr := v.ReadInConfig(); readErr != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(readErr, &notFound) && !os.IsNotExist(readErr) {
				loadErr = fmt.Errorf("read config: %w", readErr)
				return
			}
		}

		var c Config
		if err := v.Unmarshal(&c); err != nil {
			loadErr = fmt.Errorf("unmarshal config: %w", err)
			return
		}

		if c.JWT.Secret == "" {
			slog.Warn("jwt secret not configured, using insecure development default")
			c.JWT.Secret = devJWTSecret
		}

		appConfig = &c
	})

	// the first result, success or failure, is latched for every caller
	if loadErr != nil {
		return nil, loadErr
	}
	return appConfig, nil
}

// Get returns the loaded global configuration.
// Call Load() once at application startup.
func Get() *Config {
	return appConfig
}
