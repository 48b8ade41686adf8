package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
}

// DatabaseConfig holds sqlite settings. Path is the environment-level
// storage selector (KORTKOLL_DATABASE_PATH).
type DatabaseConfig struct {
	Path       string
	Migrations string
}

// ServerConfig holds HTTP settings.
type ServerConfig struct {
	Addr string
}

// Load reads configuration from file and env. Env var overrides use prefix
// KORTKOLL_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "kortkoll", "kortkoll.db"))
	v.SetDefault("database.migrations", "internal/database/migrations")
	v.SetDefault("server.addr", ":8000")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("KORTKOLL_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "kortkoll"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("KORTKOLL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}
