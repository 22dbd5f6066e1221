// File: internal/config/loader.go
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// LoadConfig reads configuration from a YAML file and environment variables.
// COINCASH_-prefixed variables override file values (dots become underscores,
// e.g. COINCASH_DATABASE_TYPE).
func LoadConfig() (*Config, error) {
	setDefaults()

	env := strings.ToLower(os.Getenv("APP_ENV"))
	if env == "" {
		env = "development"
	}

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName(fmt.Sprintf("config.%s", env))
		viper.SetConfigType("yaml")
		viper.AddConfigPath("./configs")
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc/coincash")
	}

	viper.SetEnvPrefix("COINCASH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Missing file is fine, environment variables still apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate fails fast on backend selectors so misconfiguration is a startup
// error, not a first-request surprise. Selectors are normalized to lowercase
// so the factories can compare exact strings.
func (c *Config) Validate() error {
	c.Database.Type = strings.ToLower(c.Database.Type)
	c.Storage.Type = strings.ToLower(c.Storage.Type)
	c.Auth.RateLimit.Store = strings.ToLower(c.Auth.RateLimit.Store)

	switch c.Database.Type {
	case "direct", "supabase":
	default:
		return fmt.Errorf("unsupported database type: %q", c.Database.Type)
	}
	switch c.Storage.Type {
	case "local", "supabase", "s3":
	default:
		return fmt.Errorf("unsupported storage type: %q", c.Storage.Type)
	}
	switch c.Auth.RateLimit.Store {
	case "memory", "redis":
	default:
		return fmt.Errorf("unsupported rate limit store: %q", c.Auth.RateLimit.Store)
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("server.port", 3000)
	viper.SetDefault("server.read_timeout", "15s")
	viper.SetDefault("server.write_timeout", "15s")
	viper.SetDefault("server.idle_timeout", "60s")
	viper.SetDefault("server.shutdown_timeout", "10s")

	viper.SetDefault("database.type", "direct")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.sslmode", "disable")

	viper.SetDefault("storage.type", "local")
	viper.SetDefault("storage.local_path", "./uploads")
	viper.SetDefault("storage.bucket", "documents")

	viper.SetDefault("smtp.port", 587)

	viper.SetDefault("jwt.ttl", "24h")
	viper.SetDefault("jwt.issuer", "coincash")

	viper.SetDefault("auth.verification_code_ttl", "30m")
	viper.SetDefault("auth.reset_token_ttl", "15m")
	viper.SetDefault("auth.rate_limit.store", "memory")
	viper.SetDefault("auth.rate_limit.limit", 3)
	viper.SetDefault("auth.rate_limit.window", "15m")

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")

	viper.SetDefault("frontend.url", "http://localhost:3001")
}
