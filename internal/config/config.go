package config

import (
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
}

type AppConfig struct {
	Env         string   `yaml:"env" envconfig:"APP_ENV"`
	Port        int      `yaml:"port" envconfig:"APP_PORT"`
	CORSOrigins []string `yaml:"cors_origins" envconfig:"CORS_ORIGINS"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn" envconfig:"DATABASE_URL"`
}

type AuthConfig struct {
	Secret string `yaml:"secret" envconfig:"JWT_SECRET"`
	// TokenTTLMin is the bearer token lifetime in minutes. 0 issues
	// tokens without an expiry claim.
	TokenTTLMin int `yaml:"token_ttl_min" envconfig:"JWT_EXPIRE_MIN"`
}

// Load builds the configuration from defaults, then config.yaml if present,
// then environment variables. Later layers win.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:  "development",
			Port: 8080,
		},
		Database: DatabaseConfig{
			DSN: "host=localhost user=sweetshop password=sweetshop dbname=sweetshop port=5432 sslmode=disable",
		},
		Auth: AuthConfig{
			Secret:      "change-me-in-production",
			TokenTTLMin: 24 * 60,
		},
	}

	if data, err := os.ReadFile("config.yaml"); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// TokenTTL returns the configured token lifetime; zero means no expiry.
func (c AuthConfig) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLMin) * time.Minute
}
