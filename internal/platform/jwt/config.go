package jwtmw

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvKeyJWTSecret is the environment variable holding the HMAC signing key.
const EnvKeyJWTSecret = "JWT_SECRET"

// Config holds the token signing settings.
type Config struct {
	Secret     string        `envconfig:"JWT_SECRET"`
	Expiration time.Duration `envconfig:"JWT_EXPIRATION" default:"24h"`
}

// LoadConfig reads the JWT settings from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("load jwt config: %w", err)
	}
	if cfg.Secret == "" {
		return Config{}, fmt.Errorf("load jwt config: %s is empty", EnvKeyJWTSecret)
	}
	return cfg, nil
}
