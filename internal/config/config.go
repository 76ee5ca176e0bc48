package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	App  AppConfig
	HTTP HTTPConfig
	Auth AuthConfig
	PG   PGConfig
}

type AppConfig struct {
	Env      string `env:"APP_ENV" env-default:"dev"`
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`
}

type HTTPConfig struct {
	Port string `env:"HTTP_PORT" env-default:"8080"`

	ReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout  time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

type AuthConfig struct {
	// JWTSecret signs bearer tokens. Loaded once at process start and
	// injected into the auth service, never read from a global afterwards.
	JWTSecret  string        `env:"JWT_SECRET" env-required:"true"`
	TokenTTL   time.Duration `env:"TOKEN_TTL" env-default:"1h"`
	BcryptCost int           `env:"BCRYPT_COST" env-default:"10"`
}

type PGConfig struct {
	// DSN is optional: when empty the server runs on the in-memory store.
	DSN           string `env:"PG_DSN" env-default:""`
	MigrationsDir string `env:"MIGRATIONS_DIR" env-default:"migrations"`
}

// Load reads configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	if cfg.Auth.TokenTTL <= 0 {
		return Config{}, fmt.Errorf("TOKEN_TTL must be positive")
	}
	return cfg, nil
}
