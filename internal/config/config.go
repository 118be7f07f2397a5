package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	_ "github.com/joho/godotenv/autoload"
)

const (
	EnvDev  = "dev"
	EnvProd = "prod"
)

type Config struct {
	Env      string `env:"ENV" env-default:"dev"`
	HTTP     HTTPConfig
	Postgres PostgresConfig
	JWT      JWTConfig

	// AllowedOrigins is appended to the localhost development defaults.
	AllowedOrigins []string `env:"ALLOWED_ORIGINS"`
}

type HTTPConfig struct {
	Host string `env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `env:"PORT" env-default:"3001"`
}

type PostgresConfig struct {
	Host     string `env:"POSTGRES_HOST" env-default:"localhost"`
	Port     int    `env:"POSTGRES_PORT" env-default:"5432"`
	Username string `env:"POSTGRES_USERNAME" env-required:"true"`
	Password string `env:"POSTGRES_PASSWORD" env-required:"true"`
	Database string `env:"POSTGRES_DATABASE" env-required:"true"`
	SSLMode  string `env:"POSTGRES_SSL_MODE" env-default:"disable"`
}

type JWTConfig struct {
	Secret string        `env:"JWT_SECRET" env-required:"true"`
	TTL    time.Duration `env:"JWT_TTL" env-default:"24h"`
}

var defaultOrigins = []string{
	"http://localhost:5173",
	"http://localhost:3001",
}

func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Addr() string {
	return c.HTTP.Host + ":" + c.HTTP.Port
}

// Origins returns the CORS allow-list: the development defaults plus any
// configured extras.
func (c *Config) Origins() []string {
	origins := make([]string, len(defaultOrigins))
	copy(origins, defaultOrigins)

	for _, origin := range c.AllowedOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			origins = append(origins, trimmed)
		}
	}

	return origins
}

func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.Username, p.Password, p.Host, p.Port, p.Database, p.SSLMode)
}
