package config

import (
	"fmt"
	"net/url"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"ENV" default:"development"`

	// Database settings. DATABASE_URL wins when set; otherwise the discrete
	// fields are assembled into a connection string.
	DatabaseURL string `envconfig:"DATABASE_URL"`
	DBHost      string `envconfig:"POSTGRES_HOST" default:"localhost"`
	DBPort      int    `envconfig:"POSTGRES_PORT" default:"5432"`
	DBUser      string `envconfig:"POSTGRES_USER" default:"postgres"`
	DBPassword  string `envconfig:"POSTGRES_PASSWORD"`
	DBName      string `envconfig:"POSTGRES_DATABASE" default:"postgres"`
	DBSSLMode   string `envconfig:"POSTGRES_SSLMODE" default:"require"`

	// Session token settings
	JWTSecret   string `envconfig:"SESSION_SECRET" required:"true"`
	SessionDays int    `envconfig:"SESSION_MAX_AGE_DAYS" default:"30"`

	// Google OAuth settings
	GoogleClientID     string `envconfig:"GOOGLE_CLIENT_ID" required:"true"`
	GoogleClientSecret string `envconfig:"GOOGLE_CLIENT_SECRET" required:"true"`
	GoogleRedirectURL  string `envconfig:"GOOGLE_REDIRECT_URL" required:"true"`

	// Upstream AI service settings
	AssistantBaseURL string `envconfig:"ASSISTANT_BASE_URL" default:"http://localhost:8000"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DSN returns the Postgres connection string, preferring DATABASE_URL when present.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	u := &url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", c.DBHost, c.DBPort),
		User:   url.UserPassword(c.DBUser, c.DBPassword),
		Path:   c.DBName,
	}
	q := u.Query()
	q.Set("sslmode", c.DBSSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}
