package app

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the application.
type Config struct {
	AppEnv          string        `envconfig:"APP_ENV" default:"development"`
	AppAddr         string        `envconfig:"APP_ADDR" default:":8080"`
	AppBaseURL      string        `envconfig:"HR_APP_BASE_URL" default:"http://localhost:8080"`
	AppReadTimeout  time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"15s"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	DBURL      string `envconfig:"DB_URL"`
	DBUser     string `envconfig:"DB_USER"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBHost     string `envconfig:"DB_HOST"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBName     string `envconfig:"DB_NAME"`

	RedisAddr     string        `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
	SessionSecret string        `envconfig:"SESSION_SECRET" required:"true"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"12h"`

	CSRFSecret string `envconfig:"CSRF_SECRET" required:"true"`

	KeycloakBaseURL      string `envconfig:"KEYCLOAK_BASE_URL" required:"true"`
	KeycloakRealm        string `envconfig:"KEYCLOAK_REALM" default:"innovatech"`
	KeycloakClientID     string `envconfig:"KEYCLOAK_CLIENT_ID" default:"hr-portal"`
	KeycloakClientSecret string `envconfig:"KEYCLOAK_CLIENT_SECRET" required:"true"`

	// EditorRoles are the realm roles allowed to mutate employee records.
	EditorRoles []string `envconfig:"HR_EDITOR_ROLES" default:"hr_admin,hr_manager"`

	ProviderTimeout time.Duration `envconfig:"PROVIDER_TIMEOUT" default:"5s"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	cfg.AppBaseURL = strings.TrimRight(cfg.AppBaseURL, "/")
	cfg.KeycloakBaseURL = strings.TrimRight(cfg.KeycloakBaseURL, "/")
	if _, err := cfg.DSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DSN returns the Postgres connection string, either DB_URL verbatim or one
// assembled from the discrete DB_* parts.
func (c *Config) DSN() (string, error) {
	if c.DBURL != "" {
		return c.DBURL, nil
	}
	if c.DBUser == "" || c.DBPassword == "" || c.DBHost == "" || c.DBName == "" {
		return "", errors.New("db configuration missing: either DB_URL must be set or DB_USER, DB_PASSWORD, DB_HOST, DB_NAME must all be defined")
	}
	host := net.JoinHostPort(c.DBHost, c.DBPort)
	return fmt.Sprintf("postgres://%s:%s@%s/%s", c.DBUser, c.DBPassword, host, c.DBName), nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}
