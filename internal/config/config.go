package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

type Config struct {
	Port             string
	DataBackend      string
	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string
	PostgresSSLMode  string
	OperatorWorkers  int
	LogLevel         string
}

// In all cases the default behavior should be for the docker compose setup
var defaults = map[string]interface{}{
	"PORT":              "9446",
	"DATA_BACKEND":      BackendPostgres,
	"POSTGRES_ADDRESS":  "localhost",
	"POSTGRES_PORT":     "5433",
	"POSTGRES_DB":       "postgres",
	"POSTGRES_USERNAME": "postgres",
	"POSTGRES_PASSWORD": "testpassword",
	"POSTGRES_SSLMODE":  "disable",
	"OPERATOR_WORKERS":  4,
	"LOG_LEVEL":         "info",
}

// ProcessEnvironmentVariables builds the config from the defaults, then the
// YAML file named by CONFIG_FILE if any, then the process environment. A .env
// file in the working directory is loaded into the environment first.
func ProcessEnvironmentVariables() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	envProvider := env.Provider("", ".", func(key string) string {
		if _, known := defaults[key]; known || key == "CONFIG_FILE" {
			return key
		}
		return ""
	})

	envOnly := koanf.New(".")
	if err := envOnly.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}
	if path := envOnly.String("CONFIG_FILE"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}
	if err := k.Merge(envOnly); err != nil {
		return nil, fmt.Errorf("merge environment: %w", err)
	}

	cfg := &Config{
		Port:             k.String("PORT"),
		DataBackend:      strings.ToLower(k.String("DATA_BACKEND")),
		PostgresAddress:  k.String("POSTGRES_ADDRESS"),
		PostgresPort:     k.String("POSTGRES_PORT"),
		PostgresDB:       k.String("POSTGRES_DB"),
		PostgresUsername: k.String("POSTGRES_USERNAME"),
		PostgresPassword: k.String("POSTGRES_PASSWORD"),
		PostgresSSLMode:  k.String("POSTGRES_SSLMODE"),
		OperatorWorkers:  k.Int("OPERATOR_WORKERS"),
		LogLevel:         k.String("LOG_LEVEL"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var problems []error
	if c.Port == "" {
		problems = append(problems, errors.New("PORT must be set"))
	}
	switch c.DataBackend {
	case BackendPostgres:
		if c.PostgresAddress == "" || c.PostgresDB == "" || c.PostgresUsername == "" {
			problems = append(problems, errors.New("POSTGRES_ADDRESS, POSTGRES_DB and POSTGRES_USERNAME must be set for the postgres backend"))
		}
	case BackendMemory:
	default:
		problems = append(problems, fmt.Errorf("DATA_BACKEND %q is not one of postgres, memory", c.DataBackend))
	}
	if c.OperatorWorkers < 1 {
		problems = append(problems, fmt.Errorf("OPERATOR_WORKERS must be at least 1, got %d", c.OperatorWorkers))
	}
	return errors.Join(problems...)
}

// PostgresDSN is the lib/pq connection URL for the configured database.
func (c *Config) PostgresDSN() string {
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.PostgresUsername, c.PostgresPassword),
		Host:     c.PostgresAddress + ":" + c.PostgresPort,
		Path:     "/" + c.PostgresDB,
		RawQuery: "sslmode=" + c.PostgresSSLMode,
	}
	return dsn.String()
}
