// Package config reads the configuration of the backend from the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var (
	ErrAPIURLMissing    = errors.New("environment variable API_URL must be set")
	ErrJWTSecretMissing = errors.New("environment variable JWT_SECRET must be set")
)

type Config struct {
	// HTTP server
	APIURL *url.URL
	Port   string

	// Storage. If MongoURI is set, MongoDB is used instead of SQLite
	DBPath        string
	MongoURI      string
	MongoDatabase string

	// Bearer tokens
	JWTSecret string
	JWTIssuer string
	TokenTTL  time.Duration
}

// Load reads a .env file in the working directory if one exists and
// then builds the configuration from the environment.
func Load() (Config, error) {
	// A missing .env file is not an error, the environment is enough
	_ = godotenv.Load()

	apiURL, ok := os.LookupEnv("API_URL")
	if !ok || apiURL == "" {
		return Config{}, ErrAPIURLMissing
	}

	u, err := url.Parse(apiURL)
	if err != nil {
		return Config{}, fmt.Errorf("environment variable API_URL must be a valid URL: %w", err)
	}

	cfg := Config{
		APIURL:        u,
		Port:          getEnv("PORT", "8080"),
		DBPath:        getEnv("DB_PATH", "data/finance.db"),
		MongoURI:      getEnv("MONGO_URI", ""),
		MongoDatabase: getEnv("MONGO_DATABASE", "finance"),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		JWTIssuer:     getEnv("JWT_ISSUER", "finance-tracker"),
	}

	cfg.TokenTTL, err = time.ParseDuration(getEnv("TOKEN_TTL", "24h"))
	if err != nil {
		return Config{}, fmt.Errorf("environment variable TOKEN_TTL must be a duration: %w", err)
	}

	return cfg, cfg.Validate()
}

// Validate checks that the configuration can be used to start the backend.
func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return ErrJWTSecretMissing
	}

	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid port '%s': must be a number between 1 and 65535", c.Port)
	}

	if c.TokenTTL <= 0 {
		return fmt.Errorf("invalid token lifetime %s: must be positive", c.TokenTTL)
	}

	if c.MongoURI == "" && c.DBPath == "" {
		return errors.New("DB_PATH must not be empty when MONGO_URI is not set")
	}

	return nil
}

// UseMongo reports if the document store is configured.
func (c Config) UseMongo() bool {
	return c.MongoURI != ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
