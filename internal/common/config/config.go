package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/seo-pirate/backend/internal/common/constants"
)

var (
	ErrMissingRequiredEnv = errors.New("missing required environment variable")
	ErrInvalidJWTSecret   = errors.New("JWT_SECRET must be at least 32 bytes")
)

type APIConfig struct {
	HTTPPort       string
	DatabaseURL    string
	JWTSecret      string
	AccessTokenTTL time.Duration
	BcryptCost     int
	RequestTimeout time.Duration
	ScrapeTimeout  time.Duration
	RefreshOnRead  bool
}

func LoadAPIConfig() (APIConfig, error) {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	jwtSecret, err := mustEnv("JWT_SECRET")
	if err != nil {
		return APIConfig{}, err
	}

	if err := validateJWTSecret(jwtSecret); err != nil {
		return APIConfig{}, err
	}

	databaseURL, err := mustEnv("DATABASE_URL")
	if err != nil {
		return APIConfig{}, err
	}

	return APIConfig{
		HTTPPort:       getEnv("API_HTTP_PORT", constants.DefaultAPIHTTPPort),
		DatabaseURL:    databaseURL,
		JWTSecret:      jwtSecret,
		AccessTokenTTL: getDurationEnv("ACCESS_TOKEN_TTL", constants.DefaultAccessTokenTTL),
		BcryptCost:     getIntEnv("BCRYPT_COST", constants.DefaultBcryptCost),
		RequestTimeout: getDurationEnv("API_REQUEST_TIMEOUT", constants.DefaultRequestTimeout),
		ScrapeTimeout:  getDurationEnv("SCRAPE_TIMEOUT", constants.DefaultScrapeTimeout),
		RefreshOnRead:  getBoolEnv("REFRESH_ON_READ", true),
	}, nil
}

func validateJWTSecret(secret string) error {
	if len(secret) < constants.JWTSecretMinLength {
		return fmt.Errorf("%w: got %d bytes", ErrInvalidJWTSecret, len(secret))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func mustEnv(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingRequiredEnv, key)
	}
	return v, nil
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getIntEnv(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}

func getBoolEnv(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
