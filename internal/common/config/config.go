package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mlc-apps/finance-backend/internal/common/constants"
)

var (
	ErrMissingRequiredEnv = errors.New("missing required environment variable")
	ErrInvalidJWTSecret   = errors.New("JWT_SECRET must be at least 32 bytes")
	ErrInvalidAuthService = errors.New("AUTH_SERVICE_URL must start with http:// or https://")
)

type Config struct {
	HTTPPort       string
	DatabaseURL    string
	JWTSecret      string
	AuthServiceURL string
	StaticDir      string
	StrictAPI      bool
	ProbeTimeout   time.Duration
	ProbeCacheTTL  time.Duration
	RequestTimeout time.Duration
}

func Load() (Config, error) {
	jwtSecret, err := mustEnv("JWT_SECRET")
	if err != nil {
		return Config{}, err
	}

	if err := validateJWTSecret(jwtSecret); err != nil {
		return Config{}, err
	}

	databaseURL, err := mustEnv("DATABASE_URL")
	if err != nil {
		return Config{}, err
	}

	authServiceURL, err := mustEnv("AUTH_SERVICE_URL")
	if err != nil {
		return Config{}, err
	}

	if err := validateAuthServiceURL(authServiceURL); err != nil {
		return Config{}, err
	}

	return Config{
		HTTPPort:       getEnv("HTTP_PORT", constants.DefaultHTTPPort),
		DatabaseURL:    databaseURL,
		JWTSecret:      jwtSecret,
		AuthServiceURL: strings.TrimRight(authServiceURL, "/"),
		StaticDir:      getEnv("STATIC_DIR", "./public"),
		StrictAPI:      getBoolEnv("STRICT_API", false),
		ProbeTimeout:   getDurationEnv("AUTH_PROBE_TIMEOUT", constants.AuthProbeTimeout),
		ProbeCacheTTL:  getDurationEnv("AUTH_PROBE_CACHE_TTL", constants.AuthProbeCacheTTL),
		RequestTimeout: getDurationEnv("REQUEST_TIMEOUT", constants.DefaultRequestTimeout),
	}, nil
}

func validateJWTSecret(secret string) error {
	if len(secret) < constants.JWTSecretMinLength {
		return fmt.Errorf("%w: got %d bytes", ErrInvalidJWTSecret, len(secret))
	}
	return nil
}

func validateAuthServiceURL(raw string) error {
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return fmt.Errorf("%w: got %q", ErrInvalidAuthService, raw)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
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
