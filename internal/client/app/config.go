package app

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/minipost/pkg/httpx"
)

// Credential store backends.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

type Config struct {
	APIBaseURL      string                // Backend base URL (default: http://localhost:8080)
	CredentialStore string                // file, sqlite, memory (default: file)
	CredentialPath  string                // Optional: store location (default: ~/.minipost/credentials.json or .db)
	MasterKey       string                // Optional: key material that seals the file store
	MasterKeyPath   string                // Optional: file holding the master key, used when MasterKey is empty
	HTTPTimeout     time.Duration         // Per-request timeout (default: 10s)
	ClockSkew       time.Duration         // Tolerated clock difference for token expiry (default: 0)
	RateLimit       httpx.RateLimitConfig // Outbound budget per host
	Env             string                // Environment (dev, prod) (default: prod)
	LogLevel        string                // Log level (debug, info, warn, error) (default: warn)
	LogFormat       string                // Log format (json, text) (default: text)
}

func LoadConfig() Config {
	return Config{
		APIBaseURL:      getEnvOrDefault("MINIPOST_API_BASE_URL", "http://localhost:8080"),
		CredentialStore: strings.ToLower(getEnvOrDefault("MINIPOST_CREDENTIAL_STORE", StoreFile)),
		CredentialPath:  os.Getenv("MINIPOST_CREDENTIAL_PATH"),
		MasterKey:       os.Getenv("MINIPOST_MASTER_KEY"),
		MasterKeyPath:   os.Getenv("MINIPOST_MASTER_KEY_PATH"),
		HTTPTimeout:     getEnvDurationOrDefault("MINIPOST_HTTP_TIMEOUT", 10*time.Second),
		ClockSkew:       getEnvDurationOrDefault("MINIPOST_CLOCK_SKEW", 0),
		RateLimit:       httpx.ParseRateLimitFromEnv("CLIENT", httpx.ClientLimit),
		Env:             getEnvOrDefault("ENV", "prod"),
		LogLevel:        getEnvOrDefault("LOG_LEVEL", "warn"),
		LogFormat:       getEnvOrDefault("LOG_FORMAT", "text"),
	}
}

// Validate reports configuration that can't work.
func (c Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil {
		return fmt.Errorf("invalid MINIPOST_API_BASE_URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid MINIPOST_API_BASE_URL %q: want http(s)://host", c.APIBaseURL)
	}

	switch c.CredentialStore {
	case StoreFile, StoreSQLite, StoreMemory:
	default:
		return fmt.Errorf("unknown MINIPOST_CREDENTIAL_STORE %q", c.CredentialStore)
	}

	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("MINIPOST_HTTP_TIMEOUT must be positive")
	}
	if c.ClockSkew < 0 {
		return fmt.Errorf("MINIPOST_CLOCK_SKEW must not be negative")
	}
	return nil
}

// masterKey returns the sealing key material, reading MasterKeyPath when
// no key was given inline. Empty means "don't seal".
func (c Config) masterKey() ([]byte, error) {
	if c.MasterKey != "" {
		return []byte(c.MasterKey), nil
	}
	if c.MasterKeyPath == "" {
		return nil, nil
	}

	data, err := os.ReadFile(c.MasterKeyPath)
	if err != nil {
		return nil, fmt.Errorf("read master key: %w", err)
	}
	return []byte(strings.TrimSpace(string(data))), nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "5s", "1m")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
