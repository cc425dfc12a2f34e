// Package config loads application configuration from environment variables.
package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"time"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ListenAddr   string
	DBPath       string
	SecretKey    []byte
	JWTSecret    []byte
	TokenTTL     time.Duration
	AdminToken   string
	StoreTimeout time.Duration
}

// HasSecretKey returns true when a credential encryption key is configured.
// Used by the composition root to decide whether the vault can serve
// disclosures or starts with the secret store disabled.
func (c *Config) HasSecretKey() bool {
	return len(c.SecretKey) > 0
}

// Load reads configuration from environment variables and returns a validated
// Config. CYRUS_JWT_SECRET is required; without it no session token can be
// verified. CYRUS_SECRET_KEY (64 hex chars, decoding to 32 bytes) is optional:
// if absent, the app starts but every disclosure fails until the key is set.
// Optional variables with defaults: CYRUS_LISTEN_ADDR (127.0.0.1:8080),
// CYRUS_DB_PATH (cyrusportal.db), CYRUS_TOKEN_TTL (24h),
// CYRUS_STORE_TIMEOUT (5s). CYRUS_ADMIN_TOKEN has no default; when empty the
// admin surface is disabled.
func Load() (*Config, error) {
	jwtSecret := os.Getenv("CYRUS_JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("CYRUS_JWT_SECRET is required")
	}

	var secretKey []byte
	if v, ok := os.LookupEnv("CYRUS_SECRET_KEY"); ok && v != "" {
		decoded, err := hex.DecodeString(v)
		if err != nil {
			return nil, fmt.Errorf("CYRUS_SECRET_KEY is not valid hex: %w", err)
		}
		if len(decoded) != 32 {
			return nil, fmt.Errorf("CYRUS_SECRET_KEY must decode to 32 bytes, got %d", len(decoded))
		}
		secretKey = decoded
	}

	tokenTTL := 24 * time.Hour
	if v, ok := os.LookupEnv("CYRUS_TOKEN_TTL"); ok {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("CYRUS_TOKEN_TTL has invalid duration %q: %w", v, err)
		}
		tokenTTL = parsed
	}

	storeTimeout := 5 * time.Second
	if v, ok := os.LookupEnv("CYRUS_STORE_TIMEOUT"); ok {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("CYRUS_STORE_TIMEOUT has invalid duration %q: %w", v, err)
		}
		storeTimeout = parsed
	}

	listenAddr := "127.0.0.1:8080"
	if v, ok := os.LookupEnv("CYRUS_LISTEN_ADDR"); ok {
		listenAddr = v
	}

	dbPath := "cyrusportal.db"
	if v, ok := os.LookupEnv("CYRUS_DB_PATH"); ok {
		dbPath = v
	}

	return &Config{
		ListenAddr:   listenAddr,
		DBPath:       dbPath,
		SecretKey:    secretKey,
		JWTSecret:    []byte(jwtSecret),
		TokenTTL:     tokenTTL,
		AdminToken:   os.Getenv("CYRUS_ADMIN_TOKEN"),
		StoreTimeout: storeTimeout,
	}, nil
}
