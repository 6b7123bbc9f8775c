package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all SDK configuration. It is assembled once by the host and
// never mutated afterwards.
type Config struct {
	Gateway GatewayConfig
	Secrets SecretsConfig
	Logger  LoggerConfig
}

// GatewayConfig holds CommerceHub gateway and terminal configuration
type GatewayConfig struct {
	Environment          string // integration, qa, sandbox, cat, production
	APIKey               string // Api-Key header value
	SecretKey            string // Shared secret for HMAC-SHA256 signing
	CurrencyCode         string // 3-letter ISO currency code
	MerchantID           string
	AppleMerchantID      string // Optional; Apple-issued merchant identifier
	MerchantName         string
	MerchantCategoryCode string
	TerminalID           string
	TerminalProfileID    string
	Timeout              int // Request timeout in seconds (default: 30)
}

// SecretsConfig selects where the API key and signing secret are resolved
// from at startup.
type SecretsConfig struct {
	Backend       string // env, aws, vault
	APIKeyName    string // Secret name for the API key
	SecretKeyName string // Secret name for the signing secret
	VaultMount    string // KV v2 mount path (vault backend)
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level       string // debug, info, warn, error
	Development bool
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Gateway: GatewayConfig{
			Environment:          getEnv("CH_ENVIRONMENT", "sandbox"),
			APIKey:               getEnv("CH_API_KEY", ""),
			SecretKey:            getEnv("CH_SECRET_KEY", ""),
			CurrencyCode:         getEnv("CH_CURRENCY_CODE", "USD"),
			MerchantID:           getEnv("CH_MERCHANT_ID", ""),
			AppleMerchantID:      getEnv("CH_APPLE_MERCHANT_ID", ""),
			MerchantName:         getEnv("CH_MERCHANT_NAME", ""),
			MerchantCategoryCode: getEnv("CH_MERCHANT_CATEGORY_CODE", ""),
			TerminalID:           getEnv("CH_TERMINAL_ID", ""),
			TerminalProfileID:    getEnv("CH_TERMINAL_PROFILE_ID", ""),
			Timeout:              getEnvAsInt("CH_TIMEOUT", 30),
		},
		Secrets: SecretsConfig{
			Backend:       getEnv("SECRETS_BACKEND", "env"),
			APIKeyName:    getEnv("SECRETS_API_KEY_NAME", "commercehub/api-key"),
			SecretKeyName: getEnv("SECRETS_SECRET_KEY_NAME", "commercehub/secret-key"),
			VaultMount:    getEnv("SECRETS_VAULT_MOUNT", "secret"),
		},
		Logger: LoggerConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Development: getEnvAsBool("LOG_DEVELOPMENT", false),
		},
	}

	// Validate required fields. Credentials may come from a secret backend
	// instead of the environment, so they are validated after resolution.
	if cfg.Gateway.MerchantID == "" {
		return nil, fmt.Errorf("CH_MERCHANT_ID is required")
	}
	if cfg.Gateway.TerminalID == "" {
		return nil, fmt.Errorf("CH_TERMINAL_ID is required")
	}
	if cfg.Gateway.TerminalProfileID == "" {
		return nil, fmt.Errorf("CH_TERMINAL_PROFILE_ID is required")
	}

	return cfg, nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
