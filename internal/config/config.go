// File: internal/config/config.go
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	ProviderBootcamp = "bootcamp"
	ProviderOpenAI   = "openai"

	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

type Config struct {
	ServerPort  string
	Environment string

	// Completion gateway
	GatewayProvider string
	GatewayURL      string
	GatewayAPIKey   string
	GatewayModel    string
	GatewayTimeout  time.Duration

	// Conversation
	HistoryWindow int

	// Sessions and credentials
	TokenTTL   time.Duration
	BcryptCost int

	// Storage
	StoreDriver string
	DatabaseDSN string
}

// Load reads configuration from environment variables or .env file.
func Load() *Config {
	env := os.Getenv("ENV")
	if strings.ToLower(env) != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found; continuing with environment variables")
		}
	}

	cfg := &Config{
		ServerPort:      getEnv("SERVER_PORT", "8000"),
		Environment:     env,
		GatewayProvider: strings.ToLower(getEnv("GATEWAY_PROVIDER", ProviderBootcamp)),
		GatewayURL:      getEnv("GATEWAY_URL", "https://dev.wenivops.co.kr/services/openai-api"),
		GatewayAPIKey:   getEnv("GATEWAY_API_KEY", ""),
		GatewayModel:    getEnv("GATEWAY_MODEL", "gpt-4o-mini"),
		GatewayTimeout:  getEnvAsDuration("GATEWAY_TIMEOUT", 30*time.Second),
		HistoryWindow:   getEnvAsInt("HISTORY_WINDOW", 20),
		TokenTTL:        getEnvAsDuration("TOKEN_TTL", 0),
		BcryptCost:      getEnvAsInt("BCRYPT_COST", bcrypt.DefaultCost),
		StoreDriver:     strings.ToLower(getEnv("STORE_DRIVER", DriverMemory)),
		DatabaseDSN:     getEnv("DATABASE_DSN", ":memory:"),
	}

	if strings.ToLower(env) == "production" {
		if err := cfg.Validate(); err != nil {
			log.Fatalf("Invalid production configuration: %v", err)
		}
	}

	return cfg
}

// Validate reports the first configuration problem found.
func (c *Config) Validate() error {
	missing := []string{}
	if c.GatewayURL == "" && c.GatewayProvider == ProviderBootcamp {
		missing = append(missing, "GATEWAY_URL")
	}
	if c.GatewayAPIKey == "" && c.GatewayProvider == ProviderOpenAI {
		missing = append(missing, "GATEWAY_API_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %v", missing)
	}

	switch c.GatewayProvider {
	case ProviderBootcamp, ProviderOpenAI:
	default:
		return fmt.Errorf("unknown GATEWAY_PROVIDER %q", c.GatewayProvider)
	}
	switch c.StoreDriver {
	case DriverMemory, DriverSQLite:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.GatewayTimeout <= 0 {
		return fmt.Errorf("GATEWAY_TIMEOUT must be positive")
	}
	if c.HistoryWindow <= 0 {
		return fmt.Errorf("HISTORY_WINDOW must be positive")
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	return nil
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an env var as an integer, with a fallback.
func getEnvAsInt(key string, defaultValue int) int {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(strValue)
	if err != nil {
		log.Printf("Warning: could not parse env var %s as integer. Using default value.", key)
		return defaultValue
	}
	return intValue
}

// getEnvAsDuration accepts Go durations ("45s") or a bare number of seconds ("30").
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	if seconds, err := strconv.Atoi(strValue); err == nil {
		return time.Duration(seconds) * time.Second
	}
	d, err := time.ParseDuration(strValue)
	if err != nil {
		log.Printf("Warning: could not parse env var %s as duration. Using default value.", key)
		return defaultValue
	}
	return d
}
