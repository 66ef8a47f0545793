package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// HTTP API configuration
	APIPort int

	// Database configuration
	DatabaseHost     string
	DatabasePort     string
	DatabaseName     string
	DatabaseUser     string
	DatabasePassword string

	// Redis configuration
	RedisHost     string
	RedisPassword string
	RedisPort     string

	// Record source configuration
	Source SourceConfig

	// LLM configuration
	LLM LLMConfig

	// Fairness configuration
	Fairness FairnessConfig
}

// SourceConfig selects and parameterizes the beneficiary record source
type SourceConfig struct {
	// Mode is either "synthetic" (seeded in-memory generator) or "warehouse"
	// (PostgreSQL beneficiaries table)
	Mode string

	// Seed drives the synthetic generator; a fixed seed yields an identical
	// dataset on every load
	Seed int64

	// SyntheticCount is the number of base records generated before
	// duplicates are injected
	SyntheticCount int

	// SeedDemoData inserts the synthetic dataset into the warehouse table on
	// startup when the table is empty
	SeedDemoData bool
}

// LLMConfig holds LLM service configuration
type LLMConfig struct {
	Enabled  bool
	Endpoint string
	APIKey   string
	Model    string
}

// FairnessConfig holds disparity classification thresholds.
// The status and distribution-type thresholds are independent knobs,
// not derived from each other.
type FairnessConfig struct {
	// Status thresholds (absolute percent deviation from the global average)
	ModerateDisparityPct float64 // abs(diff) above this is at least Moderate
	HighDisparityPct     float64 // abs(diff) above this is High

	// Distribution-type threshold (signed percent deviation)
	FundingSkewPct float64 // diff below -skew is Underfunded, above +skew Overfunded

	// Anomaly risk threshold: relative spread between a beneficiary's
	// duplicate amounts above which the duplicate is High risk
	DuplicateSpreadPct float64
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	// Load .env file if exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		APIPort: getEnvInt("API_PORT", 8090),

		// Database configuration
		DatabaseHost:     getEnvOrDefault("DB_HOST", "localhost"),
		DatabasePort:     getEnvOrDefault("DB_PORT", "5432"),
		DatabaseName:     getEnvOrDefault("DB_NAME", "fairaid"),
		DatabaseUser:     getEnvOrDefault("DB_USER", "fairaid"),
		DatabasePassword: getEnvOrDefault("DB_PASSWORD", "fairaid123"),

		// Redis configuration
		RedisHost:     getEnvOrDefault("REDIS_HOST", "localhost"),
		RedisPort:     getEnvOrDefault("REDIS_PORT", "6379"),
		RedisPassword: getEnvOrDefault("REDIS_PASSWORD", ""),

		// Record source configuration
		Source: SourceConfig{
			Mode:           getEnvOrDefault("SOURCE_MODE", "synthetic"),
			Seed:           int64(getEnvInt("SOURCE_SEED", 42)),
			SyntheticCount: getEnvInt("SOURCE_SYNTHETIC_COUNT", 1000),
			SeedDemoData:   getEnvOrDefault("SOURCE_SEED_DEMO_DATA", "false") == "true",
		},

		// LLM configuration
		LLM: LLMConfig{
			Enabled:  getEnvOrDefault("LLM_ENABLED", "false") == "true",
			Endpoint: getEnvOrDefault("LLM_ENDPOINT", "https://ai.onehub.biz.id/v1"),
			APIKey:   getEnvOrDefault("LLM_API_KEY", ""),
			Model:    getEnvOrDefault("LLM_MODEL", "qwen3-max"),
		},

		// Fairness configuration
		Fairness: FairnessConfig{
			ModerateDisparityPct: getEnvFloat("FAIRNESS_MODERATE_DISPARITY_PCT", 10.0),
			HighDisparityPct:     getEnvFloat("FAIRNESS_HIGH_DISPARITY_PCT", 20.0),
			FundingSkewPct:       getEnvFloat("FAIRNESS_FUNDING_SKEW_PCT", 15.0),
			DuplicateSpreadPct:   getEnvFloat("ANOMALY_DUPLICATE_SPREAD_PCT", 10.0),
		},
	}
}

// getEnvInt gets environment variable as int or returns default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var intValue int
	if _, err := fmt.Sscanf(value, "%d", &intValue); err != nil {
		return defaultValue
	}
	return intValue
}

// getEnvFloat gets environment variable as float64 or returns default value
func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var floatValue float64
	if _, err := fmt.Sscanf(value, "%f", &floatValue); err != nil {
		return defaultValue
	}
	return floatValue
}

// getEnvOrDefault gets environment variable or returns default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
