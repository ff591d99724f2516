package common

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	PDF    PDFConfig
	LLM    LLMConfig
	Market MarketConfig
	Enrich EnrichConfig
	DBPath string
}

// PDFConfig holds text-extraction configuration
type PDFConfig struct {
	Pdftotext string // binary name or absolute path
	MaxPages  int    // 0 = no limit
}

// LLMConfig holds language-model configuration
type LLMConfig struct {
	APIKey            string
	BaseURL           string
	Model             string
	Temperature       float32
	Timeout           time.Duration
	RequestsPerMinute int
}

// MarketConfig holds external market-data source configuration
type MarketConfig struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// EnrichConfig holds batch pacing and backoff configuration
type EnrichConfig struct {
	PacingDelay  time.Duration
	MaxFailures  int
	CooldownWait time.Duration
}

// LoadConfig loads configuration from config.env (if present) and the
// environment. Missing keys fall back to defaults.
func LoadConfig(logger *slog.Logger) *Config {
	if logger == nil {
		logger = slog.Default()
	}
	// Same file the original interactive workflow reads; absence is fine.
	if err := godotenv.Load("config.env"); err != nil {
		logger.Debug("config.env not loaded", "error", err)
	}

	return &Config{
		PDF: PDFConfig{
			Pdftotext: getEnv("PDFTOTEXT_BIN", "pdftotext"),
			MaxPages:  getEnvAsInt("PDF_MAX_PAGES", 0),
		},
		LLM: LLMConfig{
			APIKey:            getEnv("GEMINI_API_KEY", getEnv("GOOGLE_KEY", "")),
			BaseURL:           getEnv("GEMINI_BASE_URL", ""),
			Model:             getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			Temperature:       getEnvAsFloat32("GEMINI_TEMPERATURE", 0.0),
			Timeout:           getEnvAsDuration("GEMINI_TIMEOUT", 45*time.Second),
			RequestsPerMinute: getEnvAsInt("GEMINI_RPM", 60),
		},
		Market: MarketConfig{
			BaseURL:   getEnv("MARKET_BASE_URL", "https://www.vivino.com"),
			UserAgent: getEnv("MARKET_USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:66.0) Gecko/20100101 Firefox/66.0"),
			Timeout:   getEnvAsDuration("MARKET_TIMEOUT", 30*time.Second),
		},
		Enrich: EnrichConfig{
			PacingDelay:  getEnvAsDuration("ENRICH_PACING_DELAY", 510*time.Millisecond),
			MaxFailures:  getEnvAsInt("ENRICH_MAX_FAILURES", 5),
			CooldownWait: getEnvAsDuration("ENRICH_COOLDOWN", 3*time.Minute),
		},
		DBPath: getEnv("WINESCOUT_DB", ""),
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
