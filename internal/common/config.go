package common

import (
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	OCR      OCRConfig
	Pipeline PipelineConfig
	Export   ExportConfig
}

// OCRConfig holds OCR-related configuration
type OCRConfig struct {
	Language string
	DPI      int
	MaxPages int // 0 = no limit
}

// PipelineConfig holds default pipeline options; per-run flags override these.
type PipelineConfig struct {
	MinAmount    float64
	DedupeOnCase bool
	UseOCR       bool
}

// ExportConfig holds export-related configuration
type ExportConfig struct {
	OutDir string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		OCR: OCRConfig{
			Language: getEnv("OCR_LANGUAGE", "eng"),
			DPI:      getEnvAsInt("OCR_DPI", 300),
			MaxPages: getEnvAsInt("OCR_MAX_PAGES", 0),
		},
		Pipeline: PipelineConfig{
			MinAmount:    getEnvAsFloat64("MIN_AMOUNT", 0),
			DedupeOnCase: getEnvAsBool("DEDUPE_ON_CASE", true),
			UseOCR:       getEnvAsBool("USE_OCR", false),
		},
		Export: ExportConfig{
			OutDir: getEnv("EXPORT_DIR", "."),
		},
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

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

// ValidateConfig validates the loaded configuration
func (c *Config) Validate() error {
	if c.OCR.DPI <= 0 {
		return NewAppError("CONFIG_ERROR", "OCR_DPI must be positive", ErrInvalidInput)
	}
	if c.OCR.MaxPages < 0 {
		return NewAppError("CONFIG_ERROR", "OCR_MAX_PAGES must not be negative", ErrInvalidInput)
	}
	if c.Pipeline.MinAmount < 0 {
		return NewAppError("CONFIG_ERROR", "MIN_AMOUNT must not be negative", ErrInvalidInput)
	}
	return nil
}
