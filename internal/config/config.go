package config

import (
	"os"
	"strconv"
)

// Config holds the application configuration.
type Config struct {
	Port       string
	DBPath     string
	ExportPath string // path prefix for CSV materialization, empty disables export

	// Default correlation thresholds, overridable per request.
	CorrAbove float64
	CorrBelow float64
}

// Load reads configuration from the environment, falling back to defaults.
func Load() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/firenzecard.db"
	}

	return &Config{
		Port:       port,
		DBPath:     dbPath,
		ExportPath: os.Getenv("EXPORT_PATH"),
		CorrAbove:  envFloat("CORR_ABOVE", 0.5),
		CorrBelow:  envFloat("CORR_BELOW", -0.5),
	}
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
