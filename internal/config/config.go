package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath       string
	UploadDir    string
	OutputDir    string
	ResellerFile string

	HTTPAddr     string
	MaxUploadMB  int
	OutputFormat string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DBPath:       getEnv("DB_PATH", filepath.Join(cwd, "data", "app.db")),
		UploadDir:    getEnv("UPLOAD_DIR", filepath.Join(cwd, "data", "uploads")),
		OutputDir:    getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),
		ResellerFile: getEnv("RESELLER_FILE", filepath.Join(cwd, "data", "resellers.xlsx")),

		HTTPAddr:     getEnv("HTTP_ADDR", ":8080"),
		MaxUploadMB:  getEnvInt("MAX_UPLOAD_MB", 32),
		OutputFormat: getEnv("OUTPUT_FORMAT", "xlsx"),
	}
	if cfg.OutputFormat != "xlsx" && cfg.OutputFormat != "csv" {
		cfg.OutputFormat = "xlsx"
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
