package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	DefaultDatabasePath     = "persons_cars.db"
	DefaultDemoDatabasePath = "demo_persons_cars.db"
	DefaultExportSubDir     = "exports"
)

const (
	defaultPort            = "8080"
	defaultLogMode         = "dev"
	defaultMaxUploadSizeMB = 10
	defaultAllowedOrigin   = "http://localhost:5173"
)

type Config struct {
	// database paths
	DatabasePath     string
	DemoDatabasePath string

	// where CSV exports and export archives are written
	ExportDirectory string

	// http settings
	Port            string
	AllowedOrigins  []string
	MaxUploadSizeMB int

	// logging
	LogMode  string
	SQLDebug bool
}

// MaxUploadBytes returns the upload limit in bytes.
func (c Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadSizeMB) << 20
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvIntOrDefault(envVar string, defaultVal int) int {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val <= 0 {
		log.Printf("Warning: Invalid %s '%s'. Using default %d. Error: %v", envVar, valStr, defaultVal, err)
		return defaultVal
	}
	return val
}

func getEnvBoolOrDefault(envVar string, defaultVal bool) bool {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: Invalid %s '%s'. Using default %t. Error: %v", envVar, valStr, defaultVal, err)
		return defaultVal
	}
	return val
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func LoadConfig() (Config, error) {
	dbPath := getEnvOrDefault("DATABASE_PATH", DefaultDatabasePath)
	demoDBPath := getEnvOrDefault("DEMO_DATABASE_PATH", DefaultDemoDatabasePath)

	exportDir := getEnvOrDefault("EXPORT_DIRECTORY", filepath.Join(".", DefaultExportSubDir))
	absExportDir, err := filepath.Abs(exportDir)
	if err != nil {
		return Config{}, fmt.Errorf("failed to get absolute path for export directory '%s': %w", exportDir, err)
	}

	port := getEnvOrDefault("PORT", defaultPort)
	if n, err := strconv.Atoi(port); err != nil || n <= 0 || n > 65535 {
		return Config{}, fmt.Errorf("invalid PORT '%s': must be 1-65535", port)
	}

	logMode := strings.ToLower(getEnvOrDefault("LOG_MODE", defaultLogMode))
	switch logMode {
	case "dev", "development", "prod", "production":
	default:
		return Config{}, fmt.Errorf("invalid LOG_MODE '%s': must be dev or prod", logMode)
	}

	origins := splitList(getEnvOrDefault("ALLOWED_ORIGINS", defaultAllowedOrigin))

	cfg := Config{
		DatabasePath:     dbPath,
		DemoDatabasePath: demoDBPath,
		ExportDirectory:  absExportDir,
		Port:             port,
		AllowedOrigins:   origins,
		MaxUploadSizeMB:  getEnvIntOrDefault("MAX_UPLOAD_SIZE_MB", defaultMaxUploadSizeMB),
		LogMode:          logMode,
		SQLDebug:         getEnvBoolOrDefault("SQL_DEBUG", false),
	}

	return cfg, nil
}
