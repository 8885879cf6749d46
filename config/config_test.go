package config

import (
	"path/filepath"
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"DATABASE_PATH", "DEMO_DATABASE_PATH", "EXPORT_DIRECTORY", "PORT",
		"LOG_MODE", "ALLOWED_ORIGINS", "MAX_UPLOAD_SIZE_MB", "SQL_DEBUG"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.DatabasePath != DefaultDatabasePath {
		t.Errorf("DatabasePath = %q, want %q", cfg.DatabasePath, DefaultDatabasePath)
	}
	if cfg.DemoDatabasePath != DefaultDemoDatabasePath {
		t.Errorf("DemoDatabasePath = %q, want %q", cfg.DemoDatabasePath, DefaultDemoDatabasePath)
	}
	if !filepath.IsAbs(cfg.ExportDirectory) {
		t.Errorf("ExportDirectory = %q, want absolute path", cfg.ExportDirectory)
	}
	if filepath.Base(cfg.ExportDirectory) != DefaultExportSubDir {
		t.Errorf("ExportDirectory base = %q, want %q", filepath.Base(cfg.ExportDirectory), DefaultExportSubDir)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.LogMode != "dev" {
		t.Errorf("LogMode = %q, want dev", cfg.LogMode)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "http://localhost:5173" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
	if cfg.MaxUploadBytes() != 10<<20 {
		t.Errorf("MaxUploadBytes() = %d, want %d", cfg.MaxUploadBytes(), 10<<20)
	}
	if cfg.SQLDebug {
		t.Error("SQLDebug = true, want false")
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DATABASE_PATH", filepath.Join(dir, "cars.db"))
	t.Setenv("EXPORT_DIRECTORY", dir)
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_MODE", "PROD")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test ,")
	t.Setenv("MAX_UPLOAD_SIZE_MB", "2")
	t.Setenv("SQL_DEBUG", "true")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.DatabasePath != filepath.Join(dir, "cars.db") {
		t.Errorf("DatabasePath = %q", cfg.DatabasePath)
	}
	if cfg.ExportDirectory != dir {
		t.Errorf("ExportDirectory = %q, want %q", cfg.ExportDirectory, dir)
	}
	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.LogMode != "prod" {
		t.Errorf("LogMode = %q, want prod", cfg.LogMode)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "http://b.test" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
	if cfg.MaxUploadSizeMB != 2 {
		t.Errorf("MaxUploadSizeMB = %d, want 2", cfg.MaxUploadSizeMB)
	}
	if !cfg.SQLDebug {
		t.Error("SQLDebug = false, want true")
	}
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr bool
	}{
		{"port not numeric", "PORT", "http", true},
		{"port out of range", "PORT", "70000", true},
		{"unknown log mode", "LOG_MODE", "verbose", true},
		{"bad upload size falls back", "MAX_UPLOAD_SIZE_MB", "-3", false},
		{"bad bool falls back", "SQL_DEBUG", "maybe", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PORT", "")
			t.Setenv("LOG_MODE", "")
			t.Setenv(tt.key, tt.value)

			cfg, err := LoadConfig()
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && tt.key == "MAX_UPLOAD_SIZE_MB" && cfg.MaxUploadSizeMB != defaultMaxUploadSizeMB {
				t.Errorf("MaxUploadSizeMB = %d, want default", cfg.MaxUploadSizeMB)
			}
		})
	}
}
