package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test server defaults
	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected addr :8080, got %s", cfg.Server.Addr)
	}
	if cfg.Server.MaxUploadMiB != 10 {
		t.Errorf("expected max upload 10 MiB, got %d", cfg.Server.MaxUploadMiB)
	}
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "*" {
		t.Errorf("expected allowed origins [*], got %v", cfg.Server.AllowedOrigins)
	}
	if cfg.Server.ShutdownTimeout != 10*time.Second {
		t.Errorf("expected shutdown timeout 10s, got %v", cfg.Server.ShutdownTimeout)
	}

	// Test storage defaults
	if cfg.Storage.Type != "memory" {
		t.Errorf("expected storage type 'memory', got %s", cfg.Storage.Type)
	}
	if cfg.Storage.Dir != "" {
		t.Errorf("expected empty storage dir, got %s", cfg.Storage.Dir)
	}

	// Test convert defaults
	if cfg.Convert.DefaultMethod != "library" {
		t.Errorf("expected default method 'library', got %s", cfg.Convert.DefaultMethod)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
server:
  addr: ":9090"
  max_upload_mib: 25
  allowed_origins:
    - "https://viewer.example.com"
  shutdown_timeout: 5s

storage:
  type: "disk"
  dir: "/var/lib/meshconv"

convert:
  default_method: "custom-glb"

logging:
  level: "debug"
  log_file: "meshconv.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Load config
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify values were loaded
	if cfg.Server.Addr != ":9090" {
		t.Errorf("expected addr :9090, got %s", cfg.Server.Addr)
	}
	if cfg.Server.MaxUploadMiB != 25 {
		t.Errorf("expected max upload 25 MiB, got %d", cfg.Server.MaxUploadMiB)
	}
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "https://viewer.example.com" {
		t.Errorf("expected custom allowed origins, got %v", cfg.Server.AllowedOrigins)
	}
	if cfg.Server.ShutdownTimeout != 5*time.Second {
		t.Errorf("expected shutdown timeout 5s, got %v", cfg.Server.ShutdownTimeout)
	}

	if cfg.Storage.Type != "disk" {
		t.Errorf("expected storage type 'disk', got %s", cfg.Storage.Type)
	}
	if cfg.Storage.Dir != "/var/lib/meshconv" {
		t.Errorf("expected storage dir /var/lib/meshconv, got %s", cfg.Storage.Dir)
	}

	if cfg.Convert.DefaultMethod != "custom-glb" {
		t.Errorf("expected default method 'custom-glb', got %s", cfg.Convert.DefaultMethod)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "meshconv.log" {
		t.Errorf("expected log file 'meshconv.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	// Create temporary config file with invalid YAML
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
server:
  max_upload_mib: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Try to load - should error
	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Just verify it returns a non-empty path
	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}

	// Verify path is absolute
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	// Save current directory
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	// Create temp directory and change to it
	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	// Create config.yaml in current directory
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("server:\n  addr: \":7000\"\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	// Should find it now
	path = findConfigFile()
	if path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "addr flag",
			setup: func() {
				*flagAddr = "127.0.0.1:9999"
			},
			verify: func(cfg *Config) {
				if cfg.Server.Addr != "127.0.0.1:9999" {
					t.Errorf("expected addr 127.0.0.1:9999, got %s", cfg.Server.Addr)
				}
			},
			teardown: func() {
				*flagAddr = ""
			},
		},
		{
			name: "storage flag",
			setup: func() {
				*flagStore = "disk"
			},
			verify: func(cfg *Config) {
				if cfg.Storage.Type != "disk" {
					t.Errorf("expected storage type 'disk', got %s", cfg.Storage.Type)
				}
			},
			teardown: func() {
				*flagStore = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			tt.setup()
			defer tt.teardown()

			// Apply flags to default config
			cfg := Default()
			applyFlags(cfg)

			// Verify
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
server:
  addr: ":9090"
  max_upload_mib: 50
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagAddr = ":7070"
	defer func() {
		*flagConfig = ""
		*flagAddr = ""
	}()

	// Load config
	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Addr should be from flag (:7070), not file (:9090)
	if cfg.Server.Addr != ":7070" {
		t.Errorf("expected addr :7070 from flag, got %s", cfg.Server.Addr)
	}

	// Upload limit should be from file (50) since no flag override
	if cfg.Server.MaxUploadMiB != 50 {
		t.Errorf("expected max upload 50 from file, got %d", cfg.Server.MaxUploadMiB)
	}
}
