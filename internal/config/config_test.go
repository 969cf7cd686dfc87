package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test window defaults
	if cfg.Window.Title != "stageview" {
		t.Errorf("expected title 'stageview', got %s", cfg.Window.Title)
	}
	if cfg.Window.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Window.Height)
	}
	if cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Window.VSync {
		t.Error("expected vsync to be true by default")
	}

	// Test graphics defaults
	if cfg.Graphics.Mode != "shaded" {
		t.Errorf("expected mode 'shaded', got %s", cfg.Graphics.Mode)
	}
	if !cfg.Graphics.Grid {
		t.Error("expected grid to be true by default")
	}
	if !cfg.Graphics.Axes {
		t.Error("expected axes to be true by default")
	}
	if !cfg.Graphics.Lighting {
		t.Error("expected lighting to be true by default")
	}
	if cfg.Graphics.Multisample != 4 {
		t.Errorf("expected multisample 4, got %d", cfg.Graphics.Multisample)
	}
	if cfg.Graphics.Background != [3]float32{0.18, 0.18, 0.22} {
		t.Errorf("expected background [0.18 0.18 0.22], got %v", cfg.Graphics.Background)
	}

	// Test camera defaults
	if cfg.Camera.FOV != 45 {
		t.Errorf("expected fov 45, got %f", cfg.Camera.FOV)
	}
	if cfg.Camera.Near != 0.1 {
		t.Errorf("expected near 0.1, got %f", cfg.Camera.Near)
	}
	if cfg.Camera.Far != 10000 {
		t.Errorf("expected far 10000, got %f", cfg.Camera.Far)
	}
	if cfg.Camera.RotateSpeed != 0.3 {
		t.Errorf("expected rotate speed 0.3, got %f", cfg.Camera.RotateSpeed)
	}
	if cfg.Camera.PanSpeed != 0.001 {
		t.Errorf("expected pan speed 0.001, got %f", cfg.Camera.PanSpeed)
	}
	if cfg.Camera.ZoomSpeed != 0.1 {
		t.Errorf("expected zoom speed 0.1, got %f", cfg.Camera.ZoomSpeed)
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
window:
  title: "my viewer"
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false

graphics:
  mode: "wireframe"
  grid: false
  axes: false
  lighting: false
  multisample: 8
  background: [0.1, 0.2, 0.3]

camera:
  fov: 60
  near: 0.5
  far: 5000
  rotate_speed: 0.5
  pan_speed: 0.002
  zoom_speed: 0.2
  min_distance: 0.1
  max_distance: 2000

logging:
  level: "debug"
  log_file: "viewer.log"
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
	if cfg.Window.Title != "my viewer" {
		t.Errorf("expected title 'my viewer', got %s", cfg.Window.Title)
	}
	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 1080 {
		t.Errorf("expected height 1080, got %d", cfg.Window.Height)
	}
	if !cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Window.VSync {
		t.Error("expected vsync to be false")
	}

	if cfg.Graphics.Mode != "wireframe" {
		t.Errorf("expected mode 'wireframe', got %s", cfg.Graphics.Mode)
	}
	if cfg.Graphics.Grid {
		t.Error("expected grid to be false")
	}
	if cfg.Graphics.Multisample != 8 {
		t.Errorf("expected multisample 8, got %d", cfg.Graphics.Multisample)
	}
	if cfg.Graphics.Background != [3]float32{0.1, 0.2, 0.3} {
		t.Errorf("expected background [0.1 0.2 0.3], got %v", cfg.Graphics.Background)
	}

	if cfg.Camera.FOV != 60 {
		t.Errorf("expected fov 60, got %f", cfg.Camera.FOV)
	}
	if cfg.Camera.RotateSpeed != 0.5 {
		t.Errorf("expected rotate speed 0.5, got %f", cfg.Camera.RotateSpeed)
	}
	if cfg.Camera.MaxDistance != 2000 {
		t.Errorf("expected max distance 2000, got %f", cfg.Camera.MaxDistance)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "viewer.log" {
		t.Errorf("expected log file 'viewer.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFilePartial(t *testing.T) {
	// A file setting only a few keys keeps defaults for the rest
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 800
  height: 600
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 800 {
		t.Errorf("expected width 800, got %d", cfg.Window.Width)
	}
	if cfg.Window.Title != "stageview" {
		t.Errorf("expected default title to survive, got %s", cfg.Window.Title)
	}
	if cfg.Graphics.Mode != "shaded" {
		t.Errorf("expected default mode to survive, got %s", cfg.Graphics.Mode)
	}
	if cfg.Camera.FOV != 45 {
		t.Errorf("expected default fov to survive, got %f", cfg.Camera.FOV)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	// Create temporary config file with invalid YAML
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
window:
  width: not a number
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
	if err := os.WriteFile(configPath, []byte("window:\n  width: 800\n"), 0644); err != nil {
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
		verify   func(*Config) error
		teardown func()
	}{
		{
			name: "mode flag",
			setup: func() {
				*flagMode = "points"
			},
			verify: func(cfg *Config) error {
				if cfg.Graphics.Mode != "points" {
					t.Errorf("expected mode 'points', got %s", cfg.Graphics.Mode)
				}
				return nil
			},
			teardown: func() {
				*flagMode = ""
			},
		},
		{
			name: "log flags",
			setup: func() {
				*flagLogLevel = "debug"
				*flagLogFile = "out.log"
			},
			verify: func(cfg *Config) error {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
				if cfg.Logging.LogFile != "out.log" {
					t.Errorf("expected log file 'out.log', got %s", cfg.Logging.LogFile)
				}
				return nil
			},
			teardown: func() {
				*flagLogLevel = ""
				*flagLogFile = ""
			},
		},
		{
			name: "windowed flag",
			setup: func() {
				*flagWindowed = true
			},
			verify: func(cfg *Config) error {
				if cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
				return nil
			},
			teardown: func() {
				*flagWindowed = false
			},
		},
		{
			name: "fullscreen flag",
			setup: func() {
				*flagFullscreen = true
			},
			verify: func(cfg *Config) error {
				if !cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
				return nil
			},
			teardown: func() {
				*flagFullscreen = false
			},
		},
		{
			name: "no-vsync flag",
			setup: func() {
				*flagNoVSync = true
			},
			verify: func(cfg *Config) error {
				if cfg.Window.VSync {
					t.Error("expected vsync to be false with no-vsync flag")
				}
				return nil
			},
			teardown: func() {
				*flagNoVSync = false
			},
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) error {
				if cfg.Window.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Window.Width)
				}
				if cfg.Window.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Window.Height)
				}
				return nil
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
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

func TestTimeOverride(t *testing.T) {
	// Flag unset: no override
	if _, ok := TimeOverride(); ok {
		t.Error("expected no time override by default")
	}

	*flagTime = 42.5
	defer func() { *flagTime = math.NaN() }()

	tc, ok := TimeOverride()
	if !ok {
		t.Fatal("expected time override to be set")
	}
	if tc != 42.5 {
		t.Errorf("expected time code 42.5, got %f", tc)
	}
}

func TestLoadPriority(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	// Load config
	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should be from flag (1920), not file (1600)
	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Window.Width)
	}

	// Height should be from file (900) since no flag override
	if cfg.Window.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Window.Height)
	}
}
