// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Graphics GraphicsConfig `yaml:"graphics"`
	Camera   CameraConfig   `yaml:"camera"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// GraphicsConfig holds rendering settings.
type GraphicsConfig struct {
	Mode        string     `yaml:"mode"` // shaded, wireframe or points
	Grid        bool       `yaml:"grid"`
	Axes        bool       `yaml:"axes"`
	Lighting    bool       `yaml:"lighting"`
	Multisample int        `yaml:"multisample"`
	Background  [3]float32 `yaml:"background"`
}

// CameraConfig holds orbit camera settings.
type CameraConfig struct {
	FOV         float32 `yaml:"fov"`
	Near        float32 `yaml:"near"`
	Far         float32 `yaml:"far"`
	RotateSpeed float32 `yaml:"rotate_speed"`
	PanSpeed    float32 `yaml:"pan_speed"`
	ZoomSpeed   float32 `yaml:"zoom_speed"`
	MinDistance float32 `yaml:"min_distance"`
	MaxDistance float32 `yaml:"max_distance"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "stageview",
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Graphics: GraphicsConfig{
			Mode:        "shaded",
			Grid:        true,
			Axes:        true,
			Lighting:    true,
			Multisample: 4,
			Background:  [3]float32{0.18, 0.18, 0.22},
		},
		Camera: CameraConfig{
			FOV:         45,
			Near:        0.1,
			Far:         10000,
			RotateSpeed: 0.3,
			PanSpeed:    0.001,
			ZoomSpeed:   0.1,
			MinDistance: 0.01,
			MaxDistance: 10000,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
