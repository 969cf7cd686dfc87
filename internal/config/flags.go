package config

import (
	"flag"
	"math"
)

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagFullscreen = flag.Bool("fullscreen", false, "Start in fullscreen mode")
	flagWindowed   = flag.Bool("windowed", false, "Start in windowed mode")
	flagVSync      = flag.Bool("vsync", false, "Force vertical sync on")
	flagNoVSync    = flag.Bool("no-vsync", false, "Force vertical sync off")
	flagMode       = flag.String("mode", "", "Draw mode (shaded, wireframe, points)")
	flagLogLevel   = flag.String("log-level", "", "Log level (debug, info, warn, error)")
	flagLogFile    = flag.String("log-file", "", "Log file path")
	flagTime       = flag.Float64("time", math.NaN(), "Initial time code")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// StagePath returns the positional stage file argument, or "" if none.
func StagePath() string {
	return flag.Arg(0)
}

// TimeOverride returns the initial time code if set via the --time flag.
func TimeOverride() (float64, bool) {
	if math.IsNaN(*flagTime) {
		return 0, false
	}
	return *flagTime, true
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	if *flagWindowed {
		cfg.Window.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagVSync {
		cfg.Window.VSync = true
	}
	if *flagNoVSync {
		cfg.Window.VSync = false
	}
	if *flagMode != "" {
		cfg.Graphics.Mode = *flagMode
	}
	if *flagLogLevel != "" {
		cfg.Logging.Level = *flagLogLevel
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
}
