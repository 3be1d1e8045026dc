package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging and the FPS counter")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagAssets     = flag.String("assets", "", "Asset directory")
	flagMute       = flag.Bool("mute", false, "Disable sound effects")
	flagSeed       = flag.Uint64("seed", 0, "Seed for the starting cube orientation")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via -config.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags overrides file settings with the flags that were set.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Game.ShowFPS = true
	}
	switch {
	case *flagWindowed:
		cfg.Graphics.Fullscreen = false
	case *flagFullscreen:
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagAssets != "" {
		cfg.Data.AssetDir = *flagAssets
	}
	if *flagMute {
		cfg.Audio.Muted = true
	}
	if *flagSeed != 0 {
		cfg.Game.Seed = *flagSeed
	}
}
