// Package config handles game configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
)

// Config holds all game settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Audio    AudioConfig    `yaml:"audio"`
	Game     GameConfig     `yaml:"game"`
	Data     DataConfig     `yaml:"data"`
	Logging  LoggingConfig  `yaml:"logging"`

	// Source is the file Load read, empty when none was found.
	Source string `yaml:"-"`
}

// DataConfig holds asset and output paths.
type DataConfig struct {
	AssetDir      string `yaml:"asset_dir"`
	ScreenshotDir string `yaml:"screenshot_dir"`

	// OverlayDirs are searched before AssetDir; later entries win.
	OverlayDirs []string `yaml:"overlay_dirs,omitempty"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	FPSLimit   int     `yaml:"fps_limit"`   // 0 = unlimited
	FOVDegrees float32 `yaml:"fov_degrees"` // vertical
}

// AudioConfig holds audio settings.
type AudioConfig struct {
	MasterVolume float32 `yaml:"master_volume"`
	SFXVolume    float32 `yaml:"sfx_volume"`
	Muted        bool    `yaml:"muted"`
}

// GameConfig holds gameplay settings.
type GameConfig struct {
	CubeSize            float32 `yaml:"cube_size"`
	CubeDistance        float32 `yaml:"cube_distance"`
	RotateSpeedDecrease float32 `yaml:"rotate_speed_decrease"`
	RandomStart         bool    `yaml:"random_start"`
	Seed                uint64  `yaml:"seed"` // 0 seeds from the clock
	ShowFPS             bool    `yaml:"show_fps"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   144,
			FOVDegrees: 60,
		},
		Audio: AudioConfig{
			MasterVolume: 0.8,
			SFXVolume:    0.8,
			Muted:        false,
		},
		Game: GameConfig{
			CubeSize:            1,
			CubeDistance:        3,
			RotateSpeedDecrease: 4,
			RandomStart:         true,
			ShowFPS:             false,
		},
		Data: DataConfig{
			AssetDir:      "./assets",
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Clone returns a deep copy of the config. The copy owns its OverlayDirs.
func (c *Config) Clone() *Config {
	var out Config
	if err := copier.CopyWithOption(&out, c, copier.Option{DeepCopy: true}); err != nil {
		panic(fmt.Sprintf("config: clone: %v", err))
	}
	return &out
}

// Validate reports settings the game cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("graphics: invalid size %dx%d", c.Graphics.Width, c.Graphics.Height))
	}
	if c.Graphics.FPSLimit < 0 {
		errs = append(errs, fmt.Errorf("graphics: negative fps_limit %d", c.Graphics.FPSLimit))
	}
	if c.Graphics.FOVDegrees <= 0 || c.Graphics.FOVDegrees >= 180 {
		errs = append(errs, fmt.Errorf("graphics: fov_degrees %.1f out of (0, 180)", c.Graphics.FOVDegrees))
	}
	if c.Game.CubeSize <= 0 {
		errs = append(errs, fmt.Errorf("game: cube_size must be positive, got %g", c.Game.CubeSize))
	}
	if c.Game.CubeDistance <= c.Game.CubeSize {
		errs = append(errs, fmt.Errorf("game: cube_distance %g must exceed cube_size %g", c.Game.CubeDistance, c.Game.CubeSize))
	}
	if c.Game.RotateSpeedDecrease <= 0 {
		errs = append(errs, fmt.Errorf("game: rotate_speed_decrease must be positive, got %g", c.Game.RotateSpeedDecrease))
	}
	if c.Data.AssetDir == "" {
		errs = append(errs, errors.New("data: asset_dir is empty"))
	}
	for i, dir := range c.Data.OverlayDirs {
		if dir == "" {
			errs = append(errs, fmt.Errorf("data: overlay_dirs[%d] is empty", i))
		}
	}
	return errors.Join(errs...)
}
