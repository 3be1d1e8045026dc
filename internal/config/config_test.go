package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1280 || cfg.Graphics.Height != 720 {
		t.Errorf("expected 1280x720, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if cfg.Graphics.FPSLimit != 144 {
		t.Errorf("expected fps limit 144, got %d", cfg.Graphics.FPSLimit)
	}
	if cfg.Graphics.FOVDegrees != 60 {
		t.Errorf("expected fov 60, got %f", cfg.Graphics.FOVDegrees)
	}

	if cfg.Audio.MasterVolume != 0.8 {
		t.Errorf("expected master volume 0.8, got %f", cfg.Audio.MasterVolume)
	}

	if cfg.Game.CubeSize != 1 {
		t.Errorf("expected cube size 1, got %f", cfg.Game.CubeSize)
	}
	if cfg.Game.CubeDistance != 3 {
		t.Errorf("expected cube distance 3, got %f", cfg.Game.CubeDistance)
	}
	if cfg.Game.RotateSpeedDecrease != 4 {
		t.Errorf("expected rotate speed decrease 4, got %f", cfg.Game.RotateSpeedDecrease)
	}
	if cfg.Game.ShowFPS {
		t.Error("expected show_fps to be false by default")
	}

	if cfg.Data.AssetDir != "./assets" {
		t.Errorf("expected asset dir ./assets, got %s", cfg.Data.AssetDir)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  fps_limit: 60
  fov_degrees: 75

audio:
  master_volume: 0.5
  sfx_volume: 0.7
  muted: true

game:
  cube_size: 1.5
  cube_distance: 4
  rotate_speed_decrease: 2.5
  random_start: false
  show_fps: true

data:
  asset_dir: "/opt/cubetac/assets"
  screenshot_dir: "shots"

logging:
  level: "debug"
  log_file: "game.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 || cfg.Graphics.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.VSync {
		t.Error("expected vsync to be false")
	}
	if cfg.Graphics.FPSLimit != 60 {
		t.Errorf("expected fps limit 60, got %d", cfg.Graphics.FPSLimit)
	}
	if cfg.Graphics.FOVDegrees != 75 {
		t.Errorf("expected fov 75, got %f", cfg.Graphics.FOVDegrees)
	}

	if cfg.Audio.MasterVolume != 0.5 {
		t.Errorf("expected master volume 0.5, got %f", cfg.Audio.MasterVolume)
	}
	if !cfg.Audio.Muted {
		t.Error("expected muted to be true")
	}

	if cfg.Game.CubeSize != 1.5 {
		t.Errorf("expected cube size 1.5, got %f", cfg.Game.CubeSize)
	}
	if cfg.Game.RotateSpeedDecrease != 2.5 {
		t.Errorf("expected rotate speed decrease 2.5, got %f", cfg.Game.RotateSpeedDecrease)
	}
	if cfg.Game.RandomStart {
		t.Error("expected random_start to be false")
	}
	if !cfg.Game.ShowFPS {
		t.Error("expected show_fps to be true")
	}

	if cfg.Data.AssetDir != "/opt/cubetac/assets" {
		t.Errorf("expected asset dir /opt/cubetac/assets, got %s", cfg.Data.AssetDir)
	}
	if cfg.Data.ScreenshotDir != "shots" {
		t.Errorf("expected screenshot dir shots, got %s", cfg.Data.ScreenshotDir)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "game.log" {
		t.Errorf("expected log file 'game.log', got %s", cfg.Logging.LogFile)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"zero width", func(c *Config) { c.Graphics.Width = 0 }, true},
		{"negative fps", func(c *Config) { c.Graphics.FPSLimit = -1 }, true},
		{"unlimited fps", func(c *Config) { c.Graphics.FPSLimit = 0 }, false},
		{"fov too wide", func(c *Config) { c.Graphics.FOVDegrees = 180 }, true},
		{"zero cube", func(c *Config) { c.Game.CubeSize = 0 }, true},
		{"camera inside cube", func(c *Config) { c.Game.CubeDistance = 0.5 }, true},
		{"no decay", func(c *Config) { c.Game.RotateSpeedDecrease = 0 }, true},
		{"no assets", func(c *Config) { c.Data.AssetDir = "" }, true},
		{"overlay", func(c *Config) { c.Data.OverlayDirs = []string{"mods"} }, false},
		{"empty overlay", func(c *Config) { c.Data.OverlayDirs = []string{"mods", ""} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Game.CubeSize = 2
	cfg.Game.CubeDistance = 6
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}
	if loaded.Game.CubeSize != 2 || loaded.Game.CubeDistance != 6 {
		t.Errorf("round trip lost game settings: %+v", loaded.Game)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	// Create temporary config file with invalid YAML
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
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
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
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
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) error {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
				if !cfg.Game.ShowFPS {
					t.Error("expected show_fps to be enabled with debug flag")
				}
				return nil
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "assets flag",
			setup: func() {
				*flagAssets = "/tmp/cubetac-assets"
			},
			verify: func(cfg *Config) error {
				if cfg.Data.AssetDir != "/tmp/cubetac-assets" {
					t.Errorf("expected asset dir /tmp/cubetac-assets, got %s", cfg.Data.AssetDir)
				}
				return nil
			},
			teardown: func() {
				*flagAssets = ""
			},
		},
		{
			name: "windowed flag",
			setup: func() {
				*flagWindowed = true
			},
			verify: func(cfg *Config) error {
				if cfg.Graphics.Fullscreen {
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
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
				return nil
			},
			teardown: func() {
				*flagFullscreen = false
			},
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) error {
				if cfg.Graphics.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Graphics.Width)
				}
				if cfg.Graphics.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Graphics.Height)
				}
				return nil
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name: "mute and seed flags",
			setup: func() {
				*flagMute = true
				*flagSeed = 99
			},
			verify: func(cfg *Config) error {
				if !cfg.Audio.Muted {
					t.Error("expected audio to be muted with mute flag")
				}
				if cfg.Game.Seed != 99 {
					t.Errorf("expected seed 99, got %d", cfg.Game.Seed)
				}
				return nil
			},
			teardown: func() {
				*flagMute = false
				*flagSeed = 0
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
graphics:
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
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}

	// Height should be from file (900) since no flag override
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestClone(t *testing.T) {
	orig := Default()
	clone := orig.Clone()

	clone.Graphics.Width = 640
	clone.Data.AssetDir = "elsewhere"
	if orig.Graphics.Width != 1280 || orig.Data.AssetDir != "./assets" {
		t.Errorf("modifying the clone changed the original: %+v", orig)
	}
	if clone.Game != orig.Game {
		t.Errorf("clone game section = %+v, want %+v", clone.Game, orig.Game)
	}
}

func TestCloneOwnsOverlayDirs(t *testing.T) {
	orig := Default()
	orig.Data.OverlayDirs = []string{"mods", "hd"}
	clone := orig.Clone()

	clone.Data.OverlayDirs[0] = "other"
	clone.Data.OverlayDirs = append(clone.Data.OverlayDirs, "extra")
	if len(orig.Data.OverlayDirs) != 2 || orig.Data.OverlayDirs[0] != "mods" {
		t.Errorf("modifying the clone changed the original overlays: %v", orig.Data.OverlayDirs)
	}
}

func TestLoadFromFileRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("game:\n  cube_sise: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := loadFromFile(Default(), path); err == nil {
		t.Error("misspelled key was accepted")
	}
}

func TestLoadFromFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := Default()
	if err := loadFromFile(cfg, path); err != nil {
		t.Fatalf("empty file: %v", err)
	}
	if cfg.Graphics.Width != 1280 {
		t.Errorf("empty file changed width to %d", cfg.Graphics.Width)
	}
}

func TestLoadInvalidNamesSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("game:\n  cube_size: -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	*flagConfig = path
	defer func() { *flagConfig = "" }()

	_, err := Load()
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("Load() error = %v, want ErrInvalid", err)
	}
	if !strings.Contains(err.Error(), path) || !strings.Contains(err.Error(), "cube_size") {
		t.Errorf("error %q should name the file and the field", err)
	}
}

func TestLoadRecordsSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("graphics:\n  width: 800\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	*flagConfig = path
	defer func() { *flagConfig = "" }()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Source != path {
		t.Errorf("Source = %q, want %q", cfg.Source, path)
	}
}

func TestSearchPaths(t *testing.T) {
	paths := SearchPaths()
	if len(paths) < 2 {
		t.Fatalf("SearchPaths() = %v", paths)
	}
	if paths[0] != filepath.Join(".", FileName) {
		t.Errorf("first path = %q, want the working directory", paths[0])
	}
	if want := filepath.Join(ConfigDir(), FileName); paths[len(paths)-1] != want {
		t.Errorf("last path = %q, want %q", paths[len(paths)-1], want)
	}
	for _, p := range paths {
		if filepath.Base(p) != FileName {
			t.Errorf("path %q does not end in %s", p, FileName)
		}
	}
}
