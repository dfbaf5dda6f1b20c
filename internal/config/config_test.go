package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Window.Width != 750 || cfg.Window.Height != 750 {
		t.Errorf("expected 750x750 window, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Window.VSync {
		t.Error("expected vsync to be true by default")
	}

	if cfg.Projection.FovY != 45 || cfg.Projection.Near != 1 || cfg.Projection.Far != 50 {
		t.Errorf("unexpected projection defaults: %+v", cfg.Projection)
	}

	if !cfg.Animation.Enabled {
		t.Error("expected animation enabled by default")
	}
	if cfg.Animation.Axis != "y" {
		t.Errorf("expected axis 'y', got %s", cfg.Animation.Axis)
	}
	if cfg.Animation.AutoCamera {
		t.Error("expected auto camera off by default")
	}

	if cfg.Scene.PlaceholderOnMissing {
		t.Error("expected missing meshes to be fatal by default")
	}
	if len(cfg.Scene.Slots) != 0 {
		t.Errorf("expected built-in layout by default, got %d slots", len(cfg.Scene.Slots))
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  title: "Demo"
  width: 1024
  height: 768
  fullscreen: true
  vsync: false
  error_dialog: true

scene:
  models_dir: "/opt/carousel"
  placeholder_on_missing: true
  slots:
    - mesh: models/stand.obj
      kind: static
    - mesh: models/ball_01.obj
      kind: orbiting
      offset: [2.5, 0.5, 0]

projection:
  fov_y: 60
  near: 0.5
  far: 100

animation:
  enabled: false
  axis: none
  auto_camera: true

screenshot:
  format: bmp

logging:
  level: "debug"
  log_file: "carousel.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Title != "Demo" || cfg.Window.Width != 1024 || cfg.Window.Height != 768 {
		t.Errorf("window not loaded: %+v", cfg.Window)
	}
	if !cfg.Window.Fullscreen || cfg.Window.VSync || !cfg.Window.ErrorDialog {
		t.Errorf("window flags not loaded: %+v", cfg.Window)
	}

	if cfg.Scene.ModelsDir != "/opt/carousel" || !cfg.Scene.PlaceholderOnMissing {
		t.Errorf("scene not loaded: %+v", cfg.Scene)
	}
	if len(cfg.Scene.Slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(cfg.Scene.Slots))
	}
	if cfg.Scene.Slots[1].Kind != "orbiting" || cfg.Scene.Slots[1].Offset != [3]float32{2.5, 0.5, 0} {
		t.Errorf("slot 1 not loaded: %+v", cfg.Scene.Slots[1])
	}

	if cfg.Projection.FovY != 60 || cfg.Projection.Near != 0.5 || cfg.Projection.Far != 100 {
		t.Errorf("projection not loaded: %+v", cfg.Projection)
	}

	if cfg.Animation.Enabled || cfg.Animation.Axis != "none" || !cfg.Animation.AutoCamera {
		t.Errorf("animation not loaded: %+v", cfg.Animation)
	}

	if cfg.Screenshot.Format != "bmp" {
		t.Errorf("expected screenshot format bmp, got %s", cfg.Screenshot.Format)
	}
	// Unset keys keep their defaults
	if cfg.Screenshot.Prefix != "carousel" {
		t.Errorf("expected default screenshot prefix, got %s", cfg.Screenshot.Prefix)
	}

	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "carousel.log" {
		t.Errorf("logging not loaded: %+v", cfg.Logging)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("loaded config should validate: %v", err)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()

	tests := map[string]string{
		"syntax": `
window:
  width: not a number
  invalid syntax here
`,
		"unknown key": `
window:
  colour: red
`,
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			configPath := filepath.Join(tmpDir, name+".yaml")
			if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}

			cfg := Default()
			if err := loadFromFile(cfg, configPath); err == nil {
				t.Error("expected error loading invalid YAML, got nil")
			}
		})
	}
}

func TestLoadFromFileEmpty(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(configPath, nil, 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Errorf("empty file should keep defaults, got %v", err)
	}
	if cfg.Window.Width != 750 {
		t.Errorf("expected default width, got %d", cfg.Window.Width)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }, ErrInvalidWindow},
		{"near equals far", func(c *Config) { c.Projection.Near = 50 }, ErrInvalidProjection},
		{"negative near", func(c *Config) { c.Projection.Near = -1 }, ErrInvalidProjection},
		{"bad axis", func(c *Config) { c.Animation.Axis = "x" }, ErrInvalidAxis},
		{"empty slot mesh", func(c *Config) {
			c.Scene.Slots = []SlotConfig{{Kind: "static"}}
		}, ErrInvalidSlot},
		{"bad slot kind", func(c *Config) {
			c.Scene.Slots = []SlotConfig{{Mesh: "a.obj", Kind: "spinning"}}
		}, ErrInvalidSlot},
		{"offset on static slot", func(c *Config) {
			c.Scene.Slots = []SlotConfig{{Mesh: "a.obj", Kind: "static", Offset: [3]float32{0, 1, 0}}}
		}, ErrInvalidSlot},
		{"offset on rotating slot", func(c *Config) {
			c.Scene.Slots = []SlotConfig{{Mesh: "a.obj", Kind: "rotating", Offset: [3]float32{2, 0, 0}}}
		}, ErrInvalidSlot},
		{"valid slots", func(c *Config) {
			c.Scene.Slots = []SlotConfig{
				{Mesh: "a.obj", Kind: "static"},
				{Mesh: "b.obj", Kind: "pivot", Offset: [3]float32{0, 0, 2.5}},
			}
		}, nil},
		{"bad screenshot format", func(c *Config) { c.Screenshot.Format = "gif" }, ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	// No config file exists - should return empty
	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("window:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "models flag",
			setup: func() { *flagModels = "/srv/models" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Scene.ModelsDir != "/srv/models" {
					t.Errorf("expected models dir /srv/models, got %s", cfg.Scene.ModelsDir)
				}
			},
			teardown: func() { *flagModels = "" },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name:  "width and height flags",
			setup: func() { *flagWidth, *flagHeight = 1280, 720 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Width != 1280 || cfg.Window.Height != 720 {
					t.Errorf("expected 1280x720, got %dx%d", cfg.Window.Width, cfg.Window.Height)
				}
			},
			teardown: func() { *flagWidth, *flagHeight = 0, 0 },
		},
		{
			name:  "auto camera flag",
			setup: func() { *flagAutoCamera = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Animation.AutoCamera {
					t.Error("expected auto camera with auto-camera flag")
				}
			},
			teardown: func() { *flagAutoCamera = false },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
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

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

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

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("projection:\n  near: 60\n  far: 50\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); !errors.Is(err, ErrInvalidProjection) {
		t.Errorf("expected ErrInvalidProjection, got %v", err)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Window.Title = "Saved"
	cfg.Scene.Slots = []SlotConfig{{Mesh: "models/ring.obj", Kind: "rotating"}}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reloading saved config failed: %v", err)
	}
	if loaded.Window.Title != "Saved" {
		t.Errorf("expected title 'Saved', got %s", loaded.Window.Title)
	}
	if len(loaded.Scene.Slots) != 1 || loaded.Scene.Slots[0].Mesh != "models/ring.obj" {
		t.Errorf("slots not round-tripped: %+v", loaded.Scene.Slots)
	}
}
