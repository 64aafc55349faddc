package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/scenekit/pkg/camera"
	"github.com/Faultbox/scenekit/pkg/errs"
	"github.com/Faultbox/scenekit/pkg/interaction"
	"github.com/Faultbox/scenekit/pkg/math"
	"github.com/Faultbox/scenekit/pkg/profile"
	"github.com/Faultbox/scenekit/pkg/scene"
)

func TestDefault(t *testing.T) {
	cfg := Default()

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

	if cfg.Camera.Type != "perspective" {
		t.Errorf("expected perspective camera, got %s", cfg.Camera.Type)
	}
	if cfg.Camera.FieldOfViewDeg != 45 {
		t.Errorf("expected fov 45, got %v", cfg.Camera.FieldOfViewDeg)
	}
	if cfg.Interaction.Settings != interaction.DefaultSettings() {
		t.Errorf("expected default interaction settings, got %+v", cfg.Interaction.Settings)
	}
	if cfg.Interaction.Profile != "ARCBALL" {
		t.Errorf("expected ARCBALL profile, got %s", cfg.Interaction.Profile)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config is invalid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false

camera:
  type: orthographic
  field_of_view_deg: 60
  scene_radius: 50
  scene_center: [1, 2, 3]

interaction:
  rotation_sensitivity: 2
  fly_speed: 5
  profile: inspect

profiles:
  - name: inspect
    mode: CAD
    defaults: true
    camera_mouse:
      SHIFT+RIGHT: TRANSLATE
    keys:
      CTRL+7: ADD_KEYFRAME_TO_PATH

logging:
  level: "debug"
  log_file: "scene.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 1920 || cfg.Window.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if !cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Camera.Type != "orthographic" {
		t.Errorf("expected orthographic camera, got %s", cfg.Camera.Type)
	}
	if cfg.Camera.SceneCenter != [3]float32{1, 2, 3} {
		t.Errorf("expected scene center [1 2 3], got %v", cfg.Camera.SceneCenter)
	}
	if cfg.Interaction.RotationSensitivity != 2 {
		t.Errorf("expected rotation sensitivity 2, got %v", cfg.Interaction.RotationSensitivity)
	}
	// fields missing from the file keep their defaults
	if cfg.Interaction.DampingFactor != interaction.DefaultSettings().DampingFactor {
		t.Errorf("expected default damping, got %v", cfg.Interaction.DampingFactor)
	}
	if len(cfg.Profiles) != 1 || cfg.Profiles[0].CameraMouse["SHIFT+RIGHT"] != "TRANSLATE" {
		t.Errorf("unexpected profiles %+v", cfg.Profiles)
	}
	if cfg.Logging.LogFile != "scene.log" {
		t.Errorf("expected log file 'scene.log', got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
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

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   []string
	}{
		{
			name:   "window size",
			mutate: func(c *Config) { c.Window.Width = 0 },
			want:   []string{"window size"},
		},
		{
			name:   "camera",
			mutate: func(c *Config) { c.Camera.Type = "fisheye"; c.Camera.FieldOfViewDeg = 200; c.Camera.SceneRadius = -1 },
			want:   []string{"fisheye", "field_of_view_deg", "scene_radius"},
		},
		{
			name:   "interaction",
			mutate: func(c *Config) { c.Interaction.DampingFactor = 2 },
			want:   []string{"damping_factor"},
		},
		{
			name:   "unknown profile",
			mutate: func(c *Config) { c.Interaction.Profile = "missing" },
			want:   []string{"missing"},
		},
		{
			name: "bad profile table",
			mutate: func(c *Config) {
				c.Profiles = []ProfileConfig{
					{Name: "a", Mode: "ARCBALL", CameraMouse: map[string]string{"LEFT": "MOVE_FORWARD"}},
					{Name: "a", Mode: "CAD"},
				}
			},
			want: []string{"MOVE_FORWARD", "defined twice"},
		},
		{
			name:   "log level",
			mutate: func(c *Config) { c.Logging.Level = "loud" },
			want:   []string{"loud"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !errs.IsConfiguration(err) {
				t.Errorf("expected a configuration error, got %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(err.Error(), w) {
					t.Errorf("error %q does not mention %q", err, w)
				}
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Actual path depends on OS
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
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Width != 2560 || cfg.Window.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Window.Width, cfg.Window.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name: "camera flags",
			setup: func() {
				*flagOrtho = true
				*flagFOV = 70
				*flagProfile = "CAD"
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Camera.Type != "orthographic" {
					t.Errorf("expected orthographic camera, got %s", cfg.Camera.Type)
				}
				if cfg.Camera.FieldOfViewDeg != 70 {
					t.Errorf("expected fov 70, got %v", cfg.Camera.FieldOfViewDeg)
				}
				if cfg.Interaction.Profile != "CAD" {
					t.Errorf("expected CAD profile, got %s", cfg.Interaction.Profile)
				}
			},
			teardown: func() {
				*flagOrtho = false
				*flagFOV = 0
				*flagProfile = ""
			},
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
	if cfg.Window.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Window.Height)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("camera:\n  scene_radius: 0\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); !errs.IsConfiguration(err) {
		t.Errorf("expected a configuration error, got %v", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Camera.SceneCenter = [3]float32{4, 5, 6}
	cfg.Profiles = []ProfileConfig{profile.New("mine", profile.FirstPerson).Tables()}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loading saved config: %v", err)
	}
	if loaded.Camera.SceneCenter != cfg.Camera.SceneCenter {
		t.Errorf("scene center = %v, want %v", loaded.Camera.SceneCenter, cfg.Camera.SceneCenter)
	}
	if len(loaded.Profiles) != 1 || loaded.Profiles[0].Keys["PLUS"] != "INCREASE_FLY_SPEED" {
		t.Errorf("profiles did not survive the round trip: %+v", loaded.Profiles)
	}
	if err := loaded.Validate(); err != nil {
		t.Errorf("saved config is invalid: %v", err)
	}
}

type nullRenderer struct{}

func (nullRenderer) ViewportSize() (int, int) { return 640, 480 }
func (nullRenderer) SetMatrices(_, _ math.Mat4) {}
func (nullRenderer) ApplyTransform(math.Mat4) {}

func TestApplyTo(t *testing.T) {
	cfg := Default()
	cfg.Camera.Type = "orthographic"
	cfg.Camera.SceneRadius = 10
	cfg.Camera.SceneCenter = [3]float32{1, 0, 0}
	cfg.Profiles = []ProfileConfig{{Name: "inspect", Mode: "CAD", Defaults: true}}
	cfg.Interaction.Profile = "inspect"

	s := scene.New(nullRenderer{}, cfg.Interaction.Settings)
	if err := cfg.ApplyTo(s); err != nil {
		t.Fatalf("ApplyTo: %v", err)
	}

	cam := s.Camera()
	if cam.Type() != camera.Orthographic {
		t.Errorf("expected orthographic camera, got %v", cam.Type())
	}
	if cam.SceneRadius() != 10 {
		t.Errorf("expected scene radius 10, got %v", cam.SceneRadius())
	}
	if !cam.SceneCenter().ApproxEqual(math.Vec3{X: 1}, 1e-6) {
		t.Errorf("expected scene center (1, 0, 0), got %v", cam.SceneCenter())
	}
	if got := s.CurrentProfile().Name(); got != "inspect" {
		t.Errorf("expected inspect profile, got %s", got)
	}
}
