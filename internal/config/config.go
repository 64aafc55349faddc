// Package config handles viewer configuration loading and management.
package config

import "github.com/Faultbox/scenekit/pkg/interaction"

// Config holds all viewer settings.
type Config struct {
	Window      WindowConfig      `yaml:"window"`
	Camera      CameraConfig      `yaml:"camera"`
	Interaction InteractionConfig `yaml:"interaction"`
	// Profiles are extra camera profiles registered after the built-in ones.
	Profiles []ProfileConfig `yaml:"profiles,omitempty"`
	Logging  LoggingConfig   `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Title      string `yaml:"title"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	FPSLimit   int    `yaml:"fps_limit"`
}

// CameraConfig holds projection and scene bounds settings.
type CameraConfig struct {
	Type                 string     `yaml:"type"` // perspective or orthographic
	FieldOfViewDeg       float32    `yaml:"field_of_view_deg"`
	SceneRadius          float32    `yaml:"scene_radius"`
	SceneCenter          [3]float32 `yaml:"scene_center,flow"`
	ZNearCoefficient     float32    `yaml:"z_near_coefficient"`
	ZClippingCoefficient float32    `yaml:"z_clipping_coefficient"`
}

// InteractionConfig holds pointer sensitivities and the starting profile.
type InteractionConfig struct {
	interaction.Settings `yaml:",inline"`
	Profile              string `yaml:"profile"`
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
			Width:      1280,
			Height:     720,
			Title:      "sceneview",
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
		},
		Camera: CameraConfig{
			Type:                 "perspective",
			FieldOfViewDeg:       45,
			SceneRadius:          1,
			ZNearCoefficient:     0.005,
			ZClippingCoefficient: 1.7320508,
		},
		Interaction: InteractionConfig{
			Settings: interaction.DefaultSettings(),
			Profile:  "ARCBALL",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
