package interaction

import (
	"go.uber.org/multierr"

	"github.com/Faultbox/scenekit/pkg/errs"
)

// Settings tunes how pointer motion maps to frame motion.
type Settings struct {
	// RotationSensitivity scales arcball, look-around and roll angles.
	RotationSensitivity float32 `yaml:"rotation_sensitivity"`
	// TranslationSensitivity scales pointer translations.
	TranslationSensitivity float32 `yaml:"translation_sensitivity"`
	// SpinningSensitivity is the pointer speed, in pixels per millisecond,
	// above which a released rotation keeps spinning.
	SpinningSensitivity float32 `yaml:"spinning_sensitivity"`
	// WheelSensitivity is the fraction of the distance covered per wheel step.
	WheelSensitivity float32 `yaml:"wheel_sensitivity"`
	// DampingFactor multiplies the spin angle on every tick.
	DampingFactor float32 `yaml:"damping_factor"`
	// SpinEpsilon is the angle, in radians, below which spinning stops.
	SpinEpsilon float32 `yaml:"spin_epsilon"`
	// FlySpeed is the first person speed in world units per second.
	FlySpeed float32 `yaml:"fly_speed"`
	// GrabThreshold is the pixel distance under which a frame grabs the pointer.
	GrabThreshold float32 `yaml:"grab_threshold"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		RotationSensitivity:    1,
		TranslationSensitivity: 1,
		SpinningSensitivity:    0.3,
		WheelSensitivity:       0.1,
		DampingFactor:          0.9,
		SpinEpsilon:            1e-4,
		FlySpeed:               1,
		GrabThreshold:          10,
	}
}

// Validate reports every out of range field.
func (s Settings) Validate() error {
	var err error
	positive := func(name string, v float32) {
		if v <= 0 {
			multierr.AppendInto(&err, errs.Configuration.New("%s must be positive, got %v", name, v))
		}
	}
	positive("rotation_sensitivity", s.RotationSensitivity)
	positive("translation_sensitivity", s.TranslationSensitivity)
	positive("spinning_sensitivity", s.SpinningSensitivity)
	positive("wheel_sensitivity", s.WheelSensitivity)
	positive("spin_epsilon", s.SpinEpsilon)
	positive("fly_speed", s.FlySpeed)
	positive("grab_threshold", s.GrabThreshold)
	if s.DampingFactor <= 0 || s.DampingFactor >= 1 {
		multierr.AppendInto(&err, errs.Configuration.New("damping_factor must be in (0, 1), got %v", s.DampingFactor))
	}
	if err != nil {
		return errs.Configuration.Wrap(err, "interaction settings")
	}
	return nil
}
