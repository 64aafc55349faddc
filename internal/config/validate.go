package config

import (
	"strings"

	"go.uber.org/multierr"

	"github.com/Faultbox/scenekit/pkg/camera"
	"github.com/Faultbox/scenekit/pkg/errs"
	"github.com/Faultbox/scenekit/pkg/profile"
)

var logLevels = map[string]bool{"": true, "debug": true, "info": true, "warn": true, "error": true}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var all error
	fail := func(format string, args ...any) {
		multierr.AppendInto(&all, errs.Configuration.New(format, args...))
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		fail("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.FPSLimit < 0 {
		fail("fps_limit must not be negative, got %d", c.Window.FPSLimit)
	}

	if _, err := c.Camera.projection(); err != nil {
		multierr.AppendInto(&all, err)
	}
	if c.Camera.FieldOfViewDeg <= 0 || c.Camera.FieldOfViewDeg >= 180 {
		fail("field_of_view_deg must be in (0, 180), got %v", c.Camera.FieldOfViewDeg)
	}
	if c.Camera.SceneRadius <= 0 {
		fail("scene_radius must be positive, got %v", c.Camera.SceneRadius)
	}
	if c.Camera.ZNearCoefficient <= 0 {
		fail("z_near_coefficient must be positive, got %v", c.Camera.ZNearCoefficient)
	}
	if c.Camera.ZClippingCoefficient <= 0 {
		fail("z_clipping_coefficient must be positive, got %v", c.Camera.ZClippingCoefficient)
	}

	multierr.AppendInto(&all, c.Interaction.Settings.Validate())

	names := map[string]bool{}
	for _, m := range []profile.Mode{profile.Arcball, profile.WheeledArcball, profile.CAD,
		profile.FirstPerson, profile.ThirdPerson} {
		names[m.String()] = true
	}
	for _, t := range c.Profiles {
		if names[t.Name] {
			fail("profile %q is defined twice", t.Name)
		}
		names[t.Name] = true
		if _, err := profile.FromTables(t); err != nil {
			multierr.AppendInto(&all, err)
		}
	}
	if c.Interaction.Profile != "" && !names[c.Interaction.Profile] {
		fail("unknown starting profile %q", c.Interaction.Profile)
	}

	if !logLevels[strings.ToLower(c.Logging.Level)] {
		fail("unknown log level %q", c.Logging.Level)
	}

	if all != nil {
		return errs.Configuration.Wrap(all, "invalid configuration")
	}
	return nil
}

// projection parses the camera type.
func (c CameraConfig) projection() (camera.Type, error) {
	switch strings.ToLower(c.Type) {
	case "", "perspective":
		return camera.Perspective, nil
	case "orthographic", "ortho":
		return camera.Orthographic, nil
	default:
		return camera.Perspective, errs.Configuration.New("unknown camera type %q", c.Type)
	}
}
