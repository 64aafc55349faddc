package config

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/scenekit/pkg/camera"
	"github.com/Faultbox/scenekit/pkg/math"
	"github.com/Faultbox/scenekit/pkg/scene"
)

// Apply configures cam and frames the scene sphere.
func (c CameraConfig) Apply(cam *camera.Camera) error {
	typ, err := c.projection()
	if err != nil {
		return err
	}
	if err := cam.SetSceneRadius(c.SceneRadius); err != nil {
		return err
	}
	cam.SetType(typ)
	cam.SetFieldOfView(c.FieldOfViewDeg * math32.Pi / 180)
	cam.SetSceneCenter(math.Vec3{X: c.SceneCenter[0], Y: c.SceneCenter[1], Z: c.SceneCenter[2]})
	cam.SetZNearCoefficient(c.ZNearCoefficient)
	cam.SetZClippingCoefficient(c.ZClippingCoefficient)
	cam.ShowEntireScene()
	return nil
}

// ApplyTo configures the scene camera, registers the configured profiles
// and activates the starting profile. The scene must have been created
// with the interaction settings of c.
func (c *Config) ApplyTo(s *scene.Scene) error {
	if err := c.Camera.Apply(s.Camera()); err != nil {
		return err
	}
	profiles, err := c.BuildProfiles()
	if err != nil {
		return err
	}
	for _, p := range profiles {
		if err := s.RegisterProfile(p); err != nil {
			return err
		}
	}
	if c.Interaction.Profile != "" {
		return s.SetProfile(c.Interaction.Profile)
	}
	return nil
}
