package interaction

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/scenekit/pkg/camera"
	"github.com/Faultbox/scenekit/pkg/frame"
	"github.com/Faultbox/scenekit/pkg/math"
	"github.com/Faultbox/scenekit/pkg/profile"
)

// Avatar tracking defaults. Distances are fractions of the scene radius.
const (
	DefaultInclination    = 0.85
	defaultTrackingCoef   = 0.5
	minTrackingCoef       = 0.05
	maxTrackingCoef       = 5
	inclinationLimit      = math32.Pi/2 - 0.01
	minimumTrackingLength = 1e-3
)

// AvatarFrame is an object frame followed by a third person camera. The
// camera sits trackingDistance away, behind the avatar (its local +Z),
// raised by inclination and turned around the avatar up axis by azimuth.
type AvatarFrame struct {
	*Controller

	azimuth     float32
	inclination float32
	distance    float32
	minDistance float32
	maxDistance float32
}

// NewAvatarFrame returns an avatar driving f, with tracking distances
// scaled to the scene radius of cam.
func NewAvatarFrame(f *frame.Frame, cam *camera.Camera, s Settings) *AvatarFrame {
	r := cam.SceneRadius()
	return &AvatarFrame{
		Controller:  NewFrameController(f, cam, s),
		inclination: DefaultInclination,
		distance:    defaultTrackingCoef * r,
		minDistance: math32.Max(minTrackingCoef*r, minimumTrackingLength),
		maxDistance: maxTrackingCoef * r,
	}
}

// Azimuth returns the camera angle around the avatar up axis, in [-Pi, Pi].
func (a *AvatarFrame) Azimuth() float32 { return a.azimuth }

// SetAzimuth sets the azimuth, wrapped into [-Pi, Pi].
func (a *AvatarFrame) SetAzimuth(angle float32) {
	angle = math32.Mod(angle+math32.Pi, 2*math32.Pi)
	if angle < 0 {
		angle += 2 * math32.Pi
	}
	a.azimuth = angle - math32.Pi
}

// Inclination returns the camera elevation angle.
func (a *AvatarFrame) Inclination() float32 { return a.inclination }

// SetInclination sets the elevation, kept short of the poles.
func (a *AvatarFrame) SetInclination(angle float32) {
	a.inclination = math.Clamp(angle, -inclinationLimit, inclinationLimit)
}

// TrackingDistance returns the camera distance to the avatar.
func (a *AvatarFrame) TrackingDistance() float32 { return a.distance }

// SetTrackingDistance sets the camera distance within its limits.
func (a *AvatarFrame) SetTrackingDistance(d float32) {
	a.distance = math.Clamp(d, a.minDistance, a.maxDistance)
}

// SetTrackingLimits sets the allowed tracking distance range.
func (a *AvatarFrame) SetTrackingLimits(min, max float32) {
	if min <= 0 || max < min {
		return
	}
	a.minDistance, a.maxDistance = min, max
	a.SetTrackingDistance(a.distance)
}

// CameraPosition returns the world position of the tracking camera.
func (a *AvatarFrame) CameraPosition() math.Vec3 {
	horizontal := a.distance * math32.Cos(a.inclination)
	offset := math.Vec3{
		X: horizontal * math32.Sin(a.azimuth),
		Y: a.distance * math32.Sin(a.inclination),
		Z: horizontal * math32.Cos(a.azimuth),
	}
	return a.frame.Position().Add(a.frame.Orientation().Rotate(offset))
}

// UpVector returns the world up direction of the avatar.
func (a *AvatarFrame) UpVector() math.Vec3 {
	return a.frame.Orientation().Rotate(math.YAxis)
}

// Target returns the point the tracking camera looks at.
func (a *AvatarFrame) Target() math.Vec3 { return a.frame.Position() }

// CameraPose returns the pose the camera takes when tracking the avatar.
func (a *AvatarFrame) CameraPose() frame.Pose {
	cam := frame.New()
	eye, target := a.CameraPosition(), a.Target()
	cam.SetPosition(eye)
	dir := target.Sub(eye).Normalize()
	x := dir.Cross(a.UpVector())
	if x.LengthSquared() < math.Epsilon {
		x = a.frame.Orientation().Rotate(math.XAxis)
	}
	x = x.Normalize()
	y := x.Cross(dir)
	cam.SetOrientation(math.QuatFromMat3([9]float32{
		x.X, x.Y, x.Z,
		y.X, y.Y, y.Z,
		-dir.X, -dir.Y, -dir.Z,
	}))
	return cam.Pose()
}

// Wheel zooms by changing the tracking distance; other actions move the
// avatar itself.
func (a *AvatarFrame) Wheel(action profile.MouseAction, delta float32) {
	if action != profile.Zoom {
		a.Controller.Wheel(action, delta)
		return
	}
	a.SetTrackingDistance(a.distance - delta*a.distance*a.cfg.WheelSensitivity)
}
