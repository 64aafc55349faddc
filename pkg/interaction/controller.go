// Package interaction turns pointer gestures into frame motion: arcball
// rotation with damped spinning, translation and zoom scaled to the
// screen, first person flying, and zoom on a screen region. A Controller
// drives either the camera frame or an object frame seen through the
// camera.
package interaction

import (
	"time"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/scenekit/internal/logger"
	"github.com/Faultbox/scenekit/pkg/camera"
	"github.com/Faultbox/scenekit/pkg/frame"
	"github.com/Faultbox/scenekit/pkg/math"
	"github.com/Faultbox/scenekit/pkg/profile"
)

// Role tells a controller whether it moves the camera or an object.
type Role int

const (
	ObjectRole Role = iota
	CameraRole
)

func (r Role) String() string {
	if r == CameraRole {
		return "camera"
	}
	return "object"
}

const (
	// spinWindow is how recent the last drag must be for a release to spin.
	spinWindow = 100 * time.Millisecond
	// minZoomCoef keeps camera zoom usable close to the reference point,
	// as a fraction of the scene radius.
	minZoomCoef = 0.2
	// driveCoef converts the vertical drive offset, in pixels, to a fraction
	// of the fly speed.
	driveCoef = 0.01
)

// Controller applies gestures to one frame. It is not safe for concurrent
// use; all calls happen on the event thread.
type Controller struct {
	frame  *frame.Frame
	camera *camera.Camera
	role   Role
	cfg    Settings
	clock  func() time.Time

	action         profile.MouseAction
	pressX, pressY float32
	prevX, prevY   float32
	lastDrag       time.Time
	pointerSpeed   float32

	spinning bool
	spin     math.Quat

	flyDisp math.Vec3
	flyUp   math.Vec3

	dirFixed   bool
	horizontal bool

	region camera.ScreenRect
}

// NewCameraController returns a controller moving the camera frame.
func NewCameraController(cam *camera.Camera, s Settings) *Controller {
	return newController(cam.Frame(), cam, CameraRole, s)
}

// NewFrameController returns a controller moving f as seen through cam.
func NewFrameController(f *frame.Frame, cam *camera.Camera, s Settings) *Controller {
	return newController(f, cam, ObjectRole, s)
}

func newController(f *frame.Frame, cam *camera.Camera, role Role, s Settings) *Controller {
	return &Controller{
		frame:  f,
		camera: cam,
		role:   role,
		cfg:    s,
		clock:  time.Now,
		spin:   math.QuatIdentity(),
		flyUp:  math.YAxis,
	}
}

// Frame returns the driven frame.
func (c *Controller) Frame() *frame.Frame { return c.frame }

// Camera returns the camera used for screen conversions.
func (c *Controller) Camera() *camera.Camera { return c.camera }

// Role returns the controller role.
func (c *Controller) Role() Role { return c.role }

// Settings returns the current settings.
func (c *Controller) Settings() Settings { return c.cfg }

// SetSettings replaces the settings.
func (c *Controller) SetSettings(s Settings) { c.cfg = s }

// SetClock replaces the time source used for spin detection.
func (c *Controller) SetClock(clock func() time.Time) { c.clock = clock }

// Action returns the gesture in progress, or NoAction.
func (c *Controller) Action() profile.MouseAction { return c.action }

// IsActive reports whether a gesture is in progress.
func (c *Controller) IsActive() bool { return c.action != profile.NoAction }

// FlySpeed returns the first person speed in world units per second.
func (c *Controller) FlySpeed() float32 { return c.cfg.FlySpeed }

// SetFlySpeed sets the first person speed.
func (c *Controller) SetFlySpeed(speed float32) { c.cfg.FlySpeed = speed }

// ScaleRotationSensitivity multiplies the rotation sensitivity by f.
func (c *Controller) ScaleRotationSensitivity(f float32) { c.cfg.RotationSensitivity *= f }

// FlyUpVector returns the world direction used as up while flying.
func (c *Controller) FlyUpVector() math.Vec3 { return c.flyUp }

// SetFlyUpVector sets the fly up direction.
func (c *Controller) SetFlyUpVector(up math.Vec3) { c.flyUp = up.Normalize() }

// IsSpinning reports whether the frame keeps rotating after a release.
func (c *Controller) IsSpinning() bool { return c.spinning }

// SpinningQuaternion returns the rotation applied on the next spin tick.
func (c *Controller) SpinningQuaternion() math.Quat { return c.spin }

// StartSpinning makes q the per tick rotation and starts spinning.
func (c *Controller) StartSpinning(q math.Quat) {
	c.spin = q
	c.spinning = true
}

// StopSpinning stops spinning, keeping the last spinning quaternion.
func (c *Controller) StopSpinning() { c.spinning = false }

// ZoomRegion returns the rectangle selected by a ZoomOnRegion gesture in
// progress.
func (c *Controller) ZoomRegion() (camera.ScreenRect, bool) {
	if c.action != profile.ZoomOnRegion {
		return camera.ScreenRect{}, false
	}
	return c.region.Normalized(), true
}

// GrabsPointer reports whether the frame origin projects within the grab
// threshold of (x, y). Camera controllers never grab.
func (c *Controller) GrabsPointer(x, y float32) bool {
	if c.role == CameraRole {
		return false
	}
	p := c.camera.ProjectedCoordinatesOf(c.frame.Position())
	if p.Z < 0 || p.Z > 1 {
		return false
	}
	dx, dy := p.X-x, p.Y-y
	return dx*dx+dy*dy < c.cfg.GrabThreshold*c.cfg.GrabThreshold
}

// referencePoint is the center of rotations: the arcball reference point
// for the camera, the frame origin otherwise.
func (c *Controller) referencePoint() math.Vec3 {
	if c.role == CameraRole {
		return c.camera.ArcballReferencePoint()
	}
	return c.frame.Position()
}

func (c *Controller) screenSize() (float32, float32) {
	return float32(c.camera.ScreenWidth()), float32(c.camera.ScreenHeight())
}

// Press starts gesture a at pixel (x, y). Spinning stops.
func (c *Controller) Press(a profile.MouseAction, x, y float32) {
	c.StopSpinning()
	c.action = a
	c.pressX, c.pressY = x, y
	c.prevX, c.prevY = x, y
	c.lastDrag = c.clock()
	c.pointerSpeed = 0
	c.dirFixed = false
	c.flyDisp = math.Vec3{}

	switch a {
	case profile.MoveForward:
		c.flyDisp = math.Vec3{Z: -c.cfg.FlySpeed}
	case profile.MoveBackward:
		c.flyDisp = math.Vec3{Z: c.cfg.FlySpeed}
	case profile.ZoomOnRegion:
		c.region = camera.ScreenRect{X: x, Y: y}
	}

	logger.Named("interaction").Debug("gesture started",
		zap.Stringer("role", c.role),
		zap.Stringer("action", a),
		zap.Float32("x", x),
		zap.Float32("y", y))
}

// Drag moves the pointer of the gesture in progress to (x, y).
func (c *Controller) Drag(x, y float32) {
	if c.action == profile.NoAction {
		c.prevX, c.prevY = x, y
		return
	}
	dx, dy := x-c.prevX, y-c.prevY

	switch c.action {
	case profile.Rotate:
		c.arcball(x, y)
	case profile.CadRotate:
		c.cadRotate(dx, dy)
	case profile.ScreenRotate:
		c.screenRotate(x, y)
	case profile.Roll:
		c.roll(dx)
	case profile.Translate:
		c.TranslateByPixels(dx, dy)
	case profile.ScreenTranslate:
		c.screenTranslate(x, y, dx, dy)
	case profile.Zoom:
		c.zoomByPixels(dy)
	case profile.MoveForward, profile.MoveBackward, profile.LookAround:
		c.frame.Rotate(c.pitchYaw(dx, dy))
	case profile.Drive:
		c.frame.Rotate(c.turn(dx))
		c.flyDisp = math.Vec3{Z: -c.cfg.FlySpeed * driveCoef * (c.pressY - y)}
	case profile.ZoomOnRegion:
		c.region.Width = x - c.region.X
		c.region.Height = y - c.region.Y
	}

	now := c.clock()
	elapsed := float32(now.Sub(c.lastDrag)) / float32(time.Millisecond)
	if elapsed < 1 {
		elapsed = 1
	}
	c.pointerSpeed = math32.Sqrt(dx*dx+dy*dy) / elapsed
	c.lastDrag = now
	c.prevX, c.prevY = x, y
}

// Release ends the gesture at (x, y). A fast enough rotation keeps
// spinning; a ZoomOnRegion gesture moves the camera onto the region.
func (c *Controller) Release(x, y float32) {
	a := c.action
	if a == profile.NoAction {
		return
	}
	if x != c.prevX || y != c.prevY {
		c.Drag(x, y)
	}

	switch {
	case a.IsRotation() && a != profile.Roll:
		if c.pointerSpeed >= c.cfg.SpinningSensitivity && c.clock().Sub(c.lastDrag) < spinWindow {
			c.spinning = true
		}
	case a == profile.ZoomOnRegion && c.role == CameraRole:
		c.camera.InterpolateToZoomOnRegion(c.region.Normalized())
	}

	c.action = profile.NoAction
	c.flyDisp = math.Vec3{}

	logger.Named("interaction").Debug("gesture ended",
		zap.Stringer("role", c.role),
		zap.Stringer("action", a),
		zap.Bool("spinning", c.spinning))
}

// Wheel applies a wheel action; positive delta moves towards the scene.
func (c *Controller) Wheel(a profile.MouseAction, delta float32) {
	c.StopSpinning()
	switch a {
	case profile.Zoom, profile.MoveForward:
		c.wheelZoom(delta)
	case profile.MoveBackward:
		c.wheelZoom(-delta)
	case profile.Roll:
		w, _ := c.screenSize()
		c.roll(delta * c.cfg.WheelSensitivity * w)
	}
}

// Tick advances spinning and flying by dt seconds.
func (c *Controller) Tick(dt float32) {
	if c.spinning {
		angle := c.spin.Angle() * c.cfg.DampingFactor
		if angle < c.cfg.SpinEpsilon {
			c.StopSpinning()
		} else {
			c.spin = math.QuatFromAxisAngle(c.spin.Axis(), angle)
			c.applyRotation(c.spin)
		}
	}
	if c.action.IsFirstPerson() && c.flyDisp.LengthSquared() > 0 {
		c.frame.Translate(c.frame.LocalInverseTransformOf(c.flyDisp.Scale(dt)))
	}
}

// applyRotation rotates the frame by q, expressed in its local
// coordinates. The camera turns around the arcball reference point.
func (c *Controller) applyRotation(q math.Quat) {
	if c.role == CameraRole {
		c.frame.RotateAroundPoint(q, c.camera.ArcballReferencePoint())
		return
	}
	c.frame.Rotate(q)
}

// cameraToLocal converts a rotation expressed in camera coordinates into
// the local coordinates of the frame.
func (c *Controller) cameraToLocal(q math.Quat) math.Quat {
	world := c.camera.Orientation().Rotate(q.Axis())
	return math.QuatFromAxisAngle(c.frame.TransformOf(world), q.Angle())
}

func (c *Controller) arcball(x, y float32) {
	center := c.camera.ProjectedCoordinatesOf(c.referencePoint())
	w, h := c.screenSize()
	q := arcballQuaternion(c.prevX, c.prevY, x, y, center.X, center.Y, w, h, c.cfg.RotationSensitivity)
	if c.role == CameraRole {
		q = q.Inverse()
	} else {
		q = c.cameraToLocal(q)
	}
	c.spin = q
	c.applyRotation(q)
}

// cadRotate turns around the world up axis and the camera horizontal axis,
// so the horizon stays level.
func (c *Controller) cadRotate(dx, dy float32) {
	w, h := c.screenSize()
	s := c.cfg.RotationSensitivity * math32.Pi
	yaw := math.QuatFromAxisAngle(c.frame.TransformOf(c.flyUp), -s*dx/w)
	pitch := math.QuatFromAxisAngle(math.XAxis, -s*dy/h)
	q := yaw.Mul(pitch)
	if c.role == ObjectRole {
		q = c.cameraToLocal(q.Inverse())
	}
	c.spin = q
	c.applyRotation(q)
}

func (c *Controller) screenRotate(x, y float32) {
	center := c.camera.ProjectedCoordinatesOf(c.referencePoint())
	prev := math32.Atan2(c.prevY-center.Y, c.prevX-center.X)
	angle := math32.Atan2(y-center.Y, x-center.X) - prev

	var q math.Quat
	if c.role == CameraRole {
		q = math.QuatFromAxisAngle(math.ZAxis, angle)
	} else {
		q = math.QuatFromAxisAngle(c.frame.TransformOf(c.camera.ViewDirection()), angle)
	}
	c.spin = q
	c.applyRotation(q)
}

// roll turns around the view axis by half a turn per screen width.
func (c *Controller) roll(dx float32) {
	w, _ := c.screenSize()
	angle := c.cfg.RotationSensitivity * math32.Pi * dx / w
	if c.role == CameraRole {
		q := math.QuatFromAxisAngle(math.ZAxis, angle)
		c.frame.Rotate(q)
		c.spin = q
		c.flyUp = c.frame.InverseTransformOf(math.YAxis).Normalize()
		return
	}
	q := math.QuatFromAxisAngle(c.frame.TransformOf(c.camera.ViewDirection()), angle)
	c.frame.Rotate(q)
	c.spin = q
}

// TranslateByPixels moves the frame so that it follows a pointer motion
// of (dx, dy) pixels, y pointing down. The camera moves the opposite way
// so the scene follows the pointer.
func (c *Controller) TranslateByPixels(dx, dy float32) {
	ratio := c.camera.PixelWorldRatio(c.referencePoint()) * c.cfg.TranslationSensitivity
	if c.role == CameraRole {
		v := math.Vec3{X: -dx * ratio, Y: dy * ratio}
		c.frame.Translate(c.frame.LocalInverseTransformOf(v))
		return
	}
	v := c.camera.Orientation().Rotate(math.Vec3{X: dx * ratio, Y: -dy * ratio})
	c.frame.Translate(c.toReference(v))
}

// toReference expresses a world vector in the reference frame of the
// driven frame.
func (c *Controller) toReference(v math.Vec3) math.Vec3 {
	if ref := c.frame.ReferenceFrame(); ref != nil {
		return ref.TransformOf(v)
	}
	return v
}

// screenTranslate locks the motion to the dominant axis of the first
// pointer move.
func (c *Controller) screenTranslate(x, y, dx, dy float32) {
	if !c.dirFixed {
		ox, oy := math32.Abs(x-c.pressX), math32.Abs(y-c.pressY)
		if ox == oy {
			return
		}
		c.dirFixed = true
		c.horizontal = ox > oy
	}
	if c.horizontal {
		c.TranslateByPixels(dx, 0)
		return
	}
	c.TranslateByPixels(0, dy)
}

// zoomByPixels moves along the view axis; dragging down brings things
// closer.
func (c *Controller) zoomByPixels(dy float32) {
	_, h := c.screenSize()
	if c.role == CameraRole {
		c.moveCamera(c.zoomCoef() * dy / h)
		return
	}
	dist := c.camera.Position().Sub(c.frame.Position()).Length()
	v := c.camera.Orientation().Rotate(math.Vec3{Z: dist * dy / h})
	c.frame.Translate(c.toReference(v))
}

func (c *Controller) wheelZoom(delta float32) {
	if c.role == CameraRole {
		c.moveCamera(c.zoomCoef() * delta * c.cfg.WheelSensitivity)
		return
	}
	dist := c.camera.Position().Sub(c.frame.Position()).Length()
	v := c.camera.Orientation().Rotate(math.Vec3{Z: dist * delta * c.cfg.WheelSensitivity})
	c.frame.Translate(c.toReference(v))
}

// moveCamera moves the camera forward by d world units.
func (c *Controller) moveCamera(d float32) {
	c.frame.Translate(c.frame.LocalInverseTransformOf(math.Vec3{Z: -d}))
}

func (c *Controller) zoomCoef() float32 {
	return math32.Max(c.camera.DistanceToArcballReferencePoint(), minZoomCoef*c.camera.SceneRadius())
}

// pitchYaw looks around: horizontal motion turns around the fly up vector,
// vertical motion around the local X axis.
func (c *Controller) pitchYaw(dx, dy float32) math.Quat {
	w, h := c.screenSize()
	s := c.cfg.RotationSensitivity
	pitch := math.QuatFromAxisAngle(math.XAxis, -s*dy/h)
	yaw := math.QuatFromAxisAngle(c.frame.TransformOf(c.flyUp), -s*dx/w)
	return yaw.Mul(pitch)
}

func (c *Controller) turn(dx float32) math.Quat {
	w, _ := c.screenSize()
	return math.QuatFromAxisAngle(math.YAxis, -c.cfg.RotationSensitivity*dx/w)
}
