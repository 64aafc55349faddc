// Package camera implements a camera attached to a frame: projection and
// view matrices, frustum culling, screen/world conversions, scene fitting
// and keyframe paths.
//
// The camera looks down the negative Z axis of its frame, with Y up. Screen
// coordinates are in pixels with the origin at the top-left corner.
package camera

import (
	"fmt"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/scenekit/internal/logger"
	"github.com/Faultbox/scenekit/pkg/errs"
	"github.com/Faultbox/scenekit/pkg/frame"
	"github.com/Faultbox/scenekit/pkg/keyframe"
	"github.com/Faultbox/scenekit/pkg/math"
)

// Type is the projection type.
type Type int

const (
	Perspective Type = iota
	Orthographic
)

func (t Type) String() string {
	switch t {
	case Perspective:
		return "PERSPECTIVE"
	case Orthographic:
		return "ORTHOGRAPHIC"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Default intrinsics.
const (
	DefaultFieldOfView          = math32.Pi / 4
	DefaultZNearCoefficient     = 0.005
	DefaultZClippingCoefficient = 1.7320508 // sqrt(3)
	defaultScreenWidth          = 640
	defaultScreenHeight         = 480
)

// Camera is a frame plus projection intrinsics.
type Camera struct {
	frame *frame.Frame

	typ          Type
	fieldOfView  float32
	screenWidth  int
	screenHeight int

	sceneRadius float32
	sceneCenter math.Vec3
	arp         math.Vec3

	// orthoCoef scales the ARP depth into the orthographic half height.
	orthoCoef float32

	zNearCoef     float32
	zClippingCoef float32
	fixedNear     float32
	fixedFar      float32

	// version is bumped whenever an intrinsic changes.
	version uint64

	cacheValid     bool
	cacheVersion   uint64
	cacheStamp     uint64
	view           math.Mat4
	projection     math.Mat4
	planes         [6]Plane
	planesComputed bool

	depth DepthSource

	interpolator *keyframe.Interpolator
	paths        map[int]*keyframe.Interpolator
}

// New returns a perspective camera fitting a unit sphere at the origin.
func New() *Camera {
	c := &Camera{
		frame:         frame.New(),
		typ:           Perspective,
		fieldOfView:   DefaultFieldOfView,
		screenWidth:   defaultScreenWidth,
		screenHeight:  defaultScreenHeight,
		sceneRadius:   1,
		zNearCoef:     DefaultZNearCoefficient,
		zClippingCoef: DefaultZClippingCoefficient,
		paths:         make(map[int]*keyframe.Interpolator),
	}
	c.frame.SetName("camera")
	c.orthoCoef = math32.Tan(c.fieldOfView / 2)
	c.interpolator = keyframe.New(c.frame)
	c.frame.SetPosition(math.Vec3{Z: 1})
	c.ShowEntireScene()
	return c
}

func (c *Camera) modified() { c.version++ }

// Frame returns the camera frame. Moving it moves the camera.
func (c *Camera) Frame() *frame.Frame { return c.frame }

// Type returns the projection type.
func (c *Camera) Type() Type { return c.typ }

// SetType switches the projection. Switching to orthographic keeps the
// apparent size of objects at the arcball reference point.
func (c *Camera) SetType(t Type) {
	if t == c.typ {
		return
	}
	if t == Orthographic {
		c.orthoCoef = math32.Tan(c.fieldOfView / 2)
	}
	c.typ = t
	c.modified()
}

// FieldOfView returns the vertical field of view in radians.
func (c *Camera) FieldOfView() float32 { return c.fieldOfView }

// SetFieldOfView sets the vertical field of view. Values outside (0, Pi)
// are clamped.
func (c *Camera) SetFieldOfView(fov float32) {
	const minFov = 1e-3
	fov = math32.Max(minFov, math32.Min(fov, math32.Pi-minFov))
	c.fieldOfView = fov
	c.orthoCoef = math32.Tan(fov / 2)
	c.modified()
}

// HorizontalFieldOfView returns the horizontal field of view in radians.
func (c *Camera) HorizontalFieldOfView() float32 {
	return 2 * math32.Atan(math32.Tan(c.fieldOfView/2)*c.AspectRatio())
}

// SetHorizontalFieldOfView sets the vertical field of view so that the
// horizontal one matches hfov at the current aspect ratio.
func (c *Camera) SetHorizontalFieldOfView(hfov float32) {
	c.SetFieldOfView(2 * math32.Atan(math32.Tan(hfov/2)/c.AspectRatio()))
}

// ScreenWidth returns the viewport width in pixels.
func (c *Camera) ScreenWidth() int { return c.screenWidth }

// ScreenHeight returns the viewport height in pixels.
func (c *Camera) ScreenHeight() int { return c.screenHeight }

// SetScreenSize sets the viewport size. Non-positive sizes are raised to 1.
func (c *Camera) SetScreenSize(width, height int) {
	c.screenWidth = max(width, 1)
	c.screenHeight = max(height, 1)
	c.modified()
}

// AspectRatio returns width / height.
func (c *Camera) AspectRatio() float32 {
	return float32(c.screenWidth) / float32(c.screenHeight)
}

// SceneRadius returns the radius of the scene bounding sphere.
func (c *Camera) SceneRadius() float32 { return c.sceneRadius }

// SetSceneRadius sets the radius used for clipping planes and fitting.
func (c *Camera) SetSceneRadius(r float32) error {
	if r <= 0 || math32.IsNaN(r) || math32.IsInf(r, 0) {
		return errs.Configuration.New("scene radius must be positive, got %v", r)
	}
	c.sceneRadius = r
	c.modified()
	return nil
}

// SceneCenter returns the center of the scene bounding sphere.
func (c *Camera) SceneCenter() math.Vec3 { return c.sceneCenter }

// SetSceneCenter sets the scene center and moves the arcball reference
// point there.
func (c *Camera) SetSceneCenter(center math.Vec3) {
	c.sceneCenter = center
	c.SetArcballReferencePoint(center)
	c.modified()
}

// SetSceneBoundingBox sets center and radius from an axis-aligned box.
func (c *Camera) SetSceneBoundingBox(min, max math.Vec3) error {
	if err := c.SetSceneRadius(0.5 * max.Sub(min).Length()); err != nil {
		return err
	}
	c.SetSceneCenter(min.Add(max).Scale(0.5))
	return nil
}

// ArcballReferencePoint returns the world point rotations pivot around.
func (c *Camera) ArcballReferencePoint() math.Vec3 { return c.arp }

// SetArcballReferencePoint moves the pivot. In orthographic mode the view
// size is rescaled so the picture does not jump.
func (c *Camera) SetArcballReferencePoint(p math.Vec3) {
	prev := math32.Abs(c.frame.CoordinatesOf(c.arp).Z)
	c.arp = p
	next := math32.Abs(c.frame.CoordinatesOf(c.arp).Z)
	if prev > math.Epsilon && next > math.Epsilon {
		c.orthoCoef *= prev / next
	}
	c.modified()
}

// ResetArcballReferencePoint moves the pivot back to the scene center.
func (c *Camera) ResetArcballReferencePoint() {
	c.SetArcballReferencePoint(c.sceneCenter)
}

// ZNearCoefficient returns the near plane coefficient.
func (c *Camera) ZNearCoefficient() float32 { return c.zNearCoef }

// SetZNearCoefficient sets the lower bound of zNear as a fraction of the
// scene radius.
func (c *Camera) SetZNearCoefficient(coef float32) {
	c.zNearCoef = coef
	c.modified()
}

// ZClippingCoefficient returns the clipping coefficient.
func (c *Camera) ZClippingCoefficient() float32 { return c.zClippingCoef }

// SetZClippingCoefficient sets how many scene radii the clipping planes
// stay away from the scene center.
func (c *Camera) SetZClippingCoefficient(coef float32) {
	c.zClippingCoef = coef
	c.modified()
}

// SetFixedClippingPlanes pins zNear and zFar. Passing zeros restores the
// automatic planes.
func (c *Camera) SetFixedClippingPlanes(near, far float32) error {
	if near != 0 || far != 0 {
		if near <= 0 || far <= near {
			return errs.Configuration.New("invalid clipping planes near=%v far=%v", near, far)
		}
	}
	c.fixedNear, c.fixedFar = near, far
	c.modified()
	return nil
}

// DistanceToSceneCenter returns the depth of the scene center in camera space.
func (c *Camera) DistanceToSceneCenter() float32 {
	return math32.Abs(c.frame.CoordinatesOf(c.sceneCenter).Z)
}

// DistanceToArcballReferencePoint returns the depth of the ARP in camera space.
func (c *Camera) DistanceToArcballReferencePoint() float32 {
	return math32.Abs(c.frame.CoordinatesOf(c.arp).Z)
}

// ZNear returns the near clipping distance. Unless fixed, it stays
// zClippingCoefficient scene radii in front of the scene center, but never
// closer than zNearCoefficient of that.
func (c *Camera) ZNear() float32 {
	if c.fixedNear > 0 {
		return c.fixedNear
	}
	z := c.DistanceToSceneCenter() - c.zClippingCoef*c.sceneRadius
	zMin := c.zNearCoef * c.zClippingCoef * c.sceneRadius
	if z < zMin {
		if c.typ == Orthographic {
			return 0
		}
		return zMin
	}
	return z
}

// ZFar returns the far clipping distance.
func (c *Camera) ZFar() float32 {
	if c.fixedFar > 0 {
		return c.fixedFar
	}
	return c.DistanceToSceneCenter() + c.zClippingCoef*c.sceneRadius
}

// OrthoHalfSize returns the half width and half height of the orthographic
// view volume. They grow with the depth of the arcball reference point.
func (c *Camera) OrthoHalfSize() (halfWidth, halfHeight float32) {
	dist := c.orthoCoef * c.DistanceToArcballReferencePoint()
	if floor := c.zNearCoef * c.sceneRadius; dist < floor {
		dist = floor
	}
	aspect := c.AspectRatio()
	if aspect < 1 {
		return dist, dist / aspect
	}
	return dist * aspect, dist
}

// Position returns the camera position in world space.
func (c *Camera) Position() math.Vec3 { return c.frame.Position() }

// SetPosition moves the camera, ignoring the frame constraint.
func (c *Camera) SetPosition(p math.Vec3) { c.frame.SetPosition(p) }

// Orientation returns the world orientation of the camera.
func (c *Camera) Orientation() math.Quat { return c.frame.Orientation() }

// SetOrientation sets the world orientation, ignoring the frame constraint.
func (c *Camera) SetOrientation(q math.Quat) { c.frame.SetOrientation(q) }

// ViewDirection returns the normalized world direction the camera looks at.
func (c *Camera) ViewDirection() math.Vec3 {
	return c.frame.InverseTransformOf(math.Vec3{Z: -1}).Normalize()
}

// UpVector returns the normalized world up direction of the camera.
func (c *Camera) UpVector() math.Vec3 {
	return c.frame.InverseTransformOf(math.YAxis).Normalize()
}

// RightVector returns the normalized world right direction of the camera.
func (c *Camera) RightVector() math.Vec3 {
	return c.frame.InverseTransformOf(math.XAxis).Normalize()
}

// SetViewDirection turns the camera to look along dir, keeping the up
// vector as close as possible. The frame constraint applies.
func (c *Camera) SetViewDirection(dir math.Vec3) {
	if dir.LengthSquared() < 1e-10 {
		return
	}
	x := dir.Cross(c.UpVector())
	if x.LengthSquared() < 1e-10 {
		// looking along the up vector: keep the current right vector
		x = c.RightVector()
	}
	c.frame.SetOrientationWithConstraint(fromBasis(x, x.Cross(dir), dir.Neg()))
}

// fromBasis returns the rotation mapping the unit axes onto x, y and z.
func fromBasis(x, y, z math.Vec3) math.Quat {
	x, y, z = x.Normalize(), y.Normalize(), z.Normalize()
	return math.QuatFromMat3([9]float32{
		x.X, x.Y, x.Z,
		y.X, y.Y, y.Z,
		z.X, z.Y, z.Z,
	})
}

// LookAt turns the camera towards target.
func (c *Camera) LookAt(target math.Vec3) {
	c.SetViewDirection(target.Sub(c.Position()))
}

// LookFrom places the camera at eye looking at target with the given up
// direction, ignoring the frame constraint.
func (c *Camera) LookFrom(eye, target, up math.Vec3) {
	dir := target.Sub(eye)
	if dir.LengthSquared() < 1e-10 {
		c.frame.SetPosition(eye)
		return
	}
	x := dir.Cross(up)
	if x.LengthSquared() < 1e-10 {
		x = c.RightVector()
	}
	c.frame.SetOrientation(fromBasis(x, x.Cross(dir), dir.Neg()))
	c.frame.SetPosition(eye)
}

// SetUpVector rolls the camera so its up vector matches up. Unless noMove
// is set, the camera also rotates around the arcball reference point so
// the point stays at the same place on screen.
func (c *Camera) SetUpVector(up math.Vec3, noMove bool) {
	q := math.QuatFromRotationArc(math.YAxis, c.frame.TransformOf(up))
	if !noMove {
		local := c.frame.CoordinatesOf(c.arp)
		c.frame.SetPosition(c.arp.Sub(c.frame.Orientation().Mul(q).Rotate(local)))
	}
	c.frame.Rotate(q)
}

// AlignWithFrame aligns the camera axes with the closest axes of f, or
// with the world axes when f is nil. With move set the camera also turns
// around the arcball reference point.
func (c *Camera) AlignWithFrame(f *frame.Frame, move bool) {
	if !move {
		c.frame.AlignWithFrame(f, false)
		return
	}
	local := c.frame.CoordinatesOf(c.arp)
	c.frame.AlignWithFrame(f, false)
	c.frame.SetPosition(c.arp.Sub(c.frame.Orientation().Rotate(local)))
}

// ViewMatrix returns the world to camera transform.
func (c *Camera) ViewMatrix() math.Mat4 {
	c.refresh()
	return c.view
}

// ProjectionMatrix returns the camera to clip space transform.
func (c *Camera) ProjectionMatrix() math.Mat4 {
	c.refresh()
	return c.projection
}

// ViewProjectionMatrix returns projection * view.
func (c *Camera) ViewProjectionMatrix() math.Mat4 {
	c.refresh()
	return c.projection.Mul(c.view)
}

// refresh recomputes the cached matrices when the pose or intrinsics changed.
func (c *Camera) refresh() {
	stamp := c.frame.Stamp()
	if c.cacheValid && c.cacheStamp == stamp && c.cacheVersion == c.version {
		return
	}

	if view, ok := c.frame.WorldMatrix().InverseChecked(); ok {
		c.view = view
	} else {
		logger.Named("camera").Debug("camera frame is singular, keeping previous view matrix")
		if !c.cacheValid {
			c.view = math.Identity()
		}
	}

	near, far := c.ZNear(), c.ZFar()
	switch c.typ {
	case Orthographic:
		w, h := c.OrthoHalfSize()
		c.projection = math.Ortho(-w, w, -h, h, near, far)
	default:
		c.projection = math.Perspective(c.fieldOfView, c.AspectRatio(), near, far)
	}

	c.cacheValid = true
	c.cacheStamp = stamp
	c.cacheVersion = c.version
	c.planesComputed = false
}

// PixelWorldRatio returns the world size of one pixel at the depth of p.
func (c *Camera) PixelWorldRatio(p math.Vec3) float32 {
	if c.typ == Orthographic {
		_, h := c.OrthoHalfSize()
		return 2 * h / float32(c.screenHeight)
	}
	depth := math32.Abs(c.frame.CoordinatesOf(p).Z)
	return 2 * depth * math32.Tan(c.fieldOfView/2) / float32(c.screenHeight)
}

func (c *Camera) logFields() []zap.Field {
	return []zap.Field{
		zap.Stringer("type", c.typ),
		zap.Float32("fov", c.fieldOfView),
		zap.Float32("radius", c.sceneRadius),
		zap.Any("position", c.Position()),
	}
}
