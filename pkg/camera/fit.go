package camera

import (
	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/scenekit/internal/logger"
	"github.com/Faultbox/scenekit/pkg/frame"
	"github.com/Faultbox/scenekit/pkg/keyframe"
	"github.com/Faultbox/scenekit/pkg/math"
)

// DefaultInterpolationDuration is the length in seconds of the transitions
// started by the InterpolateTo family.
const DefaultInterpolationDuration = 1

// zoomOnPixelCoef is the fraction of the distance to the picked point the
// camera keeps after a zoom on pixel.
const zoomOnPixelCoef = 0.1

// FitSphere moves the camera along its view direction so the sphere fills
// the view. The orientation is unchanged and the frame constraint applies.
func (c *Camera) FitSphere(center math.Vec3, radius float32) {
	vd := c.ViewDirection()

	var distance float32
	switch c.typ {
	case Orthographic:
		distance = center.Sub(c.arp).Dot(vd) + radius/c.orthoCoef
	default:
		yview := radius / math32.Sin(c.fieldOfView/2)
		xview := radius / math32.Sin(c.HorizontalFieldOfView()/2)
		distance = math32.Max(xview, yview)
	}

	c.frame.SetPositionWithConstraint(center.Sub(vd.Scale(distance)))
	logger.Named("camera").Debug("fit sphere",
		append(c.logFields(), zap.Float32("distance", distance))...)
}

// ShowEntireScene fits the scene bounding sphere.
func (c *Camera) ShowEntireScene() {
	c.FitSphere(c.sceneCenter, c.sceneRadius)
}

// FitBoundingBox fits the sphere circumscribing half of the box's largest
// extent around its center.
func (c *Camera) FitBoundingBox(min, max math.Vec3) {
	size := max.Sub(min)
	diameter := math32.Max(math32.Abs(size.Y), math32.Abs(size.X))
	diameter = math32.Max(math32.Abs(size.Z), diameter)
	c.FitSphere(min.Add(max).Scale(0.5), 0.5*diameter)
}

// ScreenRect is a pixel rectangle with its origin at the top-left corner.
type ScreenRect struct {
	X, Y          float32
	Width, Height float32
}

// Center returns the rectangle center.
func (r ScreenRect) Center() (float32, float32) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Normalized returns the rectangle with non-negative width and height.
func (r ScreenRect) Normalized() ScreenRect {
	if r.Width < 0 {
		r.X += r.Width
		r.Width = -r.Width
	}
	if r.Height < 0 {
		r.Y += r.Height
		r.Height = -r.Height
	}
	return r
}

// FitScreenRegion moves the camera so the pixel rectangle, taken on the
// plane through the scene center, fills the view. Empty rectangles are
// ignored.
func (c *Camera) FitScreenRegion(rect ScreenRect) {
	rect = rect.Normalized()
	if rect.Width < 1 || rect.Height < 1 {
		return
	}

	vd := c.ViewDirection()
	distToPlane := c.DistanceToSceneCenter()
	onPlane := func(x, y float32) math.Vec3 {
		ray := c.ClickRay(x, y)
		if c.typ == Orthographic {
			// the ray origin already sits on the camera plane
			return ray.At(distToPlane)
		}
		return ray.At(distToPlane / ray.Direction.Dot(vd))
	}

	cx, cy := rect.Center()
	newCenter := onPlane(cx, cy)
	pointX := onPlane(rect.X, cy)
	pointY := onPlane(cx, rect.Y)

	var distance float32
	switch c.typ {
	case Orthographic:
		dist := newCenter.Sub(c.arp).Dot(vd)
		aspect := c.AspectRatio()
		distX := pointX.Distance(newCenter) / c.orthoCoef
		distY := pointY.Distance(newCenter) / c.orthoCoef
		if aspect < 1 {
			distY *= aspect
		} else {
			distX /= aspect
		}
		distance = dist + math32.Max(distX, distY)
	default:
		distX := pointX.Distance(newCenter) / math32.Sin(c.HorizontalFieldOfView()/2)
		distY := pointY.Distance(newCenter) / math32.Sin(c.fieldOfView/2)
		distance = math32.Max(distX, distY)
	}

	c.frame.SetPositionWithConstraint(newCenter.Sub(vd.Scale(distance)))
}

// CenterScene moves the camera sideways so the scene center is at the
// center of the screen.
func (c *Camera) CenterScene() {
	c.frame.ProjectOnLine(c.sceneCenter, c.ViewDirection())
}

// Interpolator returns the interpolator used by the InterpolateTo family.
func (c *Camera) Interpolator() *keyframe.Interpolator { return c.interpolator }

// InterpolateTo smoothly moves the camera to target over duration seconds.
// A non-positive duration jumps there immediately. Transitions advance in
// Tick.
func (c *Camera) InterpolateTo(target frame.Pose, duration float32) {
	c.interpolator.Stop()
	c.interpolator.Clear()

	if duration <= 0 {
		c.frame.SetPose(target)
		return
	}

	c.interpolator.AddKeyFrameAuto(c.frame.Pose())
	// keyframe times are always increasing here
	_ = c.interpolator.AddKeyFrame(target, duration)
	_ = c.interpolator.Start()
	logger.Named("camera").Debug("interpolation started",
		zap.Float32("duration", duration), zap.Any("target", target.Position))
}

// InterpolateToFitScene smoothly moves the camera to the ShowEntireScene pose.
func (c *Camera) InterpolateToFitScene() {
	start := c.frame.Pose()
	c.ShowEntireScene()
	target := c.frame.Pose()
	c.frame.SetPose(start)
	c.InterpolateTo(target, DefaultInterpolationDuration)
}

// InterpolateToZoomOnRegion smoothly moves the camera to the
// FitScreenRegion pose for rect.
func (c *Camera) InterpolateToZoomOnRegion(rect ScreenRect) {
	start := c.frame.Pose()
	c.FitScreenRegion(rect)
	target := c.frame.Pose()
	c.frame.SetPose(start)
	c.InterpolateTo(target, DefaultInterpolationDuration)
}

// InterpolateToZoomOnPixel moves the camera towards the point under pixel
// (x, y), keeping its orientation. It reports whether a point was found.
func (c *Camera) InterpolateToZoomOnPixel(x, y float32) bool {
	target, ok := c.PointUnderPixel(x, y)
	if !ok {
		return false
	}
	pose := c.frame.Pose()
	pose.Position = c.Position().Scale(zoomOnPixelCoef).Add(target.Scale(1 - zoomOnPixelCoef))
	c.InterpolateTo(pose, DefaultInterpolationDuration)
	return true
}

// IsInterpolating reports whether an InterpolateTo transition is running.
func (c *Camera) IsInterpolating() bool { return c.interpolator.IsRunning() }

// StopInterpolations stops the running transition and every playing path.
func (c *Camera) StopInterpolations() {
	c.interpolator.Stop()
	for _, p := range c.paths {
		p.Stop()
	}
}
