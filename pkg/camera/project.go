package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/joomcode/errorx"
	"go.uber.org/zap"

	"github.com/Faultbox/scenekit/internal/logger"
	"github.com/Faultbox/scenekit/pkg/errs"
	"github.com/Faultbox/scenekit/pkg/math"
)

// singularDeterminant is the smallest |det(projection * view)| accepted
// when unprojecting.
const singularDeterminant = 1e-12

func toMGL(m math.Mat4) mgl32.Mat4 { return mgl32.Mat4(m) }

// ProjectedCoordinatesOf maps a world point to screen coordinates: x and y
// in pixels from the top-left corner, z the depth in [0, 1] between the
// near and far planes.
func (c *Camera) ProjectedCoordinatesOf(p math.Vec3) math.Vec3 {
	c.refresh()
	win := mgl32.Project(mgl32.Vec3{p.X, p.Y, p.Z}, toMGL(c.view), toMGL(c.projection),
		0, 0, c.screenWidth, c.screenHeight)
	return math.Vec3{X: win[0], Y: float32(c.screenHeight) - win[1], Z: win[2]}
}

// UnprojectedCoordinatesOf is the inverse of ProjectedCoordinatesOf. It
// returns a geometry error when the view-projection matrix is singular.
func (c *Camera) UnprojectedCoordinatesOf(win math.Vec3) (math.Vec3, error) {
	c.refresh()
	view, proj := toMGL(c.view), toMGL(c.projection)

	if det := proj.Mul4(view).Det(); math32.Abs(det) < singularDeterminant {
		logger.Named("camera").Debug("unproject through singular matrix", zap.Float32("det", det))
		return math.Vec3{}, errs.Geometry.New("view-projection matrix is singular (det=%g)", det)
	}

	obj, err := mgl32.UnProject(mgl32.Vec3{win.X, float32(c.screenHeight) - win.Y, win.Z},
		view, proj, 0, 0, c.screenWidth, c.screenHeight)
	if err != nil {
		return math.Vec3{}, errs.Geometry.Wrap(err, "unproject")
	}
	return math.Vec3{X: obj[0], Y: obj[1], Z: obj[2]}, nil
}

// Ray is a half line with a normalized direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// IntersectPlane intersects the ray with the plane through point with the
// given normal. It fails for parallel planes and planes behind the origin.
func (r Ray) IntersectPlane(point, normal math.Vec3) (math.Vec3, bool) {
	denom := r.Direction.Dot(normal)
	if math32.Abs(denom) < 1e-6 {
		return math.Vec3{}, false
	}
	t := point.Sub(r.Origin).Dot(normal) / denom
	if t < 0 {
		return math.Vec3{}, false
	}
	return r.At(t), true
}

// IntersectBox tests the ray against an axis-aligned box with the slab
// method. It returns the entry distance, or the exit distance when the
// origin is inside the box.
func (r Ray) IntersectBox(min, max math.Vec3) (float32, bool) {
	tmin := float32(-math32.MaxFloat32)
	tmax := float32(math32.MaxFloat32)

	origin := [3]float32{r.Origin.X, r.Origin.Y, r.Origin.Z}
	dir := [3]float32{r.Direction.X, r.Direction.Y, r.Direction.Z}
	lo := [3]float32{min.X, min.Y, min.Z}
	hi := [3]float32{max.X, max.Y, max.Z}

	for i := 0; i < 3; i++ {
		if dir[i] == 0 {
			if origin[i] < lo[i] || origin[i] > hi[i] {
				return 0, false
			}
			continue
		}
		t1 := (lo[i] - origin[i]) / dir[i]
		t2 := (hi[i] - origin[i]) / dir[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math32.Max(tmin, t1)
		tmax = math32.Min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}

	if tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// ClickRay returns the world ray under pixel (x, y). Perspective rays start
// at the camera position; orthographic rays start on the camera plane and
// run along the view direction.
func (c *Camera) ClickRay(x, y float32) Ray {
	// pixel to [-1, 1], y up
	nx := 2*x/float32(c.screenWidth) - 1
	ny := 1 - 2*y/float32(c.screenHeight)

	if c.typ == Orthographic {
		w, h := c.OrthoHalfSize()
		return Ray{
			Origin:    c.frame.InverseCoordinatesOf(math.Vec3{X: nx * w, Y: ny * h}),
			Direction: c.ViewDirection(),
		}
	}

	tanHalf := math32.Tan(c.fieldOfView / 2)
	local := math.Vec3{X: nx * tanHalf * c.AspectRatio(), Y: ny * tanHalf, Z: -1}
	return Ray{
		Origin:    c.Position(),
		Direction: c.frame.InverseTransformOf(local).Normalize(),
	}
}

// DepthSource reports the normalized depth in [0, 1] stored for a pixel,
// typically read back from the depth buffer. ok is false for background
// pixels.
type DepthSource interface {
	DepthAt(x, y int) (depth float32, ok bool)
}

// SetDepthSource installs the source used by PointUnderPixel. With no
// source, pixels are intersected with the plane through the scene center
// facing the camera.
func (c *Camera) SetDepthSource(ds DepthSource) { c.depth = ds }

// PointUnderPixel returns the world point seen at pixel (x, y).
func (c *Camera) PointUnderPixel(x, y float32) (math.Vec3, bool) {
	if c.depth != nil {
		d, ok := c.depth.DepthAt(int(x), int(y))
		if !ok || d >= 1 {
			return math.Vec3{}, false
		}
		p, err := c.UnprojectedCoordinatesOf(math.Vec3{X: x, Y: y, Z: d})
		if err != nil {
			logger.Named("camera").Debug("point under pixel", zap.Error(errorx.Decorate(err, "pixel (%v, %v)", x, y)))
			return math.Vec3{}, false
		}
		return p, true
	}
	return c.ClickRay(x, y).IntersectPlane(c.sceneCenter, c.ViewDirection())
}
