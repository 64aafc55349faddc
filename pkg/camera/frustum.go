package camera

import (
	"github.com/Faultbox/scenekit/pkg/math"
)

// Plane is the plane Normal·p + D = 0. Normal has unit length and points
// out of the frustum, so Distance is positive outside.
type Plane struct {
	Normal math.Vec3
	D      float32
}

// Distance returns the signed distance from p to the plane.
func (p Plane) Distance(v math.Vec3) float32 {
	return p.Normal.Dot(v) + p.D
}

// Frustum plane indices.
const (
	PlaneLeft = iota
	PlaneRight
	PlaneBottom
	PlaneTop
	PlaneNear
	PlaneFar
)

// Visibility classifies a bounding volume against the frustum.
type Visibility int

const (
	Invisible Visibility = iota
	SemiVisible
	Visible
)

func (v Visibility) String() string {
	switch v {
	case Visible:
		return "VISIBLE"
	case SemiVisible:
		return "SEMIVISIBLE"
	default:
		return "INVISIBLE"
	}
}

// FrustumPlanes returns the six frustum planes in world space, in the
// order left, right, bottom, top, near, far.
func (c *Camera) FrustumPlanes() [6]Plane {
	c.refresh()
	if !c.planesComputed {
		c.planes = extractPlanes(c.projection.Mul(c.view))
		c.planesComputed = true
	}
	return c.planes
}

// extractPlanes applies the Gribb/Hartmann method to a column-major
// view-projection matrix. Element (row, col) is m[col*4+row].
func extractPlanes(m math.Mat4) [6]Plane {
	row := func(r int) [4]float32 {
		return [4]float32{m[r], m[4+r], m[8+r], m[12+r]}
	}
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)

	combos := [6]struct {
		r    [4]float32
		sign float32
	}{
		{r0, 1}, {r0, -1},
		{r1, 1}, {r1, -1},
		{r2, 1}, {r2, -1},
	}

	var planes [6]Plane
	for i, cmb := range combos {
		// r3 ± r gives an inward plane; negate it to point outwards.
		a := -(r3[0] + cmb.sign*cmb.r[0])
		b := -(r3[1] + cmb.sign*cmb.r[1])
		cc := -(r3[2] + cmb.sign*cmb.r[2])
		d := -(r3[3] + cmb.sign*cmb.r[3])

		n := math.Vec3{X: a, Y: b, Z: cc}
		if l := n.Length(); l > 0 {
			n = n.Scale(1 / l)
			d /= l
		}
		planes[i] = Plane{Normal: n, D: d}
	}
	return planes
}

// PointIsVisible reports whether p is inside the frustum.
func (c *Camera) PointIsVisible(p math.Vec3) bool {
	for _, pl := range c.FrustumPlanes() {
		if pl.Distance(p) > 0 {
			return false
		}
	}
	return true
}

// SphereVisibility classifies a sphere. A sphere entirely outside one
// plane is Invisible; one inside all planes is Visible. Anything else is
// SemiVisible, which may include spheres that are in fact invisible near
// frustum corners.
func (c *Camera) SphereVisibility(center math.Vec3, radius float32) Visibility {
	allInside := true
	for _, pl := range c.FrustumPlanes() {
		d := pl.Distance(center)
		if d > radius {
			return Invisible
		}
		if d > -radius {
			allInside = false
		}
	}
	if allInside {
		return Visible
	}
	return SemiVisible
}

// BoxVisibility classifies an axis-aligned box given by its corners.
func (c *Camera) BoxVisibility(min, max math.Vec3) Visibility {
	allInside := true
	for _, pl := range c.FrustumPlanes() {
		outside := 0
		for i := 0; i < 8; i++ {
			corner := math.Vec3{X: min.X, Y: min.Y, Z: min.Z}
			if i&1 != 0 {
				corner.X = max.X
			}
			if i&2 != 0 {
				corner.Y = max.Y
			}
			if i&4 != 0 {
				corner.Z = max.Z
			}
			if pl.Distance(corner) > 0 {
				outside++
			}
		}
		if outside == 8 {
			return Invisible
		}
		if outside > 0 {
			allInside = false
		}
	}
	if allInside {
		return Visible
	}
	return SemiVisible
}
