package interaction

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/scenekit/pkg/math"
)

// projectOnBall lifts a normalized screen offset onto the unit hemisphere
// facing the viewer. Points outside the unit disk land on its rim.
func projectOnBall(x, y float32) float32 {
	d := 1 - x*x - y*y
	if d <= 0 {
		return 0
	}
	return math32.Sqrt(d)
}

// arcballQuaternion returns the rotation, in camera coordinates, that drags
// the ball point under (px, py) to the one under (x, y). Both are pixel
// positions; (cx, cy) is the projected rotation center.
func arcballQuaternion(px, py, x, y, cx, cy, width, height, sensitivity float32) math.Quat {
	ax := sensitivity * (px - cx) / width
	ay := sensitivity * (cy - py) / height
	bx := sensitivity * (x - cx) / width
	by := sensitivity * (cy - y) / height

	p1 := math.Vec3{X: ax, Y: ay, Z: projectOnBall(ax, ay)}
	p2 := math.Vec3{X: bx, Y: by, Z: projectOnBall(bx, by)}

	axis := p1.Cross(p2)
	l1, l2 := p1.LengthSquared(), p2.LengthSquared()
	if l1 < math.Epsilon || l2 < math.Epsilon {
		return math.QuatIdentity()
	}
	s := math32.Sqrt(axis.LengthSquared() / l1 / l2)
	if s > 1 {
		s = 1
	}
	return math.QuatFromAxisAngle(axis, 2*math32.Asin(s))
}
