package frame

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/scenekit/pkg/math"
)

// Pose is a world-space snapshot of a frame.
type Pose struct {
	Position    math.Vec3
	Orientation math.Quat
	Magnitude   math.Vec3
}

// PoseOf returns a pose with unit magnitude.
func PoseOf(position math.Vec3, orientation math.Quat) Pose {
	return Pose{
		Position:    position,
		Orientation: orientation.Normalize(),
		Magnitude:   math.Vec3{X: 1, Y: 1, Z: 1},
	}
}

// Pose returns the current world pose.
func (f *Frame) Pose() Pose {
	return Pose{
		Position:    f.Position(),
		Orientation: f.Orientation(),
		Magnitude:   f.Magnitude(),
	}
}

// SetPose moves the frame to p, ignoring the constraint. A zero magnitude
// leaves the scaling unchanged.
func (f *Frame) SetPose(p Pose) {
	if validScaling(p.Magnitude) {
		f.SetMagnitude(p.Magnitude)
	}
	f.SetOrientation(p.Orientation)
	f.SetPosition(p.Position)
}

// AlignWithFrame rotates f so that its axes line up with the closest axes of
// other (nil is the world). Two axes are aligned, which fixes the third.
// When move is true the position is rotated about other's origin as well,
// so f keeps its placement relative to other.
func (f *Frame) AlignWithFrame(other *Frame, move bool) {
	var mine, theirs [3]math.Vec3
	units := [3]math.Vec3{math.XAxis, math.YAxis, math.ZAxis}
	for i, u := range units {
		mine[i] = f.Orientation().Rotate(u)
		if other != nil {
			theirs[i] = other.Orientation().Rotate(u)
		} else {
			theirs[i] = u
		}
	}

	i, j, sign := closestAxes(mine, theirs, -1, -1)
	first := math.QuatFromRotationArc(mine[i], theirs[j].Scale(sign))

	// Second pass: spin about the aligned axis to match one more pair.
	for k := range mine {
		mine[k] = first.Rotate(mine[k])
	}
	k, l, sign2 := closestAxes(mine, theirs, i, j)
	pivot := theirs[j]
	from := mine[k].ProjectOnPlane(pivot)
	to := theirs[l].Scale(sign2).ProjectOnPlane(pivot)
	second := math.QuatIdentity()
	if from.LengthSquared() > math.Epsilon && to.LengthSquared() > math.Epsilon {
		second = math.QuatFromRotationArc(from, to)
	}

	world := second.Mul(first)
	oldPos := f.Position()
	f.SetOrientation(world.Mul(f.Orientation()))

	if move {
		center := math.Vec3{}
		if other != nil {
			center = other.Position()
		}
		f.SetPosition(center.Add(world.Rotate(oldPos.Sub(center))))
	}
}

// closestAxes returns the pair (i, j) maximizing |mine[i]·theirs[j]|, skipping
// index skipI in mine and skipJ in theirs, and the sign of that dot product.
func closestAxes(mine, theirs [3]math.Vec3, skipI, skipJ int) (int, int, float32) {
	bestI, bestJ := 0, 0
	best := float32(-1)
	var sign float32 = 1
	for i := range mine {
		if i == skipI {
			continue
		}
		for j := range theirs {
			if j == skipJ {
				continue
			}
			d := mine[i].Dot(theirs[j])
			if math32.Abs(d) > best {
				best = math32.Abs(d)
				bestI, bestJ = i, j
				sign = 1
				if d < 0 {
					sign = -1
				}
			}
		}
	}
	return bestI, bestJ, sign
}
