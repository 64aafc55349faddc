package frame

import (
	"fmt"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/scenekit/internal/logger"
	"github.com/Faultbox/scenekit/pkg/math"
)

// Constraint filters the motion proposed to a frame before it is applied.
//
// ConstrainTranslation receives a translation expressed in the frame's
// reference frame, ConstrainRotation a rotation in the frame's local axes
// and ConstrainScaling a per-axis scale factor.
type Constraint interface {
	ConstrainTranslation(t math.Vec3, f *Frame) math.Vec3
	ConstrainRotation(q math.Quat, f *Frame) math.Quat
	ConstrainScaling(s math.Vec3, f *Frame) math.Vec3
}

// Type selects how a motion component is restricted.
type Type int

const (
	Free Type = iota
	Axis
	Plane
	Forbidden
)

func (t Type) String() string {
	switch t {
	case Free:
		return "FREE"
	case Axis:
		return "AXIS"
	case Plane:
		return "PLANE"
	case Forbidden:
		return "FORBIDDEN"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Space is the coordinate system constraint directions are given in.
type Space int

const (
	// LocalSpace directions follow the frame's own axes and turn with it.
	LocalSpace Space = iota
	// WorldSpace directions are fixed in the world.
	WorldSpace
	// CameraSpace directions are given in a camera frame's axes.
	CameraSpace
)

func (s Space) String() string {
	switch s {
	case LocalSpace:
		return "local"
	case WorldSpace:
		return "world"
	case CameraSpace:
		return "camera"
	default:
		return fmt.Sprintf("Space(%d)", int(s))
	}
}

// minDirection is the smallest direction length accepted for AXIS or PLANE.
const minDirection = 1e-8

// AxisPlaneConstraint restricts translation to an axis or a plane, rotation
// to an axis, and can forbid any of translation, rotation and scaling.
type AxisPlaneConstraint struct {
	space  Space
	camera *Frame

	translationType Type
	translationDir  math.Vec3

	rotationType Type
	rotationDir  math.Vec3

	scalingType Type
}

// NewLocalConstraint returns a free constraint with directions in the
// constrained frame's axes.
func NewLocalConstraint() *AxisPlaneConstraint {
	return &AxisPlaneConstraint{space: LocalSpace}
}

// NewWorldConstraint returns a free constraint with world directions.
func NewWorldConstraint() *AxisPlaneConstraint {
	return &AxisPlaneConstraint{space: WorldSpace}
}

// NewCameraConstraint returns a free constraint with directions in the axes
// of the given camera frame.
func NewCameraConstraint(camera *Frame) *AxisPlaneConstraint {
	return &AxisPlaneConstraint{space: CameraSpace, camera: camera}
}

// Space returns the coordinate system of the directions.
func (c *AxisPlaneConstraint) Space() Space { return c.space }

// TranslationType returns the translation constraint type.
func (c *AxisPlaneConstraint) TranslationType() Type { return c.translationType }

// TranslationDirection returns the normalized translation axis or plane normal.
func (c *AxisPlaneConstraint) TranslationDirection() math.Vec3 { return c.translationDir }

// RotationType returns the rotation constraint type.
func (c *AxisPlaneConstraint) RotationType() Type { return c.rotationType }

// RotationDirection returns the normalized rotation axis.
func (c *AxisPlaneConstraint) RotationDirection() math.Vec3 { return c.rotationDir }

// ScalingType returns the scaling constraint type, FREE or FORBIDDEN.
func (c *AxisPlaneConstraint) ScalingType() Type { return c.scalingType }

// SetTranslationConstraint sets the translation type and direction. For
// AXIS the direction is the allowed axis, for PLANE the plane normal.
// A direction shorter than 1e-8 turns AXIS or PLANE into FREE.
func (c *AxisPlaneConstraint) SetTranslationConstraint(t Type, dir math.Vec3) {
	c.translationType, c.translationDir = checkDirection("translation", t, dir)
}

// SetTranslationConstraintType changes the type and keeps the direction.
func (c *AxisPlaneConstraint) SetTranslationConstraintType(t Type) {
	c.SetTranslationConstraint(t, c.translationDir)
}

// SetRotationConstraint sets the rotation type and axis. PLANE has no
// meaning for rotations and behaves like FREE.
func (c *AxisPlaneConstraint) SetRotationConstraint(t Type, dir math.Vec3) {
	if t == Plane {
		logger.Named("constraint").Debug("rotation PLANE constraint behaves as FREE")
	}
	c.rotationType, c.rotationDir = checkDirection("rotation", t, dir)
}

// SetRotationConstraintType changes the type and keeps the axis.
func (c *AxisPlaneConstraint) SetRotationConstraintType(t Type) {
	c.SetRotationConstraint(t, c.rotationDir)
}

// SetScalingConstraintType allows (FREE) or forbids (FORBIDDEN) scaling.
// AXIS and PLANE are treated as FREE.
func (c *AxisPlaneConstraint) SetScalingConstraintType(t Type) {
	if t == Axis || t == Plane {
		logger.Named("constraint").Warn("scaling supports only FREE and FORBIDDEN, constraint set to FREE",
			zap.Stringer("type", t))
		t = Free
	}
	c.scalingType = t
}

func checkDirection(component string, t Type, dir math.Vec3) (Type, math.Vec3) {
	if t != Axis && t != Plane {
		return t, dir
	}
	if dir.Length() < minDirection {
		logger.Named("constraint").Warn("direction too short, constraint set to FREE",
			zap.String("motion", component),
			zap.Stringer("type", t),
			zap.Any("direction", dir))
		return Free, dir
	}
	return t, dir.Normalize()
}

// ConstrainTranslation implements Constraint.
func (c *AxisPlaneConstraint) ConstrainTranslation(t math.Vec3, f *Frame) math.Vec3 {
	switch c.translationType {
	case Free:
		return t
	case Forbidden:
		return math.Vec3{}
	case Plane:
		return t.ProjectOnPlane(c.translationDirectionFor(f))
	case Axis:
		return t.ProjectOnAxis(c.translationDirectionFor(f))
	default:
		return t
	}
}

// translationDirectionFor expresses the direction in f's reference frame,
// where translations live.
func (c *AxisPlaneConstraint) translationDirectionFor(f *Frame) math.Vec3 {
	switch c.space {
	case LocalSpace:
		return f.LocalInverseTransformOf(c.translationDir)
	case WorldSpace:
		if f.ref != nil {
			return f.ref.TransformOf(c.translationDir)
		}
		return c.translationDir
	case CameraSpace:
		dir := c.translationDir
		if c.camera != nil {
			dir = c.camera.InverseTransformOf(dir)
		}
		if f.ref != nil {
			return f.ref.TransformOf(dir)
		}
		return dir
	default:
		return c.translationDir
	}
}

// ConstrainRotation implements Constraint.
func (c *AxisPlaneConstraint) ConstrainRotation(q math.Quat, f *Frame) math.Quat {
	switch c.rotationType {
	case Free, Plane:
		return q
	case Forbidden:
		return math.QuatIdentity()
	case Axis:
		axis := c.rotationDirectionFor(f)
		v := math.Vec3{X: q.X, Y: q.Y, Z: q.Z}.ProjectOnAxis(axis)
		w := q.W
		if w > 1 {
			w = 1
		} else if w < -1 {
			w = -1
		}
		return math.QuatFromAxisAngle(v, 2*math32.Acos(w))
	default:
		return q
	}
}

// rotationDirectionFor expresses the axis in f's local axes, where
// rotations live.
func (c *AxisPlaneConstraint) rotationDirectionFor(f *Frame) math.Vec3 {
	switch c.space {
	case LocalSpace:
		return c.rotationDir
	case WorldSpace:
		return f.TransformOf(c.rotationDir)
	case CameraSpace:
		dir := c.rotationDir
		if c.camera != nil {
			dir = c.camera.InverseTransformOf(dir)
		}
		return f.TransformOf(dir)
	default:
		return c.rotationDir
	}
}

// ConstrainScaling implements Constraint.
func (c *AxisPlaneConstraint) ConstrainScaling(s math.Vec3, _ *Frame) math.Vec3 {
	if c.scalingType == Forbidden {
		return math.Vec3{X: 1, Y: 1, Z: 1}
	}
	return s
}
