// Package frame implements positioned, oriented and scaled coordinate
// systems arranged in a hierarchy, and the constraints that filter their
// motion.
//
// A Frame stores its pose relative to an optional reference frame:
// translation, rotation and per-axis scaling. A point p expressed in the
// frame maps to its reference frame as
//
//	rotation.Rotate(p * scaling) + translation
//
// Frames are mutable and must be used from a single goroutine.
package frame

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/Faultbox/scenekit/internal/logger"
	"github.com/Faultbox/scenekit/pkg/errs"
	"github.com/Faultbox/scenekit/pkg/math"
)

// Frame is a coordinate system defined relative to its reference frame.
// A nil reference frame is the world.
type Frame struct {
	name string

	translation math.Vec3
	rotation    math.Quat
	scaling     math.Vec3

	ref        *Frame
	constraint Constraint

	// version is the clock value of the last local change.
	version uint64
}

// clock orders changes across all frames, so a stamp never repeats.
var clock atomic.Uint64

// New creates a frame at the origin with identity rotation and unit scaling.
func New() *Frame {
	return &Frame{
		rotation: math.QuatIdentity(),
		scaling:  math.Vec3{X: 1, Y: 1, Z: 1},
	}
}

// NewAt creates a frame with the given translation and rotation.
func NewAt(translation math.Vec3, rotation math.Quat) *Frame {
	f := New()
	f.translation = translation
	f.rotation = rotation.Normalize()
	return f
}

// Name returns the frame name used in logs and errors.
func (f *Frame) Name() string { return f.name }

// SetName sets the frame name.
func (f *Frame) SetName(name string) { f.name = name }

func (f *Frame) modified() { f.version = clock.Add(1) }

// Stamp changes whenever the world transform of the frame may have changed.
// It is the latest change along the chain, so edits to any ancestor and
// reparenting both produce a new value.
func (f *Frame) Stamp() uint64 {
	var s uint64
	for fr := f; fr != nil; fr = fr.ref {
		s = max(s, fr.version)
	}
	return s
}

// Translation returns the translation relative to the reference frame.
func (f *Frame) Translation() math.Vec3 { return f.translation }

// SetTranslation sets the translation, ignoring the constraint.
func (f *Frame) SetTranslation(t math.Vec3) {
	f.translation = t
	f.modified()
}

// SetTranslationWithConstraint moves towards t through Translate, so the
// constraint decides how much of the move is applied.
func (f *Frame) SetTranslationWithConstraint(t math.Vec3) {
	f.Translate(t.Sub(f.translation))
}

// Rotation returns the rotation relative to the reference frame.
func (f *Frame) Rotation() math.Quat { return f.rotation }

// SetRotation sets the rotation, ignoring the constraint.
func (f *Frame) SetRotation(q math.Quat) {
	f.rotation = q.Normalize()
	f.modified()
}

// SetRotationWithConstraint rotates towards q through Rotate.
func (f *Frame) SetRotationWithConstraint(q math.Quat) {
	f.Rotate(f.rotation.Inverse().Mul(q))
}

// Scaling returns the per-axis scaling relative to the reference frame.
func (f *Frame) Scaling() math.Vec3 { return f.scaling }

// SetScaling sets the scaling, ignoring the constraint. Components equal to
// zero would make the frame singular and are rejected.
func (f *Frame) SetScaling(s math.Vec3) {
	if !validScaling(s) {
		logger.Named("frame").Warn("ignoring degenerate scaling",
			zap.String("frame", f.name), zap.Any("scaling", s))
		return
	}
	f.scaling = s
	f.modified()
}

func validScaling(s math.Vec3) bool {
	return s.X != 0 && s.Y != 0 && s.Z != 0
}

// Constraint returns the attached constraint, or nil.
func (f *Frame) Constraint() Constraint { return f.constraint }

// SetConstraint attaches c. Pass nil to remove the constraint.
func (f *Frame) SetConstraint(c Constraint) { f.constraint = c }

// ReferenceFrame returns the parent frame, or nil for the world.
func (f *Frame) ReferenceFrame() *Frame { return f.ref }

// SetReferenceFrame reparents the frame without changing its local pose,
// so its world pose follows the new parent. It fails with a configuration
// error when ref is f or one of f's descendants.
func (f *Frame) SetReferenceFrame(ref *Frame) error {
	if f.wouldCreateCycle(ref) {
		return errs.Configuration.New("reference frame would create a cycle").
			WithProperty(errs.PropertyFrame, f.name)
	}
	if f.ref == ref {
		return nil
	}
	f.ref = ref
	f.modified()
	return nil
}

// SetReferenceFrameKeepingPose reparents the frame and adjusts its local
// pose so the world pose is unchanged.
func (f *Frame) SetReferenceFrameKeepingPose(ref *Frame) error {
	pose := f.Pose()
	if err := f.SetReferenceFrame(ref); err != nil {
		return err
	}
	f.SetPose(pose)
	return nil
}

// wouldCreateCycle walks the ancestor chain of ref looking for f.
func (f *Frame) wouldCreateCycle(ref *Frame) bool {
	for a := ref; a != nil; a = a.ref {
		if a == f {
			return true
		}
	}
	return false
}

// Translate moves the frame by t, expressed in the reference frame.
// The constraint filters t first.
func (f *Frame) Translate(t math.Vec3) {
	if f.constraint != nil {
		t = f.constraint.ConstrainTranslation(t, f)
	}
	f.translation = f.translation.Add(t)
	f.modified()
}

// Rotate composes q, expressed in the frame's local axes, with the current
// rotation. The constraint filters q first.
func (f *Frame) Rotate(q math.Quat) {
	if f.constraint != nil {
		q = f.constraint.ConstrainRotation(q, f)
	}
	f.rotation = f.rotation.Mul(q)
	f.modified()
}

// Scale multiplies the scaling per axis by s. The constraint filters s
// first; zero components are rejected.
func (f *Frame) Scale(s math.Vec3) {
	if f.constraint != nil {
		s = f.constraint.ConstrainScaling(s, f)
	}
	f.SetScaling(f.scaling.Mul(s))
}

// RotateAroundPoint rotates the frame by q (local axes) and moves it so
// that the world point stays fixed relative to the frame. Both the rotation
// and the resulting translation go through the constraint.
func (f *Frame) RotateAroundPoint(q math.Quat, point math.Vec3) {
	if f.constraint != nil {
		q = f.constraint.ConstrainRotation(q, f)
	}
	worldAxis := f.InverseTransformOf(q.Axis())
	if f.IsInverted() {
		worldAxis = worldAxis.Neg()
	}
	worldQ := math.QuatFromAxisAngle(worldAxis, q.Angle())

	f.rotation = f.rotation.Mul(q)
	f.modified()

	pos := f.Position()
	target := point.Add(worldQ.Rotate(pos.Sub(point)))
	delta := target.Sub(pos)
	if f.ref != nil {
		delta = f.ref.TransformOf(delta)
	}
	f.Translate(delta)
}

// Position returns the origin of the frame in world coordinates.
func (f *Frame) Position() math.Vec3 {
	return f.InverseCoordinatesOf(math.Vec3{})
}

// SetPosition places the origin at world point p, ignoring the constraint.
func (f *Frame) SetPosition(p math.Vec3) {
	if f.ref != nil {
		p = f.ref.CoordinatesOf(p)
	}
	f.SetTranslation(p)
}

// SetPositionWithConstraint moves the origin towards world point p through
// the constraint.
func (f *Frame) SetPositionWithConstraint(p math.Vec3) {
	if f.ref != nil {
		p = f.ref.CoordinatesOf(p)
	}
	f.SetTranslationWithConstraint(p)
}

// Orientation returns the world rotation of the frame.
func (f *Frame) Orientation() math.Quat {
	q := f.rotation
	for a := f.ref; a != nil; a = a.ref {
		q = a.rotation.Mul(q)
	}
	return q
}

// SetOrientation sets the world rotation, ignoring the constraint.
func (f *Frame) SetOrientation(q math.Quat) {
	if f.ref != nil {
		q = f.ref.Orientation().Inverse().Mul(q)
	}
	f.SetRotation(q)
}

// SetOrientationWithConstraint rotates towards world rotation q through
// the constraint.
func (f *Frame) SetOrientationWithConstraint(q math.Quat) {
	if f.ref != nil {
		q = f.ref.Orientation().Inverse().Mul(q)
	}
	f.SetRotationWithConstraint(q)
}

// Magnitude returns the accumulated per-axis scaling up to the world.
func (f *Frame) Magnitude() math.Vec3 {
	m := f.scaling
	for a := f.ref; a != nil; a = a.ref {
		m = m.Mul(a.scaling)
	}
	return m
}

// SetMagnitude sets the scaling so that Magnitude returns m.
func (f *Frame) SetMagnitude(m math.Vec3) {
	if f.ref != nil {
		pm := f.ref.Magnitude()
		m = m.Div(pm)
	}
	f.SetScaling(m)
}

// IsInverted reports whether the frame is mirrored, i.e. an odd number of
// its accumulated scaling components are negative.
func (f *Frame) IsInverted() bool {
	m := f.Magnitude()
	return m.X*m.Y*m.Z < 0
}

// XAxis returns the world direction of the frame's X axis, normalized.
// A negative scale on that axis does not flip the result.
func (f *Frame) XAxis() math.Vec3 {
	return f.axis(math.XAxis, f.Magnitude().X)
}

// YAxis returns the world direction of the frame's Y axis, normalized.
func (f *Frame) YAxis() math.Vec3 {
	return f.axis(math.YAxis, f.Magnitude().Y)
}

// ZAxis returns the world direction of the frame's Z axis, normalized.
func (f *Frame) ZAxis() math.Vec3 {
	return f.axis(math.ZAxis, f.Magnitude().Z)
}

func (f *Frame) axis(unit math.Vec3, magnitude float32) math.Vec3 {
	a := f.InverseTransformOf(unit).Normalize()
	if magnitude < 0 {
		return a.Neg()
	}
	return a
}

// LocalCoordinatesOf converts a point from the reference frame to f.
func (f *Frame) LocalCoordinatesOf(p math.Vec3) math.Vec3 {
	return f.rotation.InverseRotate(p.Sub(f.translation)).Div(f.scaling)
}

// LocalInverseCoordinatesOf converts a point from f to the reference frame.
func (f *Frame) LocalInverseCoordinatesOf(p math.Vec3) math.Vec3 {
	return f.rotation.Rotate(p.Mul(f.scaling)).Add(f.translation)
}

// LocalTransformOf converts a direction from the reference frame to f.
func (f *Frame) LocalTransformOf(v math.Vec3) math.Vec3 {
	return f.rotation.InverseRotate(v).Div(f.scaling)
}

// LocalInverseTransformOf converts a direction from f to the reference frame.
func (f *Frame) LocalInverseTransformOf(v math.Vec3) math.Vec3 {
	return f.rotation.Rotate(v.Mul(f.scaling))
}

// CoordinatesOf converts a world point to f's coordinates.
func (f *Frame) CoordinatesOf(p math.Vec3) math.Vec3 {
	if f.ref != nil {
		p = f.ref.CoordinatesOf(p)
	}
	return f.LocalCoordinatesOf(p)
}

// InverseCoordinatesOf converts a point in f's coordinates to the world.
func (f *Frame) InverseCoordinatesOf(p math.Vec3) math.Vec3 {
	for a := f; a != nil; a = a.ref {
		p = a.LocalInverseCoordinatesOf(p)
	}
	return p
}

// TransformOf converts a world direction to f's coordinates.
func (f *Frame) TransformOf(v math.Vec3) math.Vec3 {
	if f.ref != nil {
		v = f.ref.TransformOf(v)
	}
	return f.LocalTransformOf(v)
}

// InverseTransformOf converts a direction in f's coordinates to the world.
func (f *Frame) InverseTransformOf(v math.Vec3) math.Vec3 {
	for a := f; a != nil; a = a.ref {
		v = a.LocalInverseTransformOf(v)
	}
	return v
}

// CoordinatesOfFrom converts a point expressed in from (nil is the world)
// to f's coordinates.
func (f *Frame) CoordinatesOfFrom(p math.Vec3, from *Frame) math.Vec3 {
	if from != nil {
		p = from.InverseCoordinatesOf(p)
	}
	return f.CoordinatesOf(p)
}

// TransformOfFrom converts a direction expressed in from (nil is the world)
// to f's coordinates.
func (f *Frame) TransformOfFrom(v math.Vec3, from *Frame) math.Vec3 {
	if from != nil {
		v = from.InverseTransformOf(v)
	}
	return f.TransformOf(v)
}

// Matrix returns the local transform: translate * rotate * scale.
func (f *Frame) Matrix() math.Mat4 {
	return math.Compose(f.translation, f.rotation, f.scaling)
}

// WorldMatrix returns the transform from f's coordinates to the world.
func (f *Frame) WorldMatrix() math.Mat4 {
	m := f.Matrix()
	for a := f.ref; a != nil; a = a.ref {
		m = a.Matrix().Mul(m)
	}
	return m
}

// ProjectOnLine moves the frame origin onto the world line through origin
// along direction, ignoring the constraint.
func (f *Frame) ProjectOnLine(origin, direction math.Vec3) {
	pos := f.Position()
	f.SetPosition(origin.Add(pos.Sub(origin).ProjectOnAxis(direction)))
}
