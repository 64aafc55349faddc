package math

import (
	"github.com/chewxy/math32"
	"gonum.org/v1/gonum/num/quat"
)

// Quat represents a quaternion for 3D rotations.
// Components are stored as X, Y, Z, W where W is the scalar part.
// Rotation quaternions are kept at unit length; every composing operation
// renormalizes its result.
type Quat struct {
	X, Y, Z, W float32
}

// QuatIdentity returns an identity quaternion (no rotation).
func QuatIdentity() Quat {
	return Quat{X: 0, Y: 0, Z: 0, W: 1}
}

// QuatFromAxisAngle creates a quaternion from axis-angle rotation.
// axis is normalized here, angle is in radians. A degenerate axis yields identity.
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	l := axis.Length()
	if l < Epsilon {
		return QuatIdentity()
	}
	halfAngle := angle / 2
	s := math32.Sin(halfAngle) / l
	return Quat{
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
		W: math32.Cos(halfAngle),
	}
}

// QuatFromRotationArc returns the shortest rotation that maps the direction
// of from onto the direction of to.
func QuatFromRotationArc(from, to Vec3) Quat {
	fromSq := from.LengthSquared()
	toSq := to.LengthSquared()
	if fromSq < 1e-10 || toSq < 1e-10 {
		return QuatIdentity()
	}

	axis := from.Cross(to)
	axisSq := axis.LengthSquared()

	// Aligned or opposite vectors: any orthogonal axis will do.
	if axisSq < 1e-10 {
		axis = from.Orthogonal()
	}

	s := axisSq / (fromSq * toSq)
	if s > 1 {
		s = 1
	}
	angle := math32.Asin(math32.Sqrt(s))
	if from.Dot(to) < 0 {
		angle = math32.Pi - angle
	}
	return QuatFromAxisAngle(axis, angle)
}

// QuatFromMat3 converts a 3x3 rotation matrix (column-major, as returned by
// Mat4.Mat3x3) into a quaternion.
func QuatFromMat3(m [9]float32) Quat {
	// element (row r, col c) is m[c*3+r]
	m00, m11, m22 := m[0], m[4], m[8]
	trace := m00 + m11 + m22

	var q Quat
	switch {
	case trace > 0:
		s := math32.Sqrt(trace+1) * 2
		q.W = 0.25 * s
		q.X = (m[5] - m[7]) / s
		q.Y = (m[6] - m[2]) / s
		q.Z = (m[1] - m[3]) / s
	case m00 > m11 && m00 > m22:
		s := math32.Sqrt(1+m00-m11-m22) * 2
		q.W = (m[5] - m[7]) / s
		q.X = 0.25 * s
		q.Y = (m[3] + m[1]) / s
		q.Z = (m[6] + m[2]) / s
	case m11 > m22:
		s := math32.Sqrt(1+m11-m00-m22) * 2
		q.W = (m[6] - m[2]) / s
		q.X = (m[3] + m[1]) / s
		q.Y = 0.25 * s
		q.Z = (m[7] + m[5]) / s
	default:
		s := math32.Sqrt(1+m22-m00-m11) * 2
		q.W = (m[1] - m[3]) / s
		q.X = (m[6] + m[2]) / s
		q.Y = (m[7] + m[5]) / s
		q.Z = 0.25 * s
	}
	return q.Normalize()
}

// QuatFromMat4 extracts the rotation of an affine matrix without scaling.
func QuatFromMat4(m Mat4) Quat {
	return QuatFromMat3(m.Mat3x3())
}

// Length returns the quaternion norm.
func (q Quat) Length() float32 {
	return math32.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
}

// Normalize returns a normalized quaternion.
func (q Quat) Normalize() Quat {
	length := q.Length()
	if length < 0.0001 {
		return QuatIdentity()
	}
	invLen := 1.0 / length
	return Quat{
		X: q.X * invLen,
		Y: q.Y * invLen,
		Z: q.Z * invLen,
		W: q.W * invLen,
	}
}

// Negate returns -q, which encodes the same rotation.
func (q Quat) Negate() Quat {
	return Quat{X: -q.X, Y: -q.Y, Z: -q.Z, W: -q.W}
}

// Inverse returns the inverse rotation (the conjugate of a unit quaternion).
func (q Quat) Inverse() Quat {
	return Quat{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
}

// Dot returns the dot product of two quaternions.
func (q Quat) Dot(other Quat) float32 {
	return q.X*other.X + q.Y*other.Y + q.Z*other.Z + q.W*other.W
}

// Mul multiplies two quaternions (combines rotations).
// The result applies other first, then q. It is renormalized.
func (q Quat) Mul(other Quat) Quat {
	return Quat{
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
	}.Normalize()
}

// Rotate applies the rotation to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	u := Vec3{q.X, q.Y, q.Z}
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(u.Cross(t))
}

// InverseRotate applies the inverse rotation to v.
func (q Quat) InverseRotate(v Vec3) Vec3 {
	return q.Inverse().Rotate(v)
}

// Axis returns the normalized rotation axis, oriented so that Angle is in [0, Pi].
// The identity rotation returns +Z.
func (q Quat) Axis() Vec3 {
	v := Vec3{q.X, q.Y, q.Z}
	s := v.Length()
	if s < Epsilon {
		return ZAxis
	}
	v = v.Scale(1 / s)
	if q.W < 0 {
		return v.Neg()
	}
	return v
}

// Angle returns the rotation angle in radians, in [0, Pi].
func (q Quat) Angle() float32 {
	w := q.W
	if w < 0 {
		w = -w
	}
	if w > 1 {
		w = 1
	}
	return 2 * math32.Acos(w)
}

// Slerp performs spherical linear interpolation between two quaternions.
// t should be in range [0, 1]. The shortest path is taken, so Slerp(other, 1)
// may return -other, which encodes the same rotation.
func (q Quat) Slerp(other Quat, t float32) Quat {
	return slerp(q, other, t, true)
}

// SlerpNoFlip interpolates without taking the shortest path; Squad relies on it.
func (q Quat) SlerpNoFlip(other Quat, t float32) Quat {
	return slerp(q, other, t, false)
}

func slerp(q, other Quat, t float32, allowFlip bool) Quat {
	dot := q.Dot(other)

	if allowFlip && dot < 0 {
		other = other.Negate()
		dot = -dot
	}

	// Nearly parallel: lerp avoids the division by sin(theta).
	if math32.Abs(dot) > 0.9995 {
		return q.Lerp(other, t)
	}

	theta0 := math32.Acos(dot)
	theta := theta0 * t
	sinTheta := math32.Sin(theta)
	sinTheta0 := math32.Sin(theta0)

	s0 := math32.Cos(theta) - dot*sinTheta/sinTheta0
	s1 := sinTheta / sinTheta0

	return Quat{
		X: q.X*s0 + other.X*s1,
		Y: q.Y*s0 + other.Y*s1,
		Z: q.Z*s0 + other.Z*s1,
		W: q.W*s0 + other.W*s1,
	}.Normalize()
}

// Lerp performs linear interpolation between two quaternions.
// Use Slerp for rotation interpolation; this is for simple blending.
func (q Quat) Lerp(other Quat, t float32) Quat {
	return Quat{
		X: q.X + t*(other.X-q.X),
		Y: q.Y + t*(other.Y-q.Y),
		Z: q.Z + t*(other.Z-q.Z),
		W: q.W + t*(other.W-q.W),
	}.Normalize()
}

// Log returns the logarithm of a unit quaternion: a pure quaternion whose
// vector part is axis * angle/2 (W is zero).
func (q Quat) Log() Quat {
	if q.X == 0 && q.Y == 0 && q.Z == 0 {
		return Quat{}
	}
	l := quat.Log(toNumber(q))
	return Quat{X: float32(l.Imag), Y: float32(l.Jmag), Z: float32(l.Kmag)}
}

// Exp is the inverse of Log for pure quaternions. The result is normalized.
func (q Quat) Exp() Quat {
	e := quat.Exp(quat.Number{Imag: float64(q.X), Jmag: float64(q.Y), Kmag: float64(q.Z)})
	return fromNumber(e).Normalize()
}

// LnDif returns Log(a^-1 * b), the angular delta that takes a onto b
// expressed in a's coordinates.
func LnDif(a, b Quat) Quat {
	return a.Inverse().Mul(b).Log()
}

// SquadTangent returns the inner control quaternion at center used by Squad.
func SquadTangent(before, center, after Quat) Quat {
	l1 := LnDif(center, before)
	l2 := LnDif(center, after)
	e := Quat{
		X: -0.25 * (l1.X + l2.X),
		Y: -0.25 * (l1.Y + l2.Y),
		Z: -0.25 * (l1.Z + l2.Z),
	}
	return center.Mul(e.Exp())
}

// Squad performs spherical cubic interpolation between a and b using the
// tangents computed by SquadTangent. It passes through a at t=0 and b at t=1.
func Squad(a, tgA, tgB, b Quat, t float32) Quat {
	ab := a.SlerpNoFlip(b, t)
	tg := tgA.SlerpNoFlip(tgB, t)
	return ab.SlerpNoFlip(tg, 2*t*(1-t))
}

// ToMat4 converts the quaternion to a 4x4 rotation matrix.
func (q Quat) ToMat4() Mat4 {
	q = q.Normalize()

	xx := q.X * q.X
	xy := q.X * q.Y
	xz := q.X * q.Z
	xw := q.X * q.W
	yy := q.Y * q.Y
	yz := q.Y * q.Z
	yw := q.Y * q.W
	zz := q.Z * q.Z
	zw := q.Z * q.W

	return Mat4{
		1 - 2*(yy+zz), 2 * (xy + zw), 2 * (xz - yw), 0,
		2 * (xy - zw), 1 - 2*(xx+zz), 2 * (yz + xw), 0,
		2 * (xz + yw), 2 * (yz - xw), 1 - 2*(xx+yy), 0,
		0, 0, 0, 1,
	}
}

// ToMat3 converts the quaternion to a column-major 3x3 rotation matrix.
func (q Quat) ToMat3() [9]float32 {
	return q.ToMat4().Mat3x3()
}

// ApproxEqualRotation reports whether q and other encode the same rotation
// within eps, treating q and -q as equal.
func (q Quat) ApproxEqualRotation(other Quat, eps float32) bool {
	return 1-math32.Abs(q.Normalize().Dot(other.Normalize())) <= eps
}

func toNumber(q Quat) quat.Number {
	return quat.Number{Real: float64(q.W), Imag: float64(q.X), Jmag: float64(q.Y), Kmag: float64(q.Z)}
}

func fromNumber(n quat.Number) Quat {
	return Quat{X: float32(n.Imag), Y: float32(n.Jmag), Z: float32(n.Kmag), W: float32(n.Real)}
}
