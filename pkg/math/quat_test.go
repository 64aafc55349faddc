package math

import (
	"math"
	"testing"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}

	v := Vec3{1, 2, 3}
	if got := q.Rotate(v); !got.ApproxEqual(v, 1e-6) {
		t.Errorf("Identity.Rotate(%v) = %v", v, got)
	}
}

func TestQuatNormalize(t *testing.T) {
	q := Quat{X: 1, Y: 2, Z: 3, W: 4}
	n := q.Normalize()

	if math.Abs(float64(n.Length()-1.0)) > 0.0001 {
		t.Errorf("Normalized quaternion length should be 1, got %v", n.Length())
	}

	if z := (Quat{}).Normalize(); z != QuatIdentity() {
		t.Errorf("zero quaternion should normalize to identity, got %v", z)
	}
}

func TestQuatFromAxisAngleDegenerateAxis(t *testing.T) {
	if q := QuatFromAxisAngle(Vec3{}, 1.2); q != QuatIdentity() {
		t.Errorf("zero axis should give identity, got %v", q)
	}
}

func TestQuatRotate(t *testing.T) {
	tests := []struct {
		name  string
		axis  Vec3
		angle float32
		in    Vec3
		want  Vec3
	}{
		{"90 about Z", ZAxis, math.Pi / 2, Vec3{1, 0, 0}, Vec3{0, 1, 0}},
		{"90 about Y", YAxis, math.Pi / 2, Vec3{1, 0, 0}, Vec3{0, 0, -1}},
		{"180 about X", XAxis, math.Pi, Vec3{0, 1, 0}, Vec3{0, -1, 0}},
		{"unnormalized axis", Vec3{0, 0, 5}, math.Pi / 2, Vec3{1, 0, 0}, Vec3{0, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := QuatFromAxisAngle(tt.axis, tt.angle)
			got := q.Rotate(tt.in)
			if !got.ApproxEqual(tt.want, 1e-5) {
				t.Errorf("Rotate(%v) = %v, want %v", tt.in, got, tt.want)
			}
			back := q.InverseRotate(got)
			if !back.ApproxEqual(tt.in, 1e-5) {
				t.Errorf("InverseRotate(Rotate(v)) = %v, want %v", back, tt.in)
			}
		})
	}
}

func TestQuatInverseMulIsIdentity(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{1, 2, -0.5}, 1.3)
	got := q.Inverse().Mul(q)
	if !got.ApproxEqualRotation(QuatIdentity(), 1e-6) {
		t.Errorf("q^-1 * q = %v, want identity", got)
	}
}

func TestQuatMulOrder(t *testing.T) {
	// Mul applies the right operand first.
	a := QuatFromAxisAngle(ZAxis, math.Pi/2)
	b := QuatFromAxisAngle(XAxis, math.Pi/2)
	v := Vec3{0, 1, 0}

	got := a.Mul(b).Rotate(v)
	want := a.Rotate(b.Rotate(v))
	if !got.ApproxEqual(want, 1e-5) {
		t.Errorf("(a*b).Rotate(v) = %v, want %v", got, want)
	}
}

func TestQuatAxisAngle(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{0, 1, 0}, 2.0)
	if a := q.Angle(); math.Abs(float64(a-2.0)) > 1e-4 {
		t.Errorf("Angle() = %v, want 2", a)
	}
	if ax := q.Axis(); !ax.ApproxEqual(YAxis, 1e-5) {
		t.Errorf("Axis() = %v, want %v", ax, YAxis)
	}

	// -q is the same rotation; axis and angle must agree.
	n := q.Negate()
	if a := n.Angle(); math.Abs(float64(a-2.0)) > 1e-4 {
		t.Errorf("Negate().Angle() = %v, want 2", a)
	}
	if ax := n.Axis(); !ax.ApproxEqual(YAxis, 1e-5) {
		t.Errorf("Negate().Axis() = %v, want %v", ax, YAxis)
	}
	if !n.Rotate(XAxis).ApproxEqual(q.Rotate(XAxis), 1e-5) {
		t.Errorf("Negate() changed the rotation")
	}
}

func TestQuatFromRotationArc(t *testing.T) {
	tests := []struct {
		name     string
		from, to Vec3
	}{
		{"orthogonal", Vec3{1, 0, 0}, Vec3{0, 1, 0}},
		{"oblique", Vec3{1, 1, 0}, Vec3{0, 0, 3}},
		{"parallel", Vec3{0, 2, 0}, Vec3{0, 5, 0}},
		{"opposite", Vec3{1, 0, 0}, Vec3{-1, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := QuatFromRotationArc(tt.from, tt.to)
			got := q.Rotate(tt.from.Normalize())
			want := tt.to.Normalize()
			if !got.ApproxEqual(want, 1e-4) {
				t.Errorf("Rotate(from) = %v, want %v", got, want)
			}
		})
	}
}

func TestQuatSlerp(t *testing.T) {
	// Test endpoints
	q1 := QuatIdentity()
	q2 := QuatFromAxisAngle(Vec3{X: 0, Y: 1, Z: 0}, float32(math.Pi/2))

	// At t=0, should equal q1
	result0 := q1.Slerp(q2, 0)
	if !result0.ApproxEqualRotation(q1, 1e-5) {
		t.Errorf("Slerp at t=0 should equal q1")
	}

	// At t=1, should equal q2
	result1 := q1.Slerp(q2, 1)
	if !result1.ApproxEqualRotation(q2, 1e-5) {
		t.Errorf("Slerp at t=1 should equal q2")
	}

	// For 90 degree rotation, halfway should be 45 degrees
	result5 := q1.Slerp(q2, 0.5)
	expectedW := float32(math.Cos(float64(math.Pi / 8)))
	if math.Abs(float64(result5.W-expectedW)) > 0.01 {
		t.Errorf("Slerp at t=0.5: expected W ~%v, got %v", expectedW, result5.W)
	}
}

func TestQuatSlerpShortestPath(t *testing.T) {
	q1 := QuatIdentity()
	q2 := QuatFromAxisAngle(ZAxis, 0.5).Negate()

	mid := q1.Slerp(q2, 0.5)
	if a := mid.Angle(); math.Abs(float64(a-0.25)) > 1e-3 {
		t.Errorf("Slerp should take the short arc, mid angle = %v, want 0.25", a)
	}
}

func TestQuatLogExp(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{1, -1, 2}, 1.1)
	l := q.Log()
	if l.W != 0 {
		t.Errorf("Log should be a pure quaternion, W = %v", l.W)
	}
	// |log q| is half the rotation angle.
	half := float32(math.Sqrt(float64(l.X*l.X + l.Y*l.Y + l.Z*l.Z)))
	if math.Abs(float64(half-0.55)) > 1e-4 {
		t.Errorf("|Log| = %v, want 0.55", half)
	}

	back := l.Exp()
	if !back.ApproxEqualRotation(q, 1e-6) {
		t.Errorf("Exp(Log(q)) = %v, want %v", back, q)
	}

	if z := QuatIdentity().Log(); z != (Quat{}) {
		t.Errorf("Log(identity) = %v, want zero", z)
	}
}

func TestSquadEndpoints(t *testing.T) {
	q0 := QuatIdentity()
	q1 := QuatFromAxisAngle(YAxis, 0.8)
	q2 := QuatFromAxisAngle(Vec3{1, 1, 0}, 1.4)
	q3 := QuatFromAxisAngle(XAxis, 0.3)

	tg1 := SquadTangent(q0, q1, q2)
	tg2 := SquadTangent(q1, q2, q3)

	if got := Squad(q1, tg1, tg2, q2, 0); !got.ApproxEqualRotation(q1, 1e-5) {
		t.Errorf("Squad at t=0 = %v, want %v", got, q1)
	}
	if got := Squad(q1, tg1, tg2, q2, 1); !got.ApproxEqualRotation(q2, 1e-5) {
		t.Errorf("Squad at t=1 = %v, want %v", got, q2)
	}
	mid := Squad(q1, tg1, tg2, q2, 0.5)
	if math.Abs(float64(mid.Length()-1)) > 1e-4 {
		t.Errorf("Squad result should be unit length, got %v", mid.Length())
	}
}

func TestQuatToMat4(t *testing.T) {
	// Identity quaternion should produce identity matrix
	q := QuatIdentity()
	m := q.ToMat4()

	identity := Identity()
	for i := 0; i < 16; i++ {
		if math.Abs(float64(m[i]-identity[i])) > 0.0001 {
			t.Errorf("Identity quat should produce identity matrix, element %d: got %v, want %v", i, m[i], identity[i])
		}
	}

	// The matrix must rotate like the quaternion does.
	r := QuatFromAxisAngle(Vec3{0.3, 1, -0.2}, 0.9)
	v := Vec3{1, 2, 3}
	if got := r.ToMat4().TransformVec3(v); !got.ApproxEqual(r.Rotate(v), 1e-5) {
		t.Errorf("ToMat4 transform = %v, want %v", got, r.Rotate(v))
	}
}

func TestQuatMat3RoundTrip(t *testing.T) {
	angles := []float32{0.1, 1.0, 2.5, 3.1}
	axes := []Vec3{XAxis, YAxis, ZAxis, {1, 1, 1}, {-1, 0.5, 2}}

	for _, axis := range axes {
		for _, angle := range angles {
			q := QuatFromAxisAngle(axis, angle)
			got := QuatFromMat3(q.ToMat3())
			if !got.ApproxEqualRotation(q, 1e-5) {
				t.Errorf("QuatFromMat3(ToMat3(%v)) = %v", q, got)
			}
		}
	}
}
