package math

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Mat4 is a 4x4 matrix in column-major order (OpenGL compatible).
// Layout: [m0 m4 m8  m12]
//
//	[m1 m5 m9  m13]
//	[m2 m6 m10 m14]
//	[m3 m7 m11 m15]
//
// It shares its memory layout with mgl32.Mat4, which does the arithmetic.
type Mat4 [16]float32

// Vec4 is a homogeneous coordinate.
type Vec4 [4]float32

// Identity returns an identity matrix.
func Identity() Mat4 {
	return Mat4(mgl32.Ident4())
}

// Perspective returns a perspective projection matrix mapping [-near, -far]
// to NDC z in [-1, 1]. fovY is in radians, aspect is width/height.
func Perspective(fovY, aspect, near, far float32) Mat4 {
	return Mat4(mgl32.Perspective(fovY, aspect, near, far))
}

// Ortho returns an orthographic projection matrix for the given view volume.
func Ortho(left, right, bottom, top, near, far float32) Mat4 {
	return Mat4(mgl32.Ortho(left, right, bottom, top, near, far))
}

// Mul returns m * other: other is applied first.
func (m Mat4) Mul(other Mat4) Mat4 {
	return Mat4(mgl32.Mat4(m).Mul4(mgl32.Mat4(other)))
}

// MulVec4 returns m * v.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4(mgl32.Mat4(m).Mul4x1(mgl32.Vec4(v)))
}

// TransformVec3 transforms a point, dividing by w when the matrix is
// projective.
func (m Mat4) TransformVec3(v Vec3) Vec3 {
	p := mgl32.TransformCoordinate(mgl32.Vec3{v.X, v.Y, v.Z}, mgl32.Mat4(m))
	return Vec3{p[0], p[1], p[2]}
}

// Translation returns the translation column.
func (m Mat4) Translation() Vec3 {
	return Vec3{m[12], m[13], m[14]}
}

// Mat3x3 returns the upper-left 3x3 block, column by column.
func (m Mat4) Mat3x3() [9]float32 {
	return [9]float32(mgl32.Mat4(m).Mat3())
}

// singularDeterminant is the smallest determinant magnitude InverseChecked accepts.
const singularDeterminant = 1e-12

// InverseChecked returns the inverse of the matrix and false when the matrix
// is singular or too close to singular to be inverted reliably.
func (m Mat4) InverseChecked() (Mat4, bool) {
	mm := mgl32.Mat4(m)
	if math32.Abs(mm.Det()) < singularDeterminant {
		return Mat4{}, false
	}
	return Mat4(mm.Inv()), true
}

// Compose builds translate * rotate * scale, i.e. a point is scaled first,
// then rotated, then translated.
func Compose(t Vec3, q Quat, s Vec3) Mat4 {
	r := q.ToMat4()
	for i := 0; i < 3; i++ {
		r[i] *= s.X
		r[4+i] *= s.Y
		r[8+i] *= s.Z
	}
	r[12], r[13], r[14] = t.X, t.Y, t.Z
	return r
}
