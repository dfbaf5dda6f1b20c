// Package math provides the 4x4 matrix helpers used for model, view and
// projection transforms.
package math

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Mat4 is a 4x4 matrix in row-major order.
// Layout: [m0  m1  m2  m3 ]
//
//	[m4  m5  m6  m7 ]
//	[m8  m9  m10 m11]
//	[m12 m13 m14 m15]
//
// Translation lives in m3, m7 and m11. Upload with transpose=true.
type Mat4 [16]float32

// degToRad converts degrees to radians in float64 for the trig calls.
func degToRad(deg float32) float64 {
	return float64(deg) * math.Pi / 180.0
}

// Identity returns an identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// RotateX returns a rotation matrix around the X axis.
// angle is in degrees and is not wrapped.
func RotateX(angle float32) Mat4 {
	r := degToRad(angle)
	c := float32(math.Cos(r))
	s := float32(math.Sin(r))

	return Mat4{
		1, 0, 0, 0,
		0, c, -s, 0,
		0, s, c, 0,
		0, 0, 0, 1,
	}
}

// RotateY returns a rotation matrix around the Y axis.
// angle is in degrees and is not wrapped.
func RotateY(angle float32) Mat4 {
	r := degToRad(angle)
	c := float32(math.Cos(r))
	s := float32(math.Sin(r))

	return Mat4{
		c, 0, s, 0,
		0, 1, 0, 0,
		-s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// RotateZ returns a rotation matrix around the Z axis.
// angle is in degrees and is not wrapped.
func RotateZ(angle float32) Mat4 {
	r := degToRad(angle)
	c := float32(math.Cos(r))
	s := float32(math.Sin(r))

	return Mat4{
		c, -s, 0, 0,
		s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate returns a translation matrix.
func Translate(x, y, z float32) Mat4 {
	return Mat4{
		1, 0, 0, x,
		0, 1, 0, y,
		0, 0, 1, z,
		0, 0, 0, 1,
	}
}

// TranslateVec returns a translation matrix for v.
func TranslateVec(v mgl32.Vec3) Mat4 {
	return Translate(v[0], v[1], v[2])
}

// Perspective returns a symmetric perspective projection matrix.
// fovY is in degrees, aspect is width/height.
//
// Requires near > 0, far > 0, near < far and aspect > 0 (see
// ValidPerspective). Other inputs yield a degenerate matrix.
func Perspective(fovY, aspect, near, far float32) Mat4 {
	f := float32(1.0 / math.Tan(degToRad(fovY)/2.0))
	nf := 1.0 / (near - far)

	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) * nf, 2 * far * near * nf,
		0, 0, -1, 0,
	}
}

// ValidPerspective reports whether the parameters satisfy the Perspective
// preconditions.
func ValidPerspective(fovY, aspect, near, far float32) bool {
	return fovY > 0 && fovY < 180 && aspect > 0 && near > 0 && far > 0 && near < far
}

// Mul returns m * other (matrix product). Neither operand is modified.
func (m Mat4) Mul(other Mat4) Mat4 {
	var result Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			result[row*4+col] =
				m[row*4+0]*other[0*4+col] +
					m[row*4+1]*other[1*4+col] +
					m[row*4+2]*other[2*4+col] +
					m[row*4+3]*other[3*4+col]
		}
	}
	return result
}

// Transpose returns the transposed matrix.
func (m Mat4) Transpose() Mat4 {
	var t Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			t[col*4+row] = m[row*4+col]
		}
	}
	return t
}

// TransformPoint transforms a 3D point by this matrix (assumes w=1).
func (m Mat4) TransformPoint(p mgl32.Vec3) mgl32.Vec3 {
	x := m[0]*p[0] + m[1]*p[1] + m[2]*p[2] + m[3]
	y := m[4]*p[0] + m[5]*p[1] + m[6]*p[2] + m[7]
	z := m[8]*p[0] + m[9]*p[1] + m[10]*p[2] + m[11]
	w := m[12]*p[0] + m[13]*p[1] + m[14]*p[2] + m[15]
	if w != 0 && w != 1 {
		return mgl32.Vec3{x / w, y / w, z / w}
	}
	return mgl32.Vec3{x, y, z}
}

// ApproxEqual reports whether every element differs by at most eps.
func (m Mat4) ApproxEqual(other Mat4, eps float32) bool {
	for i := range m {
		d := m[i] - other[i]
		if d < -eps || d > eps {
			return false
		}
	}
	return true
}

// ColumnMajor converts m to the column-major mgl32 layout.
func (m Mat4) ColumnMajor() mgl32.Mat4 {
	return mgl32.Mat4(m.Transpose())
}

// FromColumnMajor converts a column-major mgl32 matrix to Mat4.
func FromColumnMajor(cm mgl32.Mat4) Mat4 {
	return Mat4(cm).Transpose()
}

// Ptr returns a pointer to the first element (for OpenGL uniform calls).
func (m *Mat4) Ptr() *float32 {
	return &m[0]
}
