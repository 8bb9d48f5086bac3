package glbatch

import "github.com/chewxy/math32"

// Mat4 is a 4x4 float32 matrix stored as a flat array in OpenGL
// column-major order: element index = col*4 + row. The layout matches
// what graphics APIs expect for a mat4 uniform, so a Mat4 uploads
// without conversion.
//
// Composition follows the legacy fixed-function convention used
// throughout this package: a.Mul(b) produces the matrix that applies a
// first and b second when transforming column vectors.
type Mat4 [16]float32

// At returns the element at the given row and column.
func (m Mat4) At(row, col int) float32 { return m[col*4+row] }

// Set assigns the element at the given row and column.
func (m *Mat4) Set(row, col int, v float32) { m[col*4+row] = v }

// Mat4Identity returns the identity matrix.
func Mat4Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mat4Translate returns a translation matrix.
func Mat4Translate(x, y, z float32) Mat4 {
	m := Mat4Identity()
	m[12] = x
	m[13] = y
	m[14] = z
	return m
}

// Mat4Scale returns a scaling matrix.
func Mat4Scale(x, y, z float32) Mat4 {
	var m Mat4
	m[0] = x
	m[5] = y
	m[10] = z
	m[15] = 1
	return m
}

// Mat4Rotate returns a rotation matrix around an arbitrary axis.
// The angle is in degrees and the axis is normalized if needed.
func Mat4Rotate(angleDeg, x, y, z float32) Mat4 {
	lengthSq := x*x + y*y + z*z
	if lengthSq != 1 && lengthSq != 0 {
		inv := 1 / math32.Sqrt(lengthSq)
		x *= inv
		y *= inv
		z *= inv
	}

	rad := angleDeg * (math32.Pi / 180)
	s := math32.Sin(rad)
	c := math32.Cos(rad)
	t := 1 - c

	var m Mat4
	m[0] = x*x*t + c
	m[1] = y*x*t + z*s
	m[2] = z*x*t - y*s
	m[4] = x*y*t - z*s
	m[5] = y*y*t + c
	m[6] = z*y*t + x*s
	m[8] = x*z*t + y*s
	m[9] = y*z*t - x*s
	m[10] = z*z*t + c
	m[15] = 1
	return m
}

// Mat4Ortho returns an orthographic projection matrix.
func Mat4Ortho(left, right, bottom, top, znear, zfar float32) Mat4 {
	rl := right - left
	tb := top - bottom
	fn := zfar - znear

	var m Mat4
	m[0] = 2 / rl
	m[5] = 2 / tb
	m[10] = -2 / fn
	m[12] = -(left + right) / rl
	m[13] = -(top + bottom) / tb
	m[14] = -(zfar + znear) / fn
	m[15] = 1
	return m
}

// Mat4Frustum returns a perspective projection matrix from clip planes.
func Mat4Frustum(left, right, bottom, top, znear, zfar float32) Mat4 {
	rl := right - left
	tb := top - bottom
	fn := zfar - znear

	var m Mat4
	m[0] = znear * 2 / rl
	m[5] = znear * 2 / tb
	m[8] = (right + left) / rl
	m[9] = (top + bottom) / tb
	m[10] = -(zfar + znear) / fn
	m[11] = -1
	m[14] = -(zfar * znear * 2) / fn
	return m
}

// Mul multiplies two matrices in the package's composition order:
// the result applies the receiver first, then other.
func (m Mat4) Mul(other Mat4) Mat4 {
	var r Mat4

	r[0] = m[0]*other[0] + m[1]*other[4] + m[2]*other[8] + m[3]*other[12]
	r[1] = m[0]*other[1] + m[1]*other[5] + m[2]*other[9] + m[3]*other[13]
	r[2] = m[0]*other[2] + m[1]*other[6] + m[2]*other[10] + m[3]*other[14]
	r[3] = m[0]*other[3] + m[1]*other[7] + m[2]*other[11] + m[3]*other[15]
	r[4] = m[4]*other[0] + m[5]*other[4] + m[6]*other[8] + m[7]*other[12]
	r[5] = m[4]*other[1] + m[5]*other[5] + m[6]*other[9] + m[7]*other[13]
	r[6] = m[4]*other[2] + m[5]*other[6] + m[6]*other[10] + m[7]*other[14]
	r[7] = m[4]*other[3] + m[5]*other[7] + m[6]*other[11] + m[7]*other[15]
	r[8] = m[8]*other[0] + m[9]*other[4] + m[10]*other[8] + m[11]*other[12]
	r[9] = m[8]*other[1] + m[9]*other[5] + m[10]*other[9] + m[11]*other[13]
	r[10] = m[8]*other[2] + m[9]*other[6] + m[10]*other[10] + m[11]*other[14]
	r[11] = m[8]*other[3] + m[9]*other[7] + m[10]*other[11] + m[11]*other[15]
	r[12] = m[12]*other[0] + m[13]*other[4] + m[14]*other[8] + m[15]*other[12]
	r[13] = m[12]*other[1] + m[13]*other[5] + m[14]*other[9] + m[15]*other[13]
	r[14] = m[12]*other[2] + m[13]*other[6] + m[14]*other[10] + m[15]*other[14]
	r[15] = m[12]*other[3] + m[13]*other[7] + m[14]*other[11] + m[15]*other[15]

	return r
}

// TransformPoint applies the matrix to the point (x, y, z, 1) and
// returns the transformed x, y, z.
func (m Mat4) TransformPoint(x, y, z float32) (float32, float32, float32) {
	tx := m[0]*x + m[4]*y + m[8]*z + m[12]
	ty := m[1]*x + m[5]*y + m[9]*z + m[13]
	tz := m[2]*x + m[6]*y + m[10]*z + m[14]
	return tx, ty, tz
}
