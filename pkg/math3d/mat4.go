package math3d

import "math"

// Mat4 is a 4x4 matrix stored in column-major order, element (row, col) at
// index row+col*4. Translation lives in elements 12, 13 and 14.
type Mat4 [16]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate creates a translation matrix.
func Translate(v Vec3) Mat4 {
	m := Identity()
	m[12], m[13], m[14] = v.X, v.Y, v.Z
	return m
}

// Scale creates a scaling matrix.
func Scale(v Vec3) Mat4 {
	m := Identity()
	m[0], m[5], m[10] = v.X, v.Y, v.Z
	return m
}

// RotateX rotates counter-clockwise around the X axis.
func RotateX(angle float64) Mat4 {
	s, c := math.Sincos(angle)
	m := Identity()
	m[5], m[6] = c, s
	m[9], m[10] = -s, c
	return m
}

// RotateY rotates counter-clockwise around the Y axis.
func RotateY(angle float64) Mat4 {
	s, c := math.Sincos(angle)
	m := Identity()
	m[0], m[2] = c, -s
	m[8], m[10] = s, c
	return m
}

// RotateZ rotates counter-clockwise around the Z axis.
func RotateZ(angle float64) Mat4 {
	s, c := math.Sincos(angle)
	m := Identity()
	m[0], m[1] = c, s
	m[4], m[5] = -s, c
	return m
}

// Perspective creates a right-handed perspective projection with clip-space
// depth in [-1, 1]. fovy is the vertical field of view in radians.
func Perspective(fovy, aspect, near, far float64) Mat4 {
	f := 1 / math.Tan(fovy/2)
	nf := 1 / (near - far)

	var m Mat4
	m[0] = f / aspect
	m[5] = f
	m[10] = (far + near) * nf
	m[11] = -1
	m[14] = 2 * far * near * nf
	return m
}

// Mul returns a * b, so that b is applied first.
func (a Mat4) Mul(b Mat4) Mat4 {
	var m Mat4
	for col := range 4 {
		for row := range 4 {
			var sum float64
			for k := range 4 {
				sum += a[row+k*4] * b[k+col*4]
			}
			m[row+col*4] = sum
		}
	}
	return m
}

// MulVec3 transforms v as a point (w=1) and divides by the resulting w.
func (m Mat4) MulVec3(v Vec3) Vec3 {
	return m.MulVec4(V4FromV3(v, 1)).PerspectiveDivide()
}

// MulVec3Dir transforms v as a direction (w=0).
func (m Mat4) MulVec3Dir(v Vec3) Vec3 {
	return m.MulVec4(V4FromV3(v, 0)).Vec3()
}

// MulVec4 transforms a homogeneous vector.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]*v.W,
		m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]*v.W,
		m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]*v.W,
		m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]*v.W,
	}
}

// Transpose returns the transposed matrix.
func (m Mat4) Transpose() Mat4 {
	var t Mat4
	for row := range 4 {
		for col := range 4 {
			t[col+row*4] = m[row+col*4]
		}
	}
	return t
}

// Inverse returns the inverse of m using Gauss-Jordan elimination with
// partial pivoting. ok is false when m is singular, in which case the
// identity is returned.
func (m Mat4) Inverse() (inv Mat4, ok bool) {
	a := m
	inv = Identity()

	for col := range 4 {
		pivot := col
		for row := col + 1; row < 4; row++ {
			if math.Abs(a[row+col*4]) > math.Abs(a[pivot+col*4]) {
				pivot = row
			}
		}
		if math.Abs(a[pivot+col*4]) < 1e-12 {
			return Identity(), false
		}
		if pivot != col {
			swapRows(&a, pivot, col)
			swapRows(&inv, pivot, col)
		}

		p := 1 / a[col+col*4]
		for k := range 4 {
			a[col+k*4] *= p
			inv[col+k*4] *= p
		}

		for row := range 4 {
			if row == col {
				continue
			}
			f := a[row+col*4]
			if f == 0 {
				continue
			}
			for k := range 4 {
				a[row+k*4] -= f * a[col+k*4]
				inv[row+k*4] -= f * inv[col+k*4]
			}
		}
	}
	return inv, true
}

// NormalMatrix returns the inverse transpose of m, which keeps normals
// perpendicular to surfaces under non-uniform scaling.
func (m Mat4) NormalMatrix() Mat4 {
	inv, ok := m.Inverse()
	if !ok {
		return m
	}
	return inv.Transpose()
}

func swapRows(m *Mat4, r1, r2 int) {
	for k := range 4 {
		m[r1+k*4], m[r2+k*4] = m[r2+k*4], m[r1+k*4]
	}
}
