package geom

import "math"

// Matrix represents a 4x4 transformation matrix in row-major order.
//
//	| M[0][0] M[0][1] M[0][2] M[0][3] |
//	| M[1][0] M[1][1] M[1][2] M[1][3] |
//	| M[2][0] M[2][1] M[2][2] M[2][3] |
//	| M[3][0] M[3][1] M[3][2] M[3][3] |
//
// A 2D point (x, y) is mapped as the column vector (x, y, 0, 1):
//
//	x' = M[0][0]*x + M[0][1]*y + M[0][3]
//	y' = M[1][0]*x + M[1][1]*y + M[1][3]
//	w' = M[3][0]*x + M[3][1]*y + M[3][3]
//
// followed by division by w'. The bottom row is (0, 0, 0, 1) for affine
// transforms; anything else is perspective.
type Matrix struct {
	M [4][4]float64
}

// Identity returns the identity transformation matrix.
func Identity() Matrix {
	return Matrix{M: [4][4]float64{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}}
}

// Affine creates a matrix from the 2x3 affine coefficients
//
//	| a  b  c |
//	| d  e  f |
//
// matching the layout of gg.Matrix.
func Affine(a, b, c, d, e, f float64) Matrix {
	m := Identity()
	m.M[0][0], m.M[0][1], m.M[0][3] = a, b, c
	m.M[1][0], m.M[1][1], m.M[1][3] = d, e, f
	return m
}

// Translate creates a translation matrix.
func Translate(x, y float64) Matrix {
	return Affine(1, 0, x, 0, 1, y)
}

// Scale creates a scaling matrix.
func Scale(x, y float64) Matrix {
	return Affine(x, 0, 0, 0, y, 0)
}

// RotateZ creates a rotation matrix about the z axis (angle in radians).
func RotateZ(angle float64) Matrix {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Affine(cos, -sin, 0, sin, cos, 0)
}

// Perspective creates a matrix whose bottom row is (px, py, 0, 1).
// Points with larger px*x + py*y appear smaller after projection.
func Perspective(px, py float64) Matrix {
	m := Identity()
	m.M[3][0] = px
	m.M[3][1] = py
	return m
}

// Multiply multiplies two matrices (m * other).
// The result maps a point through other first, then through m.
func (m Matrix) Multiply(other Matrix) Matrix {
	var out Matrix
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m.M[r][k] * other.M[k][c]
			}
			out.M[r][c] = sum
		}
	}
	return out
}

// TransformPoint applies the transformation to a point, including the
// perspective divide. Points that land on w = 0 map to infinity.
func (m Matrix) TransformPoint(p Point) Point {
	x, y, w := m.transformHomogeneous(p.X, p.Y)
	if w == 1 {
		return Point{X: x, Y: y}
	}
	return Point{X: x / w, Y: y / w}
}

// transformHomogeneous maps (x, y, 0, 1) and returns x', y' and w'.
func (m Matrix) transformHomogeneous(x, y float64) (float64, float64, float64) {
	return m.M[0][0]*x + m.M[0][1]*y + m.M[0][3],
		m.M[1][0]*x + m.M[1][1]*y + m.M[1][3],
		m.M[3][0]*x + m.M[3][1]*y + m.M[3][3]
}

// Translation returns the x and y translation components.
func (m Matrix) Translation() (float64, float64) {
	return m.M[0][3], m.M[1][3]
}

// HasPerspective returns true if the bottom row is not (0, 0, 0, 1).
func (m Matrix) HasPerspective() bool {
	return m.M[3][0] != 0 || m.M[3][1] != 0 || m.M[3][2] != 0 || m.M[3][3] != 1
}

// IsIdentity returns true if the matrix is the identity matrix.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// IsTranslation returns true if the matrix is only a 2D translation.
func (m Matrix) IsTranslation() bool {
	t := m
	t.M[0][3], t.M[1][3] = 0, 0
	return t.IsIdentity()
}

// IsFinite reports whether every element is a finite number.
func (m Matrix) IsFinite() bool {
	for r := range m.M {
		for _, v := range m.M[r] {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}

// Equal reports whether both matrices have identical elements.
func (m Matrix) Equal(other Matrix) bool {
	return m == other
}
