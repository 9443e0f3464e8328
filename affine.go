package birch

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

// Element indices into an mgl32.Mat4, which is stored column-major.
// Mxy addresses row x, column y.
const (
	M00 = 0
	M10 = 1
	M20 = 2
	M30 = 3
	M01 = 4
	M11 = 5
	M21 = 6
	M31 = 7
	M02 = 8
	M12 = 9
	M22 = 10
	M32 = 11
	M03 = 12
	M13 = 13
	M23 = 14
	M33 = 15
)

// Affine2 is a 2D affine transform.
//
//	| M00  M01  M02 |
//	| M10  M11  M12 |
//	|  0    0    1  |
type Affine2 struct {
	M00, M01, M02 float32
	M10, M11, M12 float32
}

// IdentityAffine returns the identity transform.
func IdentityAffine() Affine2 {
	return Affine2{M00: 1, M11: 1}
}

// Idt resets a to the identity.
func (a *Affine2) Idt() *Affine2 {
	*a = IdentityAffine()
	return a
}

// SetFromMat4 copies the 2D affine part (rows 0-1, columns 0, 1 and 3) of m.
func (a *Affine2) SetFromMat4(m mgl32.Mat4) *Affine2 {
	a.M00, a.M01, a.M02 = m[M00], m[M01], m[M03]
	a.M10, a.M11, a.M12 = m[M10], m[M11], m[M13]
	return a
}

// Mat4 returns a 4x4 matrix equal to the identity with a's entries in the
// 2D affine slots.
func (a Affine2) Mat4() mgl32.Mat4 {
	m := mgl32.Ident4()
	m[M00], m[M01], m[M03] = a.M00, a.M01, a.M02
	m[M10], m[M11], m[M13] = a.M10, a.M11, a.M12
	return m
}

// SetToTranslation sets a to a pure translation.
func (a *Affine2) SetToTranslation(x, y float32) *Affine2 {
	*a = Affine2{M00: 1, M02: x, M11: 1, M12: y}
	return a
}

// SetToScaling sets a to a pure scale.
func (a *Affine2) SetToScaling(sx, sy float32) *Affine2 {
	*a = Affine2{M00: sx, M11: sy}
	return a
}

// SetToRotation sets a to a rotation by degrees.
func (a *Affine2) SetToRotation(degrees float32) *Affine2 {
	sin, cos := sinCosDeg(degrees)
	*a = Affine2{M00: cos, M01: -sin, M10: sin, M11: cos}
	return a
}

// SetToTrnRotScl sets a to translate(x, y) * rotate(degrees) * scale(sx, sy).
func (a *Affine2) SetToTrnRotScl(x, y, degrees, sx, sy float32) *Affine2 {
	a.M02 = x
	a.M12 = y
	if degrees == 0 {
		a.M00, a.M01 = sx, 0
		a.M10, a.M11 = 0, sy
		return a
	}
	sin, cos := sinCosDeg(degrees)
	a.M00, a.M01 = cos*sx, -sin*sy
	a.M10, a.M11 = sin*sx, cos*sy
	return a
}

// Mul post-multiplies a by o: a = a * o.
func (a *Affine2) Mul(o Affine2) *Affine2 {
	*a = mulAffine(*a, o)
	return a
}

// PreMul pre-multiplies a by o: a = o * a.
func (a *Affine2) PreMul(o Affine2) *Affine2 {
	*a = mulAffine(o, *a)
	return a
}

// mulAffine returns p * c.
func mulAffine(p, c Affine2) Affine2 {
	return Affine2{
		M00: p.M00*c.M00 + p.M01*c.M10,
		M01: p.M00*c.M01 + p.M01*c.M11,
		M02: p.M00*c.M02 + p.M01*c.M12 + p.M02,
		M10: p.M10*c.M00 + p.M11*c.M10,
		M11: p.M10*c.M01 + p.M11*c.M11,
		M12: p.M10*c.M02 + p.M11*c.M12 + p.M12,
	}
}

// Translate post-multiplies a by a translation.
func (a *Affine2) Translate(x, y float32) *Affine2 {
	a.M02 += a.M00*x + a.M01*y
	a.M12 += a.M10*x + a.M11*y
	return a
}

// Scale post-multiplies a by a scale.
func (a *Affine2) Scale(sx, sy float32) *Affine2 {
	a.M00 *= sx
	a.M01 *= sy
	a.M10 *= sx
	a.M11 *= sy
	return a
}

// Rotate post-multiplies a by a rotation in degrees.
func (a *Affine2) Rotate(degrees float32) *Affine2 {
	if degrees == 0 {
		return a
	}
	var r Affine2
	r.SetToRotation(degrees)
	return a.Mul(r)
}

// Det returns the determinant of the linear part.
func (a Affine2) Det() float32 {
	return a.M00*a.M11 - a.M01*a.M10
}

// Invert inverts a in place. A singular transform is left unchanged and
// ErrSingularMatrix is returned.
func (a *Affine2) Invert() error {
	det := a.Det()
	if det == 0 {
		return ErrSingularMatrix
	}
	inv := 1 / det
	m00, m01, m02 := a.M00, a.M01, a.M02
	m10, m11, m12 := a.M10, a.M11, a.M12
	a.M00 = m11 * inv
	a.M01 = -m01 * inv
	a.M02 = (m01*m12 - m11*m02) * inv
	a.M10 = -m10 * inv
	a.M11 = m00 * inv
	a.M12 = (m10*m02 - m00*m12) * inv
	return nil
}

// IsIdt reports whether a is exactly the identity.
func (a Affine2) IsIdt() bool {
	return a.M00 == 1 && a.M01 == 0 && a.M02 == 0 &&
		a.M10 == 0 && a.M11 == 1 && a.M12 == 0
}

// IsTranslation reports whether a only translates.
func (a Affine2) IsTranslation() bool {
	return a.M00 == 1 && a.M01 == 0 && a.M10 == 0 && a.M11 == 1
}

// Apply transforms the point (x, y).
func (a Affine2) Apply(x, y float32) (float32, float32) {
	return a.M00*x + a.M01*y + a.M02, a.M10*x + a.M11*y + a.M12
}

// GeoM converts a to an ebiten.GeoM.
func (a Affine2) GeoM() ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, float64(a.M00))
	g.SetElement(0, 1, float64(a.M01))
	g.SetElement(0, 2, float64(a.M02))
	g.SetElement(1, 0, float64(a.M10))
	g.SetElement(1, 1, float64(a.M11))
	g.SetElement(1, 2, float64(a.M12))
	return g
}

// SetFromGeoM copies an ebiten.GeoM into a.
func (a *Affine2) SetFromGeoM(g ebiten.GeoM) *Affine2 {
	a.M00 = float32(g.Element(0, 0))
	a.M01 = float32(g.Element(0, 1))
	a.M02 = float32(g.Element(0, 2))
	a.M10 = float32(g.Element(1, 0))
	a.M11 = float32(g.Element(1, 1))
	a.M12 = float32(g.Element(1, 2))
	return a
}

// --- Matrix4 helpers ---

// Mat4SetAsAffine copies the 2D affine slots of src into dst, leaving the other
// entries of dst untouched.
func Mat4SetAsAffine(dst *mgl32.Mat4, src mgl32.Mat4) {
	dst[M00] = src[M00]
	dst[M10] = src[M10]
	dst[M01] = src[M01]
	dst[M11] = src[M11]
	dst[M03] = src[M03]
	dst[M13] = src[M13]
}

// Mat4Equal2D compares only the 2D affine slots of a and b. Batch transform
// matrices are assumed to be 2D transformations.
func Mat4Equal2D(a, b mgl32.Mat4) bool {
	return a[M00] == b[M00] && a[M10] == b[M10] &&
		a[M01] == b[M01] && a[M11] == b[M11] &&
		a[M03] == b[M03] && a[M13] == b[M13]
}

// Mat4IsIdt2D reports whether the 2D affine slots of m are the identity.
func Mat4IsIdt2D(m mgl32.Mat4) bool {
	return m[M00] == 1 && m[M10] == 0 && m[M01] == 0 &&
		m[M11] == 1 && m[M03] == 0 && m[M13] == 0
}

// ortho2D returns a y-down orthographic projection mapping (x, y) in
// [x, x+width] x [y, y+height] to normalized device coordinates.
func ortho2D(x, y, width, height float32) mgl32.Mat4 {
	return mgl32.Ortho(x, x+width, y+height, y, 0, 1)
}
