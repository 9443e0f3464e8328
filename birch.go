package birch

import "math"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Vertex data carries colors packed into a single float32 (see ToFloatBits).
type Color struct {
	R, G, B, A float32
}

var (
	// ColorWhite is the default tint (no color modification).
	ColorWhite = Color{1, 1, 1, 1}
	// ColorBlack is opaque black.
	ColorBlack = Color{0, 0, 0, 1}
	// ColorClear is fully transparent black.
	ColorClear = Color{0, 0, 0, 0}
)

// whiteFloatBits is ColorWhite.ToFloatBits(), precomputed for constructors.
var whiteFloatBits = ColorWhite.ToFloatBits()

// ToFloatBits packs the color as ABGR8888 and reinterprets the bit pattern
// as a float32. The low bit of alpha is dropped so the result is never NaN.
func (c Color) ToFloatBits() float32 {
	bits := uint32(255*clamp01(c.A))<<24 |
		uint32(255*clamp01(c.B))<<16 |
		uint32(255*clamp01(c.G))<<8 |
		uint32(255*clamp01(c.R))
	return math.Float32frombits(bits & 0xfeffffff)
}

// ColorFromFloatBits unpacks a color produced by ToFloatBits. Alpha 254 is
// restored to 255.
func ColorFromFloatBits(packed float32) Color {
	bits := math.Float32bits(packed)
	alpha := min((bits>>24)*255/254, 255)
	return Color{
		R: float32(bits&0xff) / 255,
		G: float32((bits>>8)&0xff) / 255,
		B: float32((bits>>16)&0xff) / 255,
		A: float32(alpha) / 255,
	}
}

// Mul returns the component-wise product of c and o.
func (c Color) Mul(o Color) Color {
	return Color{c.R * o.R, c.G * o.G, c.B * o.B, c.A * o.A}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float32
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Merge returns the smallest rectangle containing both r and other.
func (r Rect) Merge(other Rect) Rect {
	minX := min(r.X, other.X)
	minY := min(r.Y, other.Y)
	maxX := max(r.X+r.Width, other.X+other.Width)
	maxY := max(r.Y+r.Height, other.Y+other.Height)
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// boundsOf returns the axis-aligned bounds of the four corners stored in a
// sprite vertex array.
func boundsOf(v []float32) Rect {
	minX, maxX := v[X1], v[X1]
	minY, maxY := v[Y1], v[Y1]
	for _, i := range [3]int{X2, X3, X4} {
		minX = min(minX, v[i])
		maxX = max(maxX, v[i])
		minY = min(minY, v[i+1])
		maxY = max(maxY, v[i+1])
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// sinCosDeg returns the sine and cosine of an angle given in degrees.
func sinCosDeg(deg float32) (sin, cos float32) {
	s, c := math.Sincos(float64(deg) * math.Pi / 180)
	return float32(s), float32(c)
}

// quadCorners returns the TL, BL, BR, TR corners of a width x height quad
// placed at (x, y), scaled and rotated (degrees) about the local origin
// (originX, originY). The fourth corner is completed from the other three
// rather than rotated separately.
func quadCorners(x, y, originX, originY, width, height, scaleX, scaleY, rotation float32) (c [8]float32) {
	worldOriginX := x + originX
	worldOriginY := y + originY
	fx := -originX
	fy := -originY
	fx2 := width - originX
	fy2 := height - originY

	if scaleX != 1 || scaleY != 1 {
		fx *= scaleX
		fy *= scaleY
		fx2 *= scaleX
		fy2 *= scaleY
	}

	if rotation != 0 {
		sin, cos := sinCosDeg(rotation)
		x1 := fx*cos - fy*sin
		y1 := fx*sin + fy*cos
		x2 := fx*cos - fy2*sin
		y2 := fx*sin + fy2*cos
		x3 := fx2*cos - fy2*sin
		y3 := fx2*sin + fy2*cos

		c[0], c[1] = x1+worldOriginX, y1+worldOriginY
		c[2], c[3] = x2+worldOriginX, y2+worldOriginY
		c[4], c[5] = x3+worldOriginX, y3+worldOriginY
		c[6] = c[0] + (c[4] - c[2])
		c[7] = c[5] - (c[3] - c[1])
		return c
	}

	c[0], c[1] = fx+worldOriginX, fy+worldOriginY
	c[2], c[3] = fx+worldOriginX, fy2+worldOriginY
	c[4], c[5] = fx2+worldOriginX, fy2+worldOriginY
	c[6], c[7] = fx2+worldOriginX, fy+worldOriginY
	return c
}
