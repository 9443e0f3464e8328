package birch

import (
	"math"
	"testing"
)

func TestColorFloatBitsLayout(t *testing.T) {
	bits := math.Float32bits(Color{R: 1, G: 0, B: 0, A: 1}.ToFloatBits())
	if bits != 0xfe0000ff {
		t.Errorf("red bits = %#x, want 0xfe0000ff", bits)
	}
	bits = math.Float32bits(Color{R: 0, G: 0, B: 1, A: 0}.ToFloatBits())
	if bits != 0x00ff0000 {
		t.Errorf("blue bits = %#x, want 0x00ff0000", bits)
	}
}

func TestColorFloatBitsNeverNaN(t *testing.T) {
	for _, c := range []Color{ColorWhite, ColorBlack, ColorClear, {1, 1, 1, 0.999}, {0.3, 0.6, 0.9, 1}} {
		f := c.ToFloatBits()
		if f != f {
			t.Errorf("ToFloatBits(%v) is NaN", c)
		}
	}
}

func TestColorRoundTrip(t *testing.T) {
	for _, c := range []Color{ColorWhite, ColorBlack, ColorClear, {0.2, 0.4, 0.6, 0.8}} {
		got := ColorFromFloatBits(c.ToFloatBits())
		if math.Abs(float64(got.R-c.R)) > 1.0/255 ||
			math.Abs(float64(got.G-c.G)) > 1.0/255 ||
			math.Abs(float64(got.B-c.B)) > 1.0/255 ||
			math.Abs(float64(got.A-c.A)) > 2.0/255 {
			t.Errorf("round trip %v = %v", c, got)
		}
	}
	if got := ColorFromFloatBits(ColorWhite.ToFloatBits()); got != ColorWhite {
		t.Errorf("white round trip = %v, want exact", got)
	}
}

func TestColorClamps(t *testing.T) {
	got := ColorFromFloatBits(Color{R: 2, G: -1, B: 0.5, A: 3}.ToFloatBits())
	if got.R != 1 || got.G != 0 || got.A != 1 {
		t.Errorf("clamped = %v", got)
	}
}

func TestRect(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	if !r.Contains(10, 10) || r.Contains(11, 5) {
		t.Error("Contains edge handling wrong")
	}
	if !r.Intersects(Rect{X: 10, Y: 0, Width: 5, Height: 5}) {
		t.Error("adjacent rectangles should intersect")
	}
	if r.Intersects(Rect{X: 11, Y: 11, Width: 1, Height: 1}) {
		t.Error("disjoint rectangles intersect")
	}
	m := r.Merge(Rect{X: -5, Y: 5, Width: 5, Height: 20})
	if m != (Rect{X: -5, Y: 0, Width: 15, Height: 25}) {
		t.Errorf("Merge = %+v", m)
	}
}

func TestQuadCornersParallelogram(t *testing.T) {
	c := quadCorners(20, 30, 5, 10, 40, 20, 1.25, 0.5, 37)
	want := referenceCorners(20, 30, 5, 10, 40, 20, 1.25, 0.5, 37)
	for i := range c {
		if math.Abs(float64(c[i]-want[i])) > 1e-3 {
			t.Errorf("corner value %d = %v, want %v", i, c[i], want[i])
		}
	}
}
