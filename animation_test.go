package birch

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func colorNear(a, b Color) bool {
	const eps = 2.0 / 255
	return abs32(a.R-b.R) <= eps && abs32(a.G-b.G) <= eps &&
		abs32(a.B-b.B) <= eps && abs32(a.A-b.A) <= eps
}

func TestTweenPosition(t *testing.T) {
	s := NewSprite(newFakeTexture(8, 8))
	g := TweenPosition(s, 100, 50, 1, ease.Linear)

	g.Update(0.5)
	assertVertexNear(t, "X halfway", s.X(), 50)
	assertVertexNear(t, "Y halfway", s.Y(), 25)
	if g.Done {
		t.Error("Done = true halfway")
	}

	g.Update(0.5)
	assertVertexNear(t, "X", s.X(), 100)
	assertVertexNear(t, "Y", s.Y(), 50)
	if !g.Done {
		t.Error("Done = false at the end")
	}
	assertVertexNear(t, "vertex X1", s.Vertices()[X1], 100)

	// Further updates are ignored once done.
	s.SetPosition(0, 0)
	g.Update(1)
	if s.X() != 0 {
		t.Errorf("X = %v after a finished tween updated, want 0", s.X())
	}
}

func TestTweenPositionAtlasSprite(t *testing.T) {
	s := NewAtlasSprite(trimmedRegion())
	g := TweenPosition(s, 100, 40, 2, ease.Linear)
	g.Update(2)

	assertVertexNear(t, "X", s.X(), 100)
	assertVertexNear(t, "Y", s.Y(), 40)
	// The packed quad stays offset inside the original image.
	assertVertexNear(t, "vertex X1", s.Vertices()[X1], 108)
}

func TestTweenScaleAndRotation(t *testing.T) {
	s := NewSprite(newFakeTexture(8, 8))
	scale := TweenScale(s, 3, 5, 1, ease.Linear)
	rot := TweenRotation(s, 90, 1, ease.Linear)

	scale.Update(0.5)
	rot.Update(0.5)
	assertVertexNear(t, "ScaleX", s.ScaleX(), 2)
	assertVertexNear(t, "ScaleY", s.ScaleY(), 3)
	assertVertexNear(t, "Rotation", s.Rotation(), 45)

	scale.Update(0.5)
	rot.Update(0.5)
	if !scale.Done || !rot.Done {
		t.Errorf("Done = %v/%v, want true", scale.Done, rot.Done)
	}
	assertVertexNear(t, "Rotation", s.Rotation(), 90)
}

func TestTweenColor(t *testing.T) {
	s := NewSprite(newFakeTexture(8, 8))
	g := TweenColor(s, Color{R: 0, G: 0, B: 1, A: 0}, 1, ease.Linear)
	g.Update(0.5)
	if want := (Color{R: 0.5, G: 0.5, B: 1, A: 0.5}); !colorNear(s.Color(), want) {
		t.Errorf("Color halfway = %v, want %v", s.Color(), want)
	}
	g.Update(0.5)
	if want := (Color{B: 1}); !colorNear(s.Color(), want) {
		t.Errorf("Color = %v, want %v", s.Color(), want)
	}
}

func TestTweenAlphaKeepsRGB(t *testing.T) {
	s := NewSprite(newFakeTexture(8, 8))
	s.SetColor(Color{R: 1, G: 0, B: 0, A: 1})
	g := TweenAlpha(s, 0, 1, ease.Linear)
	g.Update(0.5)
	if want := (Color{R: 1, A: 0.5}); !colorNear(s.Color(), want) {
		t.Errorf("Color = %v, want %v", s.Color(), want)
	}
}

func TestTweenGroupReset(t *testing.T) {
	s := NewSprite(newFakeTexture(8, 8))
	g := TweenPosition(s, 100, 0, 1, ease.Linear)
	g.Update(1)
	if !g.Done {
		t.Fatal("Done = false")
	}

	g.Reset()
	if g.Done {
		t.Error("Done = true after Reset")
	}
	// Reset does not move the target.
	assertVertexNear(t, "X after Reset", s.X(), 100)

	g.Update(0.25)
	assertVertexNear(t, "X replayed", s.X(), 25)
}
