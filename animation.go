package birch

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Positioned is anything with a settable position. *Sprite and
// *AtlasSprite implement it.
type Positioned interface {
	X() float32
	Y() float32
	SetPosition(x, y float32)
}

// Scalable is anything with settable scale factors.
type Scalable interface {
	ScaleX() float32
	ScaleY() float32
	SetScale(scaleX, scaleY float32)
}

// Rotatable is anything with a settable rotation in degrees.
type Rotatable interface {
	Rotation() float32
	SetRotation(degrees float32)
}

// Tintable is anything with a settable tint.
type Tintable interface {
	Color() Color
	SetColor(c Color)
}

// TweenGroup animates up to 4 float32 properties of a target
// simultaneously. Create one via the convenience constructors
// (TweenPosition, TweenScale, TweenColor) and call Update(dt) each frame.
// The group applies values through the target's setters, so a sprite's
// vertices stay in sync.
//
// There is no global animation manager. Callers drive Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	apply  func(v [4]float32)
	Done   bool
}

// Update advances all tweens by dt seconds and applies the new values.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	var v [4]float32
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		v[i] = val
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
	g.apply(v)
}

// Reset rewinds the group to its start values without applying them.
func (g *TweenGroup) Reset() {
	for i := 0; i < g.count; i++ {
		g.tweens[i].Reset()
	}
	g.Done = false
}

// TweenPosition animates the target's position to (toX, toY) over duration
// seconds.
func TweenPosition(target Positioned, toX, toY, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2}
	g.tweens[0] = gween.New(target.X(), toX, duration, fn)
	g.tweens[1] = gween.New(target.Y(), toY, duration, fn)
	g.apply = func(v [4]float32) { target.SetPosition(v[0], v[1]) }
	return g
}

// TweenScale animates the target's scale factors.
func TweenScale(target Scalable, toSX, toSY, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2}
	g.tweens[0] = gween.New(target.ScaleX(), toSX, duration, fn)
	g.tweens[1] = gween.New(target.ScaleY(), toSY, duration, fn)
	g.apply = func(v [4]float32) { target.SetScale(v[0], v[1]) }
	return g
}

// TweenRotation animates the target's rotation to degrees.
func TweenRotation(target Rotatable, to, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1}
	g.tweens[0] = gween.New(target.Rotation(), to, duration, fn)
	g.apply = func(v [4]float32) { target.SetRotation(v[0]) }
	return g
}

// TweenColor animates all four components of the target's tint.
func TweenColor(target Tintable, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	from := target.Color()
	g := &TweenGroup{count: 4}
	g.tweens[0] = gween.New(from.R, to.R, duration, fn)
	g.tweens[1] = gween.New(from.G, to.G, duration, fn)
	g.tweens[2] = gween.New(from.B, to.B, duration, fn)
	g.tweens[3] = gween.New(from.A, to.A, duration, fn)
	g.apply = func(v [4]float32) { target.SetColor(Color{v[0], v[1], v[2], v[3]}) }
	return g
}

// TweenAlpha animates only the alpha of the target's tint.
func TweenAlpha(target Tintable, to, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1}
	g.tweens[0] = gween.New(target.Color().A, to, duration, fn)
	g.apply = func(v [4]float32) {
		c := target.Color()
		c.A = v[0]
		target.SetColor(c)
	}
	return g
}
