package birch

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds active scroll-to tweens for camera X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// OrthographicCamera is a 2D camera producing the matrix a SpriteBatch
// draws with: pass Combined to SetProjectionMatrix after Update.
//
// The world is y-down. The camera centers (X, Y) in a viewport of
// ViewportWidth x ViewportHeight pixels, scaled by Zoom and rotated
// clockwise by Rotation degrees.
type OrthographicCamera struct {
	X, Y float32
	// Zoom is the scale factor (1 = no zoom, >1 = zoom in, <1 = zoom out).
	Zoom     float32
	Rotation float32

	ViewportWidth  float32
	ViewportHeight float32

	// BoundsEnabled clamps the camera so the visible area stays within Bounds.
	BoundsEnabled bool
	Bounds        Rect

	followTarget  *Sprite
	followOffsetX float32
	followOffsetY float32
	followLerp    float32

	view        Affine2
	invView     Affine2
	projection  mgl32.Mat4
	combined    mgl32.Mat4
	scrollTween *scrollAnim
}

// NewOrthographicCamera returns a camera centered on the viewport, so
// world and screen coordinates coincide until it moves.
func NewOrthographicCamera(viewportWidth, viewportHeight float32) *OrthographicCamera {
	c := &OrthographicCamera{
		X:              viewportWidth / 2,
		Y:              viewportHeight / 2,
		Zoom:           1,
		ViewportWidth:  viewportWidth,
		ViewportHeight: viewportHeight,
	}
	c.UpdateMatrices()
	return c
}

// SetViewport resizes the viewport, keeping the camera position.
func (c *OrthographicCamera) SetViewport(width, height float32) {
	c.ViewportWidth, c.ViewportHeight = width, height
	c.UpdateMatrices()
}

// Translate moves the camera by (dx, dy) world units.
func (c *OrthographicCamera) Translate(dx, dy float32) {
	c.X += dx
	c.Y += dy
}

// Follow makes the camera track the center of target with the given
// offset. A lerp of 1 snaps immediately; lower values trail behind.
func (c *OrthographicCamera) Follow(target *Sprite, offsetX, offsetY, lerp float32) {
	c.followTarget = target
	c.followOffsetX = offsetX
	c.followOffsetY = offsetY
	c.followLerp = lerp
}

// Unfollow stops tracking the current target.
func (c *OrthographicCamera) Unfollow() {
	c.followTarget = nil
}

// ScrollTo animates the camera to (x, y) over duration seconds.
func (c *OrthographicCamera) ScrollTo(x, y, duration float32, easeFn ease.TweenFunc) {
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(c.X, x, duration, easeFn),
		tweenY: gween.New(c.Y, y, duration, easeFn),
	}
}

// IsScrolling reports whether a ScrollTo animation is running.
func (c *OrthographicCamera) IsScrolling() bool { return c.scrollTween != nil }

// SetBounds enables bounds clamping.
func (c *OrthographicCamera) SetBounds(bounds Rect) {
	c.BoundsEnabled = true
	c.Bounds = bounds
}

// ClearBounds disables bounds clamping.
func (c *OrthographicCamera) ClearBounds() {
	c.BoundsEnabled = false
}

// Update advances follow and scroll animation by dt seconds, clamps to
// bounds and recomputes the matrices.
func (c *OrthographicCamera) Update(dt float32) {
	if t := c.followTarget; t != nil {
		r := t.BoundingRectangle()
		targetX := r.X + r.Width/2 + c.followOffsetX
		targetY := r.Y + r.Height/2 + c.followOffsetY
		c.X += (targetX - c.X) * c.followLerp
		c.Y += (targetY - c.Y) * c.followLerp
	}

	if s := c.scrollTween; s != nil {
		if !s.doneX {
			c.X, s.doneX = s.tweenX.Update(dt)
		}
		if !s.doneY {
			c.Y, s.doneY = s.tweenY.Update(dt)
		}
		if s.doneX && s.doneY {
			c.scrollTween = nil
		}
	}

	if c.BoundsEnabled {
		c.clampToBounds()
	}
	c.UpdateMatrices()
}

// clampToBounds restricts the position so the visible area stays within
// Bounds, centering on Bounds when it is smaller than the view.
func (c *OrthographicCamera) clampToBounds() {
	halfW := c.ViewportWidth / (2 * c.Zoom)
	halfH := c.ViewportHeight / (2 * c.Zoom)

	minX := c.Bounds.X + halfW
	maxX := c.Bounds.X + c.Bounds.Width - halfW
	minY := c.Bounds.Y + halfH
	maxY := c.Bounds.Y + c.Bounds.Height - halfH

	if minX > maxX {
		c.X = c.Bounds.X + c.Bounds.Width/2
	} else {
		c.X = max(minX, min(c.X, maxX))
	}
	if minY > maxY {
		c.Y = c.Bounds.Y + c.Bounds.Height/2
	} else {
		c.Y = max(minY, min(c.Y, maxY))
	}
}

// UpdateMatrices recomputes the view, projection and combined matrices
// from the public fields.
//
//	view = Translate(w/2, h/2) * Scale(zoom) * Rotate(-rotation) * Translate(-X, -Y)
func (c *OrthographicCamera) UpdateMatrices() {
	c.view.SetToTranslation(c.ViewportWidth/2, c.ViewportHeight/2).
		Scale(c.Zoom, c.Zoom).
		Rotate(-c.Rotation).
		Translate(-c.X, -c.Y)
	inv := c.view
	if inv.Invert() == nil {
		c.invView = inv
	}
	c.projection = ortho2D(0, 0, c.ViewportWidth, c.ViewportHeight)
	c.combined = c.projection.Mul4(c.view.Mat4())
}

// Combined returns projection x view.
func (c *OrthographicCamera) Combined() mgl32.Mat4 { return c.combined }

// Projection returns the viewport's orthographic projection.
func (c *OrthographicCamera) Projection() mgl32.Mat4 { return c.projection }

// View returns the world-to-viewport transform.
func (c *OrthographicCamera) View() Affine2 { return c.view }

// Project converts world coordinates to viewport pixels.
func (c *OrthographicCamera) Project(wx, wy float32) (sx, sy float32) {
	return c.view.Apply(wx, wy)
}

// Unproject converts viewport pixels to world coordinates.
func (c *OrthographicCamera) Unproject(sx, sy float32) (wx, wy float32) {
	return c.invView.Apply(sx, sy)
}

// VisibleBounds returns the axis-aligned world rectangle the viewport shows.
func (c *OrthographicCamera) VisibleBounds() Rect {
	var v [8]float32
	v[0], v[1] = c.Unproject(0, 0)
	v[2], v[3] = c.Unproject(0, c.ViewportHeight)
	v[4], v[5] = c.Unproject(c.ViewportWidth, c.ViewportHeight)
	v[6], v[7] = c.Unproject(c.ViewportWidth, 0)
	minX, minY := v[0], v[1]
	maxX, maxY := v[0], v[1]
	for i := 2; i < 8; i += 2 {
		minX, maxX = min(minX, v[i]), max(maxX, v[i])
		minY, maxY = min(minY, v[i+1]), max(maxY, v[i+1])
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
