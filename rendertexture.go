package birch

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// RenderTexture is an offscreen canvas. It can be drawn into through its
// own Backend and then sampled like any other Texture.
type RenderTexture struct {
	ImageTexture
	backend *EbitenBackend
}

// NewRenderTexture creates a transparent canvas of the given size.
func NewRenderTexture(width, height int) *RenderTexture {
	rt := &RenderTexture{ImageTexture: ImageTexture{image: ebiten.NewImage(width, height)}}
	rt.backend = NewEbitenBackend(rt.image)
	return rt
}

// Backend returns a backend whose draws land in this texture. A batch
// created with it should use a projection matching the texture size.
func (rt *RenderTexture) Backend() *EbitenBackend {
	return rt.backend
}

// Clear fills the texture with transparent black.
func (rt *RenderTexture) Clear() {
	rt.image.Clear()
}

// Fill fills the entire texture with c.
func (rt *RenderTexture) Fill(c Color) {
	rt.image.Fill(c.toRGBA())
}

// Resize replaces the canvas with a new, cleared image.
func (rt *RenderTexture) Resize(width, height int) {
	if rt.image != nil {
		rt.image.Deallocate()
	}
	rt.image = ebiten.NewImage(width, height)
	rt.backend.SetTarget(rt.image)
}

// Dispose deallocates the underlying image. The RenderTexture must not be
// used afterwards.
func (rt *RenderTexture) Dispose() {
	if rt.image != nil {
		rt.image.Deallocate()
		rt.image = nil
	}
	rt.backend.SetTarget(nil)
}

// toRGBA converts c to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}
