package birch

import "math"

// TextureRegion is a rectangular area of a texture in normalized UV space.
// The UV origin is the top-left corner of the texture, u grows right and v
// grows down. A region whose u > u2 (or v > v2) is flipped on that axis.
//
// The pixel size of the region is derived from its UVs:
//
//	RegionWidth  = round(|u2-u| * texture width)
//	RegionHeight = round(|v2-v| * texture height)
//
// The zero value has no texture; pixel-space setters panic with
// ErrTextureUnset until SetTexture is called.
type TextureRegion struct {
	texture      Texture
	u, v, u2, v2 float32
	regionWidth  int
	regionHeight int
}

// NewTextureRegion returns a region covering the whole texture.
func NewTextureRegion(t Texture) *TextureRegion {
	r := &TextureRegion{texture: t}
	r.SetRegion(0, 0, t.Width(), t.Height())
	return r
}

// NewTextureRegionXYWH returns a region of the texture in pixels. A negative
// width or height flips the region on that axis.
func NewTextureRegionXYWH(t Texture, x, y, width, height int) *TextureRegion {
	r := &TextureRegion{texture: t}
	r.SetRegion(x, y, width, height)
	return r
}

// NewTextureRegionUV returns a region of the texture in UV coordinates.
func NewTextureRegionUV(t Texture, u, v, u2, v2 float32) *TextureRegion {
	r := &TextureRegion{texture: t}
	r.SetRegionUV(u, v, u2, v2)
	return r
}

// NewTextureRegionFrom returns a copy of src.
func NewTextureRegionFrom(src *TextureRegion) *TextureRegion {
	r := *src
	return &r
}

// NewTextureRegionWithin returns a region relative to the top-left corner
// of src, in pixels.
func NewTextureRegionWithin(src *TextureRegion, x, y, width, height int) *TextureRegion {
	r := &TextureRegion{}
	r.SetRegionWithin(src, x, y, width, height)
	return r
}

// Texture returns the region's texture.
func (r *TextureRegion) Texture() Texture { return r.texture }

// SetTexture replaces the texture without touching the UVs.
func (r *TextureRegion) SetTexture(t Texture) { r.texture = t }

func (r *TextureRegion) mustTexture(op string) Texture {
	if r.texture == nil {
		usagePanic(ErrTextureUnset, "%s", op)
	}
	return r.texture
}

// SetRegion sets the region in pixels. A negative width or height flips the
// region on that axis.
func (r *TextureRegion) SetRegion(x, y, width, height int) {
	t := r.mustTexture("TextureRegion.SetRegion")
	invTexWidth := 1 / float32(t.Width())
	invTexHeight := 1 / float32(t.Height())
	r.SetRegionUV(float32(x)*invTexWidth, float32(y)*invTexHeight,
		float32(x+width)*invTexWidth, float32(y+height)*invTexHeight)
	r.regionWidth = absInt(width)
	r.regionHeight = absInt(height)
}

// SetRegionUV sets the region in UV coordinates. A region that is exactly
// one texel on both axes is nudged a quarter texel inward so stretched
// draws do not bleed neighbouring texels through bilinear filtering.
func (r *TextureRegion) SetRegionUV(u, v, u2, v2 float32) {
	t := r.mustTexture("TextureRegion.SetRegionUV")
	texWidth, texHeight := float32(t.Width()), float32(t.Height())
	r.regionWidth = roundF(abs32(u2-u) * texWidth)
	r.regionHeight = roundF(abs32(v2-v) * texHeight)

	if r.regionWidth == 1 && r.regionHeight == 1 {
		adjustX := 0.25 / texWidth
		u += adjustX
		u2 -= adjustX
		adjustY := 0.25 / texHeight
		v += adjustY
		v2 -= adjustY
	}

	r.u, r.v, r.u2, r.v2 = u, v, u2, v2
}

// SetRegionFrom copies texture and UVs from src.
func (r *TextureRegion) SetRegionFrom(src *TextureRegion) {
	r.texture = src.texture
	r.SetRegionUV(src.u, src.v, src.u2, src.v2)
}

// SetRegionWithin sets the region relative to the top-left corner of src,
// in pixels, using src's texture.
func (r *TextureRegion) SetRegionWithin(src *TextureRegion, x, y, width, height int) {
	r.texture = src.texture
	r.SetRegion(src.RegionX()+x, src.RegionY()+y, width, height)
}

// U returns the left (or right, when flipped) texture coordinate.
func (r *TextureRegion) U() float32 { return r.u }

// V returns the top (or bottom, when flipped) texture coordinate.
func (r *TextureRegion) V() float32 { return r.v }

// U2 returns the texture coordinate opposite U.
func (r *TextureRegion) U2() float32 { return r.u2 }

// V2 returns the texture coordinate opposite V.
func (r *TextureRegion) V2() float32 { return r.v2 }

// SetU sets U and recomputes the region width.
func (r *TextureRegion) SetU(u float32) {
	t := r.mustTexture("TextureRegion.SetU")
	r.u = u
	r.regionWidth = roundF(abs32(r.u2-u) * float32(t.Width()))
}

// SetV sets V and recomputes the region height.
func (r *TextureRegion) SetV(v float32) {
	t := r.mustTexture("TextureRegion.SetV")
	r.v = v
	r.regionHeight = roundF(abs32(r.v2-v) * float32(t.Height()))
}

// SetU2 sets U2 and recomputes the region width.
func (r *TextureRegion) SetU2(u2 float32) {
	t := r.mustTexture("TextureRegion.SetU2")
	r.u2 = u2
	r.regionWidth = roundF(abs32(u2-r.u) * float32(t.Width()))
}

// SetV2 sets V2 and recomputes the region height.
func (r *TextureRegion) SetV2(v2 float32) {
	t := r.mustTexture("TextureRegion.SetV2")
	r.v2 = v2
	r.regionHeight = roundF(abs32(v2-r.v) * float32(t.Height()))
}

// RegionX returns the left edge of the region in pixels.
func (r *TextureRegion) RegionX() int {
	return roundF(r.u * float32(r.mustTexture("TextureRegion.RegionX").Width()))
}

// RegionY returns the top edge of the region in pixels.
func (r *TextureRegion) RegionY() int {
	return roundF(r.v * float32(r.mustTexture("TextureRegion.RegionY").Height()))
}

// SetRegionX moves the left edge of the region, in pixels.
func (r *TextureRegion) SetRegionX(x int) {
	r.SetU(float32(x) / float32(r.mustTexture("TextureRegion.SetRegionX").Width()))
}

// SetRegionY moves the top edge of the region, in pixels.
func (r *TextureRegion) SetRegionY(y int) {
	r.SetV(float32(y) / float32(r.mustTexture("TextureRegion.SetRegionY").Height()))
}

// RegionWidth returns the width of the region in pixels.
func (r *TextureRegion) RegionWidth() int { return r.regionWidth }

// RegionHeight returns the height of the region in pixels.
func (r *TextureRegion) RegionHeight() int { return r.regionHeight }

// SetRegionWidth resizes the region horizontally, in pixels, keeping the
// edge at U fixed (or the edge at U2 when flipped).
func (r *TextureRegion) SetRegionWidth(width int) {
	t := r.mustTexture("TextureRegion.SetRegionWidth")
	if r.IsFlipX() {
		r.SetU(r.u2 + float32(width)/float32(t.Width()))
	} else {
		r.SetU2(r.u + float32(width)/float32(t.Width()))
	}
}

// SetRegionHeight resizes the region vertically, in pixels, keeping the
// edge at V fixed (or the edge at V2 when flipped).
func (r *TextureRegion) SetRegionHeight(height int) {
	t := r.mustTexture("TextureRegion.SetRegionHeight")
	if r.IsFlipY() {
		r.SetV(r.v2 + float32(height)/float32(t.Height()))
	} else {
		r.SetV2(r.v + float32(height)/float32(t.Height()))
	}
}

// Flip swaps U/U2 and/or V/V2.
func (r *TextureRegion) Flip(x, y bool) {
	if x {
		r.u, r.u2 = r.u2, r.u
	}
	if y {
		r.v, r.v2 = r.v2, r.v
	}
}

// IsFlipX reports whether the region is mirrored horizontally.
func (r *TextureRegion) IsFlipX() bool { return r.u > r.u2 }

// IsFlipY reports whether the region is mirrored vertically.
func (r *TextureRegion) IsFlipY() bool { return r.v > r.v2 }

// Scroll offsets the region's UVs by the given amounts, wrapping modulo 1
// and keeping the UV span. Intended for textures with repeat wrapping.
func (r *TextureRegion) Scroll(xAmount, yAmount float32) {
	if xAmount != 0 {
		width := (r.u2 - r.u) * float32(r.mustTexture("TextureRegion.Scroll").Width())
		r.u = mod32(r.u+xAmount, 1)
		r.u2 = r.u + width/float32(r.texture.Width())
	}
	if yAmount != 0 {
		height := (r.v2 - r.v) * float32(r.mustTexture("TextureRegion.Scroll").Height())
		r.v = mod32(r.v+yAmount, 1)
		r.v2 = r.v + height/float32(r.texture.Height())
	}
}

// Split cuts the region into a row-major grid of tileWidth x tileHeight
// regions, tiled left to right and top to bottom. Trailing pixels that do
// not fill a whole tile are dropped.
func (r *TextureRegion) Split(tileWidth, tileHeight int) [][]*TextureRegion {
	if tileWidth <= 0 || tileHeight <= 0 {
		usagePanic(ErrInvalidArgument, "TextureRegion.Split: tile size %dx%d", tileWidth, tileHeight)
	}
	x := r.RegionX()
	y := r.RegionY()
	rows := r.regionHeight / tileHeight
	cols := r.regionWidth / tileWidth

	tiles := make([][]*TextureRegion, rows)
	for row := 0; row < rows; row++ {
		tiles[row] = make([]*TextureRegion, cols)
		for col := 0; col < cols; col++ {
			tiles[row][col] = NewTextureRegionXYWH(r.texture, x+col*tileWidth, y+row*tileHeight, tileWidth, tileHeight)
		}
	}
	return tiles
}

// SplitTexture splits a whole texture into tiles; see TextureRegion.Split.
func SplitTexture(t Texture, tileWidth, tileHeight int) [][]*TextureRegion {
	return NewTextureRegion(t).Split(tileWidth, tileHeight)
}

// roundF rounds half up, matching how UV spans are converted to pixels.
func roundF(v float32) int {
	return int(math.Floor(float64(v) + 0.5))
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// mod32 is the truncated remainder (result has the sign of a).
func mod32(a, b float32) float32 {
	return float32(math.Mod(float64(a), float64(b)))
}
